package dataprocessing

import (
	"context"
	"time"
)

// StageHook wraps one pipeline stage. It may return a derived context (for
// a span) and must return a func that is called with the stage's error.
type StageHook func(ctx context.Context, stage string) (context.Context, func(error))

// ProcessorOptions configures the load pipeline
type ProcessorOptions struct {
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string

	// ScopeStart drops rows dated before it; zero keeps every row.
	ScopeStart time.Time

	Normalizer NormalizerOptions
}

func noopHook(ctx context.Context, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}
