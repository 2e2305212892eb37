package chart

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
)

// DefaultSnapshotTimeout bounds one headless Chrome capture.
const DefaultSnapshotTimeout = 30 * time.Second

// Snapshotter captures a rendered chart page as PNG with headless Chrome.
type Snapshotter struct {
	logger  *slog.Logger
	timeout time.Duration
}

// NewSnapshotter creates a snapshotter. A zero timeout uses DefaultSnapshotTimeout.
func NewSnapshotter(logger *slog.Logger, timeout time.Duration) *Snapshotter {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultSnapshotTimeout
	}
	return &Snapshotter{
		logger:  infrastructure.WithComponent(logger, "snapshot"),
		timeout: timeout,
	}
}

// Capture loads htmlPath in a browser window sized to layout and writes a
// screenshot of the chart to pngPath.
func (s *Snapshotter) Capture(ctx context.Context, htmlPath, pngPath string, layout Layout) error {
	pageURL, err := fileURL(htmlPath)
	if err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.WindowSize(layout.Width+40, layout.Height+80),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, s.timeout)
	defer cancelTimeout()

	start := time.Now()
	var png []byte
	if err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &png, chromedp.ByQuery),
	); err != nil {
		return apperrors.NewRenderError("failed to capture chart snapshot", err).WithContext("path", htmlPath)
	}

	if err := os.WriteFile(pngPath, png, 0644); err != nil {
		return apperrors.NewStorageError("failed to write snapshot", err).WithContext("path", pngPath)
	}

	s.logger.InfoContext(ctx, "Captured chart snapshot",
		slog.String("path", pngPath),
		slog.Int("bytes", len(png)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// fileURL turns a local path into a file:// URL after checking it exists.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.NewRenderError("failed to resolve chart path", err).WithContext("path", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", apperrors.NewNotFoundError("chart page").WithContext("path", abs)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
