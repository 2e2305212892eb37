package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
	"gdchart/internal/services"
	"gdchart/pkg/contracts"
	"gdchart/pkg/contracts/domain"
)

// Exit codes returned by Execute.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

const shutdownTimeout = 5 * time.Second

// ChartService is the part of services.ChartService the commands use.
type ChartService interface {
	Build(ctx context.Context, req services.BuildRequest) (*services.BuildResult, error)
	Lookup(ctx context.Context, input string, date time.Time) (domain.MatchRecord, error)
	Summaries(ctx context.Context, input string) ([]domain.ManagerSummary, error)
	Check(ctx context.Context, input string) (*services.CheckReport, error)
	FlushMetrics() error
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Service       ChartService

	// Stdout receives command output, Stderr usage text.
	Stdout io.Writer
	Stderr io.Writer
}

// NewApplication loads configFile (empty means the well-known locations)
// and wires every component.
func NewApplication(configFile string) (*Application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.NewPaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	svc, err := services.NewChartService(cfg, paths, logger, providers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chart service: %w", err)
	}

	logger.Debug("Application initialized",
		slog.String("version", contracts.Version),
		slog.String("config", cfg.String()))

	app := New(cfg, logger, svc)
	app.Paths = paths
	app.OTelProviders = providers
	return app, nil
}

// New assembles an application around an existing service.
func New(cfg *config.Config, logger *slog.Logger, svc ChartService) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Service: svc,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run executes args until done or interrupted, flushes telemetry and
// returns the process exit code.
func (a *Application) Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = infrastructure.EnsureTraceID(ctx)

	code, err := a.Execute(ctx, args)
	if err != nil {
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Command failed",
			slog.Any("args", args),
			slog.String("error_type", string(apperrors.TypeOf(err))))
	}

	if err := a.Stop(ctx); err != nil {
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Shutdown error")
	}
	_ = infrastructure.CloseLogFile()
	return code
}

// Stop writes the metrics textfile and shuts down OpenTelemetry.
func (a *Application) Stop(ctx context.Context) error {
	var errs []error

	if err := a.Service.FlushMetrics(); err != nil {
		errs = append(errs, err)
	}

	if a.OTelProviders != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
