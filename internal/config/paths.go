package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for every file gdchart reads or writes
type Paths struct {
	BaseDir   string
	DataDir   string
	OutputDir string
	LogsDir   string

	// Well-known output files
	ChartHTML   string
	ChartPNG    string
	MatchesCSV  string
	Workbook    string
	DatasetJSON string
	MetricsFile string
}

// NewPaths resolves the configured directories against the base directory.
// An empty BaseDir means the current working directory.
func NewPaths(cfg *Config) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	outputDir := resolve(cfg.Output.Dir)
	metrics := cfg.Telemetry.MetricsFile
	if metrics == "" {
		metrics = DefaultMetricsFile
	}
	if !filepath.IsAbs(metrics) {
		metrics = filepath.Join(outputDir, metrics)
	}

	return &Paths{
		BaseDir:     base,
		DataDir:     resolve(cfg.Data.Dir),
		OutputDir:   outputDir,
		LogsDir:     filepath.Dir(resolve(cfg.Logging.FilePath)),
		ChartHTML:   filepath.Join(outputDir, ChartHTMLFile),
		ChartPNG:    filepath.Join(outputDir, ChartPNGFile),
		MatchesCSV:  filepath.Join(outputDir, MatchesCSVFile),
		Workbook:    filepath.Join(outputDir, WorkbookFile),
		DatasetJSON: filepath.Join(outputDir, DatasetJSONFile),
		MetricsFile: metrics,
	}, nil
}

// Resolve returns p joined to the base directory unless it is absolute.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// EnsureDirectories creates the output directory if it doesn't exist.
// The data directory is input only and is never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, filepath.Dir(p.MetricsFile)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("output_files",
			slog.String("chart_html", p.ChartHTML),
			slog.String("matches_csv", p.MatchesCSV),
			slog.String("workbook", p.Workbook),
			slog.String("dataset_json", p.DatasetJSON),
			slog.String("metrics", p.MetricsFile),
		))
}
