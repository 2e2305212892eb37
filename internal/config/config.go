package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gdchart/internal/errors"
)

// EnvPrefix namespaces every environment variable (GDCHART_DATA_INPUT, ...).
const EnvPrefix = "GDCHART"

// Config represents the complete application configuration
type Config struct {
	BaseDir   string          `yaml:"base_dir" envconfig:"BASE_DIR"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// DataConfig controls where match data comes from and how it is normalized
type DataConfig struct {
	Input          string `yaml:"input" envconfig:"INPUT"`
	Dir            string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Sheet          string `yaml:"sheet" envconfig:"SHEET"`
	ScopeStart     string `yaml:"scope_start" envconfig:"SCOPE_START" validate:"omitempty,isodate"`
	CumulativeMode string `yaml:"cumulative_mode" envconfig:"CUMULATIVE_MODE" validate:"oneof=derive trust"`
	Policy         string `yaml:"policy" envconfig:"POLICY" validate:"oneof=fail skip"`
	// InferManagers fills manager columns from the tenure table when the
	// input has none.
	InferManagers bool `yaml:"infer_managers" envconfig:"INFER_MANAGERS"`
}

// ChartConfig controls the rendered chart
type ChartConfig struct {
	Variant         string        `yaml:"variant" envconfig:"VARIANT" validate:"oneof=simple manager manager_type"`
	Layout          string        `yaml:"layout" envconfig:"LAYOUT" validate:"oneof=standard wide"`
	Title           string        `yaml:"title" envconfig:"TITLE"`
	TimeframesFile  string        `yaml:"timeframes_file" envconfig:"TIMEFRAMES_FILE"`
	Snapshot        bool          `yaml:"snapshot" envconfig:"SNAPSHOT"`
	SnapshotTimeout time.Duration `yaml:"snapshot_timeout" envconfig:"SNAPSHOT_TIMEOUT" validate:"gt=0"`
}

// OutputConfig lists the artifacts written by a build
type OutputConfig struct {
	Dir     string   `yaml:"dir" envconfig:"DIR" validate:"required"`
	Formats []string `yaml:"formats" envconfig:"FORMATS" validate:"min=1,dive,oneof=html csv xlsx json png"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	Tracing     string `yaml:"tracing" envconfig:"TRACING" validate:"oneof=none stdout"`
	Metrics     bool   `yaml:"metrics" envconfig:"METRICS"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:            DefaultDataDir,
			ScopeStart:     DefaultScopeStart,
			CumulativeMode: CumulativeDerive,
			Policy:         PolicyFail,
		},
		Chart: ChartConfig{
			Variant:         VariantSimple,
			Layout:          LayoutStandard,
			Title:           DefaultChartTitle,
			SnapshotTimeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Dir:     DefaultOutputDir,
			Formats: []string{FormatHTML},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/gdchart.log",
		},
		Telemetry: TelemetryConfig{
			Tracing:     "none",
			Metrics:     true,
			MetricsFile: DefaultMetricsFile,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at
// configFile (if it exists), then GDCHART_* environment variables.
// An empty configFile falls back to the well-known locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to load config from file", err).
					WithContext("file", configFile)
			}
		} else if !os.IsNotExist(err) {
			return nil, apperrors.NewConfigError("failed to stat config file", err)
		}
	}

	// Only variables that are set override the file; envconfig leaves the rest alone.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; absent keys keep their value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"gdchart.yaml",
		"configs/gdchart.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// ScopeStartDate returns the parsed scope start, or the zero time when unset.
func (c *Config) ScopeStartDate() time.Time {
	if c.Data.ScopeStart == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, c.Data.ScopeStart)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Config) String() string {
	return fmt.Sprintf("variant=%s layout=%s mode=%s policy=%s out=%s",
		c.Chart.Variant, c.Chart.Layout, c.Data.CumulativeMode, c.Data.Policy, c.Output.Dir)
}
