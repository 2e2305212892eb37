package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gdchart/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gdchart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data", cfg.Data.Dir)
				assert.Equal(t, "2013-07-01", cfg.Data.ScopeStart)
				assert.Equal(t, CumulativeDerive, cfg.Data.CumulativeMode)
				assert.Equal(t, PolicyFail, cfg.Data.Policy)
				assert.Equal(t, VariantSimple, cfg.Chart.Variant)
				assert.Equal(t, LayoutStandard, cfg.Chart.Layout)
				assert.Equal(t, []string{FormatHTML}, cfg.Output.Formats)
				assert.Equal(t, "none", cfg.Telemetry.Tracing)
				assert.True(t, cfg.Telemetry.Metrics)
			},
		},
		{
			name: "file overrides defaults",
			file: `
data:
  input: results.csv
  policy: skip
chart:
  variant: manager
  layout: wide
output:
  formats: [html, csv, xlsx]
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "results.csv", cfg.Data.Input)
				assert.Equal(t, PolicySkip, cfg.Data.Policy)
				assert.Equal(t, CumulativeDerive, cfg.Data.CumulativeMode, "absent keys keep defaults")
				assert.Equal(t, VariantManager, cfg.Chart.Variant)
				assert.Equal(t, LayoutWide, cfg.Chart.Layout)
				assert.Equal(t, []string{"html", "csv", "xlsx"}, cfg.Output.Formats)
			},
		},
		{
			name: "env overrides file",
			file: `
chart:
  variant: manager
`,
			env: map[string]string{
				"GDCHART_CHART_VARIANT":          "manager_type",
				"GDCHART_DATA_CUMULATIVE_MODE":   "trust",
				"GDCHART_OUTPUT_FORMATS":         "json,csv",
				"GDCHART_CHART_SNAPSHOT_TIMEOUT": "5s",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, VariantManagerType, cfg.Chart.Variant)
				assert.Equal(t, CumulativeTrust, cfg.Data.CumulativeMode)
				assert.Equal(t, []string{"json", "csv"}, cfg.Output.Formats)
				assert.Equal(t, 5*time.Second, cfg.Chart.SnapshotTimeout)
			},
		},
		{
			name: "png output in file",
			file: `
output:
  formats: [png, csv]
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{FormatPNG, FormatCSV}, cfg.Output.Formats)
			},
		},
		{
			name:    "invalid variant",
			env:     map[string]string{"GDCHART_CHART_VARIANT": "pie"},
			wantErr: true,
		},
		{
			name:    "invalid scope start",
			file:    "data:\n  scope_start: \"2013-13-01\"\n",
			wantErr: true,
		},
		{
			name:    "unknown output format",
			env:     map[string]string{"GDCHART_OUTPUT_FORMATS": "html,pdf"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "data: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	cfg := Default()
	cfg.Data.Policy = "retry"
	cfg.Output.Dir = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.policy must be one of: fail, skip")
	assert.Contains(t, err.Error(), "output.dir is required")
}

func TestScopeStartDate(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Date(2013, 7, 1, 0, 0, 0, 0, time.UTC), cfg.ScopeStartDate())

	cfg.Data.ScopeStart = ""
	assert.True(t, cfg.ScopeStartDate().IsZero())
}

func TestLoad_ExampleFiles(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "gdchart.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Data, cfg.Data)
	assert.Equal(t, 30*time.Second, cfg.Chart.SnapshotTimeout)
	assert.Equal(t, []string{FormatHTML, FormatCSV, FormatXLSX, FormatJSON}, cfg.Output.Formats)

	timeframes, err := LoadTimeframes(filepath.Join("..", "..", cfg.Chart.TimeframesFile))
	require.NoError(t, err)
	assert.ElementsMatch(t, DefaultTimeframes(), timeframes)
}
