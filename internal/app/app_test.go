package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/services"
	"gdchart/internal/shared/testutil"
	"gdchart/pkg/contracts/domain"
)

// mockChartService is a mock implementation of ChartService
type mockChartService struct {
	mock.Mock
}

func (m *mockChartService) Build(ctx context.Context, req services.BuildRequest) (*services.BuildResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*services.BuildResult)
	return result, args.Error(1)
}

func (m *mockChartService) Lookup(ctx context.Context, input string, date time.Time) (domain.MatchRecord, error) {
	args := m.Called(ctx, input, date)
	return args.Get(0).(domain.MatchRecord), args.Error(1)
}

func (m *mockChartService) Summaries(ctx context.Context, input string) ([]domain.ManagerSummary, error) {
	args := m.Called(ctx, input)
	summaries, _ := args.Get(0).([]domain.ManagerSummary)
	return summaries, args.Error(1)
}

func (m *mockChartService) Check(ctx context.Context, input string) (*services.CheckReport, error) {
	args := m.Called(ctx, input)
	report, _ := args.Get(0).(*services.CheckReport)
	return report, args.Error(1)
}

func (m *mockChartService) FlushMetrics() error {
	return m.Called().Error(0)
}

func newTestApp(t *testing.T) (*Application, *mockChartService, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	svc := new(mockChartService)
	a := New(config.Default(), logger, svc)

	var stdout, stderr bytes.Buffer
	a.Stdout = &stdout
	a.Stderr = &stderr
	return a, svc, &stdout, &stderr
}

func TestExecute_Build(t *testing.T) {
	a, svc, stdout, _ := newTestApp(t)

	want := services.BuildRequest{
		Input:     "data/results.csv",
		Variant:   config.VariantManager,
		Layout:    config.LayoutWide,
		OutputDir: "site",
		Formats:   []string{"html", "json"},
		Snapshot:  true,
	}
	svc.On("Build", mock.Anything, want).Return(&services.BuildResult{
		Source:  "data/results.csv",
		Records: 5,
		Files:   map[string]string{"html": "site/chart.html"},
	}, nil).Once()

	code, err := a.Execute(context.Background(), []string{
		"build", "-in", "data/results.csv", "-variant", "manager", "-layout", "wide",
		"-out", "site", "-formats", "html, json", "-snapshot",
	})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	svc.AssertExpectations(t)

	var got map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, float64(5), got["records"])
	assert.Equal(t, "site/chart.html", got["files"].(map[string]any)["html"])
}

func TestExecute_Export(t *testing.T) {
	a, svc, _, stderr := newTestApp(t)

	svc.On("Build", mock.Anything, services.BuildRequest{Formats: []string{"xlsx"}}).
		Return(&services.BuildResult{Files: map[string]string{"xlsx": "out/matches.xlsx"}}, nil).Once()

	code, err := a.Execute(context.Background(), []string{"export", "-format", "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)

	code, err = a.Execute(context.Background(), []string{"export", "-format", "html"})
	assert.Error(t, err)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr.String(), "-format must be csv, xlsx or json")

	svc.AssertExpectations(t)
}

func TestExecute_Lookup(t *testing.T) {
	a, svc, stdout, _ := newTestApp(t)

	query := testutil.Date(t, "2013-08-20")
	svc.On("Lookup", mock.Anything, "", query).Return(domain.MatchRecord{
		Date:                     testutil.Date(t, "2013-08-17"),
		Opponent:                 "Swansea City",
		CumulativeGoalDifference: 5,
	}, nil).Once()

	code, err := a.Execute(context.Background(), []string{"lookup", "-date", "2013-08-20"})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout.String(), "Swansea City")
	svc.AssertExpectations(t)
}

func TestExecute_LookupUsage(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"missing date", []string{"lookup"}, "-date is required"},
		{"bad date", []string{"lookup", "-date", "20/08/2013"}, "want YYYY-MM-DD"},
		{"unknown flag", []string{"lookup", "-when", "2013-08-20"}, "flag provided but not defined"},
		{"stray argument", []string{"lookup", "-date", "2013-08-20", "extra"}, "unexpected arguments: extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, svc, _, stderr := newTestApp(t)

			code, err := a.Execute(context.Background(), tt.args)
			assert.Error(t, err)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, stderr.String(), tt.stderr)
			svc.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_Summary(t *testing.T) {
	a, svc, stdout, _ := newTestApp(t)

	svc.On("Summaries", mock.Anything, "results.xlsx").Return([]domain.ManagerSummary{
		{Manager: "David Moyes", Type: domain.ManagerPermanent, Matches: 51},
	}, nil).Once()

	code, err := a.Execute(context.Background(), []string{"summary", "-in", "results.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)

	var got []domain.ManagerSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 51, got[0].Matches)
}

func TestExecute_Check(t *testing.T) {
	tests := []struct {
		name   string
		report *services.CheckReport
		code   int
	}{
		{
			name:   "clean input",
			report: &services.CheckReport{Source: "a.csv", Records: 3, Issues: []domain.LoadIssue{}},
			code:   ExitOK,
		},
		{
			name: "issues",
			report: &services.CheckReport{Source: "a.csv", Records: 3, Issues: []domain.LoadIssue{
				{Row: 2, Kind: domain.IssueCumulativeMismatch, Message: "cum_gd differs"},
			}},
			code: ExitFailed,
		},
		{
			name:   "rejected rows",
			report: &services.CheckReport{Source: "a.csv", Records: 3, Rejected: 1},
			code:   ExitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, svc, stdout, _ := newTestApp(t)
			svc.On("Check", mock.Anything, "a.csv").Return(tt.report, nil).Once()

			code, err := a.Execute(context.Background(), []string{"check", "-in", "a.csv"})
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stdout.String(), `"source": "a.csv"`)
		})
	}
}

func TestExecute_ServiceError(t *testing.T) {
	a, svc, stdout, _ := newTestApp(t)

	failure := apperrors.NewNotFoundError("input file")
	svc.On("Check", mock.Anything, "").Return(nil, failure).Once()

	code, err := a.Execute(context.Background(), []string{"check"})
	assert.Equal(t, ExitFailed, code)
	assert.ErrorIs(t, err, failure)
	assert.Empty(t, stdout.String())
}

func TestExecute_Commands(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{name: "no command", args: nil, code: ExitUsage, stderr: "Usage: gdchart"},
		{name: "unknown command", args: []string{"serve"}, code: ExitUsage, stderr: `unknown command "serve"`},
		{name: "help", args: []string{"help"}, code: ExitOK, stdout: "Commands:"},
		{name: "version", args: []string{"version"}, code: ExitOK, stdout: "gdchart v"},
		{name: "command help", args: []string{"build", "-h"}, code: ExitOK, stderr: "-variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, stdout, stderr := newTestApp(t)

			code, _ := a.Execute(context.Background(), tt.args)
			assert.Equal(t, tt.code, code)
			if tt.stdout != "" {
				assert.Contains(t, stdout.String(), tt.stdout)
			}
			if tt.stderr != "" {
				assert.Contains(t, stderr.String(), tt.stderr)
			}
		})
	}
}

func TestStop_FlushesMetrics(t *testing.T) {
	a, svc, _, _ := newTestApp(t)
	svc.On("FlushMetrics").Return(nil).Once()

	require.NoError(t, a.Stop(context.Background()))
	svc.AssertExpectations(t)

	svc.On("FlushMetrics").Return(assert.AnError).Once()
	assert.Error(t, a.Stop(context.Background()))
}

func TestRun_LogsFailure(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	svc := new(mockChartService)
	a := New(config.Default(), logger, svc)
	a.Stdout, a.Stderr = &bytes.Buffer{}, &bytes.Buffer{}

	svc.On("Check", mock.Anything, "").Return(nil, apperrors.NewNotFoundError("input file")).Once()
	svc.On("FlushMetrics").Return(nil).Once()

	assert.Equal(t, ExitFailed, a.Run([]string{"check"}))
	svc.AssertExpectations(t)

	testutil.AssertLogContains(t, handler, slog.LevelError, "Command failed")
	testutil.AssertLogAttr(t, handler, "error_type", string(apperrors.ErrTypeNotFound))
	testutil.AssertLogAttr(t, handler, "error", "[NOT_FOUND] input file not found")
}

func TestNewApplication(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GDCHART_BASE_DIR", dir)
	t.Setenv("GDCHART_TELEMETRY_METRICS", "false")

	a, err := NewApplication("")
	require.NoError(t, err)

	assert.Equal(t, dir, a.Paths.BaseDir)
	assert.NotNil(t, a.OTelProviders)
	assert.IsType(t, &services.ChartService{}, a.Service)
	assert.DirExists(t, a.Paths.OutputDir)
	require.NoError(t, a.Stop(context.Background()))
}
