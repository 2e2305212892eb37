package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/exporter"
	"gdchart/internal/services"
	"gdchart/pkg/contracts"
)

// errUsage marks a command line problem; the usage text has been printed.
var errUsage = errors.New("usage error")

const usage = `Usage: gdchart [-config FILE] <command> [flags]

Commands:
  build    render the chart and write the configured exports
  export   write a single export format (csv, xlsx or json)
  lookup   print the match nearest to -date
  summary  print per-tenure manager summaries
  check    print load issues, exit 1 when there are any
  version  print the build version

Run "gdchart <command> -h" for command flags.
`

// Execute runs the command named by args[0].
func (a *Application) Execute(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		fmt.Fprint(a.Stderr, usage)
		return ExitUsage, errUsage
	}

	var err error
	code := ExitOK
	switch args[0] {
	case "build":
		err = a.runBuild(ctx, args[1:])
	case "export":
		err = a.runExport(ctx, args[1:])
	case "lookup":
		err = a.runLookup(ctx, args[1:])
	case "summary":
		err = a.runSummary(ctx, args[1:])
	case "check":
		code, err = a.runCheck(ctx, args[1:])
	case "version":
		fmt.Fprintln(a.Stdout, contracts.GetFullVersionString())
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.Stdout, usage)
	default:
		fmt.Fprintf(a.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return ExitUsage, errUsage
	}

	switch {
	case err == nil:
		return code, nil
	case errors.Is(err, flag.ErrHelp):
		return ExitOK, nil
	case errors.Is(err, errUsage):
		return ExitUsage, err
	default:
		return ExitFailed, err
	}
}

func (a *Application) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("gdchart "+name, flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	return fs
}

// parse wraps flag errors other than -h in errUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return errUsage
	}
	return nil
}

func (a *Application) runBuild(ctx context.Context, args []string) error {
	fs := a.newFlagSet("build")
	variant := fs.String("variant", "", "chart variant: simple, manager or manager_type")
	layout := fs.String("layout", "", "chart layout: standard or wide")
	input := fs.String("in", "", "input CSV or XLSX file (defaults to the newest file in the data directory)")
	outDir := fs.String("out", "", "output directory")
	formats := fs.String("formats", "", "comma separated outputs: html, csv, xlsx, json, png")
	snapshot := fs.Bool("snapshot", false, "capture the chart as PNG with headless Chrome")
	if err := parse(fs, args); err != nil {
		return err
	}

	result, err := a.Service.Build(ctx, services.BuildRequest{
		Input:     *input,
		Variant:   *variant,
		Layout:    *layout,
		OutputDir: *outDir,
		Formats:   splitList(*formats),
		Snapshot:  *snapshot,
	})
	if err != nil {
		return err
	}
	return exporter.WriteJSON(a.Stdout, result)
}

func (a *Application) runExport(ctx context.Context, args []string) error {
	fs := a.newFlagSet("export")
	format := fs.String("format", "", "export format: csv, xlsx or json")
	input := fs.String("in", "", "input CSV or XLSX file")
	outDir := fs.String("out", "", "output directory")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch *format {
	case config.FormatCSV, config.FormatXLSX, config.FormatJSON:
	default:
		fmt.Fprintf(a.Stderr, "-format must be csv, xlsx or json, got %q\n", *format)
		return errUsage
	}

	result, err := a.Service.Build(ctx, services.BuildRequest{
		Input:     *input,
		OutputDir: *outDir,
		Formats:   []string{*format},
	})
	if err != nil {
		return err
	}
	return exporter.WriteJSON(a.Stdout, result)
}

func (a *Application) runLookup(ctx context.Context, args []string) error {
	fs := a.newFlagSet("lookup")
	date := fs.String("date", "", "query date, YYYY-MM-DD")
	input := fs.String("in", "", "input CSV or XLSX file")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *date == "" {
		fmt.Fprintln(a.Stderr, "-date is required")
		return errUsage
	}
	query, err := time.Parse(config.DateLayout, *date)
	if err != nil {
		fmt.Fprintf(a.Stderr, "invalid -date %q: want YYYY-MM-DD\n", *date)
		return fmt.Errorf("%w: %w", errUsage, apperrors.ErrInvalidDate)
	}

	rec, err := a.Service.Lookup(ctx, *input, query)
	if err != nil {
		return err
	}
	return exporter.WriteJSON(a.Stdout, rec)
}

func (a *Application) runSummary(ctx context.Context, args []string) error {
	fs := a.newFlagSet("summary")
	input := fs.String("in", "", "input CSV or XLSX file")
	if err := parse(fs, args); err != nil {
		return err
	}

	summaries, err := a.Service.Summaries(ctx, *input)
	if err != nil {
		return err
	}
	return exporter.WriteJSON(a.Stdout, summaries)
}

func (a *Application) runCheck(ctx context.Context, args []string) (int, error) {
	fs := a.newFlagSet("check")
	input := fs.String("in", "", "input CSV or XLSX file")
	if err := parse(fs, args); err != nil {
		return ExitUsage, err
	}

	report, err := a.Service.Check(ctx, *input)
	if err != nil {
		return ExitFailed, err
	}
	if err := exporter.WriteJSON(a.Stdout, report); err != nil {
		return ExitFailed, err
	}
	if !report.OK() {
		return ExitFailed, nil
	}
	return ExitOK, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
