// Package app wires gdchart together and runs one command.
//
// # Initialization Flow
//
//  1. Load configuration (defaults, YAML file, GDCHART_* environment)
//  2. Initialize logging and OpenTelemetry
//  3. Resolve and create the output directories
//  4. Build the ChartService
//
// # Commands
//
//	build    render the chart and write the configured exports
//	export   write a single export format
//	lookup   print the record nearest to a date
//	summary  print per-tenure manager summaries
//	check    print load issues; exits 1 when there are any
//	version  print the build version
//
// Command output is JSON on stdout. Logs go to stderr or the log file.
//
// # Error Handling
//
// Execute returns an exit code and the error that caused it. The app never
// calls os.Exit, leaving that to main.
package app
