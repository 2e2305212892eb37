package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gdchart/internal/app"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (defaults to gdchart.yaml or configs/gdchart.yaml)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: gdchart [-config FILE] <build|export|lookup|summary|check|version> [flags]")
		flag.PrintDefaults()
	}
	flag.Parse()

	application, err := app.NewApplication(*configFile)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(app.ExitFailed)
	}

	os.Exit(application.Run(flag.Args()))
}
