// Package config provides configuration management for gdchart.
//
// # Configuration Sources
//
// Configuration is built in three layers, later layers winning:
//
//  1. Default() values
//  2. YAML file (gdchart.yaml, configs/gdchart.yaml or an explicit path)
//  3. Environment variables prefixed GDCHART_
//
// # Environment Variables
//
//	GDCHART_DATA_INPUT=data/united_results_post_ferguson_latest.csv
//	GDCHART_DATA_POLICY=skip
//	GDCHART_DATA_CUMULATIVE_MODE=trust
//	GDCHART_CHART_VARIANT=manager
//	GDCHART_OUTPUT_FORMATS=html,csv,json
//	GDCHART_TELEMETRY_TRACING=stdout
//
// # Lookup Tables
//
// NewLookupTables builds the fixed competition, logo, manager colour and
// tenure tables once. They are passed by pointer to the normalizer, the
// renderer and the exporters, and never change after construction.
package config
