// Package exporter writes the prepared dataset to files.
//
// CSVWriter is the low-level CSV writer. MatchExporter writes the normalized
// match rows in the cleaned column order, so an exported file can be loaded
// again. WorkbookExporter writes an XLSX workbook with a Matches sheet, a
// Managers summary sheet and one sheet per manager type. JSONExporter writes
// the dataset together with the lookup tables for external renderers.
//
// Example usage:
//
//	matches := exporter.NewMatchExporter(logger, paths)
//	err := matches.ExportCSV(ctx, ds.Records, config.MatchesCSVFile)
//
//	workbook := exporter.NewWorkbookExporter(logger)
//	err = workbook.Export(ctx, ds, paths.Workbook)
package exporter
