// Package files locates the match data input file.
//
// When no input path is configured, Discovery searches the data directory
// for a file named *_latest.csv and falls back to the newest
// *_extracted_YYYYMMDDHHMMSS.csv, ordered by the timestamp in the name.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	input, err := discovery.ResolveInput(cfg.Data.Input, paths.DataDir)
package files
