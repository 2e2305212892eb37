// Package shared holds code used by several gdchart packages that belongs
// to none of them.
//
// testutil provides a buffered slog handler for asserting on log output and
// match-data fixtures (CSV writers, a small consistent sample dataset).
package shared
