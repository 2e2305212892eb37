// Package dataprocessing prepares match data for charting.
//
// The pipeline is one-way:
//
//	file ─► Parser (Table of RawRow) ─► ScopeFilter ─► Normalizer ─► records
//	records ─► GroupByManagerType / Summarizer ─► domain.Dataset
//
// The Normalizer coerces text fields, keeps the inclusive running goal
// difference (overall and per manager) and cross-checks any precomputed
// columns. The Locator answers nearest-date queries over the records with a
// binary search and is the basis of the chart's hover bands.
package dataprocessing
