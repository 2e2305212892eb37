// Package chart renders the cumulative goal difference line as a
// self-contained HTML page with inline SVG.
//
// Hover is precomputed: every pixel column of the plot is resolved to its
// nearest match through dataprocessing.Locator, and contiguous columns that
// resolve to the same match are merged into one band carrying the tooltip.
// The page needs no JavaScript. Snapshotter optionally captures the page as
// PNG through headless Chrome.
package chart
