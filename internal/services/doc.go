// Package services implements the use cases behind the gdchart commands.
// It sits between the CLI and the pipeline packages, so both stay free of
// wiring concerns.
//
// # Architecture
//
// ChartService owns one configured instance of each collaborator:
//
//   - files.Discovery resolves the input file
//   - dataprocessing.Processor loads it into a Dataset
//   - chart.Renderer and the exporters write the outputs
//   - a Snapshotter captures the rendered page as PNG
//
// Every stage runs inside a span and records its duration through
// PipelineTracer.
//
// # Outputs
//
// Build writes each requested format in its own goroutine under an
// errgroup. The first failure cancels the rest. The PNG snapshot needs the
// HTML page, so it runs after the HTML render in the same goroutine.
//
// # Testing
//
// The snapshot step is an interface so tests can swap headless Chrome for
// a testify mock:
//
//	snap := new(MockSnapshotter)
//	snap.On("Capture", mock.Anything, htmlPath, pngPath, mock.Anything).Return(nil)
//	svc.WithSnapshotter(snap)
package services
