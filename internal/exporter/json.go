package exporter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

// DatasetDocument is the JSON export: the dataset plus everything a
// renderer needs to draw it.
type DatasetDocument struct {
	*domain.Dataset

	Timeframes     []domain.Timeframe     `json:"timeframes"`
	Logos          map[string]string      `json:"logos"`
	ManagerColours map[string]string      `json:"manager_colours"`
	Tenures        []config.ManagerTenure `json:"tenures"`
	LineColour     string                 `json:"line_colour"`
}

// NewDatasetDocument bundles ds with copies of the lookup tables.
func NewDatasetDocument(ds *domain.Dataset, tables *config.LookupTables, timeframes []domain.Timeframe) DatasetDocument {
	if timeframes == nil {
		timeframes = []domain.Timeframe{}
	}
	return DatasetDocument{
		Dataset:        ds,
		Timeframes:     timeframes,
		Logos:          tables.Logos(),
		ManagerColours: tables.ManagerColours(),
		Tenures:        tables.Tenures(),
		LineColour:     config.LineColour,
	}
}

// JSONExporter writes JSON documents.
type JSONExporter struct {
	logger *slog.Logger
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(logger *slog.Logger) *JSONExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONExporter{logger: infrastructure.WithComponent(logger, "json_exporter")}
}

// Export writes doc to path.
func (e *JSONExporter) Export(ctx context.Context, doc DatasetDocument, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create json file", err).WithContext("path", path)
	}
	defer f.Close()

	if err := WriteJSON(f, doc); err != nil {
		return apperrors.NewStorageError("failed to write dataset", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewStorageError("failed to close json file", err).WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "Exported dataset",
		slog.String("path", path),
		slog.Int("records", len(doc.Records)),
		slog.Int("issues", len(doc.Issues)))
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
