// Package validation checks input files and output directories before the
// pipeline touches them, so a bad path fails with one clear error instead
// of a parse failure halfway through.
package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
)

// SupportedExtensions lists the match file formats the parser reads.
var SupportedExtensions = []string{".csv", ".xlsx"}

// FileValidator checks input files and output directories
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: infrastructure.WithComponent(logger, "file_validator"),
	}
}

// ValidateFile checks that path exists, is a regular file and can be opened.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewNotFoundError("input file").WithContext("path", path)
	}
	if err != nil {
		infrastructure.WithError(v.logger, err).Error("Failed to stat file",
			slog.String("file", path))
		return apperrors.NewStorageError("failed to stat input file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewValidationError("input path is a directory", nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		infrastructure.WithError(v.logger, err).Error("File is not readable",
			slog.String("file", path))
		return apperrors.NewStorageError("input file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateMatchFile checks a match data file: readable, a supported
// extension, and not an Excel lock file.
func (v *FileValidator) ValidateMatchFile(path string) error {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejected temporary Excel file", slog.String("file", path))
		return apperrors.NewValidationError("input is a temporary Excel file", nil).WithContext("path", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		v.logger.Error("Unsupported input format",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewValidationError("unsupported input format", nil).
			WithContext("path", path).
			WithContext("extension", ext)
	}

	return v.ValidateFile(path)
}

// ValidateOutputDirectory creates dir if needed and checks it is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		infrastructure.WithError(v.logger, err).Error("Failed to create output directory",
			slog.String("directory", dir))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		infrastructure.WithError(v.logger, err).Error("Output directory is not writable",
			slog.String("directory", dir))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("path", dir)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

func supported(ext string) bool {
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
