package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
)

var extractedPattern = regexp.MustCompile(config.ExtractedPattern)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	// Extracted is the timestamp embedded in an *_extracted_* file name.
	Extracted time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// ResolveInput returns input when set, resolved against the base path,
// and otherwise the discovered input in dataDir.
func (d *Discovery) ResolveInput(input, dataDir string) (FileInfo, error) {
	if input == "" {
		return d.FindLatestInput(dataDir)
	}

	path := d.resolve(input)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return FileInfo{}, apperrors.NewNotFoundError("input file").WithContext("path", path)
	}
	return FileInfo{Path: path, Name: info.Name(), Size: info.Size(), ModTime: info.ModTime()}, nil
}

// FindLatestInput prefers the cleaned, date-ordered results file, then
// *_latest.csv, then the newest *_extracted_<timestamp>.csv. Several
// *_latest.csv files resolve to the most recently modified one.
func (d *Discovery) FindLatestInput(dir string) (FileInfo, error) {
	cleaned, err := d.FindFilesByPattern(dir, config.CleanedFileName)
	if err != nil {
		return FileInfo{}, err
	}
	if len(cleaned) > 0 {
		return cleaned[0], nil
	}

	latest, err := d.FindFilesByPattern(dir, "*"+config.LatestFileSuffix)
	if err != nil {
		return FileInfo{}, err
	}
	if file, ok := GetLatestFile(latest); ok {
		return file, nil
	}

	extracted, err := d.FindExtractedFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}
	if len(extracted) > 0 {
		return extracted[len(extracted)-1], nil
	}

	return FileInfo{}, apperrors.NewAppError(apperrors.ErrTypeNotFound,
		"no input file found", apperrors.ErrNoInput).WithContext("dir", d.resolve(dir))
}

// FindExtractedFiles returns *_extracted_<timestamp>.csv files ordered by
// the timestamp in the name, oldest first.
func (d *Discovery) FindExtractedFiles(dir string) ([]FileInfo, error) {
	candidates, err := d.FindFilesByPattern(dir, "*_extracted_*.csv")
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, f := range candidates {
		m := extractedPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		ts, err := time.Parse(config.ExtractedLayout, m[1])
		if err != nil {
			continue
		}
		f.Extracted = ts
		files = append(files, f)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Extracted.Before(files[j].Extracted)
	})
	return files, nil
}

// FindFilesByPattern finds files matching a glob pattern
func (d *Discovery) FindFilesByPattern(dir string, pattern string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)
	if info, err := os.Stat(fullPath); err != nil || !info.IsDir() {
		return nil, apperrors.NewNotFoundError("data directory").WithContext("dir", fullPath)
	}

	matches, err := filepath.Glob(filepath.Join(fullPath, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, strings.TrimPrefix(path, "./"))
}
