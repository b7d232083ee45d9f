package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager prepares the locations generated datasets are written to
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager. Relative output paths are
// resolved against baseOutputDir; an empty base means the working directory.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// Resolve returns the full path for an output file
func (om *OutputManager) Resolve(path string) string {
	if filepath.IsAbs(path) || om.BaseOutputDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(om.BaseOutputDir, path)
}

// PrepareFile resolves path and creates its parent directory
func (om *OutputManager) PrepareFile(path string) (string, error) {
	full := om.Resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return full, nil
}

// GetFileType determines the file type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".txt":
		return "text"
	default:
		return "unknown"
	}
}
