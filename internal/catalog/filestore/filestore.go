package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CameronXie/storefront/internal/catalog"
)

// source implements catalog.Source using a document on the local filesystem
type source struct {
	path string
}

// New creates a filesystem-based catalog Source.
// The format is taken from the file extension: .json, .yaml or .yml.
func New(path string) catalog.Source {
	return &source{path: path}
}

// Load reads and decodes the catalog document
func (s *source) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := formatOf(s.path)
	if err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("catalog not found: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("catalog path is a directory, not a file")
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return catalog.Decode(content, format)
}

func formatOf(path string) (catalog.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return catalog.FormatJSON, nil
	case ".yaml", ".yml":
		return catalog.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}
