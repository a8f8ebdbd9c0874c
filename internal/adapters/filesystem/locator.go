// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/homeseed/internal/ports/secondary"
)

// ErrDocumentNotFound is returned by Locate when no search path holds the
// layout document.
var ErrDocumentNotFound = errors.New("layout document not found")

// DocumentLocator implements secondary.DocumentLocator over a list of
// directories searched in order.
type DocumentLocator struct {
	searchPaths []string
	fileName    string
}

// NewDocumentLocator creates a new filesystem document locator.
// If fileName is empty, defaults to default_workspace.xml.
func NewDocumentLocator(searchPaths []string, fileName string) *DocumentLocator {
	if fileName == "" {
		fileName = "default_workspace.xml"
	}
	paths := make([]string, 0, len(searchPaths))
	for _, p := range searchPaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return &DocumentLocator{
		searchPaths: paths,
		fileName:    fileName,
	}
}

// Locate returns the first regular file named fileName under the search paths.
func (l *DocumentLocator) Locate(ctx context.Context) (string, error) {
	for _, dir := range l.searchPaths {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := filepath.Join(dir, l.fileName)
		info, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrDocumentNotFound, l.fileName, strings.Join(l.searchPaths, ", "))
}

// Open opens the layout document at path for reading.
func (l *DocumentLocator) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// SearchPaths returns the directories Locate considers, in order.
func (l *DocumentLocator) SearchPaths() []string {
	return l.searchPaths
}

// FileName returns the document name Locate looks for.
func (l *DocumentLocator) FileName() string {
	return l.fileName
}

// Ensure DocumentLocator implements the interface
var _ secondary.DocumentLocator = (*DocumentLocator)(nil)
