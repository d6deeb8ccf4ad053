package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/foodsearch/core"
)

// DefaultSourceName is the file name of the consolidated catalog.
const DefaultSourceName = "elenco_cibo_bda.json"

// Source supplies the raw bytes of a dataset document.
type Source interface {
	// Name identifies the source in logs and metadata.
	Name() string
	// Read returns the whole document. Failures to reach the document wrap
	// core.ErrDatasetUnavailable.
	Read(ctx context.Context) ([]byte, error)
}

type fileSource struct {
	path string
}

// FileSource reads the dataset from a file on disk.
func FileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Name() string {
	return filepath.Base(s.path)
}

func (s *fileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDatasetUnavailable, err)
	}
	return data, nil
}

type rawSource struct {
	name string
	text string
}

// RawSource serves a document already held in memory.
func RawSource(name, text string) Source {
	if name == "" {
		name = "raw"
	}
	return &rawSource{name: name, text: text}
}

func (s *rawSource) Name() string {
	return s.name
}

func (s *rawSource) Read(_ context.Context) ([]byte, error) {
	return []byte(s.text), nil
}
