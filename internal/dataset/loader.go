package dataset

import (
	"errors"
	"fmt"
	"os"
)

// Loader defines a tabular file loader implementation.
type Loader interface {
	CanLoad(filename string) bool
	Load(filename string, data []byte) (*Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupportedFormat indicates the file extension is not recognized.
// Callers surface the message to the user and treat the upload as
// "no data available"; the pipeline halts before classification.
var ErrUnsupportedFormat = errors.New("unsupported file format: please upload a CSV or Excel file")

// Load selects a loader based on filename and parses the byte content.
// A single attempt, no retries: any parse error is wrapped and returned
// so its text can be shown to the user.
func Load(filename string, data []byte) (*Dataset, error) {
	for _, l := range registry {
		if l.CanLoad(filename) {
			ds, err := l.Load(filename, data)
			if err != nil {
				return nil, fmt.Errorf("error loading file: %w", err)
			}
			return ds, nil
		}
	}
	return nil, ErrUnsupportedFormat
}

// LoadFile reads path from disk and dispatches to Load.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Load(path, data)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
