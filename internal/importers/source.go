package importers

import (
	"fmt"
	"io"
	"os"
)

// LoadFile reads and decodes an import file. Every error it returns wraps
// ErrInvalidInput.
func LoadFile(path string) ([]ImportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidInput, path, err)
	}
	return DecodeRecords(data)
}

// LoadReader decodes an import document from r.
func LoadReader(r io.Reader) ([]ImportRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return DecodeRecords(data)
}
