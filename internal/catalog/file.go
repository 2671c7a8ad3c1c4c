package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File models a catalog YAML document.
type File struct {
	Currency string `yaml:"currency,omitempty"`
	Items    []Item `yaml:"items"`
}

// Decode reads a catalog document. The returned currency is empty when the
// document does not set one.
func Decode(r io.Reader) (*Catalog, string, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, "", ErrEmptyCatalog
		}
		return nil, "", fmt.Errorf("catalog: decode: %w", err)
	}
	c, err := New(f.Items)
	if err != nil {
		return nil, "", err
	}
	return c, f.Currency, nil
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
