package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Units     []UnitDef    `yaml:"units"`
	Abilities []AbilityDef `yaml:"abilities"`
}

// ParseYAML builds a catalog from a YAML document
func ParseYAML(data []byte) (*Catalog, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Units, f.Abilities)
}

// LoadYAML reads a catalog file
func LoadYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseYAML(data)
}

// WriteYAML encodes the catalog in the format ParseYAML reads
func (c *Catalog) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlFile{Units: c.Units(), Abilities: c.Abilities()}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
