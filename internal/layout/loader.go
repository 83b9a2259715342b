package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"form-binder/node"
)

// LoadFile loads and parses a YAML layout file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse layout YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Fields {
		defaultElement(&f.Fields[i])
	}
}

func defaultElement(e *Element) {
	if e.Type == "" {
		if e.Name == "" && len(e.Fields) > 0 {
			e.Type = node.TypeGroup.Name()
		} else {
			e.Type = node.TypeInput.Name()
		}
	}

	if e.Sort != nil && e.Sort.Type == "" {
		e.Sort.Type = string(node.SortNumberExplicit)
	}

	for i := range e.Fields {
		defaultElement(&e.Fields[i])
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout file %s: %w", path, err)
	}

	return nil
}
