package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a backfill file. JSON files are
// accepted too since YAML is a superset.
type ImportSchema struct {
	Subjects []SubjectImport `yaml:"subjects"`
}

// SubjectImport creates a subject, or targets an existing one when ID is set.
type SubjectImport struct {
	ID    string       `yaml:"id,omitempty"`
	Name  string       `yaml:"name,omitempty"`
	Items []ItemImport `yaml:"items"`
}

// ItemImport creates a tracked item, or adds logs to an existing one when ID
// is set.
type ItemImport struct {
	ID        string   `yaml:"id,omitempty"`
	Title     string   `yaml:"title,omitempty"`
	Category  string   `yaml:"category,omitempty"`
	Cadence   string   `yaml:"cadence,omitempty"`
	StartDate string   `yaml:"start_date,omitempty"`
	Logs      []string `yaml:"logs,omitempty"`
}

// LoadImportSchema reads and parses a backfill file. Unknown keys are rejected.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema ImportSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
