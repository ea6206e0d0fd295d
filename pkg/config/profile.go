// pkg/config/profile.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rosterdata/ingest-quality/pkg/analyzer"
	"github.com/rosterdata/ingest-quality/pkg/cleaner"
	"github.com/rosterdata/ingest-quality/pkg/model"
)

// JobProfile describes per-upload analysis and cleaning settings,
// typically checked into the importing team's repo as a YAML file.
// Pointer fields distinguish "absent" from an explicit false.
type JobProfile struct {
	Delimiter     string            `yaml:"delimiter"`
	HasHeaders    *bool             `yaml:"hasHeaders"`
	MaxRows       int               `yaml:"maxRows"`
	ColumnMapping map[string]string `yaml:"columnMapping"`
	KeyFields     []string          `yaml:"keyFields"`
	TextFields    []string          `yaml:"textFields"`
	Cleaning      CleaningProfile   `yaml:"cleaning"`
}

// CleaningProfile toggles the normalization stages.
type CleaningProfile struct {
	StripBOM           *bool `yaml:"stripBOM"`
	ReplaceHiddenChars *bool `yaml:"replaceHiddenChars"`
	TrimWhitespace     *bool `yaml:"trimWhitespace"`
}

var fieldTypeNames = map[string]model.FieldType{
	"employee_id": model.FieldEmployeeID,
	"email":       model.FieldEmail,
	"currency":    model.FieldCurrency,
	"date":        model.FieldDate,
	"number":      model.FieldNumber,
	"text":        model.FieldText,
}

// LoadProfile reads and validates a YAML job profile.
func LoadProfile(path string) (*JobProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job profile: %w", err)
	}

	var profile JobProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse job profile: %w", err)
	}

	if len(profile.Delimiter) > 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", profile.Delimiter)
	}
	for header, name := range profile.ColumnMapping {
		if _, ok := fieldTypeNames[name]; !ok {
			return nil, fmt.Errorf("unknown field type %q for column %q", name, header)
		}
	}

	return &profile, nil
}

// AnalyzerOptions converts the profile into analyzer options.
func (p *JobProfile) AnalyzerOptions() analyzer.Options {
	opts := analyzer.DefaultOptions()
	if p.Delimiter != "" {
		opts.Delimiter = rune(p.Delimiter[0])
	}
	if p.HasHeaders != nil {
		opts.HasHeaders = *p.HasHeaders
	}
	opts.MaxRows = p.MaxRows

	if len(p.ColumnMapping) > 0 {
		opts.ColumnMapping = make(map[string]model.FieldType, len(p.ColumnMapping))
		for header, name := range p.ColumnMapping {
			opts.ColumnMapping[header] = fieldTypeNames[name]
		}
	}
	return opts
}

// CleanerOptions converts the profile into cleaner options.
func (p *JobProfile) CleanerOptions() cleaner.Options {
	opts := cleaner.DefaultOptions()
	if p.Cleaning.StripBOM != nil {
		opts.StripBOM = *p.Cleaning.StripBOM
	}
	if p.Cleaning.ReplaceHiddenChars != nil {
		opts.ReplaceHiddenChars = *p.Cleaning.ReplaceHiddenChars
	}
	if p.Cleaning.TrimWhitespace != nil {
		opts.TrimWhitespace = *p.Cleaning.TrimWhitespace
	}
	opts.KeyFields = p.KeyFields
	opts.TextFields = p.TextFields
	return opts
}
