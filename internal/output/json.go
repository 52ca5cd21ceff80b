package output

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// JSONFormatter emits the report as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	return MarshalJSON(report, j.Pretty)
}

// MarshalJSON encodes v, indented by two spaces when pretty is set. Every
// JSON document written by the CLI goes through it.
func MarshalJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// YAMLFormatter emits the report as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(report)
}
