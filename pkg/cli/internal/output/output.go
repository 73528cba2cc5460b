// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Encoder writes one value per call.
type Encoder interface {
	Encode(v any) error
}

// NewJSONEncoder returns an encoder writing one compact JSON document per
// line, suitable for streaming.
func NewJSONEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

// yamlEncoder writes each value as its own YAML document.
type yamlEncoder struct {
	w io.Writer
}

// NewYAMLEncoder returns an encoder writing "---"-separated YAML documents.
func NewYAMLEncoder(w io.Writer) Encoder {
	return &yamlEncoder{w: w}
}

func (e *yamlEncoder) Encode(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, "---\n"); err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

// JSON writes indented JSON to w.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a single YAML document to w.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Table creates an aligned table writer for w.
// Remember to call Flush() when done writing.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Warn prints a warning message to w.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}
