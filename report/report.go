// Package report serializes a drift.Result into its output formats: a JSON
// document, a human-readable HTML report, and an integration-code snippet.
// Sinks only format and write; all analysis happens upstream in drift.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hazyhaar/domdrift/drift"
)

// Sink consumes one analysis result.
type Sink interface {
	Write(res *drift.Result) error
}

// JSONSink writes the result as an indented JSON document.
type JSONSink struct {
	w io.Writer
}

// NewJSONSink writes JSON to w. If w is nil, os.Stdout is used.
func NewJSONSink(w io.Writer) *JSONSink {
	if w == nil {
		w = os.Stdout
	}
	return &JSONSink{w: w}
}

func (s *JSONSink) Write(res *drift.Result) error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("report: write json: %w", err)
	}
	return nil
}

// WriteJSONFile writes the JSON document to a file path.
func WriteJSONFile(path string, res *drift.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	if err := NewJSONSink(f).Write(res); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}
