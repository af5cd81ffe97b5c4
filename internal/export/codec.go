// Package export writes end-of-run datasets through pluggable codecs.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// File extensions for supported codecs.
const (
	csvExtension  = ".csv"
	jsonExtension = ".json"
	yamlExtension = ".yaml"
)

// Default indentation for pretty-printed JSON.
const defaultIndent = "  "

// Format names accepted by ParseFormat.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Sentinel errors for codec selection and encoding.
var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNotTabular    = errors.New("value has no tabular form")
)

// Codec defines how a dataset is serialized.
type Codec interface {
	// Encode writes the value to the writer.
	Encode(w io.Writer, value any) error
	// Extension returns the file extension for this codec (e.g. ".csv").
	Extension() string
}

// Tabular is implemented by values that flatten to CSV records.
type Tabular interface {
	Records() [][]string
}

// ParseFormat maps a format name to its codec. The empty name selects CSV.
func ParseFormat(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", FormatCSV:
		return &CSVCodec{}, nil
	case FormatJSON:
		return NewJSONCodec(), nil
	case FormatYAML:
		return &YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use csv, json or yaml)", ErrUnknownFormat, name)
	}
}

// CSVCodec implements Codec for values with a tabular form.
type CSVCodec struct{}

// Encode implements Codec.Encode by flattening the value to CSV records.
func (c *CSVCodec) Encode(w io.Writer, value any) error {
	tab, ok := value.(Tabular)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotTabular, value)
	}

	writeErr := csv.NewWriter(w).WriteAll(tab.Records())
	if writeErr != nil {
		return fmt.Errorf("csv encode: %w", writeErr)
	}

	return nil
}

// Extension implements Codec.Extension for CSV files.
func (c *CSVCodec) Extension() string {
	return csvExtension
}

// JSONCodec implements Codec using JSON encoding with optional indentation.
type JSONCodec struct {
	// Indent specifies the indentation string. Empty string means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with pretty-printing (2-space indent).
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.Encode using JSON encoding.
func (c *JSONCodec) Encode(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension for JSON files.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// YAMLCodec implements Codec using YAML encoding.
type YAMLCodec struct{}

// Encode implements Codec.Encode using YAML encoding.
func (c *YAMLCodec) Encode(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}

	closeErr := encoder.Close()
	if closeErr != nil {
		return fmt.Errorf("yaml encode: %w", closeErr)
	}

	return nil
}

// Extension implements Codec.Extension for YAML files.
func (c *YAMLCodec) Extension() string {
	return yamlExtension
}
