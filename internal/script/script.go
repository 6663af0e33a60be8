// Package script reads speech scripts and applies them to a speech.Builder.
//
// A script is a RenderRequest written as JSON or YAML:
//
//	source: billing
//	steps:
//	  - kind: text
//	    value: "Your balance is "
//	  - kind: price
//	    value: 156.99
package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nadzzz/sayas/internal/message"
)

// ErrInvalidScript is returned for scripts that cannot be decoded or do not
// match the schema.
var ErrInvalidScript = errors.New("invalid script")

// ErrUnknownKind is returned when a step has a kind the builder cannot apply.
var ErrUnknownKind = errors.New("unknown step kind")

// Format is a script encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// FormatFromContentType picks the format from an HTTP Content-Type header.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatAuto
	}
	switch mediaType {
	case "application/json":
		return FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Parse decodes a script. FormatAuto treats input starting with '{' as JSON
// and anything else as YAML. Unknown fields are rejected.
func Parse(data []byte, format Format) (*message.RenderRequest, error) {
	if format == FormatAuto {
		format = FormatYAML
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			format = FormatJSON
		}
	}

	var req message.RenderRequest
	switch format {
	case FormatJSON:
		if err := DecodeJSON(data, &req); err != nil {
			return nil, fmt.Errorf("%w: decoding json: %v", ErrInvalidScript, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decoding yaml: %v", ErrInvalidScript, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidScript, format)
	}
	return &req, nil
}

// DecodeJSON decodes a single JSON document into v. Numbers are kept as
// json.Number so values are spoken exactly as written.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after document")
	}
	return nil
}
