// Package schema checks task data files against the embedded JSON Schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var taskFileSchema []byte

const schemaURL = "taskman://tasks.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Violation is a single schema failure located by a dotted path such as "[2].status".
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Source returns the embedded schema document.
func Source() []byte {
	return bytes.Clone(taskFileSchema)
}

// Compile returns the compiled task file schema. The result is cached.
func Compile() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(taskFileSchema)); err != nil {
			compileErr = fmt.Errorf("load task schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile task schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidateJSON validates raw JSON. A syntax error is returned as an error,
// schema failures as violations.
func ValidateJSON(data []byte) ([]Violation, error) {
	doc, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return ValidateDocument(doc)
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}

// ValidateValue validates any value that marshals to JSON, such as decoded YAML or TOML records.
func ValidateValue(v any) ([]Violation, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal for validation: %w", err)
	}
	return ValidateJSON(data)
}

// ValidateDocument validates a document decoded by encoding/json.
func ValidateDocument(doc any) ([]Violation, error) {
	s, err := Compile()
	if err != nil {
		return nil, err
	}
	err = s.Validate(doc)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var violations []Violation
	collectSchemaErrors(&violations, ve)
	return violations, nil
}

// collectSchemaErrors flattens the cause tree into its leaves.
func collectSchemaErrors(out *[]Violation, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var sb strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&sb, "[%d]", idx)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}
