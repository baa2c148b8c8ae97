// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package session

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

var (
	schemaMu    sync.Mutex
	schemaCache *jschema.Schema
)

// GenerateSchema generates a JSON Schema from the Session struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Session{})

	schema.ID = jsonschema.ID(GetSchemaID())
	schema.Title = "OFXGo Host Session"
	schema.Description = "Schema for session files played by ofxhost run"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Wrapf(err, "failed to marshal schema")
	}
	return data, nil
}

// ValidateSchema validates YAML data against the session JSON Schema.
func ValidateSchema(data []byte) error {
	if len(data) == 0 {
		return oops.Code(CodeInvalid).Errorf("session data is empty")
	}

	var yamlData any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return oops.Code(CodeInvalid).Wrapf(err, "invalid YAML")
	}

	jsonData := convertToJSONTypes(yamlData)

	sch, err := getCompiledSchema()
	if err != nil {
		return oops.Wrapf(err, "failed to compile schema")
	}

	if err := sch.Validate(jsonData); err != nil {
		return oops.Code(CodeInvalid).Wrapf(err, "schema validation failed")
	}

	return nil
}

// getCompiledSchema returns the cached compiled schema or compiles it.
func getCompiledSchema() (*jschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if schemaCache != nil {
		return schemaCache, nil
	}

	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, oops.Wrapf(err, "failed to parse schema JSON")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, oops.Wrapf(err, "failed to add schema resource")
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, oops.Wrapf(err, "failed to compile schema")
	}

	schemaCache = sch
	return sch, nil
}

// convertToJSONTypes converts YAML-parsed data to JSON-compatible types,
// recursing into nested maps and lists.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = convertToJSONTypes(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = convertToJSONTypes(v)
		}
		return result
	case string, int, int64, float64, bool, nil:
		return val
	default:
		if b, err := json.Marshal(val); err == nil {
			var result any
			if err := json.Unmarshal(b, &result); err == nil {
				return result
			}
		}
		return val
	}
}

// ResetSchemaCache clears the cached schema. Used for testing.
func ResetSchemaCache() {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaCache = nil
}

// GetSchemaID returns the schema $id for use in session files.
func GetSchemaID() string {
	return "https://ofxgo.dev/schemas/session.schema.json"
}

// FormatSchemaError formats a schema validation error for display. For
// validation failures it lists only the offending locations, separated by
// semicolons.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	var ve *jschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msg := ve.Error()
	// The first line names the compiled schema URL, which is internal.
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[i+1:]
	}
	lines := strings.Split(msg, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimLeft(line, " ")
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return "schema validation failed"
	}
	return strings.Join(out, "; ")
}
