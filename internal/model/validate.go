package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// jobRecordSchema accepts a flat object whose values are scalars or arrays of
// scalars. Nested objects have no placeholder rendering and are rejected.
const jobRecordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "job record",
  "type": "object",
  "additionalProperties": {
    "oneOf": [
      {"type": ["string", "number", "boolean", "null"]},
      {"type": "array", "items": {"type": ["string", "number", "boolean"]}}
    ]
  },
  "properties": {
    "company_name": {"type": "string"},
    "job_title": {"type": "string"}
  }
}`

var recordSchema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(jobRecordSchema))
	if err != nil {
		panic(fmt.Sprintf("model: invalid job record schema: %v", err))
	}
	recordSchema = s
}

// ValidateRecord validates raw job record JSON.
func ValidateRecord(data []byte) error {
	res, err := recordSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("job record is not valid JSON: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// ParseRecord validates data and decodes it into an ordered Mapping.
func ParseRecord(data []byte) (*Mapping, error) {
	if err := ValidateRecord(data); err != nil {
		return nil, err
	}
	m := NewMapping()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
