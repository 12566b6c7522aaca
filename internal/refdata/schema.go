package refdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const countrySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["code", "name"],
    "additionalProperties": false,
    "properties": {
      "code": {"type": "string", "pattern": "^[A-Z]{2}$"},
      "name": {"type": "string", "minLength": 1},
      "facts": {
        "type": "array",
        "maxItems": 3,
        "items": {"type": "string", "minLength": 1}
      },
      "tip": {"type": "string"}
    }
  }
}`

const languageSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["code", "name", "sample", "hint"],
    "additionalProperties": false,
    "properties": {
      "code": {"type": "string", "pattern": "^[a-z]{2,3}(-[A-Za-z]+)?$"},
      "name": {"type": "string", "minLength": 1},
      "sample": {"type": "string", "minLength": 1},
      "hint": {
        "type": "object",
        "required": ["script", "feature", "examples"],
        "additionalProperties": false,
        "properties": {
          "script": {"type": "string"},
          "feature": {"type": "string"},
          "examples": {"type": "string"}
        }
      }
    }
  }
}`

// compiled caches compiled schemas keyed by their source text.
var compiled sync.Map // map[string]*jsonschema.Schema

// validate checks raw JSON against the schema source.
func validate(schema string, raw []byte) error {
	sch, err := compile(schema)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compile(schema string) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(schema); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def any
	if err := json.Unmarshal([]byte(schema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://refdata.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiled.Store(schema, sch)
	return sch, nil
}
