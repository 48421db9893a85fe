package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaID is the resource id the embedded config schema is registered under.
const SchemaID = "https://github.com/andyballingall/fmtcommit/config.schema.json"

//go:embed config.schema.json
var schemaData []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("config schema is not valid JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err = c.AddResource(SchemaID, doc); err != nil {
		return nil, err
	}
	return c.Compile(SchemaID)
})

// validateDocument checks a decoded YAML document against the config schema.
// The document is round-tripped through JSON so that the validator sees the
// same value types it would for a JSON instance.
func validateDocument(doc any) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return &SchemaViolationError{Wrapped: err}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &SchemaViolationError{Wrapped: err}
	}

	if err = sch.Validate(inst); err != nil {
		return &SchemaViolationError{Wrapped: err}
	}
	return nil
}
