package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "simpsched-config.schema.json"

const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"store": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"path": {"type": "string"}
			}
		},
		"log": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"level": {"enum": ["", "debug", "info", "warn", "error"]}
			}
		},
		"purge": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"on_startup": {"type": "boolean"}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	errSchema      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
			errSchema = err
			return
		}
		compiledSchema, errSchema = compiler.Compile(schemaURL)
	})
	return compiledSchema, errSchema
}

// SchemaError lists every violation found in a config document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// validateSchema checks standardized JSON against the config schema.
func validateSchema(doc []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	err = schema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	serr := &SchemaError{}
	collectSchemaErrors(serr, ve)
	return serr
}

func collectSchemaErrors(dst *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		dst.Problems = append(dst.Problems, loc+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(dst, cause)
	}
}
