package command

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
)

// StringSchema is a compact JSON Schema a SlotString parameter's decoded
// value must satisfy, compiled with github.com/santhosh-tekuri/jsonschema/v5
// the same way the teacher's core/types.Validator compiles parameter
// schemas: Draft2020, compiled lazily, and cached by the schema's JSON text
// so repeated validations of the same handler don't recompile it.
type StringSchema struct {
	// Raw is the JSON Schema document, e.g. `{"pattern": "^[a-z]+$"}`.
	Raw json.RawMessage

	once     sync.Once
	compiled *jsonschema.Schema
	compErr  error
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

func (s *StringSchema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		key := string(s.Raw)
		if cached, ok := schemaCache.Load(key); ok {
			s.compiled = cached.(*jsonschema.Schema)
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		url := "schema://markup/string-param.json"
		if err := compiler.AddResource(url, strings.NewReader(key)); err != nil {
			s.compErr = fmt.Errorf("compiling string parameter schema: %w", err)
			return
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			s.compErr = fmt.Errorf("compiling string parameter schema: %w", err)
			return
		}
		s.compiled = schema
		schemaCache.Store(key, schema)
	})
	return s.compiled, s.compErr
}

func validateStringSlot[T lexer.CodeUnit](name string, index int, slot Slot, param lexer.Range[T]) error {
	value := param.String()
	if slot.Schema == nil {
		return nil
	}
	schema, err := slot.Schema.compile()
	if err != nil {
		return markuperr.Wrap(markuperr.ValidationError, param.Begin.Diagnostic(), err,
			"command %q parameter #%d schema is invalid", name, index)
	}
	if err := schema.Validate(any(value)); err != nil {
		return markuperr.Wrap(markuperr.ValidationError, param.Begin.Diagnostic(), err,
			"command %q parameter #%d (%q) does not satisfy its declared schema", name, index, value)
	}
	return nil
}
