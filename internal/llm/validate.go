package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const contractSchemaURL = "contract.schema.json"

// contractSchema is the compiled form of BuildContractJSONSchema. The
// schema never changes at runtime, so it is compiled on first use only.
var contractSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return compileSchema(contractSchemaURL, BuildContractJSONSchema())
})

func compileSchema(url string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func validateDocument(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateContractJSON checks data against the extraction contract schema.
func ValidateContractJSON(data []byte) error {
	schema, err := contractSchema()
	if err != nil {
		return err
	}
	return validateDocument(schema, data)
}
