package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
)

// ResponseSchema converts the extraction schema to Gemini's native form,
// keeping the declared group and field order.
func ResponseSchema() (*genai.Schema, error) {
	schema, err := convertToGenaiSchema(llm.BuildContractJSONSchema())
	if err != nil {
		return nil, err
	}
	schema.PropertyOrdering = llm.GroupKeys()
	for key, group := range schema.Properties {
		group.PropertyOrdering = llm.FieldKeys(key)
	}
	return schema, nil
}

// convertToGenaiSchema converts a JSON-Schema map into a *genai.Schema.
// Keywords Gemini does not support (additionalProperties, pattern) are ignored.
func convertToGenaiSchema(schemaMap map[string]any) (*genai.Schema, error) {
	if len(schemaMap) == 0 {
		return nil, fmt.Errorf("empty schema")
	}

	schema := &genai.Schema{}

	if typeStr, ok := schemaMap["type"].(string); ok {
		switch strings.ToLower(typeStr) {
		case "object":
			schema.Type = genai.TypeObject
		case "array":
			schema.Type = genai.TypeArray
		case "string":
			schema.Type = genai.TypeString
		case "number":
			schema.Type = genai.TypeNumber
		case "integer":
			schema.Type = genai.TypeInteger
		case "boolean":
			schema.Type = genai.TypeBoolean
		default:
			return nil, fmt.Errorf("unsupported schema type %q", typeStr)
		}
	}

	if desc, ok := schemaMap["description"].(string); ok {
		schema.Description = desc
	}

	switch req := schemaMap["required"].(type) {
	case []string:
		schema.Required = req
	case []any:
		for _, v := range req {
			if s, ok := v.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	if itemsMap, ok := schemaMap["items"].(map[string]any); ok {
		itemSchema, err := convertToGenaiSchema(itemsMap)
		if err != nil {
			return nil, fmt.Errorf("convert items schema: %w", err)
		}
		schema.Items = itemSchema
	}

	if propsMap, ok := schemaMap["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(propsMap))
		for propName, propVal := range propsMap {
			propMap, ok := propVal.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q is not an object", propName)
			}
			propSchema, err := convertToGenaiSchema(propMap)
			if err != nil {
				return nil, fmt.Errorf("convert property %q: %w", propName, err)
			}
			schema.Properties[propName] = propSchema
		}
	}

	return schema, nil
}
