package godict

import (
	js "github.com/reoring/godict/jsonschema"
)

// JSONSchema projects a schema definition into a JSON Schema representation
// for interop with tools that speak it. The projection is purely structural
// and plays no part in validation: script, unique and foreign-key
// restrictions have no JSON Schema counterpart and are omitted.
func JSONSchema(schema SchemaDefinition) *js.Schema {
	out := &js.Schema{
		Type:                 "object",
		Properties:           map[string]*js.Schema{},
		AdditionalProperties: false,
	}
	for _, f := range schema.Fields {
		prop := fieldSchema(f)
		if f.IsArray {
			prop = &js.Schema{Type: "array", Items: prop}
		}
		if f.Meta.Default != "" {
			prop.Default = f.Meta.Default
		}
		out.Properties[f.Name] = prop
		if f.Restrictions.Required {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

func fieldSchema(f FieldDefinition) *js.Schema {
	s := &js.Schema{}
	switch f.ValueType {
	case TypeInteger:
		s.Type = "integer"
	case TypeNumber:
		s.Type = "number"
	case TypeBoolean:
		s.Type = "boolean"
	default:
		s.Type = "string"
	}
	s.Pattern = f.Restrictions.Regex
	s.Enum = append([]string(nil), f.Restrictions.CodeList...)
	if r := f.Restrictions.Range; r != nil {
		s.Minimum = r.Min
		s.Maximum = r.Max
		s.ExclusiveMinimum = r.ExclusiveMin
		s.ExclusiveMaximum = r.ExclusiveMax
	}
	return s
}
