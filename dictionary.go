package godict

// ValueType enumerates the semantic types a field can declare.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeInteger ValueType = "integer"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
)

// Dictionary is one versioned snapshot of named schema definitions. Inputs are
// read-only for the duration of a processing call; the engine never mutates or
// caches a dictionary.
type Dictionary struct {
	Name    string
	Version string
	Schemas []SchemaDefinition
}

// Schema looks up a schema definition by name.
func (d Dictionary) Schema(name string) (SchemaDefinition, bool) {
	for _, s := range d.Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return SchemaDefinition{}, false
}

// SchemaDefinition describes one record type: an ordered field list plus
// schema-level restrictions.
type SchemaDefinition struct {
	Name         string
	Description  string
	Fields       []FieldDefinition
	Restrictions SchemaRestrictions
}

// Field looks up a field definition by name.
func (s SchemaDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// SchemaRestrictions carries schema-level rules.
type SchemaRestrictions struct {
	// UniqueKey lists field names forming a composite key that must be unique
	// across the whole dataset.
	UniqueKey []string
}

// FieldDefinition describes a single field: declared type, array-ness,
// restrictions and authoring metadata.
type FieldDefinition struct {
	Name         string
	Description  string
	ValueType    ValueType
	IsArray      bool
	Restrictions FieldRestrictions
	Meta         FieldMeta
}

// FieldRestrictions carries per-field rules. The zero value means
// "no restrictions".
type FieldRestrictions struct {
	Required bool
	// Regex is an uncompiled pattern; it is compiled once by NewProcessor.
	Regex string
	Range *RangeRule
	// CodeList is the ordered set of canonical allowed values. Raw input is
	// matched case-insensitively and canonicalized during coercion.
	CodeList []string
	// Script names registered predicates, run in declared order.
	Script     []string
	Unique     bool
	ForeignKey []ForeignKeyRule
}

// RangeRule bounds a numeric field. Nil pointers mean "bound not set".
// Min/Max are inclusive; ExclusiveMin/ExclusiveMax exclude the bound itself.
type RangeRule struct {
	Min          *float64
	Max          *float64
	ExclusiveMin *float64
	ExclusiveMax *float64
}

// ForeignKeyRule requires the mapped local values of a row to exist as a row
// in the referenced schema's dataset.
type ForeignKeyRule struct {
	Schema   string
	Mappings []ForeignKeyMapping
}

// ForeignKeyMapping pairs a local field with the foreign field it must
// resolve against.
type ForeignKeyMapping struct {
	Local   string
	Foreign string
}

// FieldMeta carries non-validating field metadata.
type FieldMeta struct {
	// Default replaces a blank-but-present value before validation. Empty
	// string means no default.
	Default string
	// Examples of valid values, echoed into regex error info.
	Examples []string
	Core     bool
}
