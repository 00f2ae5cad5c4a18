// Package source decodes dictionary and dataset documents from JSON and YAML
// into the engine's types. Raw dataset scalars (numbers, booleans) are
// normalized to strings at this boundary; everything enters the engine as raw
// string values.
package source

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	godict "github.com/reoring/godict"
)

type dictionaryDoc struct {
	Name    string      `json:"name" yaml:"name"`
	Version string      `json:"version" yaml:"version"`
	Schemas []schemaDoc `json:"schemas" yaml:"schemas"`
}

type schemaDoc struct {
	Name         string                 `json:"name" yaml:"name"`
	Description  string                 `json:"description" yaml:"description"`
	Fields       []fieldDoc             `json:"fields" yaml:"fields"`
	Restrictions *schemaRestrictionsDoc `json:"restrictions" yaml:"restrictions"`
}

type schemaRestrictionsDoc struct {
	UniqueKey []string `json:"uniqueKey" yaml:"uniqueKey"`
}

type fieldDoc struct {
	Name         string           `json:"name" yaml:"name"`
	Description  string           `json:"description" yaml:"description"`
	ValueType    string           `json:"valueType" yaml:"valueType"`
	IsArray      bool             `json:"isArray" yaml:"isArray"`
	Restrictions *restrictionsDoc `json:"restrictions" yaml:"restrictions"`
	Meta         *metaDoc         `json:"meta" yaml:"meta"`
}

type restrictionsDoc struct {
	Required   bool       `json:"required" yaml:"required"`
	Regex      string     `json:"regex" yaml:"regex"`
	Range      *rangeDoc  `json:"range" yaml:"range"`
	CodeList   []any      `json:"codeList" yaml:"codeList"`
	Script     stringList `json:"script" yaml:"script"`
	Unique     bool       `json:"unique" yaml:"unique"`
	ForeignKey []fkDoc    `json:"foreignKey" yaml:"foreignKey"`
}

type rangeDoc struct {
	Min          *float64 `json:"min" yaml:"min"`
	Max          *float64 `json:"max" yaml:"max"`
	ExclusiveMin *float64 `json:"exclusiveMin" yaml:"exclusiveMin"`
	ExclusiveMax *float64 `json:"exclusiveMax" yaml:"exclusiveMax"`
}

type fkDoc struct {
	Schema   string       `json:"schema" yaml:"schema"`
	Mappings []mappingDoc `json:"mappings" yaml:"mappings"`
}

type mappingDoc struct {
	Local   string `json:"local" yaml:"local"`
	Foreign string `json:"foreign" yaml:"foreign"`
}

type metaDoc struct {
	Default  any   `json:"default" yaml:"default"`
	Examples []any `json:"examples" yaml:"examples"`
	Core     bool  `json:"core" yaml:"core"`
}

// stringList accepts either a single string or a list of strings, the two
// shapes dictionaries use for the script restriction.
type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	var one string
	if err := node.Decode(&one); err == nil {
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

// DictionaryFromJSON decodes a dictionary document.
func DictionaryFromJSON(b []byte) (godict.Dictionary, error) {
	var doc dictionaryDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return godict.Dictionary{}, fmt.Errorf("source: decode dictionary: %w", err)
	}
	return buildDictionary(doc)
}

// DictionaryFromYAML decodes a dictionary document.
func DictionaryFromYAML(b []byte) (godict.Dictionary, error) {
	var doc dictionaryDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return godict.Dictionary{}, fmt.Errorf("source: decode dictionary: %w", err)
	}
	return buildDictionary(doc)
}

func buildDictionary(doc dictionaryDoc) (godict.Dictionary, error) {
	dict := godict.Dictionary{Name: doc.Name, Version: doc.Version}
	for _, s := range doc.Schemas {
		schema, err := buildSchema(s)
		if err != nil {
			return godict.Dictionary{}, err
		}
		dict.Schemas = append(dict.Schemas, schema)
	}
	return dict, nil
}

func buildSchema(doc schemaDoc) (godict.SchemaDefinition, error) {
	schema := godict.SchemaDefinition{Name: doc.Name, Description: doc.Description}
	if doc.Restrictions != nil {
		schema.Restrictions.UniqueKey = doc.Restrictions.UniqueKey
	}
	for _, f := range doc.Fields {
		field, err := buildField(doc.Name, f)
		if err != nil {
			return godict.SchemaDefinition{}, err
		}
		schema.Fields = append(schema.Fields, field)
	}
	return schema, nil
}

func buildField(schemaName string, doc fieldDoc) (godict.FieldDefinition, error) {
	vt, ok := valueType(doc.ValueType)
	if !ok {
		return godict.FieldDefinition{}, fmt.Errorf("source: schema %q field %q: unknown valueType %q", schemaName, doc.Name, doc.ValueType)
	}
	field := godict.FieldDefinition{
		Name:        doc.Name,
		Description: doc.Description,
		ValueType:   vt,
		IsArray:     doc.IsArray,
	}
	if r := doc.Restrictions; r != nil {
		field.Restrictions = godict.FieldRestrictions{
			Required: r.Required,
			Regex:    r.Regex,
			Unique:   r.Unique,
			Script:   []string(r.Script),
		}
		if r.Range != nil {
			field.Restrictions.Range = &godict.RangeRule{
				Min:          r.Range.Min,
				Max:          r.Range.Max,
				ExclusiveMin: r.Range.ExclusiveMin,
				ExclusiveMax: r.Range.ExclusiveMax,
			}
		}
		for _, c := range r.CodeList {
			field.Restrictions.CodeList = append(field.Restrictions.CodeList, scalarString(c))
		}
		for _, fk := range r.ForeignKey {
			rule := godict.ForeignKeyRule{Schema: fk.Schema}
			for _, m := range fk.Mappings {
				rule.Mappings = append(rule.Mappings, godict.ForeignKeyMapping{Local: m.Local, Foreign: m.Foreign})
			}
			field.Restrictions.ForeignKey = append(field.Restrictions.ForeignKey, rule)
		}
	}
	if m := doc.Meta; m != nil {
		field.Meta.Core = m.Core
		if m.Default != nil {
			field.Meta.Default = scalarString(m.Default)
		}
		for _, ex := range m.Examples {
			field.Meta.Examples = append(field.Meta.Examples, scalarString(ex))
		}
	}
	return field, nil
}

func valueType(s string) (godict.ValueType, bool) {
	switch godict.ValueType(s) {
	case godict.TypeString, godict.TypeInteger, godict.TypeNumber, godict.TypeBoolean:
		return godict.ValueType(s), true
	}
	return "", false
}

// scalarString renders a decoded scalar the way it looked in the document:
// JSON numbers arrive as float64, YAML integers as int.
func scalarString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(n)
	}
}
