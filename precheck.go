package godict

import (
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/godict/i18n"
)

// precheckResult reports which fields the structural pass flagged. Flagged
// fields are excluded from every later stage in this pass; typeFlagged fields
// are additionally left uncoerced (KindRaw) in the typed record.
type precheckResult struct {
	flagged     map[string]bool
	typeFlagged map[string]bool
}

// runPrechecks applies the structural validators in order: unrecognized
// fields, array-shape mismatch, required-missing, raw type validity. Each
// validator only sees fields not flagged by an earlier one, so a single root
// cause never cascades into noise.
func runPrechecks(schema SchemaDefinition, rec DataRecord, index int, tr i18n.Translator) ([]SchemaValidationError, precheckResult) {
	var errs []SchemaValidationError
	res := precheckResult{flagged: map[string]bool{}, typeFlagged: map[string]bool{}}

	// 1. Record keys the schema does not describe. Sorted so output stays
	// deterministic across calls.
	var unknown []string
	for key := range rec {
		if _, ok := schema.Field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, newError(tr, ErrorUnrecognizedField, key, index, nil))
		res.flagged[key] = true
		res.typeFlagged[key] = true
	}

	// 2. Array-shaped values on non-array fields.
	for _, f := range schema.Fields {
		if res.flagged[f.Name] {
			continue
		}
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		if !f.IsArray && v.IsArray() {
			errs = append(errs, newError(tr, ErrorInvalidFieldValueType, f.Name, index, map[string]string{
				"valueType": string(f.ValueType),
			}))
			res.flagged[f.Name] = true
			res.typeFlagged[f.Name] = true
		}
	}

	// 3. Required fields with no value anywhere. An absent key counts as
	// blank here; defaults never invent keys, so this is the only stage that
	// sees true absence.
	for _, f := range schema.Fields {
		if res.flagged[f.Name] || !f.Restrictions.Required {
			continue
		}
		if rec[f.Name].IsBlank() {
			errs = append(errs, newError(tr, ErrorMissingRequiredField, f.Name, index, nil))
			res.flagged[f.Name] = true
		}
	}

	// 4. Raw type validity. Empty elements are exempt (required-check owns
	// emptiness); a violating field is excluded from coercion entirely.
	for _, f := range schema.Fields {
		if res.flagged[f.Name] {
			continue
		}
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		var bad []string
		for _, e := range v.Elements() {
			if e == "" {
				continue
			}
			if !rawTypeValid(f.ValueType, e) {
				bad = append(bad, e)
			}
		}
		if len(bad) > 0 {
			errs = append(errs, newError(tr, ErrorInvalidFieldValueType, f.Name, index, map[string]string{
				"valueType": string(f.ValueType),
				"value":     strings.Join(bad, ", "),
			}))
			res.flagged[f.Name] = true
			res.typeFlagged[f.Name] = true
		}
	}

	return errs, res
}

// rawTypeValid reports whether a non-empty raw element can represent the
// declared type.
func rawTypeValid(vt ValueType, raw string) bool {
	switch vt {
	case TypeInteger:
		_, err := strconv.ParseInt(raw, 10, 64)
		return err == nil
	case TypeNumber:
		_, err := strconv.ParseFloat(raw, 64)
		return err == nil
	case TypeBoolean:
		lower := strings.ToLower(raw)
		return lower == "true" || lower == "false"
	default: // TypeString
		return true
	}
}
