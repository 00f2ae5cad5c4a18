package godict

import (
	"strings"

	"github.com/reoring/godict/i18n"
)

// tupleSep keeps composite key parts from colliding ("a"+"bc" vs "ab"+"c").
const tupleSep = "\x1f"

// checkDatasetConstraints runs the whole-dataset rules once per dataset:
// single-field uniqueness and the schema's composite unique key. The first
// occurrence of a value is treated as canonical; every later occurrence is
// flagged. Rows whose projected value is entirely empty are exempt, emptiness
// is owned by the required check.
func checkDatasetConstraints(schema SchemaDefinition, records []TypedDataRecord, tr i18n.Translator) []SchemaValidationError {
	var errs []SchemaValidationError
	for _, f := range schema.Fields {
		if !f.Restrictions.Unique {
			continue
		}
		errs = append(errs, checkUniqueProjection(
			records,
			[]string{f.Name},
			f.Name,
			ErrorInvalidByUnique,
			nil,
			tr,
		)...)
	}
	if key := schema.Restrictions.UniqueKey; len(key) > 0 {
		errs = append(errs, checkUniqueProjection(
			records,
			key,
			strings.Join(key, ", "),
			ErrorInvalidByUniqueKey,
			map[string]string{"uniqueKey": strings.Join(key, ", ")},
			tr,
		)...)
	}
	return errs
}

// checkUniqueProjection groups rows by the projection of the given fields and
// flags every row after the first in each group.
func checkUniqueProjection(records []TypedDataRecord, fields []string, reportField, kind string, baseInfo map[string]string, tr i18n.Translator) []SchemaValidationError {
	first := make(map[string]int, len(records))
	var errs []SchemaValidationError
	for idx, rec := range records {
		key, display := projectTuple(rec, fields)
		if emptyTuple(rec, fields) {
			continue
		}
		if firstIdx, seen := first[key]; seen && firstIdx != idx {
			info := map[string]string{"value": display}
			for k, v := range baseInfo {
				info[k] = v
			}
			errs = append(errs, newError(tr, kind, reportField, idx, info))
			continue
		}
		first[key] = idx
	}
	return errs
}

// projectTuple renders a row's values for the given fields into a comparable
// composite key and a human-readable display form.
func projectTuple(rec TypedDataRecord, fields []string) (key, display string) {
	parts := make([]string, len(fields))
	for i, name := range fields {
		parts[i] = strings.Join(rec[name].Canonical(), ",")
	}
	return strings.Join(parts, tupleSep), strings.Join(parts, ", ")
}

// emptyTuple reports whether every projected field of the row is empty or
// absent.
func emptyTuple(rec TypedDataRecord, fields []string) bool {
	for _, name := range fields {
		for _, e := range rec[name].Canonical() {
			if e != "" {
				return false
			}
		}
	}
	return true
}
