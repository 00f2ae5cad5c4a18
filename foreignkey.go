package godict

import (
	"strings"

	"github.com/reoring/godict/i18n"
)

// checkForeignKeys verifies referential existence for every foreign-key
// restriction declared by the schema, against the other typed datasets of the
// same batch. A synthetic all-empty foreign tuple is always present, so a
// local row whose entire mapped key is empty or absent is satisfied by
// construction.
func checkForeignKeys(schema SchemaDefinition, local []TypedDataRecord, all map[string][]TypedDataRecord, tr i18n.Translator) []SchemaValidationError {
	var errs []SchemaValidationError
	for _, f := range schema.Fields {
		for _, rule := range f.Restrictions.ForeignKey {
			errs = append(errs, checkForeignKeyRule(rule, local, all[rule.Schema], tr)...)
		}
	}
	return errs
}

func checkForeignKeyRule(rule ForeignKeyRule, local, foreign []TypedDataRecord, tr i18n.Translator) []SchemaValidationError {
	localFields := make([]string, len(rule.Mappings))
	foreignFields := make([]string, len(rule.Mappings))
	for i, m := range rule.Mappings {
		localFields[i] = m.Local
		foreignFields[i] = m.Foreign
	}

	known := make(map[string]bool, len(foreign)+1)
	for _, rec := range foreign {
		key, _ := projectTuple(rec, foreignFields)
		known[key] = true
	}
	emptyKey, _ := projectTuple(TypedDataRecord{}, foreignFields)
	known[emptyKey] = true

	reportField := strings.Join(localFields, ", ")
	var errs []SchemaValidationError
	for idx, rec := range local {
		key, display := projectTuple(rec, localFields)
		if known[key] {
			continue
		}
		errs = append(errs, newError(tr, ErrorInvalidByForeignKey, reportField, idx, map[string]string{
			"value":         display,
			"foreignSchema": rule.Schema,
		}))
	}
	return errs
}
