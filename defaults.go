package godict

// populateDefaults returns a copy of rec with blank-but-present values
// replaced by the field's declared default. A key absent from the record is
// never invented; a default on an array field is broadcast over the blank
// elements' positions as a single-default array. Pure: the input record is
// not mutated and no errors are produced.
func populateDefaults(schema SchemaDefinition, rec DataRecord) DataRecord {
	out := make(DataRecord, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, f := range schema.Fields {
		if f.Meta.Default == "" {
			continue
		}
		v, ok := out[f.Name]
		if !ok || !v.IsBlank() {
			continue
		}
		if f.IsArray {
			out[f.Name] = Strings(f.Meta.Default)
		} else {
			out[f.Name] = String(f.Meta.Default)
		}
	}
	return out
}
