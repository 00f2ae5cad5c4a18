package godict

import (
	"strconv"
	"strings"
)

// coerceRecord converts the raw record into a typed one. Fields flagged with
// a structural or raw-type error are carried through uncoerced (KindRaw);
// blank values coerce to Absent; keys missing from the raw record stay
// missing. Array fields coerce element-wise in order, dropping empty
// elements (they carry no value and are exempt from every semantic check).
func coerceRecord(schema SchemaDefinition, rec DataRecord, pre precheckResult) TypedDataRecord {
	typed := make(TypedDataRecord, len(rec))
	for key, raw := range rec {
		if pre.typeFlagged[key] {
			typed[key] = Raw(raw)
			continue
		}
		f, ok := schema.Field(key)
		if !ok {
			typed[key] = Raw(raw)
			continue
		}
		if raw.IsBlank() {
			typed[key] = Absent()
			continue
		}
		if f.IsArray {
			typed[key] = coerceArray(f, raw)
		} else {
			typed[key] = coerceScalar(f, raw.Elements()[0])
		}
	}
	return typed
}

func coerceScalar(f FieldDefinition, raw string) FieldValue {
	switch f.ValueType {
	case TypeInteger:
		n, _ := strconv.ParseInt(raw, 10, 64)
		return IntegerValue(n)
	case TypeNumber:
		n, _ := strconv.ParseFloat(raw, 64)
		return NumberValue(n)
	case TypeBoolean:
		return BooleanValue(strings.ToLower(raw) == "true")
	default: // TypeString
		return StringValue(canonicalizeCode(f, raw))
	}
}

func coerceArray(f FieldDefinition, raw RawValue) FieldValue {
	elems := make([]string, 0, len(raw.Elements()))
	for _, e := range raw.Elements() {
		if e != "" {
			elems = append(elems, e)
		}
	}
	switch f.ValueType {
	case TypeInteger:
		out := make([]int64, len(elems))
		for i, e := range elems {
			out[i], _ = strconv.ParseInt(e, 10, 64)
		}
		return IntegerArray(out)
	case TypeNumber:
		out := make([]float64, len(elems))
		for i, e := range elems {
			out[i], _ = strconv.ParseFloat(e, 64)
		}
		return NumberArray(out)
	case TypeBoolean:
		out := make([]bool, len(elems))
		for i, e := range elems {
			out[i] = strings.ToLower(e) == "true"
		}
		return BooleanArray(out)
	default: // TypeString
		out := make([]string, len(elems))
		for i, e := range elems {
			out[i] = canonicalizeCode(f, e)
		}
		return StringArray(out)
	}
}

// canonicalizeCode replaces a raw value with its codeList entry when one
// matches case-insensitively, fixing the casing. Values with no match pass
// through untouched and are reported by the enum validator instead.
func canonicalizeCode(f FieldDefinition, raw string) string {
	for _, code := range f.Restrictions.CodeList {
		if strings.EqualFold(code, raw) {
			return code
		}
	}
	return raw
}
