package godict

import "strconv"

// RawValue is a field value as it arrives from tabular input: one string or an
// ordered list of strings. The zero value is an empty scalar.
type RawValue struct {
	elems []string
	array bool
}

// String wraps a scalar raw value.
func String(s string) RawValue { return RawValue{elems: []string{s}} }

// Strings wraps an array-shaped raw value, preserving element order.
func Strings(ss ...string) RawValue {
	return RawValue{elems: append([]string(nil), ss...), array: true}
}

// IsArray reports whether the value arrived array-shaped.
func (v RawValue) IsArray() bool { return v.array }

// Elements returns the array-normalized view: scalars appear as a single
// element.
func (v RawValue) Elements() []string {
	if v.elems == nil {
		return []string{""}
	}
	return v.elems
}

// IsBlank reports whether every element is the empty string.
func (v RawValue) IsBlank() bool {
	for _, e := range v.Elements() {
		if e != "" {
			return false
		}
	}
	return true
}

// DataRecord is one raw record: field name to raw value. Absent keys are
// distinct from present-but-blank values.
type DataRecord map[string]RawValue

// SchemaData is an ordered dataset of one schema's records. Record identity is
// purely positional: the 0-based index is stable and used in error reporting
// and foreign-key matching.
type SchemaData []DataRecord

// ValueKind tags a FieldValue with the representation it carries.
type ValueKind uint8

const (
	// KindAbsent marks a missing key or an empty value coerced to "no value".
	KindAbsent ValueKind = iota
	// KindRaw marks a value left uncoerced because a structural or raw-type
	// check flagged the field.
	KindRaw
	KindString
	KindInteger
	KindNumber
	KindBoolean
)

// FieldValue is a coerced field value tagged with its kind, so every
// validator can switch exhaustively instead of type-asserting a loose union.
// The zero value is Absent.
type FieldValue struct {
	kind  ValueKind
	array bool
	strs  []string
	ints  []int64
	nums  []float64
	bools []bool
}

// Absent returns the "no value" variant.
func Absent() FieldValue { return FieldValue{} }

// Raw returns the uncoerced variant carrying the original raw elements.
func Raw(v RawValue) FieldValue {
	return FieldValue{kind: KindRaw, array: v.IsArray(), strs: append([]string(nil), v.Elements()...)}
}

// StringValue returns a scalar string variant.
func StringValue(s string) FieldValue { return FieldValue{kind: KindString, strs: []string{s}} }

// StringArray returns an array string variant.
func StringArray(ss []string) FieldValue {
	return FieldValue{kind: KindString, array: true, strs: append([]string(nil), ss...)}
}

// IntegerValue returns a scalar integer variant.
func IntegerValue(i int64) FieldValue { return FieldValue{kind: KindInteger, ints: []int64{i}} }

// IntegerArray returns an array integer variant.
func IntegerArray(is []int64) FieldValue {
	return FieldValue{kind: KindInteger, array: true, ints: append([]int64(nil), is...)}
}

// NumberValue returns a scalar number variant.
func NumberValue(n float64) FieldValue { return FieldValue{kind: KindNumber, nums: []float64{n}} }

// NumberArray returns an array number variant.
func NumberArray(ns []float64) FieldValue {
	return FieldValue{kind: KindNumber, array: true, nums: append([]float64(nil), ns...)}
}

// BooleanValue returns a scalar boolean variant.
func BooleanValue(b bool) FieldValue { return FieldValue{kind: KindBoolean, bools: []bool{b}} }

// BooleanArray returns an array boolean variant.
func BooleanArray(bs []bool) FieldValue {
	return FieldValue{kind: KindBoolean, array: true, bools: append([]bool(nil), bs...)}
}

// Kind returns the variant tag.
func (v FieldValue) Kind() ValueKind { return v.kind }

// IsArray reports whether the value is array-shaped.
func (v FieldValue) IsArray() bool { return v.array }

// IsAbsent reports whether the value carries nothing.
func (v FieldValue) IsAbsent() bool { return v.kind == KindAbsent }

// Strings returns the string elements for KindString and KindRaw values,
// nil otherwise.
func (v FieldValue) Strings() []string {
	if v.kind == KindString || v.kind == KindRaw {
		return v.strs
	}
	return nil
}

// Ints returns the integer elements for KindInteger values, nil otherwise.
func (v FieldValue) Ints() []int64 {
	if v.kind == KindInteger {
		return v.ints
	}
	return nil
}

// Numbers returns a float64 view of the numeric elements: the elements of a
// KindNumber value, or KindInteger elements widened. Nil for everything else.
func (v FieldValue) Numbers() []float64 {
	switch v.kind {
	case KindNumber:
		return v.nums
	case KindInteger:
		out := make([]float64, len(v.ints))
		for i, n := range v.ints {
			out[i] = float64(n)
		}
		return out
	default:
		return nil
	}
}

// Bools returns the boolean elements for KindBoolean values, nil otherwise.
func (v FieldValue) Bools() []bool {
	if v.kind == KindBoolean {
		return v.bools
	}
	return nil
}

// Canonical renders every element as a canonical string. Absent values render
// as a single empty string. Used to build uniqueness and foreign-key tuples.
func (v FieldValue) Canonical() []string {
	switch v.kind {
	case KindAbsent:
		return []string{""}
	case KindRaw, KindString:
		return append([]string(nil), v.strs...)
	case KindInteger:
		out := make([]string, len(v.ints))
		for i, n := range v.ints {
			out[i] = strconv.FormatInt(n, 10)
		}
		return out
	case KindNumber:
		out := make([]string, len(v.nums))
		for i, n := range v.nums {
			out[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return out
	case KindBoolean:
		out := make([]string, len(v.bools))
		for i, b := range v.bools {
			out[i] = strconv.FormatBool(b)
		}
		return out
	default:
		return []string{""}
	}
}

// TypedDataRecord is one coerced record: field name to tagged value. Fields
// flagged by structural checks stay KindRaw; empty fields become KindAbsent;
// keys absent from the raw record stay absent from the map.
type TypedDataRecord map[string]FieldValue
