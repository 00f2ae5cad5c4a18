package godict_test

import (
	"errors"
	"reflect"
	"testing"

	godict "github.com/reoring/godict"
)

func f64(v float64) *float64 { return &v }

func donorSchema() godict.SchemaDefinition {
	return godict.SchemaDefinition{
		Name: "donor",
		Fields: []godict.FieldDefinition{
			{
				Name:      "donor_id",
				ValueType: godict.TypeString,
				Restrictions: godict.FieldRestrictions{
					Required: true,
					Unique:   true,
				},
			},
			{
				Name:      "gender",
				ValueType: godict.TypeString,
				Restrictions: godict.FieldRestrictions{
					CodeList: []string{"Male", "Female", "Other"},
				},
			},
			{
				Name:      "age",
				ValueType: godict.TypeInteger,
				Restrictions: godict.FieldRestrictions{
					Range: &godict.RangeRule{Min: f64(0), ExclusiveMax: f64(999)},
				},
			},
			{
				Name:      "weight",
				ValueType: godict.TypeNumber,
			},
			{
				Name:      "is_deceased",
				ValueType: godict.TypeBoolean,
			},
			{
				Name:      "aliases",
				ValueType: godict.TypeString,
				IsArray:   true,
			},
			{
				Name:      "country",
				ValueType: godict.TypeString,
				Meta:      godict.FieldMeta{Default: "US"},
			},
		},
	}
}

func testDictionary() godict.Dictionary {
	return godict.Dictionary{Name: "test-dictionary", Version: "1.0", Schemas: []godict.SchemaDefinition{donorSchema()}}
}

func newProcessor(t *testing.T, dict godict.Dictionary, opts ...godict.Option) *godict.Processor {
	t.Helper()
	p, err := godict.NewProcessor(dict, opts...)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	return p
}

func kinds(errs godict.ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Kind
	}
	return out
}

func TestProcess_UnknownSchemaIsConfigError(t *testing.T) {
	p := newProcessor(t, testDictionary())
	_, err := p.Process("nope", godict.DataRecord{}, 0)
	if !errors.Is(err, godict.ErrUnknownSchema) {
		t.Fatalf("expected ErrUnknownSchema, got %v", err)
	}
	if _, err := p.ProcessRecords("nope", nil); !errors.Is(err, godict.ErrUnknownSchema) {
		t.Fatalf("expected ErrUnknownSchema from ProcessRecords, got %v", err)
	}
}

func TestNewProcessor_BadRegexIsConfigError(t *testing.T) {
	dict := godict.Dictionary{Schemas: []godict.SchemaDefinition{{
		Name: "s",
		Fields: []godict.FieldDefinition{{
			Name:         "f",
			ValueType:    godict.TypeString,
			Restrictions: godict.FieldRestrictions{Regex: "("},
		}},
	}}}
	if _, err := godict.NewProcessor(dict); err == nil {
		t.Fatalf("expected regex compile error")
	}
}

func TestProcess_CoercesDeclaredTypes(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, err := p.Process("donor", godict.DataRecord{
		"donor_id":    godict.String("DO1"),
		"age":         godict.String("123"),
		"weight":      godict.String("70.5"),
		"is_deceased": godict.String("True"),
		"aliases":     godict.Strings("a", "b"),
	}, 0)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(res.ValidationErrors) != 0 {
		t.Fatalf("expected no errors, got %v", res.ValidationErrors)
	}
	if v := res.Record["age"]; v.Kind() != godict.KindInteger || v.Ints()[0] != 123 {
		t.Fatalf("age not coerced: %+v", v)
	}
	if v := res.Record["weight"]; v.Kind() != godict.KindNumber || v.Numbers()[0] != 70.5 {
		t.Fatalf("weight not coerced: %+v", v)
	}
	if v := res.Record["is_deceased"]; v.Kind() != godict.KindBoolean || v.Bools()[0] != true {
		t.Fatalf("is_deceased not coerced: %+v", v)
	}
	if v := res.Record["aliases"]; !v.IsArray() || !reflect.DeepEqual(v.Strings(), []string{"a", "b"}) {
		t.Fatalf("aliases not coerced: %+v", v)
	}
}

func TestProcess_InvalidIntegerLeftRaw(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, err := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"age":      godict.String("0.5"),
	}, 0)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(res.ValidationErrors) != 1 || res.ValidationErrors[0].Kind != godict.ErrorInvalidFieldValueType {
		t.Fatalf("expected one INVALID_FIELD_VALUE_TYPE, got %v", res.ValidationErrors)
	}
	v := res.Record["age"]
	if v.Kind() != godict.KindRaw || v.Strings()[0] != "0.5" {
		t.Fatalf("expected raw value preserved, got %+v", v)
	}
}

func TestProcess_TypeErrorSuppressesRangeCheck(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"age":      godict.String("abc"),
	}, 0)
	if got := kinds(res.ValidationErrors); !reflect.DeepEqual(got, []string{godict.ErrorInvalidFieldValueType}) {
		t.Fatalf("expected only the type error, got %v", got)
	}
}

func TestProcess_RequiredMissing(t *testing.T) {
	p := newProcessor(t, testDictionary())

	// present but blank
	res, _ := p.Process("donor", godict.DataRecord{"donor_id": godict.String("")}, 3)
	if len(res.ValidationErrors) != 1 {
		t.Fatalf("expected exactly one error, got %v", res.ValidationErrors)
	}
	e := res.ValidationErrors[0]
	if e.Kind != godict.ErrorMissingRequiredField || e.Field != "donor_id" || e.Index != 3 {
		t.Fatalf("unexpected error: %+v", e)
	}

	// key absent entirely
	res, _ = p.Process("donor", godict.DataRecord{}, 0)
	if got := kinds(res.ValidationErrors); !reflect.DeepEqual(got, []string{godict.ErrorMissingRequiredField}) {
		t.Fatalf("expected missing-required for absent key, got %v", got)
	}

	// array whose every element is blank
	dict := godict.Dictionary{Schemas: []godict.SchemaDefinition{{
		Name: "s",
		Fields: []godict.FieldDefinition{{
			Name:         "tags",
			ValueType:    godict.TypeString,
			IsArray:      true,
			Restrictions: godict.FieldRestrictions{Required: true},
		}},
	}}}
	p2 := newProcessor(t, dict)
	res, _ = p2.Process("s", godict.DataRecord{"tags": godict.Strings("", "")}, 0)
	if got := kinds(res.ValidationErrors); !reflect.DeepEqual(got, []string{godict.ErrorMissingRequiredField}) {
		t.Fatalf("expected missing-required for all-blank array, got %v", got)
	}
}

func TestProcess_UnrecognizedFields(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"extra":    godict.String("x"),
		"bogus":    godict.String("y"),
	}, 0)
	count := 0
	for _, e := range res.ValidationErrors {
		if e.Kind == godict.ErrorUnrecognizedField {
			count++
			if e.Field != "extra" && e.Field != "bogus" {
				t.Fatalf("unexpected field in error: %+v", e)
			}
		}
	}
	if count != 2 {
		t.Fatalf("expected one error per extra key, got %v", res.ValidationErrors)
	}
	// unrecognized values ride along uncoerced
	if v := res.Record["extra"]; v.Kind() != godict.KindRaw {
		t.Fatalf("expected raw value for unrecognized field, got %+v", v)
	}
}

func TestProcess_ArrayShapeMismatch(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"gender":   godict.Strings("Male", "Female"),
	}, 0)
	if got := kinds(res.ValidationErrors); !reflect.DeepEqual(got, []string{godict.ErrorInvalidFieldValueType}) {
		t.Fatalf("expected a type error for array on scalar field, got %v", res.ValidationErrors)
	}
}

func TestProcess_RangeBoundaries(t *testing.T) {
	p := newProcessor(t, testDictionary())
	cases := []struct {
		age  string
		want int
	}{
		{"-1", 1},
		{"500000", 1},
		{"223", 0},
		{"0", 0},   // min is inclusive
		{"999", 1}, // exclusiveMax excludes the bound
		{"998", 0},
	}
	for _, tc := range cases {
		res, _ := p.Process("donor", godict.DataRecord{
			"donor_id": godict.String("DO1"),
			"age":      godict.String(tc.age),
		}, 0)
		got := 0
		for _, e := range res.ValidationErrors {
			if e.Kind == godict.ErrorInvalidByRange {
				got++
			}
		}
		if got != tc.want {
			t.Fatalf("age=%s: expected %d range errors, got %v", tc.age, tc.want, res.ValidationErrors)
		}
	}
}

func TestProcess_EnumCanonicalizesCase(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"gender":   godict.String("feMale"),
	}, 0)
	if len(res.ValidationErrors) != 0 {
		t.Fatalf("expected no errors, got %v", res.ValidationErrors)
	}
	if got := res.Record["gender"].Strings()[0]; got != "Female" {
		t.Fatalf("expected canonical casing Female, got %q", got)
	}
}

func TestProcess_EnumRejectsUnknownValue(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"gender":   godict.String("Unknown"),
	}, 0)
	if got := kinds(res.ValidationErrors); !reflect.DeepEqual(got, []string{godict.ErrorInvalidEnumValue}) {
		t.Fatalf("expected INVALID_ENUM_VALUE, got %v", res.ValidationErrors)
	}
	if v := res.ValidationErrors[0].Info["value"]; v != "Unknown" {
		t.Fatalf("expected offending value in info, got %v", res.ValidationErrors[0].Info)
	}
}

func TestProcess_RegexAggregatesOffendingElements(t *testing.T) {
	dict := godict.Dictionary{Schemas: []godict.SchemaDefinition{{
		Name: "s",
		Fields: []godict.FieldDefinition{{
			Name:         "codes",
			ValueType:    godict.TypeString,
			IsArray:      true,
			Restrictions: godict.FieldRestrictions{Regex: `^[A-Z]{3}$`},
			Meta:         godict.FieldMeta{Examples: []string{"ABC", "XYZ"}},
		}},
	}}}
	p := newProcessor(t, dict)
	res, _ := p.Process("s", godict.DataRecord{"codes": godict.Strings("ABC", "nope", "12")}, 0)
	if len(res.ValidationErrors) != 1 {
		t.Fatalf("expected one aggregated regex error, got %v", res.ValidationErrors)
	}
	e := res.ValidationErrors[0]
	if e.Kind != godict.ErrorInvalidByRegex || e.Info["regex"] != `^[A-Z]{3}$` {
		t.Fatalf("unexpected error: %+v", e)
	}
	if e.Info["value"] != "nope, 12" {
		t.Fatalf("expected offending elements collected, got %q", e.Info["value"])
	}
	if e.Info["examples"] != "ABC, XYZ" {
		t.Fatalf("expected examples in info, got %q", e.Info["examples"])
	}
}

func TestProcess_DefaultPopulation(t *testing.T) {
	p := newProcessor(t, testDictionary())

	// key present and blank: default applies
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"country":  godict.String(""),
	}, 0)
	if got := res.Record["country"].Strings(); len(got) != 1 || got[0] != "US" {
		t.Fatalf("expected default US, got %+v", res.Record["country"])
	}

	// key absent: default never invents it
	res, _ = p.Process("donor", godict.DataRecord{"donor_id": godict.String("DO1")}, 0)
	if _, ok := res.Record["country"]; ok {
		t.Fatalf("default must not invent missing keys: %+v", res.Record)
	}
}

func TestProcess_IsPureAndIdempotent(t *testing.T) {
	p := newProcessor(t, testDictionary())
	rec := godict.DataRecord{
		"donor_id": godict.String(""),
		"age":      godict.String("0.5"),
		"gender":   godict.String("feMale"),
		"extra":    godict.String("x"),
	}
	first, err := p.Process("donor", rec, 7)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	second, err := p.Process("donor", rec, 7)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between identical calls:\n%+v\n%+v", first, second)
	}
	// the caller's record is never mutated
	if !reflect.DeepEqual(rec["age"], godict.String("0.5")) {
		t.Fatalf("input record mutated: %+v", rec)
	}
}

func TestProcess_BooleanCoercionIsStrict(t *testing.T) {
	p := newProcessor(t, testDictionary())

	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id":    godict.String("DO1"),
		"is_deceased": godict.String("FALSE"),
	}, 0)
	if len(res.ValidationErrors) != 0 {
		t.Fatalf("expected no errors, got %v", res.ValidationErrors)
	}
	if v := res.Record["is_deceased"]; v.Bools()[0] != false {
		t.Fatalf("expected strict false, got %+v", v)
	}

	// anything but true/false is a raw type error, not a truthy value
	res, _ = p.Process("donor", godict.DataRecord{
		"donor_id":    godict.String("DO1"),
		"is_deceased": godict.String("yes"),
	}, 0)
	if got := kinds(res.ValidationErrors); !reflect.DeepEqual(got, []string{godict.ErrorInvalidFieldValueType}) {
		t.Fatalf("expected type error for %q, got %v", "yes", res.ValidationErrors)
	}
}

func TestProcess_EmptyValueCoercesToAbsent(t *testing.T) {
	p := newProcessor(t, testDictionary())
	res, _ := p.Process("donor", godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"weight":   godict.String(""),
	}, 0)
	if v := res.Record["weight"]; !v.IsAbsent() {
		t.Fatalf("expected absent value for empty input, got %+v", v)
	}
}
