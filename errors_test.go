package godict_test

import (
	"strings"
	"testing"

	godict "github.com/reoring/godict"
	"github.com/reoring/godict/i18n"
)

func TestValidationErrors_ErrorSummary(t *testing.T) {
	ve := godict.ValidationErrors{
		{Kind: godict.ErrorMissingRequiredField, Field: "a", Index: 0},
		{Kind: godict.ErrorUnrecognizedField, Field: "b", Index: 1},
		{Kind: godict.ErrorInvalidByRegex, Field: "c", Index: 2},
		{Kind: godict.ErrorInvalidByRange, Field: "d", Index: 3},
	}
	s := ve.Error()
	if s == "" {
		t.Fatalf("expected non-empty summary")
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("expected truncation note, got %q", s)
	}
}

func TestAsValidationErrors(t *testing.T) {
	var err error = godict.ValidationErrors{{Kind: godict.ErrorInvalidByUnique, Field: "x"}}
	ve, ok := godict.AsValidationErrors(err)
	if !ok || len(ve) != 1 {
		t.Fatalf("expected extraction to succeed, got %v %v", ve, ok)
	}
	if _, ok := godict.AsValidationErrors(nil); ok {
		t.Fatalf("nil must not extract")
	}
}

func TestErrorMessages_AreDeterministic(t *testing.T) {
	p := newProcessor(t, testDictionary())
	rec := godict.DataRecord{
		"donor_id": godict.String("DO1"),
		"age":      godict.String("-1"),
	}
	a, _ := p.Process("donor", rec, 0)
	b, _ := p.Process("donor", rec, 0)
	if a.ValidationErrors[0].Message != b.ValidationErrors[0].Message {
		t.Fatalf("messages differ for identical kind+info")
	}
	if a.ValidationErrors[0].Message == "" {
		t.Fatalf("expected a formatted message")
	}
	// the active bounds are spelled out
	if !strings.Contains(a.ValidationErrors[0].Message, ">= 0") || !strings.Contains(a.ValidationErrors[0].Message, "< 999") {
		t.Fatalf("expected bounds in message, got %q", a.ValidationErrors[0].Message)
	}
}

func TestWithTranslator_MessagesBelongToTheProcessor(t *testing.T) {
	en := newProcessor(t, testDictionary(), godict.WithTranslator(i18n.ForLanguage("en")))
	ja := newProcessor(t, testDictionary(), godict.WithTranslator(i18n.ForLanguage("ja")))
	rec := godict.DataRecord{"gender": godict.String("Female")}

	enRes, _ := en.Process("donor", rec, 0)
	jaRes, _ := ja.Process("donor", rec, 0)
	if len(enRes.ValidationErrors) == 0 || len(jaRes.ValidationErrors) == 0 {
		t.Fatalf("expected a required-field error from both processors")
	}
	if enRes.ValidationErrors[0].Message != "required field has no value" {
		t.Fatalf("unexpected english message: %q", enRes.ValidationErrors[0].Message)
	}
	if jaRes.ValidationErrors[0].Message != "必須フィールドに値がありません" {
		t.Fatalf("unexpected japanese message: %q", jaRes.ValidationErrors[0].Message)
	}

	// the two processors never leak configuration into each other
	enAgain, _ := en.Process("donor", rec, 0)
	if enAgain.ValidationErrors[0].Message != enRes.ValidationErrors[0].Message {
		t.Fatalf("message changed between calls: %q vs %q", enRes.ValidationErrors[0].Message, enAgain.ValidationErrors[0].Message)
	}
}
