package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("MISSING_REQUIRED_FIELD", nil); msg == "MISSING_REQUIRED_FIELD" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("MISSING_REQUIRED_FIELD", nil); msg == "required field has no value" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsInfoDeterministically(t *testing.T) {
	data := map[string]string{"regex": "^[A-Z]+$", "examples": "ABC"}
	a := T("INVALID_BY_REGEX", data)
	b := T("INVALID_BY_REGEX", data)
	if a != b {
		t.Fatalf("identical kind+info must yield identical wording: %q vs %q", a, b)
	}
	if a != "value does not match the expected pattern: ^[A-Z]+$ (examples: ABC)" {
		t.Fatalf("unexpected wording: %q", a)
	}
}

func TestForLanguage_CatalogsCarryTheSameInfo(t *testing.T) {
	data := map[string]string{"regex": "^[A-Z]+$", "examples": "ABC, XYZ"}
	en := ForLanguage("en").Message("INVALID_BY_REGEX", data)
	ja := ForLanguage("ja").Message("INVALID_BY_REGEX", data)
	if en != "value does not match the expected pattern: ^[A-Z]+$ (examples: ABC, XYZ)" {
		t.Fatalf("unexpected english wording: %q", en)
	}
	if ja != "値がパターンに一致しません: ^[A-Z]+$ (例: ABC, XYZ)" {
		t.Fatalf("unexpected japanese wording: %q", ja)
	}
	// unknown languages fall back to english
	if got := ForLanguage("fr").Message("MISSING_REQUIRED_FIELD", nil); got != "required field has no value" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestTranslator_ScriptMessagePassesThrough(t *testing.T) {
	if msg := T("INVALID_BY_SCRIPT", map[string]string{"message": "US postal codes have 5 digits"}); msg != "US postal codes have 5 digits" {
		t.Fatalf("script message must surface verbatim, got %q", msg)
	}
	if msg := T("INVALID_BY_SCRIPT", nil); msg == "" {
		t.Fatalf("expected generic fallback message")
	}
}

func TestTranslator_UnknownKindFallsBackToKind(t *testing.T) {
	if msg := T("SOMETHING_ELSE", nil); msg != "SOMETHING_ELSE" {
		t.Fatalf("expected kind echo for unknown kinds, got %q", msg)
	}
}
