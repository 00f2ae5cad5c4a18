package i18n

// Translator retrieves localized messages for validation error kinds.
// data provides the error's structured info to embed in the message (for
// example, "value" or "regex").
type Translator interface {
	Message(kind string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Messages are a
// pure function of kind and data: identical inputs yield identical wording.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(kind string, data map[string]string) string {
	switch t.lang {
	case "ja":
		return jaMessage(kind, data)
	default: // "en"
		return enMessage(kind, data)
	}
}

func enMessage(kind string, data map[string]string) string {
	switch kind {
	case "MISSING_REQUIRED_FIELD":
		return "required field has no value"
	case "INVALID_FIELD_VALUE_TYPE":
		if vt := data["valueType"]; vt != "" {
			return "value is not of the declared type: " + vt
		}
		return "value is not of the declared type"
	case "UNRECOGNIZED_FIELD":
		return "field is not described in the schema"
	case "INVALID_BY_REGEX":
		msg := "value does not match the expected pattern: " + data["regex"]
		if ex := data["examples"]; ex != "" {
			msg += " (examples: " + ex + ")"
		}
		return msg
	case "INVALID_BY_RANGE":
		return "value is out of the permitted range: " + data["range"]
	case "INVALID_ENUM_VALUE":
		return "value is not one of the permitted values"
	case "INVALID_BY_SCRIPT":
		if m := data["message"]; m != "" {
			return m
		}
		return "value failed script validation"
	case "INVALID_BY_UNIQUE":
		return "value must be unique across the dataset: " + data["value"]
	case "INVALID_BY_UNIQUE_KEY":
		return "key (" + data["uniqueKey"] + ") must be unique across the dataset: " + data["value"]
	case "INVALID_BY_FOREIGN_KEY":
		return "value has no matching record in schema " + data["foreignSchema"] + ": " + data["value"]
	}
	return kind
}

func jaMessage(kind string, data map[string]string) string {
	switch kind {
	case "MISSING_REQUIRED_FIELD":
		return "必須フィールドに値がありません"
	case "INVALID_FIELD_VALUE_TYPE":
		if vt := data["valueType"]; vt != "" {
			return "値が宣言された型ではありません: " + vt
		}
		return "値が宣言された型ではありません"
	case "UNRECOGNIZED_FIELD":
		return "スキーマに定義されていないフィールドです"
	case "INVALID_BY_REGEX":
		msg := "値がパターンに一致しません: " + data["regex"]
		if ex := data["examples"]; ex != "" {
			msg += " (例: " + ex + ")"
		}
		return msg
	case "INVALID_BY_RANGE":
		return "値が許容範囲外です: " + data["range"]
	case "INVALID_ENUM_VALUE":
		return "許可された値ではありません"
	case "INVALID_BY_SCRIPT":
		if m := data["message"]; m != "" {
			return m
		}
		return "スクリプト検証に失敗しました"
	case "INVALID_BY_UNIQUE":
		return "値はデータセット内で一意でなければなりません: " + data["value"]
	case "INVALID_BY_UNIQUE_KEY":
		return "キー (" + data["uniqueKey"] + ") はデータセット内で一意でなければなりません: " + data["value"]
	case "INVALID_BY_FOREIGN_KEY":
		return "スキーマ " + data["foreignSchema"] + " に対応するレコードがありません: " + data["value"]
	}
	return kind
}

// ForLanguage returns the built-in dictionary Translator for the given
// language ("en"/"ja"); anything else falls back to "en".
func ForLanguage(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given kind using the current Translator.
func T(kind string, data map[string]string) string { return currentTranslator.Message(kind, data) }
