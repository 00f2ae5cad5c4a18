package godict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/godict/i18n"
)

// Error kinds (exported consts for IDE completion and type safety by convention)
const (
	ErrorMissingRequiredField  = "MISSING_REQUIRED_FIELD"
	ErrorInvalidFieldValueType = "INVALID_FIELD_VALUE_TYPE"
	ErrorUnrecognizedField     = "UNRECOGNIZED_FIELD"
	ErrorInvalidByRegex        = "INVALID_BY_REGEX"
	ErrorInvalidByRange        = "INVALID_BY_RANGE"
	ErrorInvalidEnumValue      = "INVALID_ENUM_VALUE"
	ErrorInvalidByScript       = "INVALID_BY_SCRIPT"
	// Dataset-level constraints
	ErrorInvalidByUnique    = "INVALID_BY_UNIQUE"
	ErrorInvalidByUniqueKey = "INVALID_BY_UNIQUE_KEY"
	// Cross-schema constraints
	ErrorInvalidByForeignKey = "INVALID_BY_FOREIGN_KEY"
)

// ErrUnknownSchema reports a schema name not present in the dictionary. This
// is a configuration mistake, never a data error, so it is returned rather
// than collected.
var ErrUnknownSchema = errors.New("godict: unknown schema")

// SchemaValidationError represents a single data error.
type SchemaValidationError struct {
	// Kind is one of the error kinds listed above.
	Kind string `json:"errorType"`
	// Field names the offending field; dataset-level errors may carry a
	// joined field list (composite keys, foreign-key mappings).
	Field string `json:"fieldName"`
	// Index is the 0-based position of the record in its dataset.
	Index int `json:"index"`
	// Info carries kind-specific structured parameters (e.g. {"value":"12"})
	// for message formatting and observability.
	Info map[string]string `json:"info,omitempty"`
	// Message is produced deterministically from Kind and Info.
	Message string `json:"message"`
}

// ValidationErrors is a collection of data errors that implements error.
type ValidationErrors []SchemaValidationError

// Error summarizes the first few errors.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ve)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		e := ve[i]
		// e.g. MISSING_REQUIRED_FIELD at donor[3].gender
		fmt.Fprintf(b, "%s at [%d].%s", e.Kind, e.Index, e.Field)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidationErrors extracts ValidationErrors from an error using errors.As
// internally.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// newError builds an error with its message resolved through the given
// translator, or the package-wide i18n catalog when none is set. Identical
// kind+info always yields an identical message for a given translator.
func newError(tr i18n.Translator, kind, field string, index int, info map[string]string) SchemaValidationError {
	msg := ""
	if tr != nil {
		msg = tr.Message(kind, info)
	} else {
		msg = i18n.T(kind, info)
	}
	return SchemaValidationError{
		Kind:    kind,
		Field:   field,
		Index:   index,
		Info:    info,
		Message: msg,
	}
}
