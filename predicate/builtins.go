package predicate

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	godict "github.com/reoring/godict"
)

var (
	alphanumericRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	numericStringRe = regexp.MustCompile(`^[0-9]+$`)
)

func registerBuiltins(r *Registry) {
	r.Register("nonEmpty", nonEmpty)
	r.Register("alphanumeric", elementPredicate("must contain only letters and digits", func(s string) bool {
		return alphanumericRe.MatchString(s)
	}))
	r.Register("numericString", elementPredicate("must contain only digits", func(s string) bool {
		return numericStringRe.MatchString(s)
	}))
	r.Register("email", elementPredicate("must be a valid email address", validEmail))
	r.Register("url", elementPredicate("must be a valid URL", validURL))
	r.Register("dateRFC3339", elementPredicate("must be an RFC3339 timestamp", func(s string) bool {
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	}))
}

func nonEmpty(_ godict.TypedDataRecord, value godict.FieldValue, _ string) godict.ScriptResult {
	for _, e := range value.Canonical() {
		if strings.TrimSpace(e) == "" {
			return godict.ScriptResult{Message: "must not be empty"}
		}
	}
	return godict.ScriptResult{Valid: true}
}

// elementPredicate lifts a per-element check over scalar and array values.
// Empty elements pass; emptiness is the required restriction's concern.
func elementPredicate(failMsg string, ok func(string) bool) Func {
	return func(_ godict.TypedDataRecord, value godict.FieldValue, _ string) godict.ScriptResult {
		for _, e := range value.Canonical() {
			if e == "" {
				continue
			}
			if !ok(e) {
				return godict.ScriptResult{Message: failMsg}
			}
		}
		return godict.ScriptResult{Valid: true}
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	parts := strings.Split(addr.Address, "@")
	return len(parts) == 2 && strings.Contains(parts[1], ".")
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
