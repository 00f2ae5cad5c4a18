package godict

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// runPostchecks applies the semantic validators to the coerced record:
// regex, range, enum membership, script predicates. Fields flagged earlier in
// this pass are skipped, and a field flagged by one of these validators is
// excluded from the ones after it. Absent values are exempt from regex, range
// and enum checks, but script predicates still run on them: a predicate may
// read the whole record and require a value conditionally.
func (p *Processor) runPostchecks(schema SchemaDefinition, typed TypedDataRecord, index int, pre precheckResult) []SchemaValidationError {
	var errs []SchemaValidationError
	for _, f := range schema.Fields {
		if pre.flagged[f.Name] {
			continue
		}
		v := typed[f.Name]
		if !v.IsAbsent() {
			if e, bad := p.checkRegex(f, v, index); bad {
				errs = append(errs, e)
				pre.flagged[f.Name] = true
				continue
			}
			if e, bad := p.checkRange(f, v, index); bad {
				errs = append(errs, e)
				pre.flagged[f.Name] = true
				continue
			}
			if e, bad := p.checkEnum(f, v, index); bad {
				errs = append(errs, e)
				pre.flagged[f.Name] = true
				continue
			}
		}
		if e, bad := p.checkScript(f, typed, v, index); bad {
			errs = append(errs, e)
			pre.flagged[f.Name] = true
		}
	}
	return errs
}

// checkRegex tests every string element against the field's pattern and
// aggregates the failing elements into one error carrying the pattern, the
// offending values and any declared examples.
func (p *Processor) checkRegex(f FieldDefinition, v FieldValue, index int) (SchemaValidationError, bool) {
	if f.Restrictions.Regex == "" || v.Kind() != KindString {
		return SchemaValidationError{}, false
	}
	re := p.regexes[f.Restrictions.Regex]
	var bad []string
	for _, e := range v.Strings() {
		if !re.MatchString(e) {
			bad = append(bad, e)
		}
	}
	if len(bad) == 0 {
		return SchemaValidationError{}, false
	}
	info := map[string]string{
		"regex": f.Restrictions.Regex,
		"value": strings.Join(bad, ", "),
	}
	if len(f.Meta.Examples) > 0 {
		info["examples"] = strings.Join(f.Meta.Examples, ", ")
	}
	return newError(p.tr, ErrorInvalidByRegex, f.Name, index, info), true
}

// checkRange tests every numeric element against the active bounds and
// aggregates the offending elements into one error.
func (p *Processor) checkRange(f FieldDefinition, v FieldValue, index int) (SchemaValidationError, bool) {
	r := f.Restrictions.Range
	if r == nil {
		return SchemaValidationError{}, false
	}
	nums := v.Numbers()
	if nums == nil {
		return SchemaValidationError{}, false
	}
	var bad []string
	for _, n := range nums {
		if outOfRange(r, n) {
			bad = append(bad, strconv.FormatFloat(n, 'g', -1, 64))
		}
	}
	if len(bad) == 0 {
		return SchemaValidationError{}, false
	}
	return newError(p.tr, ErrorInvalidByRange, f.Name, index, map[string]string{
		"range": renderRange(r),
		"value": strings.Join(bad, ", "),
	}), true
}

func outOfRange(r *RangeRule, n float64) bool {
	return (r.Min != nil && n < *r.Min) ||
		(r.ExclusiveMin != nil && n <= *r.ExclusiveMin) ||
		(r.Max != nil && n > *r.Max) ||
		(r.ExclusiveMax != nil && n >= *r.ExclusiveMax)
}

// renderRange produces a stable human rendering of the active bounds, lower
// bound first.
func renderRange(r *RangeRule) string {
	var parts []string
	if r.Min != nil {
		parts = append(parts, ">= "+strconv.FormatFloat(*r.Min, 'g', -1, 64))
	}
	if r.ExclusiveMin != nil {
		parts = append(parts, "> "+strconv.FormatFloat(*r.ExclusiveMin, 'g', -1, 64))
	}
	if r.Max != nil {
		parts = append(parts, "<= "+strconv.FormatFloat(*r.Max, 'g', -1, 64))
	}
	if r.ExclusiveMax != nil {
		parts = append(parts, "< "+strconv.FormatFloat(*r.ExclusiveMax, 'g', -1, 64))
	}
	return strings.Join(parts, ", ")
}

// checkEnum reports elements missing from the codeList. Coercion already
// canonicalized casing, so membership is an exact match over the canonical
// rendering; empty elements are exempt.
func (p *Processor) checkEnum(f FieldDefinition, v FieldValue, index int) (SchemaValidationError, bool) {
	if len(f.Restrictions.CodeList) == 0 {
		return SchemaValidationError{}, false
	}
	allowed := make(map[string]bool, len(f.Restrictions.CodeList))
	for _, c := range f.Restrictions.CodeList {
		allowed[c] = true
	}
	var bad []string
	for _, e := range v.Canonical() {
		if e == "" {
			continue
		}
		if !allowed[e] {
			bad = append(bad, e)
		}
	}
	if len(bad) == 0 {
		return SchemaValidationError{}, false
	}
	return newError(p.tr, ErrorInvalidEnumValue, f.Name, index, map[string]string{
		"value": strings.Join(bad, ", "),
	}), true
}

// checkScript runs the field's named predicates in declared order, stopping
// at the first failing one. Evaluation errors (unknown name, panicking
// predicate) become a generic failing result and never propagate.
func (p *Processor) checkScript(f FieldDefinition, rec TypedDataRecord, v FieldValue, index int) (SchemaValidationError, bool) {
	for _, name := range f.Restrictions.Script {
		res := p.evaluate(name, rec, v, f.Name)
		if !res.Valid {
			return newError(p.tr, ErrorInvalidByScript, f.Name, index, map[string]string{
				"script":  name,
				"message": res.Message,
			}), true
		}
	}
	return SchemaValidationError{}, false
}

func (p *Processor) evaluate(name string, rec TypedDataRecord, v FieldValue, field string) ScriptResult {
	if p.scripts == nil {
		return ScriptResult{Message: "script predicate failed to execute"}
	}
	res, err := p.scripts.Evaluate(name, rec, v, field)
	if err != nil {
		return ScriptResult{Message: "script predicate failed to execute"}
	}
	return res
}

// compileRegexes precompiles every pattern the dictionary declares. A pattern
// that does not compile is a configuration mistake, reported up front.
func compileRegexes(dict Dictionary) (map[string]*regexp.Regexp, error) {
	out := map[string]*regexp.Regexp{}
	for _, s := range dict.Schemas {
		for _, f := range s.Fields {
			pat := f.Restrictions.Regex
			if pat == "" {
				continue
			}
			if _, ok := out[pat]; ok {
				continue
			}
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("godict: schema %q field %q: compile regex: %w", s.Name, f.Name, err)
			}
			out[pat] = re
		}
	}
	return out, nil
}
