package godict

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/reoring/godict/i18n"
)

// ScriptResult is the outcome of one script predicate.
type ScriptResult struct {
	Valid   bool
	Message string
}

// ScriptEvaluator resolves a named predicate and runs it against one field of
// one typed record. Implementations live outside the engine (see the
// predicate package); the engine converts any returned error into a generic
// failing result.
type ScriptEvaluator interface {
	Evaluate(name string, record TypedDataRecord, value FieldValue, field string) (ScriptResult, error)
}

// Processor validates and coerces records against one dictionary snapshot.
// It owns the compiled regexes, the script evaluator and the message
// translator explicitly; there is no ambient shared state. A Processor is
// read-only after construction.
type Processor struct {
	dict    Dictionary
	scripts ScriptEvaluator
	tr      i18n.Translator
	regexes map[string]*regexp.Regexp
}

// Option configures a Processor.
type Option func(*Processor)

// WithScriptEvaluator installs the evaluator used for script restrictions.
// Without one, every script restriction fails with a generic message.
func WithScriptEvaluator(ev ScriptEvaluator) Option {
	return func(p *Processor) { p.scripts = ev }
}

// WithTranslator installs the translator that formats error messages for this
// Processor. Without one, the i18n package default applies.
func WithTranslator(tr i18n.Translator) Option {
	return func(p *Processor) { p.tr = tr }
}

// NewProcessor builds a Processor for the given dictionary. Malformed regex
// restrictions are configuration mistakes and fail construction.
func NewProcessor(dict Dictionary, opts ...Option) (*Processor, error) {
	regexes, err := compileRegexes(dict)
	if err != nil {
		return nil, err
	}
	p := &Processor{dict: dict, regexes: regexes}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// RecordResult is the outcome of processing a single record.
type RecordResult struct {
	ValidationErrors ValidationErrors
	Record           TypedDataRecord
}

// BatchProcessingResult is the outcome of processing one dataset: every error
// collected along the way plus the (possibly partially coerced) records, one
// per input row, in input order.
type BatchProcessingResult struct {
	ValidationErrors ValidationErrors
	ProcessedRecords []TypedDataRecord
}

// Process runs one record through the pipeline: default population,
// structural checks, coercion (skipping flagged fields), semantic checks.
// Bad data never returns an error; only an unknown schema name does.
func (p *Processor) Process(schemaName string, rec DataRecord, index int) (RecordResult, error) {
	schema, ok := p.dict.Schema(schemaName)
	if !ok {
		return RecordResult{}, fmt.Errorf("%w: %q", ErrUnknownSchema, schemaName)
	}
	return p.processRecord(schema, rec, index), nil
}

// processRecord walks the record through its states, strictly in order and
// without early abort: raw -> defaulted -> structurally-checked -> coerced ->
// semantically-checked. The input record is copied once up front and staged
// privately; the caller's map is never touched.
func (p *Processor) processRecord(schema SchemaDefinition, rec DataRecord, index int) RecordResult {
	staged := populateDefaults(schema, rec)
	errs, pre := runPrechecks(schema, staged, index, p.tr)
	typed := coerceRecord(schema, staged, pre)
	errs = append(errs, p.runPostchecks(schema, typed, index, pre)...)
	return RecordResult{ValidationErrors: errs, Record: typed}
}

// ProcessRecords maps Process over a whole dataset, then appends the
// dataset-level constraint errors (unique fields, composite unique key).
func (p *Processor) ProcessRecords(schemaName string, data SchemaData) (BatchProcessingResult, error) {
	schema, ok := p.dict.Schema(schemaName)
	if !ok {
		return BatchProcessingResult{}, fmt.Errorf("%w: %q", ErrUnknownSchema, schemaName)
	}
	var out BatchProcessingResult
	for i, rec := range data {
		r := p.processRecord(schema, rec, i)
		out.ValidationErrors = append(out.ValidationErrors, r.ValidationErrors...)
		out.ProcessedRecords = append(out.ProcessedRecords, r.Record)
	}
	out.ValidationErrors = append(out.ValidationErrors, checkDatasetConstraints(schema, out.ProcessedRecords, p.tr)...)
	return out, nil
}

// ProcessSchemas processes several named datasets as one batch, then runs the
// cross-schema foreign-key checks over the full typed batch and merges their
// errors into the owning schema's result. Datasets are processed in name
// order so output is deterministic.
func (p *Processor) ProcessSchemas(datasets map[string]SchemaData) (map[string]BatchProcessingResult, error) {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]BatchProcessingResult, len(names))
	typed := make(map[string][]TypedDataRecord, len(names))
	for _, name := range names {
		res, err := p.ProcessRecords(name, datasets[name])
		if err != nil {
			return nil, err
		}
		results[name] = res
		typed[name] = res.ProcessedRecords
	}

	for _, name := range names {
		schema, _ := p.dict.Schema(name)
		fkErrs := checkForeignKeys(schema, typed[name], typed, p.tr)
		if len(fkErrs) > 0 {
			res := results[name]
			res.ValidationErrors = append(res.ValidationErrors, fkErrs...)
			results[name] = res
		}
	}
	return results, nil
}
