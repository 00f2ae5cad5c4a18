package godict

// Package godict validates batches of flat, string-valued tabular records
// against a data dictionary and coerces them into typed records:
//
// - A staged rule pipeline: default population, structural (pre-coercion)
//   checks, type coercion, semantic (post-coercion) checks
// - Whole-dataset constraints (unique fields, composite unique keys) and
//   cross-schema foreign-key existence checks over a batch of named datasets
// - A stable error model via ValidationErrors (kind, field, record index,
//   structured info, deterministic message)
// - Named, statically-compiled script predicates via the predicate package
//
// Design policy:
// - Keep only public APIs in the root package; dictionary/dataset document
//   decoding lives under source/, predicates under predicate/, message
//   catalogs under i18n/, and the CLI under cmd/godict.
// - Bad data never aborts processing: data errors are collected into the
//   result; only configuration mistakes (unknown schema name, malformed
//   regex) surface as returned errors.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  p, err := godict.NewProcessor(dict, godict.WithScriptEvaluator(reg))
//  res, err := p.ProcessRecords("donor", records)
//  all, err := p.ProcessSchemas(map[string]godict.SchemaData{...})
