package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	godict "github.com/reoring/godict"
	"github.com/reoring/godict/i18n"
	"github.com/reoring/godict/predicate"
	"github.com/reoring/godict/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "godict CLI\n\nUsage:\n  godict validate -dict dictionary.json -data schema=records.json [-data ...] [-lang en|ja]\n  godict schema -dict dictionary.json -name schemaName\n\nNotes:\n  - Dictionary and data files may be JSON or YAML (by extension).\n  - validate exits 1 when data errors were found, 2 on configuration mistakes.")
}

// dataFlags collects repeated -data schema=file pairs.
type dataFlags map[string]string

func (d dataFlags) String() string { return "" }

func (d dataFlags) Set(v string) error {
	name, file, ok := strings.Cut(v, "=")
	if !ok || name == "" || file == "" {
		return fmt.Errorf("expected schema=file, got %q", v)
	}
	d[name] = file
	return nil
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var dictFile, lang string
	data := dataFlags{}
	fs.StringVar(&dictFile, "dict", "", "dictionary file (JSON or YAML)")
	fs.Var(data, "data", "schema=file dataset pair; repeatable")
	fs.StringVar(&lang, "lang", "en", "message language (en/ja)")
	_ = fs.Parse(args)
	if dictFile == "" || len(data) == 0 {
		fs.Usage()
		os.Exit(2)
	}
	dict, err := loadDictionary(dictFile)
	if err != nil {
		fatalf("%v", err)
	}
	datasets := map[string]godict.SchemaData{}
	for name, file := range data {
		ds, err := loadDataset(file)
		if err != nil {
			fatalf("%v", err)
		}
		datasets[name] = ds
	}

	p, err := godict.NewProcessor(dict,
		godict.WithScriptEvaluator(predicate.NewRegistry()),
		godict.WithTranslator(i18n.ForLanguage(lang)),
	)
	if err != nil {
		fatalf("%v", err)
	}
	results, err := p.ProcessSchemas(datasets)
	if err != nil {
		fatalf("%v", err)
	}

	report := map[string]godict.ValidationErrors{}
	total := 0
	for name, res := range results {
		report[name] = res.ValidationErrors
		total += len(res.ValidationErrors)
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fatalf("encode report: %v", err)
	}
	fmt.Println(string(out))
	if total > 0 {
		os.Exit(1)
	}
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var dictFile, name string
	fs.StringVar(&dictFile, "dict", "", "dictionary file (JSON or YAML)")
	fs.StringVar(&name, "name", "", "schema name to export")
	_ = fs.Parse(args)
	if dictFile == "" || name == "" {
		fs.Usage()
		os.Exit(2)
	}
	dict, err := loadDictionary(dictFile)
	if err != nil {
		fatalf("%v", err)
	}
	schema, ok := dict.Schema(name)
	if !ok {
		fatalf("unknown schema %q in dictionary %q", name, dict.Name)
	}
	out, err := json.MarshalIndent(godict.JSONSchema(schema), "", "  ")
	if err != nil {
		fatalf("encode schema: %v", err)
	}
	fmt.Println(string(out))
}

func loadDictionary(file string) (godict.Dictionary, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return godict.Dictionary{}, err
	}
	if isYAML(file) {
		return source.DictionaryFromYAML(b)
	}
	return source.DictionaryFromJSON(b)
}

func loadDataset(file string) (godict.SchemaData, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if isYAML(file) {
		return source.DatasetFromYAML(b)
	}
	return source.DatasetFromJSON(b)
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "godict: "+format+"\n", args...)
	os.Exit(2)
}
