package source

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	godict "github.com/reoring/godict"
)

// DatasetFromJSON decodes one dataset: an ordered array of flat records.
func DatasetFromJSON(b []byte) (godict.SchemaData, error) {
	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("source: decode dataset: %w", err)
	}
	return buildDataset(rows)
}

// DatasetFromYAML decodes one dataset.
func DatasetFromYAML(b []byte) (godict.SchemaData, error) {
	var rows []map[string]any
	if err := yaml.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("source: decode dataset: %w", err)
	}
	return buildDataset(rows)
}

// DatasetsFromJSON decodes a batch of named datasets, keyed by schema name.
func DatasetsFromJSON(b []byte) (map[string]godict.SchemaData, error) {
	var doc map[string][]map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("source: decode datasets: %w", err)
	}
	return buildDatasets(doc)
}

// DatasetsFromYAML decodes a batch of named datasets, keyed by schema name.
func DatasetsFromYAML(b []byte) (map[string]godict.SchemaData, error) {
	var doc map[string][]map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("source: decode datasets: %w", err)
	}
	return buildDatasets(doc)
}

func buildDatasets(doc map[string][]map[string]any) (map[string]godict.SchemaData, error) {
	out := make(map[string]godict.SchemaData, len(doc))
	for name, rows := range doc {
		data, err := buildDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("source: dataset %q: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

func buildDataset(rows []map[string]any) (godict.SchemaData, error) {
	data := make(godict.SchemaData, 0, len(rows))
	for i, row := range rows {
		rec := make(godict.DataRecord, len(row))
		for key, v := range row {
			rv, err := rawValue(v)
			if err != nil {
				return nil, fmt.Errorf("source: record %d field %q: %w", i, key, err)
			}
			rec[key] = rv
		}
		data = append(data, rec)
	}
	return data, nil
}

// rawValue normalizes a decoded document value into the engine's raw shape:
// scalars become strings, lists become string arrays. Nested objects are not
// a tabular value.
func rawValue(v any) (godict.RawValue, error) {
	switch n := v.(type) {
	case []any:
		elems := make([]string, len(n))
		for i, e := range n {
			if _, nested := e.(map[string]any); nested {
				return godict.RawValue{}, fmt.Errorf("nested object in array value")
			}
			elems[i] = scalarString(e)
		}
		return godict.Strings(elems...), nil
	case map[string]any:
		return godict.RawValue{}, fmt.Errorf("nested object value")
	default:
		return godict.String(scalarString(v)), nil
	}
}
