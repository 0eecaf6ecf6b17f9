package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/caseload/internal/engine"
	"gopkg.in/yaml.v3"
)

// Row is one imported case row with its origin for error messages.
type Row struct {
	Source string
	Line   int
	Record engine.Record
}

// Table is everything read from one or more input files.
type Table struct {
	Rows []Row
	// Columns are the canonical keys present in the input, in first-seen order.
	Columns []string
	// Ignored are raw headers that map to no scoring attribute.
	Ignored []string
}

var supportedExts = map[string]bool{".csv": true, ".json": true, ".yaml": true, ".yml": true}

// Load reads a single file or every supported file in a directory.
// Lock files starting with "~$" are skipped.
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading import path: %w", err)
	}
	if !info.IsDir() {
		t := &Table{}
		if err := t.loadFile(path); err != nil {
			return nil, err
		}
		return t, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("listing import directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if supportedExts[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(path, name))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no .csv, .json or .yaml files in %s", path)
	}

	t := &Table{}
	for _, f := range files {
		if err := t.loadFile(f); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	source := filepath.Base(path)
	// Spreadsheet tools prefix UTF-8 exports with a BOM.
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var raw []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = decodeCSV(bytes.NewReader(data))
	case ".json":
		raw, err = decodeJSON(data)
	case ".yaml", ".yml":
		raw, err = decodeYAML(data)
	default:
		return fmt.Errorf("%s: unsupported file type", source)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}

	for i, r := range raw {
		rec := t.normalize(r)
		if len(rec) == 0 {
			continue
		}
		// Line numbers count the CSV header; for JSON/YAML they are 1-based items.
		line := i + 1
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			line = i + 2
		}
		t.Rows = append(t.Rows, Row{Source: source, Line: line, Record: rec})
	}
	return nil
}

// normalize maps headers to canonical keys and drops blank cells. A record
// with no non-blank scoring cell comes back empty.
func (t *Table) normalize(r map[string]any) engine.Record {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := engine.Record{}
	for _, rawKey := range keys {
		key, ok := CanonicalHeader(rawKey)
		if !ok {
			if !isDerivedHeader(rawKey) {
				t.noteIgnored(cleanHeader(rawKey))
			}
			continue
		}
		t.noteColumn(key)
		v := r[rawKey]
		if isBlank(v) {
			continue
		}
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		rec[key] = v
	}
	return rec
}

func (t *Table) noteColumn(key string) {
	for _, c := range t.Columns {
		if c == key {
			return
		}
	}
	t.Columns = append(t.Columns, key)
}

func (t *Table) noteIgnored(h string) {
	if h == "" {
		return
	}
	for _, c := range t.Ignored {
		if c == h {
			return
		}
	}
	t.Ignored = append(t.Ignored, h)
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

func decodeCSV(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var out []map[string]any
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			} else {
				row[h] = nil
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// decodeJSON accepts a bare array of objects or {"cases": [...]}.
func decodeJSON(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case []any:
		return objects(t)
	case map[string]any:
		if cases, ok := t["cases"].([]any); ok {
			return objects(cases)
		}
		return nil, fmt.Errorf(`expected an array of cases or an object with a "cases" array`)
	default:
		return nil, fmt.Errorf("expected an array of cases")
	}
}

func decodeYAML(data []byte) ([]map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return objects(t)
	case map[string]any:
		if cases, ok := t["cases"].([]any); ok {
			return objects(cases)
		}
		return nil, fmt.Errorf(`expected a list of cases or a mapping with a "cases" list`)
	default:
		return nil, fmt.Errorf("expected a list of cases")
	}
}

func objects(items []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is not an object", i+1)
		}
		out = append(out, m)
	}
	return out, nil
}
