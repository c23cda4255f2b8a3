package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is a lookup table keyed on one column. Rows holds the requested
// value columns per key; when a key repeats the first row wins and the key
// is listed in Duplicates.
type Table struct {
	Name       string
	Columns    []string
	Rows       map[string][]string
	Duplicates []string
}

// Lookup returns the value columns for key.
func (t *Table) Lookup(key string) ([]string, bool) {
	v, ok := t.Rows[key]
	return v, ok
}

// NameColumns and DimensionColumns are the value columns of the two
// variable lookup tables.
var (
	NameColumns      = []string{ColStandardName, ColLongName}
	DimensionColumns = []string{ColDimensions}
)

// LoadNames reads the variable → (standard name, long name) table.
func LoadNames(path string) (*Table, error) {
	return LoadTable(path, ColVariable, NameColumns...)
}

// LoadDimensions reads the variable → dimensions table.
func LoadDimensions(path string) (*Table, error) {
	return LoadTable(path, ColVariable, DimensionColumns...)
}

// LoadTable reads a lookup CSV from path.
func LoadTable(path, key string, cols ...string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f, path, key, cols...)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a lookup table from r.
func ReadTable(r io.Reader, name, key string, cols ...string) (*Table, error) {
	cr := csv.NewReader(r)
	names, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := parseHeader(names)
	if err := h.require(append([]string{key}, cols...)...); err != nil {
		return nil, err
	}

	t := &Table{Name: name, Columns: cols, Rows: make(map[string][]string)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		k := h.get(row, key)
		if _, dup := t.Rows[k]; dup {
			t.Duplicates = append(t.Duplicates, k)
			continue
		}
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = h.get(row, c)
		}
		t.Rows[k] = vals
	}
	return t, nil
}
