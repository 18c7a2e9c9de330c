package earnings

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Builder collects raw string records from any source (CSV, SQL, object
// store) and types the columns once all rows are in.
type Builder struct {
	header []string
	cells  [][]string // column-major
}

// NewBuilder starts a dataset with the given header. Names are trimmed;
// duplicate or empty names are rejected by Build.
func NewBuilder(header []string) *Builder {
	h := make([]string, len(header))
	for i, name := range header {
		h[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	return &Builder{header: h, cells: make([][]string, len(h))}
}

// Append adds one record. The record must have one cell per header column.
func (b *Builder) Append(record []string) error {
	if len(record) != len(b.header) {
		return fmt.Errorf("record has %d fields, header has %d", len(record), len(b.header))
	}
	for i, v := range record {
		b.cells[i] = append(b.cells[i], strings.TrimSpace(v))
	}
	return nil
}

// Build types every column and returns the immutable dataset. A column is
// numeric when every non-empty cell parses as a finite float; empty cells
// in numeric columns become NaN and are skipped by the means. A column with
// no values at all is numeric too, so an empty dataset still validates.
func (b *Builder) Build() (*Dataset, error) {
	ds := &Dataset{
		order:   make([]string, 0, len(b.header)),
		columns: make(map[string]column, len(b.header)),
	}
	for i, name := range b.header {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := ds.columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		ds.order = append(ds.order, name)
		ds.columns[name] = typeColumn(b.cells[i])
	}
	if len(b.cells) > 0 {
		ds.rows = len(b.cells[0])
	}
	return ds, nil
}

func typeColumn(values []string) column {
	numbers := make([]float64, len(values))
	seen := false
	for i, v := range values {
		if v == "" {
			numbers[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return column{kind: KindText, text: values}
		}
		numbers[i] = f
		seen = true
	}
	if !seen {
		// blank column: numeric for requirements, blanks for grouping
		return column{kind: KindNumber, numbers: numbers, text: values}
	}
	return column{kind: KindNumber, numbers: numbers}
}

// FromMaps builds a dataset from row maps, mainly for fixtures. The header
// is the sorted union of keys; absent keys become empty cells.
func FromMaps(rows []map[string]any) (*Dataset, error) {
	keys := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			keys[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	b := NewBuilder(header)
	for _, r := range rows {
		rec := make([]string, len(header))
		for i, k := range header {
			if v, ok := r[k]; ok && v != nil {
				rec[i] = fmt.Sprint(v)
			}
		}
		if err := b.Append(rec); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
