package fondos

import (
	"fmt"
	"strings"
)

// Column declares a column of an extract.
type Column struct {
	Name string
	Kind Kind
}

// Schema lists the columns required from an extract.
type Schema []Column

// Names returns the column names, in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the column called name (case insensitive).
func (s Schema) Lookup(name string) (Column, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Row is a single line of an extract, indexed by column name.
type Row map[string]Value

// Get returns the value in column col, Missing if absent.
func (r Row) Get(col string) Value { return r[col] }

// Key returns the composite natural key of the row.
func (r Row) Key() (Key, bool) { return KeyOf(r.Get(ColRun), r.Get(ColSerie)) }

// Table is an in-memory extract: the rows of one source, projected on a Schema.
type Table struct {
	Name    string // usually the file name, for messages
	Schema  Schema
	Rows    []Row
	Invalid int // cells that could not be converted to their column kind
}

// NewTable returns an empty table for schema.
func NewTable(name string, schema Schema) *Table {
	return &Table{Name: name, Schema: schema}
}

// Append adds a row to the table, converting raw cells according to the schema.
// cells maps column names to raw text; columns absent from cells are Missing.
// Cells that do not convert are recorded as Missing and counted in t.Invalid.
func (t *Table) Append(cells map[string]string) error {
	row := make(Row, len(t.Schema))
	var bad []string
	for _, c := range t.Schema {
		raw, ok := cells[c.Name]
		if !ok {
			continue
		}
		v, err := ParseValue(c.Kind, raw)
		if err != nil {
			t.Invalid++
			bad = append(bad, c.Name)
			continue
		}
		if !v.IsMissing() {
			row[c.Name] = v
		}
	}
	t.Rows = append(t.Rows, row)
	if len(bad) > 0 {
		return fmt.Errorf("%s row %d: invalid %s", t.Name, len(t.Rows), strings.Join(bad, ", "))
	}
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }
