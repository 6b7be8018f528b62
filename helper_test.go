package fondos

import "testing"

// table is a helper for tests to build a table from raw cells, failing on
// conversion errors.
func table(t *testing.T, name string, schema Schema, rows ...map[string]string) *Table {
	t.Helper()
	tb := NewTable(name, schema)
	for _, r := range rows {
		if err := tb.Append(r); err != nil {
			t.Fatalf("Append(%v) unexpected error: %v", r, err)
		}
	}
	return tb
}
