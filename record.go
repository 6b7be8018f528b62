package fondos

import (
	"encoding/json"
	"io"
)

// Record is a sparse record sent to the remote store: a field is present only
// when its source value was reported.
type Record map[string]any

// Set stores v under col unless v is missing.
func (r Record) Set(col string, v Value) {
	if v.IsMissing() {
		return
	}
	r[col] = v.JSON()
}

// SetFrom copies the given columns of row into r, skipping missing values.
func (r Record) SetFrom(row Row, cols ...string) {
	for _, c := range cols {
		r.Set(c, row.Get(c))
	}
}

// EncodeRecords writes records as JSON lines, one record per line.
func EncodeRecords(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
