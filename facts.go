package fondos

import (
	"strconv"
	"time"

	"github.com/etnz/fondos/date"
)

// FallbackAsOf is the as-of date given to return records whose fm_fecha
// cannot be read.
var FallbackAsOf = date.New(2025, time.September, 30)

// FactStats reports what a fact builder did with its input.
type FactStats struct {
	Rows          int // rows read
	Built         int // records produced
	InvalidKey    int // rows skipped because their key is unusable
	Unresolved    int // rows skipped because their fund is not in the registry
	DateCorrected int // rows whose as-of date was replaced by FallbackAsOf
}

// Dropped returns the number of rows that did not produce a record.
func (s FactStats) Dropped() int { return s.InvalidKey + s.Unresolved }

// BuildReturns produces a return record for every row of the returns extract
// whose fund is resolved by ids. Rows of unknown funds are skipped.
func BuildReturns(t *Table, ids KeyMap) ([]Record, FactStats) {
	return buildFacts(t, ids, func(row Row, r Record, stats *FactStats) {
		asOf, ok := parseAsOf(row.Get(ColAsOf))
		if !ok {
			stats.DateCorrected++
		}
		r[ColAsOf] = asOf
		r.SetFrom(row, ReturnFigures...)
	})
}

// BuildCosts produces a cost record for every row of the costs extract whose
// fund is resolved by ids. Rows of unknown funds are skipped.
func BuildCosts(t *Table, ids KeyMap) ([]Record, FactStats) {
	return buildFacts(t, ids, func(row Row, r Record, _ *FactStats) {
		r.SetFrom(row, ColSyntheticCost, ColAssets, ColDateNum)
	})
}

// buildFacts resolves every row and lets fill complete the record.
func buildFacts(t *Table, ids KeyMap, fill func(Row, Record, *FactStats)) ([]Record, FactStats) {
	var stats FactStats
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		stats.Rows++
		k, ok := row.Key()
		if !ok {
			stats.InvalidKey++
			continue
		}
		id, ok := ids[k]
		if !ok {
			stats.Unresolved++
			continue
		}
		r := Record{
			ColFund:  id,
			ColRun:   k.Run,
			ColSerie: k.Serie,
		}
		fill(row, r, &stats)
		records = append(records, r)
	}
	stats.Built = len(records)
	return records, stats
}

// parseAsOf reads an 8-digit numeric date. It returns FallbackAsOf and false
// when the value is missing or not a calendar day.
func parseAsOf(v Value) (date.Date, bool) {
	s := v.String()
	if n, ok := v.Int(); ok {
		s = strconv.FormatInt(n, 10)
	}
	d, err := date.ParseCompact(s)
	if err != nil {
		return FallbackAsOf, false
	}
	return d, true
}
