package fondos

import (
	"slices"
)

// RegistryStats reports what BuildRegistry did with its input.
type RegistryStats struct {
	ReturnRows int // rows read from the returns extract
	CostRows   int // rows read from the costs extract
	InvalidKey int // rows skipped because their key is unusable
	Duplicates int // rows dropped because their key was already seen
	Funds      int // fund records produced
}

// fundRow is the outer join of both extracts for a single key.
type fundRow struct {
	key     Key
	returns Row // nil when the fund is absent from the returns extract
	costs   Row // nil when the fund is absent from the costs extract
}

// BuildRegistry merges the returns and costs extracts into one sparse Fund
// record per (fo_run, fm_serie).
//
// It is a full outer join: a fund present in a single extract is kept, with the
// other side's fields absent. When a key repeats within an extract, the first
// row wins and later ones are dropped. Records are sorted by key.
func BuildRegistry(returns, costs *Table) ([]Record, RegistryStats) {
	var stats RegistryStats
	funds := make(map[Key]*fundRow)

	get := func(k Key) *fundRow {
		f, ok := funds[k]
		if !ok {
			f = &fundRow{key: k}
			funds[k] = f
		}
		return f
	}

	for _, row := range returns.Rows {
		stats.ReturnRows++
		k, ok := row.Key()
		if !ok {
			stats.InvalidKey++
			continue
		}
		f := get(k)
		if f.returns != nil {
			stats.Duplicates++
			continue
		}
		f.returns = row
	}
	for _, row := range costs.Rows {
		stats.CostRows++
		k, ok := row.Key()
		if !ok {
			stats.InvalidKey++
			continue
		}
		f := get(k)
		if f.costs != nil {
			stats.Duplicates++
			continue
		}
		f.costs = row
	}

	rows := make([]*fundRow, 0, len(funds))
	for _, f := range funds {
		rows = append(rows, f)
	}
	slices.SortFunc(rows, func(a, b *fundRow) int { return a.key.Compare(b.key) })

	records := make([]Record, 0, len(rows))
	for _, f := range rows {
		records = append(records, f.record())
	}
	stats.Funds = len(records)
	return records, stats
}

// record serializes the joined row.
func (f *fundRow) record() Record {
	r := Record{
		ColRun:   f.key.Run,
		ColSerie: f.key.Serie,
	}
	r.SetFrom(f.returns, fundReturnColumns...)
	r.SetFrom(f.costs, fundCostColumns...)
	r[ColInvestorClass] = string(NormalizeClass(f.returns.Get(ColInvestorClass)))
	return r
}

// ClassCounts returns the number of fund records per investor class.
func ClassCounts(funds []Record) map[InvestorClass]int {
	counts := make(map[InvestorClass]int)
	for _, r := range funds {
		if c, ok := r[ColInvestorClass].(string); ok {
			counts[InvestorClass(c)]++
		}
	}
	return counts
}
