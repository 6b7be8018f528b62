package fondos

import (
	"testing"

	"github.com/etnz/fondos/date"
	"github.com/google/go-cmp/cmp"
)

func TestBuildReturns(t *testing.T) {
	returns := table(t, "returns", ReturnsSchema,
		map[string]string{
			ColRun: "1001", ColSerie: "A", ColAsOf: "20250630",
			"rent_nominal_1a": "5.25", "rent_real_1a": "1.0", "ind_rar_pond": "",
		},
		map[string]string{ColRun: "1001", ColSerie: "B", ColAsOf: "99999999"},
		map[string]string{ColRun: "1001", ColSerie: "C", ColAsOf: "20250630"},
		map[string]string{ColRun: "", ColSerie: "A"},
	)
	ids := KeyMap{{1001, "A"}: 7, {1001, "B"}: 8}

	got, stats := BuildReturns(returns, ids)

	want := []Record{
		{
			ColFund: int64(7), ColRun: int64(1001), ColSerie: "A",
			ColAsOf:           date.New(2025, 6, 30),
			"rent_nominal_1a": 5.25,
			"rent_real_1a":    int64(1),
		},
		{
			ColFund: int64(8), ColRun: int64(1001), ColSerie: "B",
			ColAsOf: FallbackAsOf,
		},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(date.Date{})); diff != "" {
		t.Errorf("BuildReturns() mismatch (-want +got):\n%s", diff)
	}
	wantStats := FactStats{Rows: 4, Built: 2, InvalidKey: 1, Unresolved: 1, DateCorrected: 1}
	if stats != wantStats {
		t.Errorf("BuildReturns() stats = %+v, want %+v", stats, wantStats)
	}
	if stats.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", stats.Dropped())
	}
}

func TestBuildReturns_Fallback(t *testing.T) {
	for _, asOf := range []string{"99999999", "", "2025-09-30", "20250931", "nan"} {
		t.Run(asOf, func(t *testing.T) {
			returns := table(t, "returns", ReturnsSchema,
				map[string]string{ColRun: "1", ColSerie: "A", ColAsOf: asOf},
			)
			got, stats := BuildReturns(returns, KeyMap{{1, "A"}: 1})
			if len(got) != 1 {
				t.Fatalf("BuildReturns() dropped the row with as-of %q", asOf)
			}
			if got[0][ColAsOf] != FallbackAsOf {
				t.Errorf("as-of = %v, want %v", got[0][ColAsOf], FallbackAsOf)
			}
			if stats.DateCorrected != 1 {
				t.Errorf("DateCorrected = %d, want 1", stats.DateCorrected)
			}
		})
	}
	if FallbackAsOf.String() != "2025-09-30" {
		t.Errorf("FallbackAsOf = %v, want 2025-09-30", FallbackAsOf)
	}
}

func TestBuildCosts(t *testing.T) {
	costs := table(t, "costs", CostsSchema,
		map[string]string{ColRun: "1001", ColSerie: "A", ColSyntheticCost: "0.015", ColAssets: "150000.0", ColDateNum: "20250930"},
		map[string]string{ColRun: "1001", ColSerie: "B", ColAssets: "150000.5"},
		map[string]string{ColRun: "9999", ColSerie: "A", ColAssets: "1"},
	)
	ids := KeyMap{{1001, "A"}: 7, {1001, "B"}: 8}

	got, stats := BuildCosts(costs, ids)

	want := []Record{
		{
			ColFund: int64(7), ColRun: int64(1001), ColSerie: "A",
			ColSyntheticCost: 0.015, ColAssets: int64(150000), ColDateNum: int64(20250930),
		},
		{ColFund: int64(8), ColRun: int64(1001), ColSerie: "B", ColAssets: 150000.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildCosts() mismatch (-want +got):\n%s", diff)
	}
	if stats.Unresolved != 1 || stats.Built != 2 || stats.DateCorrected != 0 {
		t.Errorf("BuildCosts() stats = %+v", stats)
	}
}
