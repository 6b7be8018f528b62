package pipeline

import (
	"time"

	"github.com/etnz/fondos"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the account of a run.
type Summary struct {
	RunID   uuid.UUID // identifies the run in logs
	State   State     // Done or Aborted
	Reached State     // last step entered
	Err     error     // fatal error, if any

	InvalidCells int // source cells that could not be read

	Registry     fondos.RegistryStats
	FundsLoaded  int
	KeysResolved int

	Returns       fondos.FactStats
	ReturnsLoaded int
	Costs         fondos.FactStats
	CostsLoaded   int

	FailedBatches int
	Assets        decimal.Decimal // sum of pat_total over cost records, in CLP

	Duration time.Duration
}

// Complete reports whether the run loaded everything it read, with no row
// dropped, corrected or rejected along the way.
func (s Summary) Complete() bool {
	return s.State == Done &&
		s.InvalidCells == 0 &&
		s.Registry.InvalidKey == 0 &&
		s.Registry.Duplicates == 0 &&
		s.FundsLoaded == s.Registry.Funds &&
		s.Returns.Dropped() == 0 &&
		s.Returns.DateCorrected == 0 &&
		s.ReturnsLoaded == s.Returns.Built &&
		s.Costs.Dropped() == 0 &&
		s.CostsLoaded == s.Costs.Built &&
		s.FailedBatches == 0
}

// totalAssets sums the assets under management reported by cost records.
func totalAssets(records []fondos.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		switch v := r[fondos.ColAssets].(type) {
		case int64:
			total = total.Add(decimal.NewFromInt(v))
		case float64:
			total = total.Add(decimal.NewFromFloat(v))
		}
	}
	return total
}
