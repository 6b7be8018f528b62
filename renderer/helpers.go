package renderer

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// count formats a counter.
func count(n int) string { return strconv.Itoa(n) }

// formatCLP formats an amount of Chilean pesos, rounded to the peso.
func formatCLP(amount decimal.Decimal) string {
	cur := money.New(0, money.CLP).Currency()
	// scale the amount to the currency's minor unit.
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).Round(0).IntPart())
}
