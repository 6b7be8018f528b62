package fondos

import (
	"cmp"
	"fmt"
	"strings"
)

// Collections of the remote store.
const (
	CollectionFunds   = "fondos_mutuos"
	CollectionReturns = "fondos_rentabilidades"
	CollectionCosts   = "fondos_costos"
)

// Key is the natural identifier of a fund series: the fund run number (RUN)
// and the series code.
type Key struct {
	Run   int64
	Serie string
}

func (k Key) String() string { return fmt.Sprintf("%d-%s", k.Run, k.Serie) }

// Compare orders keys by run number, then series code.
func (k Key) Compare(x Key) int {
	if c := cmp.Compare(k.Run, x.Run); c != 0 {
		return c
	}
	return strings.Compare(k.Serie, x.Serie)
}

// KeyOf builds a Key from the run and series cells.
// The run must be a whole number and the series must be reported.
func KeyOf(run, serie Value) (Key, bool) {
	r, ok := run.Int()
	if !ok || serie.IsMissing() {
		return Key{}, false
	}
	return Key{Run: r, Serie: strings.TrimSpace(serie.String())}, true
}

// KeyMap resolves natural keys to the surrogate id assigned by the remote store.
type KeyMap map[Key]int64

// InvestorClass is the investor segment targeted by a fund series.
type InvestorClass string

const (
	Retail         InvestorClass = "Retail"
	APV            InvestorClass = "APV"
	AltoPatrimonio InvestorClass = "Alto Patrimonio"
)

// NormalizeClass maps a raw investor class label onto one of the three
// canonical classes. It never fails: unknown and missing labels are Retail.
//
// Matching is a case insensitive substring search where "alto" or
// "patrimonio" wins over "apv".
func NormalizeClass(v Value) InvestorClass {
	if v.IsMissing() {
		return Retail
	}
	label := strings.ToLower(v.String())
	switch {
	case strings.Contains(label, "alto"), strings.Contains(label, "patrimonio"):
		return AltoPatrimonio
	case strings.Contains(label, "apv"):
		return APV
	}
	return Retail
}
