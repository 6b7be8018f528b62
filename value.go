package fondos

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the type of a column, as declared by a Schema.
type Kind int

const (
	Missing Kind = iota // not reported: the cell was empty
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single cell of a tabular extract.
//
// Its zero value is Missing, which means "not reported". A missing value is
// never serialized, and is never confused with zero.
type Value struct {
	kind Kind
	text string
	num  decimal.Decimal
}

// TextValue returns a Text value. An empty (or blank) string is Missing.
func TextValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: Text, text: s}
}

// NumberValue returns a Number value.
func NumberValue(d decimal.Decimal) Value { return Value{kind: Number, num: d} }

// ParseValue converts a raw cell into a Value of kind k.
// Blank cells are Missing for every kind.
func ParseValue(k Kind, raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, nil
	}
	switch k {
	case Text:
		return Value{kind: Text, text: raw}, nil
	case Number:
		d, err := decimal.NewFromString(s)
		if err != nil {
			// extracts exported with a Spanish locale use a decimal comma.
			if d2, err2 := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err2 == nil {
				return Value{kind: Number, num: d2}, nil
			}
			return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
		}
		return Value{kind: Number, num: d}, nil
	}
	return Value{}, fmt.Errorf("unknown column kind %v", k)
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v was not reported.
func (v Value) IsMissing() bool { return v.kind == Missing }

// Decimal returns the numeric value of v, if it is a Number.
func (v Value) Decimal() (decimal.Decimal, bool) { return v.num, v.kind == Number }

// Int returns v as an integer when it is a whole Number, or a Text holding one.
func (v Value) Int() (int64, bool) {
	d, ok := v.Decimal()
	if !ok && v.kind == Text {
		var err error
		d, err = decimal.NewFromString(strings.TrimSpace(v.text))
		ok = err == nil
	}
	if !ok || !d.IsInteger() || !fitsInt64(d) {
		return 0, false
	}
	return d.IntPart(), true
}

// String returns the text of v. Whole numbers print without a fractional part.
func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		return v.num.String()
	}
	return ""
}

// JSON returns the value to serialize for v: a string for Text, an int64 for
// whole Numbers and a float64 for the other Numbers. Missing returns nil.
func (v Value) JSON() any {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		return number(v.num)
	}
	return nil
}

// number is the canonical serialization of a numeric cell: naturally integer
// values (150000.0) are written as integers (150000).
func number(d decimal.Decimal) any {
	if d.IsInteger() && fitsInt64(d) {
		return d.IntPart()
	}
	return d.InexactFloat64()
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func fitsInt64(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(minInt64) && d.LessThanOrEqual(maxInt64)
}
