// Package money provides the fixed-point amount type used for transaction
// values. Amounts carry exactly two fractional digits and at most eight
// integer digits, matching the numeric(10,2) column they are stored in.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Scale is the number of fractional digits kept by an Amount.
	Scale = 2
	// MaxIntegerDigits is the number of digits allowed before the decimal point.
	MaxIntegerDigits = 8
)

var (
	ErrSyntax    = errors.New("amount must be a decimal number")
	ErrPrecision = errors.New("amount must have at most 2 decimal places")
	ErrTooLarge  = errors.New("amount must have at most 8 digits before the decimal point")
)

// limit is the first value that no longer fits in MaxIntegerDigits.
var limit = decimal.New(1, MaxIntegerDigits)

// Amount is a decimal value with two fractional digits.
type Amount struct {
	decimal.Decimal
}

// Zero is 0.00.
var Zero = Amount{Decimal: decimal.Zero}

// Parse converts text such as "50", "50.5" or "1999.99" into an Amount.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrSyntax
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrSyntax
	}
	return FromDecimal(d)
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money: MustParse(%q): %v", s, err))
	}
	return a
}

// FromDecimal validates d against the amount precision rules.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Truncate(Scale)) {
		return Zero, ErrPrecision
	}
	if d.Abs().Cmp(limit) >= 0 {
		return Zero, ErrTooLarge
	}
	return Amount{Decimal: d.Truncate(Scale)}, nil
}

// Add returns a + b. Sums are not range checked; only stored values are.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.Decimal.Cmp(b.Decimal)
}

// Equal reports whether a and b have the same value.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// String returns the fixed two-decimal form, e.g. "50.00".
func (a Amount) String() string {
	return a.Decimal.StringFixed(Scale)
}

// MarshalJSON encodes the amount as a quoted two-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return ErrSyntax
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner. Stores that hand back floats (SQLite) are
// rounded to the amount scale.
func (a *Amount) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	a.Decimal = d.Round(Scale)
	return nil
}
