// Package money holds the monetary value types shared by the whole service.
// Amounts are arbitrary-precision decimals; rounding to a currency's minor
// unit always uses banker's rounding (round half to even).
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217-style currency code.
type Currency string

const (
	// PLN is the domestic currency. Starting balances and one leg of every
	// exchange are denominated in it.
	PLN Currency = "PLN"
	// USD is the single supported foreign currency.
	USD Currency = "USD"
)

// Supported is the fixed allow-list for exchange operations. Codes outside
// this set are rejected regardless of whether they are real-world currencies.
var Supported = []Currency{PLN, USD}

// IsSupported reports whether a raw currency code is on the allow-list.
func IsSupported(code string) bool {
	for _, c := range Supported {
		if string(c) == code {
			return true
		}
	}
	return false
}

// Exponent is the currency's minor-unit precision. Both supported currencies
// use two decimal places; a future currency with a different exponent only
// needs a case here.
func (c Currency) Exponent() int32 {
	return 2
}

func (c Currency) String() string {
	return string(c)
}

// Money is an amount paired with its currency. The zero value is 0 of the
// empty currency and should not leave the package that built it.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// New builds a Money value without rounding.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero is the zero amount of the given currency.
func Zero(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Negate flips the amount's sign, turning a credit leg into a debit leg.
func (m Money) Negate() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// Round snaps the amount to the currency's minor unit using banker's
// rounding.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.RoundBank(m.Currency.Exponent()), Currency: m.Currency}
}

// Equal compares currency and numeric value, ignoring trailing zeros.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(m.Currency.Exponent()), m.Currency)
}
