// Package currency provides the currencies a financial profile can be kept in
// and the formatting used in exported reports.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// Supported currencies.
const (
	MAD Currency = "MAD" // Moroccan Dirham
	EUR Currency = "EUR" // Euro
	USD Currency = "USD" // US Dollar
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency when none is specified.
const DefaultCurrency = MAD

// CurrencyInfo contains metadata about a currency.
type CurrencyInfo struct {
	Code          Currency
	Name          string
	DecimalPlaces int
}

var currencies = map[Currency]CurrencyInfo{
	MAD: {Code: MAD, Name: "Moroccan Dirham", DecimalPlaces: 2},
	EUR: {Code: EUR, Name: "Euro", DecimalPlaces: 2},
	USD: {Code: USD, Name: "US Dollar", DecimalPlaces: 2},
	GBP: {Code: GBP, Name: "British Pound", DecimalPlaces: 2},
}

// SupportedCurrencies returns a list of all supported currency codes.
func SupportedCurrencies() []Currency {
	return []Currency{MAD, EUR, USD, GBP}
}

// SupportedCurrencyCodes returns a list of all supported currency codes as strings.
func SupportedCurrencyCodes() []string {
	codes := SupportedCurrencies()
	result := make([]string, len(codes))
	for i, c := range codes {
		result[i] = string(c)
	}
	return result
}

// IsValid checks if a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// GetInfo returns metadata for a currency code.
func GetInfo(code Currency) (CurrencyInfo, bool) {
	info, ok := currencies[code]
	return info, ok
}

// Money represents a monetary amount with currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney creates a new Money value.
func NewMoney(amount decimal.Decimal, curr Currency) Money {
	if curr == "" {
		curr = DefaultCurrency
	}
	return Money{Amount: amount, Currency: curr}
}

func (m Money) info() CurrencyInfo {
	info, ok := GetInfo(m.Currency)
	if !ok {
		return currencies[DefaultCurrency]
	}
	return info
}

// Round rounds the amount to the currency's decimal places.
func (m Money) Round() Money {
	return NewMoney(m.Amount.Round(int32(m.info().DecimalPlaces)), m.Currency)
}

// FormatCode renders the amount with Latin-1 safe separators followed by the
// ISO code, as used in PDF reports.
func (m Money) FormatCode() string {
	return group(m.Amount, int32(m.info().DecimalPlaces)) + " " + string(m.Currency)
}

// String returns the amount as a plain string.
func (m Money) String() string {
	return m.Round().Amount.String()
}

func group(amount decimal.Decimal, places int32) string {
	fixed := amount.Abs().StringFixed(places)

	intPart, fracPart := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if amount.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
