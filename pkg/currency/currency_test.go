package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSupportedCurrencies(t *testing.T) {
	currencies := SupportedCurrencies()
	assert.Len(t, currencies, 4)
	assert.Contains(t, currencies, MAD)
	assert.Contains(t, currencies, EUR)
	assert.Equal(t, MAD, DefaultCurrency)
}

func TestSupportedCurrencyCodes(t *testing.T) {
	codes := SupportedCurrencyCodes()
	assert.Equal(t, []string{"MAD", "EUR", "USD", "GBP"}, codes)
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"MAD", true},
		{"EUR", true},
		{"USD", true},
		{"JPY", false},
		{"", false},
		{"mad", false}, // case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.code))
		})
	}
}

func TestGetInfo(t *testing.T) {
	t.Run("MAD currency", func(t *testing.T) {
		info, ok := GetInfo(MAD)
		assert.True(t, ok)
		assert.Equal(t, MAD, info.Code)
		assert.Equal(t, "Moroccan Dirham", info.Name)
		assert.Equal(t, 2, info.DecimalPlaces)
	})

	t.Run("invalid currency", func(t *testing.T) {
		_, ok := GetInfo(Currency("INVALID"))
		assert.False(t, ok)
	})
}

func TestNewMoney(t *testing.T) {
	t.Run("with currency", func(t *testing.T) {
		m := NewMoney(decimal.NewFromFloat(100.50), USD)
		assert.Equal(t, "100.5", m.Amount.String())
		assert.Equal(t, USD, m.Currency)
	})

	t.Run("with empty currency defaults to MAD", func(t *testing.T) {
		m := NewMoney(decimal.NewFromFloat(100), "")
		assert.Equal(t, MAD, m.Currency)
	})
}

func TestMoneyRound(t *testing.T) {
	t.Run("MAD 2 decimals", func(t *testing.T) {
		m := NewMoney(decimal.NewFromFloat(100.556), MAD)
		assert.Equal(t, "100.56", m.Round().Amount.String())
	})

	t.Run("invalid currency uses default places", func(t *testing.T) {
		m := Money{Amount: decimal.NewFromFloat(100.554), Currency: Currency("INVALID")}
		assert.Equal(t, "100.55", m.Round().Amount.String())
	})
}

func TestMoneyFormatCode(t *testing.T) {
	assert.Equal(t, "12,500.00 MAD", NewMoney(decimal.NewFromInt(12500), MAD).FormatCode())
	assert.Equal(t, "-80.25 EUR", NewMoney(decimal.NewFromFloat(-80.25), EUR).FormatCode())
	assert.Equal(t, "0.00 USD", NewMoney(decimal.Zero, USD).FormatCode())
	assert.Equal(t, "1,234,567.50 MAD", NewMoney(decimal.NewFromFloat(1234567.5), MAD).FormatCode())
	assert.Equal(t, "-2,500.00 MAD", NewMoney(decimal.NewFromInt(-2500), "").FormatCode())
	assert.Equal(t, "1,000.00 XYZ", Money{Amount: decimal.NewFromInt(1000), Currency: "XYZ"}.FormatCode())
}

func TestMoneyString(t *testing.T) {
	m := NewMoney(decimal.NewFromFloat(100.556), MAD)
	assert.Equal(t, "100.56", m.String())
}
