package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
)

// Money is an immutable monetary amount tagged with a currency code.
// Amounts are always non-negative and rounded to 2 decimal places at
// construction; every operation returns a fresh value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value from a decimal amount and a currency code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, fmt.Errorf("currency code is required: %w", apperrors.ErrInvalidAmount)
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("amount %s is negative: %w", amount.String(), apperrors.ErrInvalidAmount)
	}
	return Money{amount: amount.Round(2), currency: currency}, nil
}

// NewMoneyFromFloat creates a Money value from a float64 amount.
func NewMoneyFromFloat(value float64, currency string) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, fmt.Errorf("amount is not a finite number: %w", apperrors.ErrInvalidAmount)
	}
	return NewMoney(decimal.NewFromFloat(value), currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

func (m Money) checkCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("cannot operate on %s and %s: %w", m.currency, other.currency, apperrors.ErrCurrencyMismatch)
	}
	return nil
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of the two amounts. A result below zero is
// rejected; reconciliation deltas that must be signed are computed on the raw
// decimals instead (see CashRegister.Close).
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%s - %s: %w", m.amount.String(), other.amount.String(), apperrors.ErrNegativeResult)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply returns the amount scaled by a non-negative factor.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, fmt.Errorf("factor %s is negative: %w", factor.String(), apperrors.ErrInvalidAmount)
	}
	return Money{amount: m.amount.Mul(factor).Round(2), currency: m.currency}, nil
}

// Divide returns the amount divided by a positive divisor.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if !divisor.IsPositive() {
		return Money{}, fmt.Errorf("divisor %s must be positive: %w", divisor.String(), apperrors.ErrInvalidAmount)
	}
	return Money{amount: m.amount.DivRound(divisor, 2), currency: m.currency}, nil
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Equals reports whether the two amounts are equal.
func (m Money) Equals(other Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}
	return m.amount.Equal(other.amount), nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Float64 returns the amount as a float64. Exact for amounts with 2 decimal
// places within the float64 integer range.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with its currency code, e.g. "150.00 BRL".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// MarshalJSON renders Money as {"amount": "150.00", "currency": "BRL"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(2),
		Currency: m.currency,
	})
}
