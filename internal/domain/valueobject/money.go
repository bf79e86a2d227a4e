package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storecore/commerce/internal/domain/errs"
)

// Money is an immutable amount in a single currency. The amount is
// never negative; prices layer a stricter >0 rule on top (see entity.Product).
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates and builds a Money value. The currency must be a
// 3-letter ISO-4217 style code; it is normalized to uppercase.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.Newf(errs.Validation, "money amount must not be negative, got %s", amount.String())
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if len(cur) != 3 {
		return Money{}, errs.Newf(errs.Validation, "invalid currency code %q", currency)
	}
	return Money{amount: amount, currency: cur}, nil
}

// MustMoney is a test/seed convenience that panics on invalid input.
func MustMoney(amount string, currency string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }

func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Add returns m + other. Fails when currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.Newf(errs.Conflict, "currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns m - other. Fails when currencies differ or the result
// would violate the non-negative invariant.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.Newf(errs.Conflict, "currency mismatch: %s vs %s", m.currency, other.currency)
	}
	res := m.amount.Sub(other.amount)
	if res.IsNegative() {
		return Money{}, errs.Newf(errs.Validation, "subtraction result must not be negative: %s - %s", m.amount, other.amount)
	}
	return Money{amount: res, currency: m.currency}, nil
}
