// Package finance holds the pure money formulas used at the point of sale:
// card fee pass-through (repasse), installment splitting, simple-interest
// financing for crediário, amortization schedules, due dates and credit limits.
//
// All functions are deterministic and keep full decimal precision; rounding to
// cents is a presentation concern left to callers.
package finance

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidFeeRate is returned for card rates outside [0, 100).
	ErrInvalidFeeRate = errors.New("taxa do cartão deve estar entre 0% e 100%")
	// ErrInvalidInstallmentCount is returned when fewer than one installment is requested.
	ErrInvalidInstallmentCount = errors.New("número de parcelas deve ser no mínimo 1")
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)

	// Tolerance absorbs float residue coming from client input and rate tables.
	Tolerance = decimal.NewFromFloat(0.01)
)

// FeeMode says who absorbs the card processing fee.
type FeeMode string

const (
	// MerchantAbsorbs is "sem juros": the customer pays the sale value, the fee is informational.
	MerchantAbsorbs FeeMode = "sem_juros"
	// CustomerAbsorbs is "com juros" (repasse): the charge is inflated so the merchant nets the value.
	CustomerAbsorbs FeeMode = "com_juros"
)

// PassThrough is the outcome of applying a card fee to a sale value.
type PassThrough struct {
	TotalToPay decimal.Decimal
	FeeValue   decimal.Decimal
}

// CardPassThrough computes what the customer is charged for value under the
// given fee rate. With CustomerAbsorbs the merchant always nets exactly value:
// TotalToPay - FeeValue == value.
func CardPassThrough(value, feePercent decimal.Decimal, mode FeeMode) (PassThrough, error) {
	if feePercent.IsNegative() || feePercent.GreaterThanOrEqual(hundred) {
		return PassThrough{}, ErrInvalidFeeRate
	}

	if mode == MerchantAbsorbs {
		return PassThrough{
			TotalToPay: value,
			FeeValue:   value.Mul(feePercent).Div(hundred),
		}, nil
	}

	total := value.Div(one.Sub(feePercent.Div(hundred)))
	return PassThrough{
		TotalToPay: total,
		FeeValue:   total.Sub(value),
	}, nil
}

// InstallmentValue splits total evenly across count installments.
func InstallmentValue(total decimal.Decimal, count int) (decimal.Decimal, error) {
	if count < 1 {
		return decimal.Zero, ErrInvalidInstallmentCount
	}
	return total.Div(decimal.NewFromInt(int64(count))), nil
}

// FinancedAmount applies simple (not compound) interest to principal.
func FinancedAmount(principal, interestRatePercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(one.Add(interestRatePercent.Div(hundred)))
}

// IsSettled reports whether a balance is zero within Tolerance.
func IsSettled(balance decimal.Decimal) bool {
	return balance.Abs().LessThan(Tolerance)
}

// HasPending reports whether a balance is still owed (strictly above Tolerance).
func HasPending(balance decimal.Decimal) bool {
	return balance.GreaterThan(Tolerance)
}
