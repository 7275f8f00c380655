package finance

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// Property: with the customer absorbing the fee the merchant nets the sale value.
func TestCardPassThrough_MerchantNetsValue(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("totalToPay - feeValue == value", prop.ForAll(
		func(value, rate float64) bool {
			v := decimal.NewFromFloat(value).Round(2)
			r := decimal.NewFromFloat(rate).Round(2)
			res, err := CardPassThrough(v, r, CustomerAbsorbs)
			if err != nil {
				return false
			}
			return res.TotalToPay.Sub(res.FeeValue).Equal(v) && res.TotalToPay.GreaterThanOrEqual(v)
		},
		gen.Float64Range(0.01, 100000),
		gen.Float64Range(0, 99.99),
	))

	properties.TestingRun(t)
}

// Property: the schedule closes at zero and amortizes exactly what was financed.
func TestAmortizationSchedule_Closes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("last remaining balance is zero and amortizations sum to total", prop.ForAll(
		func(principal, rate float64, count int) bool {
			total := FinancedAmount(decimal.NewFromFloat(principal).Round(2), decimal.NewFromFloat(rate).Round(2))
			inst, err := InstallmentValue(total, count)
			if err != nil {
				return false
			}
			entries, err := AmortizationSchedule(total, inst, count, decimal.NewFromFloat(rate).Round(2))
			if err != nil || len(entries) != count {
				return false
			}

			sum := decimal.Zero
			for i, e := range entries {
				sum = sum.Add(e.Amortization)
				if i > 0 && !e.RemainingBalance.LessThan(entries[i-1].RemainingBalance) {
					return false
				}
			}
			last := entries[count-1].RemainingBalance
			return last.Abs().LessThanOrEqual(Tolerance) && sum.Sub(total).Abs().LessThanOrEqual(Tolerance)
		},
		gen.Float64Range(1, 50000),
		gen.Float64Range(0, 50),
		gen.IntRange(1, 36),
	))

	properties.TestingRun(t)
}
