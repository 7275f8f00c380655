package finance

import "github.com/shopspring/decimal"

// AmortizationEntry is one period of a crediário schedule.
type AmortizationEntry struct {
	Number           int             `json:"number"`
	Installment      decimal.Decimal `json:"installment"`
	Interest         decimal.Decimal `json:"interest"`
	Amortization     decimal.Decimal `json:"amortization"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// AmortizationSchedule splits totalFinanced into count periods. The period rate
// is (interestRatePercent/100)/count. The last period carries no interest and
// amortizes whatever balance is left, so the schedule always closes at zero and
// the amortizations add up to totalFinanced.
func AmortizationSchedule(totalFinanced, installmentValue decimal.Decimal, count int, interestRatePercent decimal.Decimal) ([]AmortizationEntry, error) {
	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}

	periodRate := interestRatePercent.Div(hundred).Div(decimal.NewFromInt(int64(count)))
	balance := totalFinanced
	entries := make([]AmortizationEntry, 0, count)

	for i := 1; i <= count; i++ {
		var interest, amortization decimal.Decimal
		if i == count {
			interest = decimal.Zero
			amortization = balance
			balance = decimal.Zero
		} else {
			interest = balance.Mul(periodRate)
			amortization = installmentValue.Sub(interest)
			balance = balance.Sub(amortization)
		}
		entries = append(entries, AmortizationEntry{
			Number:           i,
			Installment:      installmentValue,
			Interest:         interest,
			Amortization:     amortization,
			RemainingBalance: balance,
		})
	}
	return entries, nil
}
