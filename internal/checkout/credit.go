package checkout

import (
	"context"
	"errors"
	"time"

	"istorepro/internal/finance"
	"istorepro/internal/payment"

	"github.com/shopspring/decimal"
)

// CreditInput is what the operator fills in the crediário sub-flow.
// AmountToFinance defaults to the balance left after DownPayment when zero.
type CreditInput struct {
	DownPayment     decimal.Decimal
	AmountToFinance decimal.Decimal
	Installments    int
	Frequency       finance.Frequency
	FirstDueDate    time.Time
	InterestRate    *decimal.Decimal
}

// CreditQuote is the crediário preview. Blocked plans cannot be confirmed.
type CreditQuote struct {
	DownPayment      decimal.Decimal             `json:"down_payment"`
	Principal        decimal.Decimal             `json:"principal"`
	InterestRate     decimal.Decimal             `json:"interest_rate"`
	TotalFinanced    decimal.Decimal             `json:"total_financed"`
	InstallmentValue decimal.Decimal             `json:"installment_value"`
	Installments     []payment.Installment       `json:"installments"`
	Amortization     []finance.AmortizationEntry `json:"amortization"`
	Credit           finance.CreditCheck         `json:"credit"`
	Blocked          bool                        `json:"blocked"`
}

// QuoteCredit builds the plan for in against customer's credit profile.
func QuoteCredit(customer Customer, balance decimal.Decimal, in CreditInput) (CreditQuote, error) {
	if in.DownPayment.IsNegative() {
		return CreditQuote{}, ErrInvalidAmount
	}
	principal := in.AmountToFinance
	if principal.IsZero() {
		principal = balance.Sub(in.DownPayment)
	}
	if !principal.IsPositive() {
		return CreditQuote{}, ErrInvalidAmount
	}
	if principal.Add(in.DownPayment).GreaterThan(balance.Add(finance.Tolerance)) {
		return CreditQuote{}, ErrExceedsBalance
	}
	freq := in.Frequency
	if freq == "" {
		freq = finance.Monthly
	}

	rate := decimal.Zero
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return CreditQuote{}, ErrInvalidAmount
		}
		rate = *in.InterestRate
	}

	total := finance.FinancedAmount(principal, rate)
	inst, err := finance.InstallmentValue(total, in.Installments)
	if err != nil {
		return CreditQuote{}, err
	}
	dates, err := finance.InstallmentDueDates(in.FirstDueDate, in.Installments, freq)
	if err != nil {
		return CreditQuote{}, err
	}
	schedule, err := finance.AmortizationSchedule(total, inst, in.Installments, rate)
	if err != nil {
		return CreditQuote{}, err
	}

	preview := centSchedule(total, inst, dates, schedule)

	check := finance.CheckCreditLimit(customer.CreditProfile(), total)
	return CreditQuote{
		DownPayment:      in.DownPayment,
		Principal:        principal,
		InterestRate:     rate,
		TotalFinanced:    total,
		InstallmentValue: inst,
		Installments:     preview,
		Amortization:     schedule,
		Credit:           check,
		Blocked:          !check.Allowed,
	}, nil
}

// centSchedule rounds each installment to cents. The last one takes the
// residue so the rows always add up to total rounded to cents.
func centSchedule(total, inst decimal.Decimal, dates []time.Time, schedule []finance.AmortizationEntry) []payment.Installment {
	out := make([]payment.Installment, len(dates))
	remaining := total.Round(2)
	for i, due := range dates {
		amount := inst.Round(2)
		amortization := schedule[i].Amortization.Round(2)
		if i == len(dates)-1 {
			amount = remaining
			amortization = remaining.Sub(schedule[i].Interest.Round(2))
		}
		remaining = remaining.Sub(amount)
		out[i] = payment.Installment{
			Number:       i + 1,
			DueDate:      due,
			Amount:       amount,
			Interest:     schedule[i].Interest.Round(2),
			Amortization: amortization,
		}
	}
	return out
}

// QuoteCreditPlan previews the staged crediário payment.
func (d *Draft) QuoteCreditPlan(in CreditInput) (CreditQuote, error) {
	if _, err := d.stagedFor(FlowStoreCredit); err != nil {
		return CreditQuote{}, err
	}
	if d.customer == nil {
		return CreditQuote{}, invalid("cliente", ErrCustomerRequired)
	}
	return QuoteCredit(*d.customer, d.Balance(), in)
}

// ConfirmCreditPlan adds an optional cash down payment and one crediário
// payment valued at the principal. Interest stays in the plan.
func (d *Draft) ConfirmCreditPlan(in CreditInput) ([]payment.Payment, error) {
	q, err := d.QuoteCreditPlan(in)
	if err != nil {
		return nil, err
	}
	if q.Blocked {
		return nil, &CreditDeniedError{Check: q.Credit}
	}

	req := d.staged
	var added []payment.Payment
	if q.DownPayment.IsPositive() {
		added = append(added, d.ledger.Add(payment.Payment{Method: payment.Cash, Value: q.DownPayment}))
	}
	freq := in.Frequency
	if freq == "" {
		freq = finance.Monthly
	}
	added = append(added, d.ledger.Add(payment.Payment{
		Method:    req.Method,
		Variation: req.Variation,
		Value:     q.Principal,
		Credit: &payment.CreditPlan{
			Installments:     len(q.Installments),
			Frequency:        freq,
			InterestRate:     q.InterestRate,
			FirstDueDate:     in.FirstDueDate,
			Principal:        q.Principal,
			TotalFinanced:    q.TotalFinanced,
			InstallmentValue: q.InstallmentValue,
			Schedule:         q.Installments,
		},
	}))
	d.staged = nil
	return added, nil
}

// RefreshCustomerCredit replaces the credit figures of the draft's customer
// with current ones. It is a no-op without a customer.
func (d *Draft) RefreshCustomerCredit(p finance.CreditProfile) {
	if d.customer == nil {
		return
	}
	d.customer.AllowCredit = p.AllowCredit
	d.customer.CreditLimit = p.Limit
	d.customer.CreditUsed = p.Used
}

// UpdateCustomerCreditLimit persists a new limit for the draft's customer
// right away, independent of the sale save.
func (d *Draft) UpdateCustomerCreditLimit(ctx context.Context, limit decimal.Decimal) error {
	if err := d.open(); err != nil {
		return err
	}
	if d.customer == nil {
		return invalid("cliente", ErrCustomerRequired)
	}
	if limit.IsNegative() {
		return ErrInvalidAmount
	}
	if d.deps.Customers == nil {
		return errors.New("atualização de limite indisponível")
	}
	if err := d.deps.Customers.UpdateCreditLimit(ctx, d.customer.ID, limit); err != nil {
		return err
	}
	d.customer.CreditLimit = limit
	return nil
}
