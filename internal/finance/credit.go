package finance

import "github.com/shopspring/decimal"

// CreditDenial names why a crediário purchase was refused.
type CreditDenial string

const (
	CreditBlocked CreditDenial = "credit_blocked"
	LimitNotSet   CreditDenial = "limit_not_set"
	LimitExceeded CreditDenial = "limit_exceeded"
)

// Message is the operator-facing text for a denial.
func (d CreditDenial) Message() string {
	switch d {
	case CreditBlocked:
		return "Crediário bloqueado para este cliente"
	case LimitNotSet:
		return "Cliente sem limite de crédito definido"
	case LimitExceeded:
		return "Valor financiado excede o limite de crédito disponível"
	default:
		return ""
	}
}

// CreditProfile is the slice of a customer record the credit check reads.
type CreditProfile struct {
	AllowCredit bool
	Limit       decimal.Decimal
	Used        decimal.Decimal
}

// Available is max(0, Limit - Used).
func (p CreditProfile) Available() decimal.Decimal {
	avail := p.Limit.Sub(p.Used)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// CreditCheck is the verdict of CheckCreditLimit. Reason is empty when Allowed.
type CreditCheck struct {
	Allowed   bool            `json:"allowed"`
	Reason    CreditDenial    `json:"reason,omitempty"`
	Available decimal.Decimal `json:"available"`
}

// CheckCreditLimit decides whether financedAmount fits the customer's crediário.
// The boundary is inclusive within Tolerance.
func CheckCreditLimit(p CreditProfile, financedAmount decimal.Decimal) CreditCheck {
	available := p.Available()

	switch {
	case !p.AllowCredit:
		return CreditCheck{Reason: CreditBlocked, Available: available}
	case !p.Limit.IsPositive():
		return CreditCheck{Reason: LimitNotSet, Available: available}
	case financedAmount.GreaterThan(available.Add(Tolerance)):
		return CreditCheck{Reason: LimitExceeded, Available: available}
	}
	return CreditCheck{Allowed: true, Available: available}
}
