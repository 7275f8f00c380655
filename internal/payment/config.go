package payment

import (
	"errors"
	"fmt"

	"istorepro/internal/finance"

	"github.com/shopspring/decimal"
)

var (
	ErrMethodNotConfigured = errors.New("Forma de pagamento não configurada")
	ErrRateNotConfigured   = errors.New("Taxa não configurada para o número de parcelas")
)

// RateConfig holds the card fee tables of a method. Credit tables are indexed
// by installment count - 1.
type RateConfig struct {
	DebitRate               decimal.Decimal   `json:"debit_rate"`
	CreditNoInterestRates   []decimal.Decimal `json:"credit_no_interest_rates"`
	CreditWithInterestRates []decimal.Decimal `json:"credit_with_interest_rates"`
}

// CreditRate returns the fee percent for a credit transaction.
func (c RateConfig) CreditRate(mode finance.FeeMode, installments int) (decimal.Decimal, error) {
	table := c.CreditWithInterestRates
	if mode == finance.MerchantAbsorbs {
		table = c.CreditNoInterestRates
	}
	if installments < 1 || installments > len(table) {
		return decimal.Zero, fmt.Errorf("%w: %dx", ErrRateNotConfigured, installments)
	}
	return table[installments-1], nil
}

// MaxInstallments is the longest installment plan the tables allow for mode.
func (c RateConfig) MaxInstallments(mode finance.FeeMode) int {
	if mode == finance.MerchantAbsorbs {
		return len(c.CreditNoInterestRates)
	}
	return len(c.CreditWithInterestRates)
}

// Validate rejects rates outside [0, 100).
func (c RateConfig) Validate() error {
	hundred := decimal.NewFromInt(100)
	check := func(r decimal.Decimal) error {
		if r.IsNegative() || r.GreaterThanOrEqual(hundred) {
			return finance.ErrInvalidFeeRate
		}
		return nil
	}
	if err := check(c.DebitRate); err != nil {
		return err
	}
	for _, table := range [][]decimal.Decimal{c.CreditNoInterestRates, c.CreditWithInterestRates} {
		for _, r := range table {
			if err := check(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// MethodConfig is one configured payment method.
type MethodConfig struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Active     bool       `json:"active"`
	Config     RateConfig `json:"config"`
	Variations []string   `json:"variations"`
}

// Snapshot is the ordered, read-only method list handed to a draft.
type Snapshot []MethodConfig

// Find looks up a method by its label.
func (s Snapshot) Find(name string) (MethodConfig, bool) {
	for _, m := range s {
		if m.Name == name {
			return m, true
		}
	}
	return MethodConfig{}, false
}

// Active returns the methods that can be offered.
func (s Snapshot) Active() Snapshot {
	out := make(Snapshot, 0, len(s))
	for _, m := range s {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// CardRates returns the rate tables configured for m, falling back to the
// first active method of type "cartao".
func (s Snapshot) CardRates(m Method) (RateConfig, error) {
	if cfg, ok := s.Find(string(m)); ok && cfg.Active {
		return cfg.Config, nil
	}
	for _, cfg := range s {
		if cfg.Active && cfg.Type == "cartao" {
			return cfg.Config, nil
		}
	}
	return RateConfig{}, ErrMethodNotConfigured
}
