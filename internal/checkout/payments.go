package checkout

import (
	"fmt"

	"istorepro/internal/finance"
	"istorepro/internal/payment"

	"github.com/shopspring/decimal"
)

// Flow is the sub-flow a payment request opens.
type Flow string

const (
	FlowAmount      Flow = "valor"
	FlowCard        Flow = "cartao"
	FlowStoreCredit Flow = "crediario"
	FlowTradeIn     Flow = "troca"
)

// PaymentRequest is a payment staged until its sub-flow confirms it.
type PaymentRequest struct {
	Method        payment.Method  `json:"method"`
	Variation     string          `json:"variation,omitempty"`
	Flow          Flow            `json:"flow"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
}

func flowFor(m payment.Method) Flow {
	switch {
	case m.IsTradeIn():
		return FlowTradeIn
	case m.IsCard():
		return FlowCard
	case m.IsStoreCredit():
		return FlowStoreCredit
	}
	return FlowAmount
}

// RequestPayment stages a payment for method. Trade-ins are always allowed;
// every other method needs an outstanding balance, and crediário also needs
// a customer.
func (d *Draft) RequestPayment(method payment.Method, variation string) (*PaymentRequest, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	if cfg, ok := d.deps.Methods.Find(string(method)); ok && !cfg.Active {
		return nil, ErrMethodUnavailable
	}

	flow := flowFor(method)
	balance := d.Balance()
	if flow != FlowTradeIn && !finance.HasPending(balance) {
		return nil, ErrNoPendingBalance
	}
	if flow == FlowStoreCredit && d.customer == nil {
		return nil, invalid("cliente", ErrCustomerRequired)
	}

	def := balance
	if def.IsNegative() {
		def = decimal.Zero
	}
	d.staged = &PaymentRequest{Method: method, Variation: variation, Flow: flow, DefaultAmount: def}
	st := *d.staged
	return &st, nil
}

// DiscardPayment drops the staged payment request.
func (d *Draft) DiscardPayment() { d.staged = nil }

func (d *Draft) stagedFor(flow Flow) (*PaymentRequest, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	if d.staged == nil {
		return nil, ErrNothingStaged
	}
	if d.staged.Flow != flow {
		return nil, ErrWrongPaymentFlow
	}
	return d.staged, nil
}

// withinBalance rejects amounts that would overpay with a non cash-like method.
func (d *Draft) withinBalance(m payment.Method, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if m.IsCashLike() {
		return nil
	}
	if amount.GreaterThan(d.Balance().Add(finance.Tolerance)) {
		return ErrExceedsBalance
	}
	return nil
}

// ConfirmAmountPayment appends the staged cash-style payment for amount.
// Cash may exceed the balance; the excess is change.
func (d *Draft) ConfirmAmountPayment(amount decimal.Decimal) (payment.Payment, error) {
	req, err := d.stagedFor(FlowAmount)
	if err != nil {
		return payment.Payment{}, err
	}
	if err := d.withinBalance(req.Method, amount); err != nil {
		return payment.Payment{}, err
	}
	p := d.ledger.Add(payment.Payment{Method: req.Method, Variation: req.Variation, Value: amount})
	d.staged = nil
	return p, nil
}

// ── Card ─────────────────────────────────────────────────────────────────────

// CardInput is what the operator picks in the card sub-flow.
type CardInput struct {
	ChargeAmount decimal.Decimal
	FeeMode      finance.FeeMode
	Installments int
}

// CardQuote is the card sub-flow preview.
type CardQuote struct {
	Type             payment.CardType `json:"type"`
	FeeMode          finance.FeeMode  `json:"fee_mode"`
	ChargeAmount     decimal.Decimal  `json:"charge_amount"`
	Installments     int              `json:"installments"`
	FeePercentage    decimal.Decimal  `json:"fee_percentage"`
	Fees             decimal.Decimal  `json:"fees"`
	TotalToPay       decimal.Decimal  `json:"total_to_pay"`
	InstallmentValue decimal.Decimal  `json:"installment_value"`
}

// QuoteCard computes the card charge for in against the configured rate tables.
// Debit always uses the repasse formula with one installment.
func QuoteCard(rates payment.RateConfig, method payment.Method, in CardInput) (CardQuote, error) {
	if !in.ChargeAmount.IsPositive() {
		return CardQuote{}, ErrInvalidAmount
	}

	q := CardQuote{ChargeAmount: in.ChargeAmount}
	var rate decimal.Decimal
	if method == payment.Debit {
		q.Type = payment.CardDebit
		q.FeeMode = finance.CustomerAbsorbs
		q.Installments = 1
		rate = rates.DebitRate
	} else {
		if in.Installments < 1 {
			return CardQuote{}, finance.ErrInvalidInstallmentCount
		}
		mode := in.FeeMode
		if mode == "" {
			mode = finance.CustomerAbsorbs
		}
		r, err := rates.CreditRate(mode, in.Installments)
		if err != nil {
			return CardQuote{}, err
		}
		q.Type = payment.CardCredit
		q.FeeMode = mode
		q.Installments = in.Installments
		rate = r
	}

	pt, err := finance.CardPassThrough(in.ChargeAmount, rate, q.FeeMode)
	if err != nil {
		return CardQuote{}, err
	}
	inst, err := finance.InstallmentValue(pt.TotalToPay, q.Installments)
	if err != nil {
		return CardQuote{}, err
	}
	q.FeePercentage = rate
	q.Fees = pt.FeeValue
	q.TotalToPay = pt.TotalToPay
	q.InstallmentValue = inst
	return q, nil
}

// QuoteCardPayment previews the staged card payment.
func (d *Draft) QuoteCardPayment(in CardInput) (CardQuote, error) {
	req, err := d.stagedFor(FlowCard)
	if err != nil {
		return CardQuote{}, err
	}
	rates, err := d.deps.Methods.CardRates(req.Method)
	if err != nil {
		return CardQuote{}, err
	}
	return QuoteCard(rates, req.Method, in)
}

// ConfirmCardPayment appends exactly one card payment whose value is the
// charge amount, never the fee-inflated total.
func (d *Draft) ConfirmCardPayment(in CardInput) (payment.Payment, error) {
	q, err := d.QuoteCardPayment(in)
	if err != nil {
		return payment.Payment{}, err
	}
	req := d.staged
	if err := d.withinBalance(req.Method, q.ChargeAmount); err != nil {
		return payment.Payment{}, err
	}
	p := d.ledger.Add(payment.Payment{
		Method:    req.Method,
		Variation: req.Variation,
		Value:     q.ChargeAmount,
		Card: &payment.CardDetails{
			Type:             q.Type,
			FeeMode:          q.FeeMode,
			Installments:     q.Installments,
			InstallmentValue: q.InstallmentValue,
			FeePercentage:    q.FeePercentage,
			Fees:             q.Fees,
			TotalCharged:     q.TotalToPay,
		},
	})
	d.staged = nil
	return p, nil
}

// ── Trade-in ─────────────────────────────────────────────────────────────────

// TradeInInput references an existing product or describes a new device.
type TradeInInput struct {
	Value       decimal.Decimal
	ProductID   string
	ProductName string
	NewProduct  *payment.NewProduct
}

// AddTradeIn appends the staged trade-in. A new device stays pending until
// the sale is saved.
func (d *Draft) AddTradeIn(in TradeInInput) (payment.Payment, error) {
	req, err := d.stagedFor(FlowTradeIn)
	if err != nil {
		return payment.Payment{}, err
	}
	if !in.Value.IsPositive() {
		return payment.Payment{}, ErrInvalidAmount
	}

	var ti *payment.TradeIn
	switch {
	case in.ProductID != "":
		ti = &payment.TradeIn{ProductID: in.ProductID, ProductName: in.ProductName}
	case in.NewProduct != nil:
		ti = payment.PendingTradeIn(*in.NewProduct)
	default:
		return payment.Payment{}, ErrTradeInIncomplete
	}

	p := d.ledger.Add(payment.Payment{Method: req.Method, Variation: req.Variation, Value: in.Value, TradeIn: ti})
	d.staged = nil
	return p, nil
}

// RemovePayment deletes a payment. Removing a trade-in discards its pending
// device and is disclosed to the caller.
func (d *Draft) RemovePayment(id string) ([]Notice, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	removed, err := d.ledger.Remove(id)
	if err != nil {
		return nil, err
	}
	if !removed.Method.IsTradeIn() {
		return nil, nil
	}
	name := "Aparelho"
	if removed.TradeIn != nil && removed.TradeIn.ProductName != "" {
		name = removed.TradeIn.ProductName
	}
	return []Notice{{
		Code:    NoticeTradeInRemoved,
		Message: fmt.Sprintf("%s removido da troca", name),
	}}, nil
}
