// Package payment keeps the tender applied to a sale and reconciles it against
// the cart total. Trade-in payments go through two phases: a pending payload
// captured at selection time, resolved into a real product id on save.
package payment

import (
	"errors"
	"time"

	"istorepro/internal/finance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPaymentNotFound = errors.New("Pagamento não encontrado")

// Method is the settlement instrument label as stored on the sale.
type Method string

const (
	Cash           Method = "Dinheiro"
	Pix            Method = "Pix"
	Debit          Method = "Cartão de Débito"
	Credit         Method = "Cartão de Crédito"
	StoreCredit    Method = "Crediário"
	PromissoryNote Method = "Promissória"
	TradeInDevice  Method = "Aparelho na Troca"
	BankTransfer   Method = "Transferência"
)

func (m Method) IsCard() bool        { return m == Debit || m == Credit }
func (m Method) IsTradeIn() bool     { return m == TradeInDevice }
func (m Method) IsStoreCredit() bool { return m == StoreCredit }

// IsCashLike reports whether overpaying with this method is meaningful as change.
func (m Method) IsCashLike() bool { return m == Cash }

// CardType distinguishes debit and credit card transactions.
type CardType string

const (
	CardDebit  CardType = "debito"
	CardCredit CardType = "credito"
)

// CardDetails records the fee side of a card payment. The fee never changes
// the Payment value.
type CardDetails struct {
	Type             CardType        `json:"type"`
	FeeMode          finance.FeeMode `json:"fee_mode"`
	Installments     int             `json:"installments"`
	InstallmentValue decimal.Decimal `json:"installment_value"`
	FeePercentage    decimal.Decimal `json:"fee_percentage"`
	Fees             decimal.Decimal `json:"fees"`
	TotalCharged     decimal.Decimal `json:"total_charged"`
}

// NewProduct describes a trade-in device not yet persisted.
type NewProduct struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Color         string          `json:"color,omitempty"`
	Storage       string          `json:"storage,omitempty"`
	Condition     string          `json:"condition,omitempty"`
	BatteryHealth int             `json:"battery_health,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	IMEI1         string          `json:"imei1,omitempty"`
	IMEI2         string          `json:"imei2,omitempty"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Price         decimal.Decimal `json:"price"`
}

// TradeIn is either resolved (ProductID set) or pending (TempID + Payload).
type TradeIn struct {
	ProductID   string      `json:"product_id,omitempty"`
	ProductName string      `json:"product_name,omitempty"`
	TempID      string      `json:"temp_id,omitempty"`
	Payload     *NewProduct `json:"new_product_payload,omitempty"`
}

// PendingTradeIn builds a phase-one trade-in with a fresh temporary id.
func PendingTradeIn(p NewProduct) *TradeIn {
	payload := p
	return &TradeIn{ProductName: p.Name, TempID: "tmp-" + uuid.NewString(), Payload: &payload}
}

// Pending reports whether the device still has to be created.
func (t *TradeIn) Pending() bool {
	return t != nil && t.ProductID == "" && t.Payload != nil
}

// Resolve rewrites the trade-in to reference the created product.
func (t *TradeIn) Resolve(productID string) {
	t.ProductID = productID
	t.Payload = nil
}

// Installment is one row of a crediário preview.
type Installment struct {
	Number       int             `json:"number"`
	DueDate      time.Time       `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	Interest     decimal.Decimal `json:"interest"`
	Amortization decimal.Decimal `json:"amortization"`
}

// CreditPlan is the receivable schedule behind a crediário payment. The
// payment value is Principal; interest lives only here.
type CreditPlan struct {
	Installments     int               `json:"installments"`
	Frequency        finance.Frequency `json:"frequency"`
	InterestRate     decimal.Decimal   `json:"interest_rate"`
	FirstDueDate     time.Time         `json:"first_due_date"`
	Principal        decimal.Decimal   `json:"principal"`
	TotalFinanced    decimal.Decimal   `json:"total_financed"`
	InstallmentValue decimal.Decimal   `json:"installment_value"`
	Schedule         []Installment     `json:"schedule"`
}

// Payment is one instrument applied toward the sale total.
type Payment struct {
	ID        string          `json:"id"`
	Method    Method          `json:"method"`
	Variation string          `json:"variation,omitempty"`
	Value     decimal.Decimal `json:"value"`
	Card      *CardDetails    `json:"card,omitempty"`
	TradeIn   *TradeIn        `json:"trade_in,omitempty"`
	Credit    *CreditPlan     `json:"credit,omitempty"`
}

// Clone deep-copies the optional detail records.
func (p Payment) Clone() Payment {
	out := p
	if p.Card != nil {
		c := *p.Card
		out.Card = &c
	}
	if p.TradeIn != nil {
		t := *p.TradeIn
		if p.TradeIn.Payload != nil {
			np := *p.TradeIn.Payload
			t.Payload = &np
		}
		out.TradeIn = &t
	}
	if p.Credit != nil {
		cp := *p.Credit
		cp.Schedule = append([]Installment(nil), p.Credit.Schedule...)
		out.Credit = &cp
	}
	return out
}
