package payment

import (
	"istorepro/internal/finance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is the ordered list of payments of one draft. Not safe for
// concurrent use.
type Ledger struct {
	payments []Payment
}

func NewLedger() *Ledger { return &Ledger{} }

// Add appends p, assigning an id when it has none, and returns the stored copy.
func (l *Ledger) Add(p Payment) Payment {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p = p.Clone()
	l.payments = append(l.payments, p)
	return p.Clone()
}

// Remove deletes the payment with id. A removed pending trade-in takes its
// creation payload with it; callers check Method.IsTradeIn on the result.
func (l *Ledger) Remove(id string) (Payment, error) {
	for i := range l.payments {
		if l.payments[i].ID == id {
			removed := l.payments[i]
			l.payments = append(l.payments[:i], l.payments[i+1:]...)
			return removed, nil
		}
	}
	return Payment{}, ErrPaymentNotFound
}

// Clear drops every payment and returns how many were removed.
func (l *Ledger) Clear() int {
	n := len(l.payments)
	l.payments = nil
	return n
}

// Load replaces the contents, used when reopening a saved sale.
func (l *Ledger) Load(payments []Payment) {
	l.payments = l.payments[:0]
	for _, p := range payments {
		l.payments = append(l.payments, p.Clone())
	}
}

// Payments returns deep copies in insertion order.
func (l *Ledger) Payments() []Payment {
	out := make([]Payment, len(l.payments))
	for i, p := range l.payments {
		out[i] = p.Clone()
	}
	return out
}

func (l *Ledger) Len() int { return len(l.payments) }

// TotalPaid is the sum of payment values.
func (l *Ledger) TotalPaid() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range l.payments {
		sum = sum.Add(p.Value)
	}
	return sum
}

// Balance is total - TotalPaid. Negative means change is due.
func (l *Ledger) Balance(total decimal.Decimal) decimal.Decimal {
	return total.Sub(l.TotalPaid())
}

// Settled reports |Balance| below the tolerance, or overpaid.
func (l *Ledger) Settled(total decimal.Decimal) bool {
	return !finance.HasPending(l.Balance(total))
}

// PendingTradeIns counts trade-ins still waiting for product creation.
func (l *Ledger) PendingTradeIns() int {
	n := 0
	for _, p := range l.payments {
		if p.TradeIn.Pending() {
			n++
		}
	}
	return n
}
