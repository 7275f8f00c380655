package checkout

import (
	"context"
	"fmt"

	"istorepro/internal/cart"
	"istorepro/internal/finance"
	"istorepro/internal/payment"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Draft is one sale being built. It is not safe for concurrent use; callers
// serialize access per draft.
type Draft struct {
	deps Deps

	id          string
	reserved    bool
	editing     bool
	original    *Sale
	closed      bool
	salesperson Actor
	customer    *Customer

	warrantyTerm         string
	observations         string
	internalObservations string

	cart   *cart.Cart
	ledger *payment.Ledger

	stagedProduct *cart.Product
	staged        *PaymentRequest
}

// StartDraft opens a new sale and reserves its provisional id for this draft.
func StartDraft(ctx context.Context, deps Deps, salesperson Actor) (*Draft, error) {
	id, err := deps.Numbering.Reserve(ctx, salesperson.ID)
	if err != nil {
		return nil, fmt.Errorf("reservar número da venda: %w", err)
	}
	return &Draft{
		deps:        deps,
		id:          id,
		reserved:    true,
		salesperson: salesperson,
		cart:        cart.New(),
		ledger:      payment.NewLedger(),
	}, nil
}

// OpenForEdit reopens a persisted sale under its own id. No reservation is made.
func OpenForEdit(deps Deps, sale *Sale, customer *Customer) *Draft {
	d := &Draft{
		deps:                 deps,
		id:                   sale.ID,
		editing:              true,
		original:             sale,
		salesperson:          Actor{ID: sale.SalespersonID, Name: sale.SalespersonName},
		customer:             customer,
		warrantyTerm:         sale.WarrantyTerm,
		observations:         sale.Observations,
		internalObservations: sale.InternalObservations,
		cart:                 cart.New(),
		ledger:               payment.NewLedger(),
	}
	d.cart.Load(sale.Items)
	_ = d.cart.SetGlobalDiscount(sale.GlobalDiscountType, sale.GlobalDiscountValue)
	d.ledger.Load(sale.Payments)
	return d
}

func (d *Draft) ID() string     { return d.id }
func (d *Draft) Editing() bool  { return d.editing }
func (d *Draft) Closed() bool   { return d.closed }
func (d *Draft) Reserved() bool { return d.reserved }
func (d *Draft) Customer() *Customer {
	if d.customer == nil {
		return nil
	}
	c := *d.customer
	return &c
}

// editingSettled reports whether this draft edits a sale that was already closed.
func (d *Draft) editingSettled() bool {
	return d.editing && d.original != nil && d.original.Status.Settled()
}

// Cancel abandons the draft and releases its reservation. Editing drafts
// just close; the persisted sale is untouched.
func (d *Draft) Cancel(ctx context.Context) error {
	if d.closed {
		return nil
	}
	d.closed = true
	if !d.reserved {
		return nil
	}
	d.reserved = false
	if err := d.deps.Numbering.Cancel(ctx, d.id); err != nil {
		return fmt.Errorf("liberar reserva %s: %w", d.id, err)
	}
	return nil
}

// EndDraft is the best-effort release used when a session goes away without
// saving. Errors are logged.
func (d *Draft) EndDraft(ctx context.Context) {
	if err := d.Cancel(ctx); err != nil {
		log.Warn().Err(err).Str("sale_id", d.id).Msg("reservation release failed")
	}
}

func (d *Draft) open() error {
	if d.closed {
		return ErrDraftClosed
	}
	return nil
}

// ── Header ───────────────────────────────────────────────────────────────────

func (d *Draft) SetCustomer(c *Customer) error {
	if err := d.open(); err != nil {
		return err
	}
	if c == nil {
		d.customer = nil
		return nil
	}
	cp := *c
	d.customer = &cp
	return nil
}

func (d *Draft) SetSalesperson(a Actor) error {
	if err := d.open(); err != nil {
		return err
	}
	d.salesperson = a
	return nil
}

func (d *Draft) SetWarrantyTerm(name string) error {
	if err := d.open(); err != nil {
		return err
	}
	d.warrantyTerm = name
	return nil
}

func (d *Draft) SetObservations(observations, internal string) error {
	if err := d.open(); err != nil {
		return err
	}
	d.observations = observations
	d.internalObservations = internal
	return nil
}

func (d *Draft) SetGlobalDiscount(dt cart.DiscountType, value decimal.Decimal) error {
	if err := d.open(); err != nil {
		return err
	}
	return d.cart.SetGlobalDiscount(dt, value)
}

// ── Cart ─────────────────────────────────────────────────────────────────────

// RequestAdd stages p so the operator can choose quantity and price tier.
// Staging has no side effects and replaces any previous staged product.
func (d *Draft) RequestAdd(p cart.Product) error {
	if err := d.open(); err != nil {
		return err
	}
	d.stagedProduct = &p
	return nil
}

// StagedProduct returns the product awaiting ConfirmAdd, if any.
func (d *Draft) StagedProduct() *cart.Product {
	if d.stagedProduct == nil {
		return nil
	}
	p := *d.stagedProduct
	return &p
}

func (d *Draft) DiscardAdd() { d.stagedProduct = nil }

// ConfirmAdd commits the staged product. A cart rejection keeps it staged.
func (d *Draft) ConfirmAdd(quantity int, pt cart.PriceType) error {
	if err := d.open(); err != nil {
		return err
	}
	if d.stagedProduct == nil {
		return ErrNothingStaged
	}
	if err := d.cart.Add(*d.stagedProduct, quantity, pt); err != nil {
		return err
	}
	d.stagedProduct = nil
	return nil
}

// UpdateItem edits a line; a clamped quantity comes back as a notice.
func (d *Draft) UpdateItem(productID string, u cart.ItemUpdate) ([]Notice, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	adj, err := d.cart.UpdateItem(productID, u)
	if err != nil {
		return nil, err
	}
	if !adj.Clamped {
		return nil, nil
	}
	return []Notice{{
		Code:    NoticeQuantityClamped,
		Message: fmt.Sprintf("Quantidade ajustada de %d para %d conforme o estoque disponível", adj.Requested, adj.Applied),
	}}, nil
}

// RemoveItem drops a line. On a sale that was already finalized the item goes
// back to stock on save and every payment is cleared, since the total changed.
func (d *Draft) RemoveItem(productID string) ([]Notice, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	removed, err := d.cart.Remove(productID)
	if err != nil {
		return nil, err
	}
	if !d.editingSettled() {
		return nil, nil
	}

	notices := []Notice{{
		Code:    NoticeReturnedToStock,
		Message: fmt.Sprintf("%s será devolvido ao estoque ao salvar", removed.Name),
	}}
	if n := d.ledger.Clear(); n > 0 {
		d.staged = nil
		notices = append(notices, Notice{
			Code:    NoticePaymentsCleared,
			Message: "Os pagamentos foram removidos porque o total da venda mudou",
		})
	}
	return notices, nil
}

// ── Totals ───────────────────────────────────────────────────────────────────

// Totals is the derived state of a draft.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ItemDiscounts  decimal.Decimal `json:"item_discounts"`
	GlobalDiscount decimal.Decimal `json:"global_discount"`
	Total          decimal.Decimal `json:"total"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Balance        decimal.Decimal `json:"balance"`
	Change         decimal.Decimal `json:"change"`
	Settled        bool            `json:"settled"`
}

func (d *Draft) Total() decimal.Decimal { return d.cart.Total() }

func (d *Draft) Balance() decimal.Decimal { return d.ledger.Balance(d.cart.Total()) }

func (d *Draft) Totals() Totals {
	total := d.cart.Total()
	balance := d.ledger.Balance(total)
	change := decimal.Zero
	if balance.IsNegative() && !finance.IsSettled(balance) {
		change = balance.Neg()
	}
	return Totals{
		Subtotal:       d.cart.Subtotal(),
		ItemDiscounts:  d.cart.ItemDiscounts(),
		GlobalDiscount: d.cart.GlobalDiscount(),
		Total:          total,
		TotalPaid:      d.ledger.TotalPaid(),
		Balance:        balance,
		Change:         change,
		Settled:        !finance.HasPending(balance),
	}
}

// Snapshot is a read-only view of the draft.
type Snapshot struct {
	ID                   string            `json:"id"`
	Editing              bool              `json:"editing"`
	OriginalStatus       Status            `json:"original_status,omitempty"`
	CustomerID           string            `json:"customer_id,omitempty"`
	CustomerName         string            `json:"customer_name,omitempty"`
	SalespersonID        string            `json:"salesperson_id,omitempty"`
	SalespersonName      string            `json:"salesperson_name,omitempty"`
	WarrantyTerm         string            `json:"warranty_term,omitempty"`
	Observations         string            `json:"observations,omitempty"`
	InternalObservations string            `json:"internal_observations,omitempty"`
	Items                []cart.Item       `json:"items"`
	Payments             []payment.Payment `json:"payments"`
	Staged               *PaymentRequest   `json:"staged_payment,omitempty"`
	StagedProduct        *cart.Product     `json:"staged_product,omitempty"`
	Totals               Totals            `json:"totals"`
}

func (d *Draft) Snapshot() Snapshot {
	s := Snapshot{
		ID:                   d.id,
		Editing:              d.editing,
		SalespersonID:        d.salesperson.ID,
		SalespersonName:      d.salesperson.Name,
		WarrantyTerm:         d.warrantyTerm,
		Observations:         d.observations,
		InternalObservations: d.internalObservations,
		Items:                d.cart.Items(),
		Payments:             d.ledger.Payments(),
		StagedProduct:        d.StagedProduct(),
		Totals:               d.Totals(),
	}
	if d.original != nil {
		s.OriginalStatus = d.original.Status
	}
	if d.customer != nil {
		s.CustomerID = d.customer.ID
		s.CustomerName = d.customer.Name
	}
	if d.staged != nil {
		st := *d.staged
		s.Staged = &st
	}
	return s
}
