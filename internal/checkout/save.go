package checkout

import (
	"context"
	"fmt"

	"istorepro/internal/finance"
	"istorepro/internal/payment"

	"github.com/rs/zerolog/log"
)

// Validate checks the preconditions of saving with target, without side effects.
func (d *Draft) Validate(target Status) error {
	if err := d.open(); err != nil {
		return err
	}
	if target != StatusParked && target != StatusFinalized {
		return ErrInvalidTarget
	}
	if d.customer == nil {
		return invalid("cliente", ErrCustomerRequired)
	}
	if d.salesperson.ID == "" {
		return invalid("vendedor", ErrSalespersonMissing)
	}
	if d.cart.Len() == 0 {
		return invalid("itens", ErrEmptyCart)
	}
	if d.warrantyTerm == "" {
		return invalid("termo_garantia", ErrWarrantyMissing)
	}
	if target == StatusParked && d.editingSettled() {
		return ErrCannotParkSettled
	}
	if target == StatusFinalized && finance.HasPending(d.Balance()) {
		return invalid("pagamentos", ErrBalancePending)
	}
	return nil
}

// resultStatus maps a save target to the persisted status.
func (d *Draft) resultStatus(target Status) Status {
	if target == StatusFinalized && d.editingSettled() {
		return StatusEdited
	}
	return target
}

// Save persists the draft as parked or finalized. Pending trade-ins are
// created first; any failure aborts the whole save and leaves the draft as it
// was. On success the reservation is consumed and the draft closes.
func (d *Draft) Save(ctx context.Context, target Status, actor Actor) (*Sale, error) {
	if err := d.Validate(target); err != nil {
		return nil, err
	}

	payments := d.ledger.Payments()
	var resolved []int

	persist := func(store SaleStore, products ProductCreator) (*Sale, error) {
		resolved = resolved[:0]
		for i := range payments {
			ti := payments[i].TradeIn
			if !ti.Pending() {
				continue
			}
			p, err := products.CreateProduct(ctx, *ti.Payload)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTradeInCreation, err)
			}
			if p == nil {
				return nil, ErrTradeInCreation
			}
			ti.Resolve(p.ID)
			resolved = append(resolved, i)
		}

		sale := d.buildSale(target, payments)
		if d.editing {
			return store.Update(ctx, sale, actor)
		}
		return store.Create(ctx, sale, actor)
	}

	var saved *Sale
	var err error
	if d.deps.UnitOfWork != nil {
		err = d.deps.UnitOfWork.Do(ctx, func(store SaleStore, products ProductCreator) error {
			s, err := persist(store, products)
			saved = s
			return err
		})
	} else {
		saved, err = persist(d.deps.Store, d.deps.Products)
	}
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = d.buildSale(target, payments)
	}

	d.reserved = false
	d.closed = true
	d.staged = nil
	d.stagedProduct = nil
	d.ledger.Load(payments)

	log.Info().
		Str("sale_id", saved.ID).
		Str("status", string(saved.Status)).
		Str("actor_id", actor.ID).
		Str("total", saved.Total.StringFixed(2)).
		Msg("sale saved")

	if d.deps.Audit != nil {
		for _, i := range resolved {
			ti := payments[i].TradeIn
			d.deps.Audit.Record(ctx, AuditEntry{
				Action:     "CREATE",
				EntityType: "produto",
				EntityID:   ti.ProductID,
				Message:    fmt.Sprintf("Produto %s recebido na troca da venda %s", ti.ProductName, saved.ID),
				ActorID:    actor.ID,
				ActorName:  actor.Name,
			})
		}
	}
	return saved, nil
}

func (d *Draft) buildSale(target Status, payments []payment.Payment) *Sale {
	gdt, gdv := d.cart.GlobalDiscountSetting()
	now := d.deps.now()
	sale := &Sale{
		ID:                   d.id,
		CustomerID:           d.customer.ID,
		CustomerName:         d.customer.Name,
		SalespersonID:        d.salesperson.ID,
		SalespersonName:      d.salesperson.Name,
		Items:                d.cart.Items(),
		Payments:             payments,
		Subtotal:             d.cart.Subtotal(),
		Discount:             d.cart.Discount(),
		GlobalDiscountType:   gdt,
		GlobalDiscountValue:  gdv,
		Total:                d.cart.Total(),
		Status:               d.resultStatus(target),
		WarrantyTerm:         d.warrantyTerm,
		Observations:         d.observations,
		InternalObservations: d.internalObservations,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if d.original != nil {
		sale.PreviousStatus = d.original.Status
		sale.CreatedAt = d.original.CreatedAt
	}
	return sale
}
