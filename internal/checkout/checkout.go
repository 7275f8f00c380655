// Package checkout drives one sale from an empty draft to a parked, finalized
// or edited sale. It composes the cart and payment ledgers, holds the sale-id
// reservation for the draft, and resolves trade-in devices atomically on save.
//
// Everything outside the draft (numbering, persistence, product creation,
// audit) is reached through the collaborator interfaces below.
package checkout

import (
	"context"
	"time"

	"istorepro/internal/cart"
	"istorepro/internal/finance"
	"istorepro/internal/payment"

	"github.com/shopspring/decimal"
)

// Status is the persisted state of a sale.
type Status string

const (
	StatusParked    Status = "Pendente"
	StatusFinalized Status = "Finalizada"
	StatusEdited    Status = "Editada"
)

// Settled reports whether the sale was closed with its balance paid.
func (s Status) Settled() bool { return s == StatusFinalized || s == StatusEdited }

// Actor is the operator performing an action.
type Actor struct {
	ID   string
	Name string
}

// Customer is the slice of a customer record a draft needs.
type Customer struct {
	ID          string
	Name        string
	AllowCredit bool
	CreditLimit decimal.Decimal
	CreditUsed  decimal.Decimal
}

func (c Customer) CreditProfile() finance.CreditProfile {
	return finance.CreditProfile{AllowCredit: c.AllowCredit, Limit: c.CreditLimit, Used: c.CreditUsed}
}

// Sale is the aggregate handed to the persistence collaborator.
type Sale struct {
	ID                   string
	CustomerID           string
	CustomerName         string
	SalespersonID        string
	SalespersonName      string
	Items                []cart.Item
	Payments             []payment.Payment
	Subtotal             decimal.Decimal
	Discount             decimal.Decimal
	GlobalDiscountType   cart.DiscountType
	GlobalDiscountValue  decimal.Decimal
	Total                decimal.Decimal
	Status               Status
	PreviousStatus       Status
	WarrantyTerm         string
	Observations         string
	InternalObservations string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Numbering hands out provisional sale ids.
type Numbering interface {
	Reserve(ctx context.Context, userID string) (string, error)
	Cancel(ctx context.Context, provisionalID string) error
}

// SaleStore persists sales.
type SaleStore interface {
	Create(ctx context.Context, sale *Sale, actor Actor) (*Sale, error)
	Update(ctx context.Context, sale *Sale, actor Actor) (*Sale, error)
}

// ProductCreator materializes trade-in devices. A nil product with a nil
// error is a failure.
type ProductCreator interface {
	CreateProduct(ctx context.Context, p payment.NewProduct) (*cart.Product, error)
}

// UnitOfWork runs fn with a store and product creator bound to one
// transaction; returning an error rolls both back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(store SaleStore, products ProductCreator) error) error
}

// AuditEntry is one audit log record.
type AuditEntry struct {
	Action     string
	EntityType string
	EntityID   string
	Message    string
	ActorID    string
	ActorName  string
}

// AuditSink records audit entries. Failures are logged, never returned.
type AuditSink interface {
	Record(ctx context.Context, e AuditEntry)
}

// CreditLimitUpdater persists a customer's credit limit outside the sale.
type CreditLimitUpdater interface {
	UpdateCreditLimit(ctx context.Context, customerID string, limit decimal.Decimal) error
}

// Deps bundles the collaborators of a draft. UnitOfWork is optional; without
// it Store and Products are called directly.
type Deps struct {
	Numbering  Numbering
	Store      SaleStore
	Products   ProductCreator
	UnitOfWork UnitOfWork
	Audit      AuditSink
	Customers  CreditLimitUpdater
	Methods    payment.Snapshot
	Now        func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
