package checkout

import (
	"context"
	"errors"
	"fmt"

	"istorepro/internal/cart"
	"istorepro/internal/payment"

	"github.com/shopspring/decimal"
)

// ── Stub collaborators ───────────────────────────────────────────────────────

type stubNumbering struct {
	next      int
	reserved  []string
	cancelled []string
	failNext  bool
}

func (s *stubNumbering) Reserve(_ context.Context, _ string) (string, error) {
	if s.failNext {
		return "", errors.New("sem conexão")
	}
	s.next++
	id := fmt.Sprintf("V%05d", s.next)
	s.reserved = append(s.reserved, id)
	return id, nil
}

func (s *stubNumbering) Cancel(_ context.Context, id string) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

type stubStore struct {
	created []*Sale
	updated []*Sale
	fail    error
}

func (s *stubStore) Create(_ context.Context, sale *Sale, _ Actor) (*Sale, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.created = append(s.created, sale)
	return sale, nil
}

func (s *stubStore) Update(_ context.Context, sale *Sale, _ Actor) (*Sale, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.updated = append(s.updated, sale)
	return sale, nil
}

type stubProducts struct {
	created   []payment.NewProduct
	fail      bool
	returnNil bool
}

func (s *stubProducts) CreateProduct(_ context.Context, p payment.NewProduct) (*cart.Product, error) {
	if s.fail {
		return nil, errors.New("IMEI já cadastrado")
	}
	if s.returnNil {
		return nil, nil
	}
	s.created = append(s.created, p)
	return &cart.Product{ID: fmt.Sprintf("prod-%d", len(s.created)), Name: p.Name}, nil
}

type stubAudit struct {
	entries []AuditEntry
}

func (s *stubAudit) Record(_ context.Context, e AuditEntry) {
	s.entries = append(s.entries, e)
}

type stubCustomers struct {
	limits map[string]decimal.Decimal
}

func (s *stubCustomers) UpdateCreditLimit(_ context.Context, id string, limit decimal.Decimal) error {
	if s.limits == nil {
		s.limits = map[string]decimal.Decimal{}
	}
	s.limits[id] = limit
	return nil
}

type fixture struct {
	numbering *stubNumbering
	store     *stubStore
	products  *stubProducts
	audit     *stubAudit
	customers *stubCustomers
	deps      Deps
}

func newFixture() *fixture {
	f := &fixture{
		numbering: &stubNumbering{},
		store:     &stubStore{},
		products:  &stubProducts{},
		audit:     &stubAudit{},
		customers: &stubCustomers{},
	}
	f.deps = Deps{
		Numbering: f.numbering,
		Store:     f.store,
		Products:  f.products,
		Audit:     f.audit,
		Customers: f.customers,
		Methods: payment.Snapshot{
			{Name: "Dinheiro", Type: "dinheiro", Active: true},
			{Name: "Pix", Type: "pix", Active: true},
			{Name: "Promissória", Type: "outro", Active: false},
			{
				Name: "Cartão de Crédito", Type: "cartao", Active: true,
				Config: payment.RateConfig{
					DebitRate:               dec("2"),
					CreditNoInterestRates:   []decimal.Decimal{dec("3"), dec("4"), dec("5")},
					CreditWithInterestRates: []decimal.Decimal{dec("5"), dec("8"), dec("10")},
				},
			},
			{
				Name: "Cartão de Débito", Type: "cartao", Active: true,
				Config: payment.RateConfig{DebitRate: dec("2")},
			},
		},
	}
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	vendedor = Actor{ID: "u-1", Name: "Marina"}
	cliente  = &Customer{ID: "c-1", Name: "João Silva", AllowCredit: true, CreditLimit: dec("1000"), CreditUsed: dec("800")}
)

func capa() cart.Product {
	return cart.Product{ID: "p-case", Name: "Capa Silicone", Stock: 10, Price: dec("250")}
}

func iphone13() cart.Product {
	return cart.Product{ID: "p-ip13", Name: "iPhone 13 128GB", Stock: 1, Price: dec("1000"), IMEI1: "356000000000001"}
}
