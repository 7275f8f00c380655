package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"istorepro/internal/cart"
	"istorepro/internal/finance"
	"istorepro/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readyDraft returns a draft with a 1000 total, a customer and a warranty term.
func readyDraft(t *testing.T, f *fixture) *Draft {
	t.Helper()
	d, err := StartDraft(context.Background(), f.deps, vendedor)
	require.NoError(t, err)
	require.NoError(t, d.RequestAdd(iphone13()))
	require.NoError(t, d.ConfirmAdd(1, cart.PriceSale))
	require.NoError(t, d.SetCustomer(cliente))
	require.NoError(t, d.SetWarrantyTerm("Garantia 90 dias"))
	return d
}

func payCash(t *testing.T, d *Draft, amount string) payment.Payment {
	t.Helper()
	_, err := d.RequestPayment(payment.Cash, "")
	require.NoError(t, err)
	p, err := d.ConfirmAmountPayment(dec(amount))
	require.NoError(t, err)
	return p
}

// ── Reservation lifecycle ────────────────────────────────────────────────────

func TestStartDraft_ReservesOnce(t *testing.T) {
	f := newFixture()
	d, err := StartDraft(context.Background(), f.deps, vendedor)
	require.NoError(t, err)

	assert.Equal(t, "V00001", d.ID())
	assert.True(t, d.Reserved())
	assert.Len(t, f.numbering.reserved, 1)
}

func TestStartDraft_ReserveFailure(t *testing.T) {
	f := newFixture()
	f.numbering.failNext = true
	_, err := StartDraft(context.Background(), f.deps, vendedor)
	assert.Error(t, err)
}

func TestCancel_ReleasesReservation(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)

	require.NoError(t, d.Cancel(context.Background()))
	assert.Equal(t, []string{"V00001"}, f.numbering.cancelled)
	assert.True(t, d.Closed())

	// Second cancel and EndDraft are no-ops.
	require.NoError(t, d.Cancel(context.Background()))
	d.EndDraft(context.Background())
	assert.Len(t, f.numbering.cancelled, 1)

	assert.ErrorIs(t, d.RequestAdd(capa()), ErrDraftClosed)
}

func TestSave_ConsumesReservation(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	payCash(t, d, "1000")

	_, err := d.Save(context.Background(), StatusFinalized, vendedor)
	require.NoError(t, err)

	d.EndDraft(context.Background())
	assert.Empty(t, f.numbering.cancelled, "a saved sale's id must not be released")
	_, err = d.Save(context.Background(), StatusFinalized, vendedor)
	assert.ErrorIs(t, err, ErrDraftClosed)
	assert.Len(t, f.store.created, 1)
}

func TestOpenForEdit_NoReservation(t *testing.T) {
	f := newFixture()
	sale := &Sale{ID: "V00042", Status: StatusParked, SalespersonID: "u-1"}
	d := OpenForEdit(f.deps, sale, cliente)

	assert.Equal(t, "V00042", d.ID())
	assert.False(t, d.Reserved())
	require.NoError(t, d.Cancel(context.Background()))
	assert.Empty(t, f.numbering.reserved)
	assert.Empty(t, f.numbering.cancelled)
}

// ── Cart ─────────────────────────────────────────────────────────────────────

func TestRequestAdd_DiscardHasNoEffect(t *testing.T) {
	f := newFixture()
	d, err := StartDraft(context.Background(), f.deps, vendedor)
	require.NoError(t, err)

	require.NoError(t, d.RequestAdd(capa()))
	require.NotNil(t, d.StagedProduct())
	d.DiscardAdd()

	assert.Nil(t, d.StagedProduct())
	assert.Empty(t, d.Snapshot().Items)
	assert.ErrorIs(t, d.ConfirmAdd(1, cart.PriceSale), ErrNothingStaged)
}

func TestConfirmAdd_StockRejectionKeepsStaging(t *testing.T) {
	f := newFixture()
	d, err := StartDraft(context.Background(), f.deps, vendedor)
	require.NoError(t, err)

	require.NoError(t, d.RequestAdd(capa()))
	assert.ErrorIs(t, d.ConfirmAdd(11, cart.PriceSale), cart.ErrInsufficientStock)
	assert.NotNil(t, d.StagedProduct())
	require.NoError(t, d.ConfirmAdd(2, cart.PriceSale))
	assert.True(t, d.Total().Equal(dec("500")))
}

func TestUpdateItem_ClampNotice(t *testing.T) {
	f := newFixture()
	d, err := StartDraft(context.Background(), f.deps, vendedor)
	require.NoError(t, err)
	require.NoError(t, d.RequestAdd(capa()))
	require.NoError(t, d.ConfirmAdd(1, cart.PriceSale))

	q := 50
	notices, err := d.UpdateItem("p-case", cart.ItemUpdate{Quantity: &q})
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeQuantityClamped, notices[0].Code)
}

func TestRemoveItem_FromFinalizedSaleClearsPayments(t *testing.T) {
	f := newFixture()
	sale := &Sale{
		ID:            "V00007",
		Status:        StatusFinalized,
		SalespersonID: "u-1",
		WarrantyTerm:  "Garantia 90 dias",
		Items: []cart.Item{
			{ProductID: "p-case", Name: "Capa Silicone", Stock: 10, Quantity: 1, SalePrice: dec("250"), PriceType: cart.PriceSale, DiscountType: cart.DiscountCurrency},
			{ProductID: "p-ip13", Name: "iPhone 13 128GB", Serialized: true, Stock: 1, Quantity: 1, SalePrice: dec("1000"), PriceType: cart.PriceSale, DiscountType: cart.DiscountCurrency},
		},
		Payments: []payment.Payment{{ID: "pg-1", Method: payment.Cash, Value: dec("1250")}},
	}
	d := OpenForEdit(f.deps, sale, cliente)

	notices, err := d.RemoveItem("p-case")
	require.NoError(t, err)

	codes := []NoticeCode{}
	for _, n := range notices {
		codes = append(codes, n.Code)
	}
	assert.Equal(t, []NoticeCode{NoticeReturnedToStock, NoticePaymentsCleared}, codes)
	assert.Empty(t, d.Snapshot().Payments)
	assert.True(t, d.Balance().Equal(dec("1000")))
}

func TestRemoveItem_NewDraftKeepsPayments(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	require.NoError(t, d.RequestAdd(capa()))
	require.NoError(t, d.ConfirmAdd(1, cart.PriceSale))
	payCash(t, d, "100")

	notices, err := d.RemoveItem("p-case")
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Len(t, d.Snapshot().Payments, 1)
}

// ── Payments ─────────────────────────────────────────────────────────────────

func TestRequestPayment_RequiresPendingBalance(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	payCash(t, d, "1000")

	for _, m := range []payment.Method{payment.Cash, payment.Pix, payment.Credit, payment.StoreCredit} {
		_, err := d.RequestPayment(m, "")
		assert.ErrorIs(t, err, ErrNoPendingBalance, string(m))
	}

	req, err := d.RequestPayment(payment.TradeInDevice, "")
	require.NoError(t, err)
	assert.Equal(t, FlowTradeIn, req.Flow)
}

func TestRequestPayment_StoreCreditNeedsCustomer(t *testing.T) {
	f := newFixture()
	d, err := StartDraft(context.Background(), f.deps, vendedor)
	require.NoError(t, err)
	require.NoError(t, d.RequestAdd(capa()))
	require.NoError(t, d.ConfirmAdd(1, cart.PriceSale))

	_, err = d.RequestPayment(payment.StoreCredit, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cliente", verr.Field)
}

func TestRequestPayment_InactiveMethod(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.PromissoryNote, "")
	assert.ErrorIs(t, err, ErrMethodUnavailable)
}

func TestRequestPayment_DefaultsToBalance(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	payCash(t, d, "300")

	req, err := d.RequestPayment(payment.Pix, "Nubank")
	require.NoError(t, err)
	assert.True(t, req.DefaultAmount.Equal(dec("700")))
	assert.Equal(t, FlowAmount, req.Flow)

	_, err = d.ConfirmAmountPayment(dec("800"))
	assert.ErrorIs(t, err, ErrExceedsBalance)

	p, err := d.ConfirmAmountPayment(dec("700"))
	require.NoError(t, err)
	assert.Equal(t, "Nubank", p.Variation)
}

func TestCashOverpaymentIsChange(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	payCash(t, d, "1100")

	totals := d.Totals()
	assert.True(t, totals.Settled)
	assert.True(t, totals.Change.Equal(dec("100")))
}

func TestConfirmCardPayment_ValueIsChargeAmount(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)

	_, err := d.RequestPayment(payment.Credit, "")
	require.NoError(t, err)

	p, err := d.ConfirmCardPayment(CardInput{ChargeAmount: dec("1000"), FeeMode: finance.CustomerAbsorbs, Installments: 3})
	require.NoError(t, err)

	assert.True(t, p.Value.Equal(dec("1000")))
	require.NotNil(t, p.Card)
	assert.True(t, p.Card.FeePercentage.Equal(dec("10")))
	assert.Equal(t, "1111.11", p.Card.TotalCharged.StringFixed(2))
	assert.Equal(t, "111.11", p.Card.Fees.StringFixed(2))
	assert.Equal(t, "370.37", p.Card.InstallmentValue.StringFixed(2))
	assert.True(t, d.Totals().Settled)
}

func TestConfirmCardPayment_MerchantAbsorbs(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.Credit, "")
	require.NoError(t, err)

	q, err := d.QuoteCardPayment(CardInput{ChargeAmount: dec("1000"), FeeMode: finance.MerchantAbsorbs, Installments: 2})
	require.NoError(t, err)
	assert.True(t, q.TotalToPay.Equal(dec("1000")))
	assert.True(t, q.Fees.Equal(dec("40")))
	assert.True(t, q.InstallmentValue.Equal(dec("500")))
}

func TestConfirmCardPayment_Debit(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.Debit, "")
	require.NoError(t, err)

	p, err := d.ConfirmCardPayment(CardInput{ChargeAmount: dec("490"), Installments: 6})
	require.NoError(t, err)
	assert.Equal(t, payment.CardDebit, p.Card.Type)
	assert.Equal(t, 1, p.Card.Installments)
	assert.Equal(t, "500.00", p.Card.TotalCharged.StringFixed(2))
}

func TestConfirmCardPayment_RejectsOverBalance(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.Credit, "")
	require.NoError(t, err)

	_, err = d.ConfirmCardPayment(CardInput{ChargeAmount: dec("1200"), Installments: 1})
	assert.ErrorIs(t, err, ErrExceedsBalance)

	_, err = d.ConfirmCardPayment(CardInput{ChargeAmount: dec("100"), Installments: 12})
	assert.ErrorIs(t, err, payment.ErrRateNotConfigured)
}

func TestConfirmWrongFlow(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.Cash, "")
	require.NoError(t, err)

	_, err = d.ConfirmCardPayment(CardInput{ChargeAmount: dec("10"), Installments: 1})
	assert.ErrorIs(t, err, ErrWrongPaymentFlow)
}

func TestCreditPlan_PrincipalOnlyCountsTowardBalance(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)

	_, err := d.RequestPayment(payment.StoreCredit, "")
	require.NoError(t, err)

	rate := dec("10")
	first := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	added, err := d.ConfirmCreditPlan(CreditInput{
		DownPayment:     dec("820"),
		AmountToFinance: dec("180"),
		Installments:    2,
		Frequency:       finance.Monthly,
		FirstDueDate:    first,
		InterestRate:    &rate,
	})
	require.NoError(t, err)
	require.Len(t, added, 2)

	assert.Equal(t, payment.Cash, added[0].Method)
	assert.True(t, added[0].Value.Equal(dec("820")))

	credit := added[1]
	assert.Equal(t, payment.StoreCredit, credit.Method)
	assert.True(t, credit.Value.Equal(dec("180")))
	require.NotNil(t, credit.Credit)
	assert.True(t, credit.Credit.TotalFinanced.Equal(dec("198")))
	assert.True(t, credit.Credit.InstallmentValue.Equal(dec("99")))
	assert.Equal(t, "2024-02-29", credit.Credit.Schedule[0].DueDate.Format("2006-01-02"))
	assert.True(t, d.Totals().Settled)
}

func TestQuoteCredit_InstallmentsCloseOnTheCent(t *testing.T) {
	c := Customer{ID: "c-9", AllowCredit: true, CreditLimit: dec("5000")}
	rate := dec("7")
	for _, tc := range []struct {
		principal string
		n         int
		rate      *decimal.Decimal
	}{
		{"1000", 3, nil},
		{"999.99", 7, nil},
		{"1234.56", 5, &rate},
	} {
		q, err := QuoteCredit(c, dec(tc.principal), CreditInput{
			AmountToFinance: dec(tc.principal),
			Installments:    tc.n,
			FirstDueDate:    time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			InterestRate:    tc.rate,
		})
		require.NoError(t, err)
		require.Len(t, q.Installments, tc.n)

		sum := decimal.Zero
		for _, inst := range q.Installments {
			assert.True(t, inst.Amount.Equal(inst.Amount.Round(2)), "%s/%d: %s", tc.principal, tc.n, inst.Amount)
			sum = sum.Add(inst.Amount)
		}
		assert.True(t, sum.Equal(q.TotalFinanced.Round(2)), "%s/%d: sum %s total %s", tc.principal, tc.n, sum, q.TotalFinanced)
	}

	q, err := QuoteCredit(c, dec("1000"), CreditInput{AmountToFinance: dec("1000"), Installments: 3, FirstDueDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "333.33", q.Installments[0].Amount.StringFixed(2))
	assert.Equal(t, "333.33", q.Installments[1].Amount.StringFixed(2))
	assert.Equal(t, "333.34", q.Installments[2].Amount.StringFixed(2))
}

func TestCreditPlan_BlockedOverLimit(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.StoreCredit, "")
	require.NoError(t, err)

	in := CreditInput{AmountToFinance: dec("500"), Installments: 5, FirstDueDate: time.Now()}
	q, err := d.QuoteCreditPlan(in)
	require.NoError(t, err)
	assert.True(t, q.Blocked)
	assert.Equal(t, finance.LimitExceeded, q.Credit.Reason)

	_, err = d.ConfirmCreditPlan(in)
	var denied *CreditDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Empty(t, d.Snapshot().Payments)

	// Raising the limit inline unblocks the plan and is persisted immediately.
	require.NoError(t, d.UpdateCustomerCreditLimit(context.Background(), dec("2000")))
	assert.True(t, f.customers.limits["c-1"].Equal(dec("2000")))

	_, err = d.ConfirmCreditPlan(in)
	require.NoError(t, err)
}

func TestRemovePayment_TradeInNotice(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.TradeInDevice, "")
	require.NoError(t, err)

	p, err := d.AddTradeIn(TradeInInput{Value: dec("600"), NewProduct: &payment.NewProduct{Name: "iPhone 11 64GB"}})
	require.NoError(t, err)
	assert.True(t, p.TradeIn.Pending())

	notices, err := d.RemovePayment(p.ID)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeTradeInRemoved, notices[0].Code)
	assert.Contains(t, notices[0].Message, "iPhone 11")

	_, err = d.RemovePayment(p.ID)
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}

func TestAddTradeIn_Incomplete(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	_, err := d.RequestPayment(payment.TradeInDevice, "")
	require.NoError(t, err)

	_, err = d.AddTradeIn(TradeInInput{Value: dec("600")})
	assert.ErrorIs(t, err, ErrTradeInIncomplete)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestSave_FinalizeWhenSettled(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	payCash(t, d, "1000")
	require.True(t, d.Balance().IsZero())

	sale, err := d.Save(context.Background(), StatusFinalized, vendedor)
	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, sale.Status)
	assert.Equal(t, "V00001", sale.ID)
	assert.True(t, sale.Total.Equal(dec("1000")))
}

func TestSave_FinalizeRejectedWithBalancePending(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)
	payCash(t, d, "400")

	_, err := d.Save(context.Background(), StatusFinalized, vendedor)
	assert.ErrorIs(t, err, ErrBalancePending)
	assert.False(t, d.Closed())

	sale, err := d.Save(context.Background(), StatusParked, vendedor)
	require.NoError(t, err)
	assert.Equal(t, StatusParked, sale.Status)
}

func TestSave_ValidationNamesMissingField(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name  string
		setup func(d *Draft)
		field string
	}{
		{"customer", func(d *Draft) { _ = d.SetCustomer(nil) }, "cliente"},
		{"salesperson", func(d *Draft) { _ = d.SetSalesperson(Actor{}) }, "vendedor"},
		{"items", func(d *Draft) { _, _ = d.RemoveItem("p-ip13") }, "itens"},
		{"warranty", func(d *Draft) { _ = d.SetWarrantyTerm("") }, "termo_garantia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := readyDraft(t, f)
			tt.setup(d)
			_, err := d.Save(context.Background(), StatusParked, vendedor)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSave_ResolvesTradeInsAndAudits(t *testing.T) {
	f := newFixture()
	d := readyDraft(t, f)

	_, err := d.RequestPayment(payment.TradeInDevice, "")
	require.NoError(t, err)
	_, err = d.AddTradeIn(TradeInInput{Value: dec("600"), NewProduct: &payment.NewProduct{Name: "iPhone 11 64GB", IMEI1: "351111111111111"}})
	require.NoError(t, err)
	payCash(t, d, "400")

	sale, err := d.Save(context.Background(), StatusFinalized, vendedor)
	require.NoError(t, err)

	require.Len(t, f.products.created, 1)
	trade := sale.Payments[0]
	assert.Equal(t, "prod-1", trade.TradeIn.ProductID)
	assert.False(t, trade.TradeIn.Pending())

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "prod-1", f.audit.entries[0].EntityID)
	assert.Contains(t, f.audit.entries[0].Message, "V00001")
}

func TestSave_TradeInFailureAbortsAtomically(t *testing.T) {
	for name, products := range map[string]*stubProducts{
		"error":      {fail: true},
		"nil result": {returnNil: true},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.deps.Products = products
			d := readyDraft(t, f)

			_, err := d.RequestPayment(payment.TradeInDevice, "")
			require.NoError(t, err)
			_, err = d.AddTradeIn(TradeInInput{Value: dec("1000"), NewProduct: &payment.NewProduct{Name: "iPhone X"}})
			require.NoError(t, err)

			_, err = d.Save(context.Background(), StatusFinalized, vendedor)
			assert.ErrorIs(t, err, ErrTradeInCreation)

			assert.Empty(t, f.store.created)
			assert.Empty(t, f.audit.entries)
			assert.False(t, d.Closed())
			assert.True(t, d.Snapshot().Payments[0].TradeIn.Pending(), "draft must keep the pending trade-in")
		})
	}
}

func TestSave_PersistenceFailureLeavesDraftIntact(t *testing.T) {
	f := newFixture()
	f.store.fail = errors.New("timeout")
	d := readyDraft(t, f)
	payCash(t, d, "1000")

	_, err := d.Save(context.Background(), StatusFinalized, vendedor)
	require.Error(t, err)
	assert.False(t, d.Closed())
	assert.True(t, d.Reserved())

	f.store.fail = nil
	_, err = d.Save(context.Background(), StatusFinalized, vendedor)
	require.NoError(t, err)
}

func TestSave_EditingFinalizedBecomesEdited(t *testing.T) {
	f := newFixture()
	sale := &Sale{
		ID:            "V00009",
		Status:        StatusFinalized,
		SalespersonID: "u-1",
		WarrantyTerm:  "Garantia 90 dias",
		Items: []cart.Item{
			{ProductID: "p-case", Name: "Capa Silicone", Stock: 10, Quantity: 2, SalePrice: dec("250"), PriceType: cart.PriceSale, DiscountType: cart.DiscountCurrency},
		},
		Payments: []payment.Payment{{ID: "pg-1", Method: payment.Cash, Value: dec("500")}},
	}
	d := OpenForEdit(f.deps, sale, cliente)

	_, err := d.Save(context.Background(), StatusParked, vendedor)
	assert.ErrorIs(t, err, ErrCannotParkSettled)

	saved, err := d.Save(context.Background(), StatusFinalized, vendedor)
	require.NoError(t, err)
	assert.Equal(t, StatusEdited, saved.Status)
	assert.Equal(t, StatusFinalized, saved.PreviousStatus)
	assert.Len(t, f.store.updated, 1)
	assert.Empty(t, f.store.created)
}

type stubUnitOfWork struct {
	store    SaleStore
	products ProductCreator
	calls    int
}

func (u *stubUnitOfWork) Do(_ context.Context, fn func(SaleStore, ProductCreator) error) error {
	u.calls++
	return fn(u.store, u.products)
}

func TestSave_UsesUnitOfWork(t *testing.T) {
	f := newFixture()
	uow := &stubUnitOfWork{store: f.store, products: f.products}
	f.deps.UnitOfWork = uow
	d := readyDraft(t, f)
	payCash(t, d, "1000")

	_, err := d.Save(context.Background(), StatusFinalized, vendedor)
	require.NoError(t, err)
	assert.Equal(t, 1, uow.calls)
}
