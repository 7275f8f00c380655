package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"istorepro/internal/cart"
	"istorepro/internal/checkout"
	"istorepro/internal/finance"
	"istorepro/internal/model"
	"istorepro/internal/payment"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNumeroExpirado = errors.New("O número reservado para esta venda expirou; inicie uma nova venda")

// ── Numbering ────────────────────────────────────────────────────────────────

// numeracao reserves sale numbers from the vendas_numero_seq sequence. A
// number is held by a ReservaVenda row until the sale consumes it or the
// reservation is cancelled.
type numeracao struct {
	reservas repository.ReservaRepository
	ttl      time.Duration
	now      func() time.Time
}

func (n *numeracao) Reserve(ctx context.Context, userID string) (string, error) {
	seq, err := n.reservas.NextNumber(ctx)
	if err != nil {
		return "", err
	}
	id := fmt.Sprintf("%06d", seq)
	if err := n.reservas.Create(ctx, &model.ReservaVenda{
		ID:        id,
		UsuarioID: userID,
		Status:    model.ReservaAtiva,
		ExpiresAt: n.now().Add(n.ttl),
	}); err != nil {
		return "", err
	}
	log.Debug().Str("sale_id", id).Str("user_id", userID).Msg("sale number reserved")
	return id, nil
}

func (n *numeracao) Cancel(ctx context.Context, id string) error {
	return n.reservas.Cancel(ctx, id)
}

// ── Audit / credit ───────────────────────────────────────────────────────────

type auditSink struct {
	repo repository.AuditoriaRepository
}

func (a auditSink) Record(ctx context.Context, e checkout.AuditEntry) {
	err := a.repo.Create(ctx, &model.LogAuditoria{
		Acao:        e.Action,
		Entidade:    e.EntityType,
		EntidadeID:  e.EntityID,
		Mensagem:    e.Message,
		UsuarioID:   e.ActorID,
		UsuarioNome: e.ActorName,
	})
	if err != nil {
		log.Warn().Err(err).Str("entity", e.EntityType).Str("entity_id", e.EntityID).Msg("audit log write failed")
	}
}

type clienteLimite struct {
	clientes repository.ClienteRepository
}

func (c clienteLimite) UpdateCreditLimit(ctx context.Context, customerID string, limit decimal.Decimal) error {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return ErrClienteNaoEncontrado
	}
	return notFound(c.clientes.UpdateLimiteCredito(ctx, id, limit), ErrClienteNaoEncontrado)
}

// ── Unit of work ─────────────────────────────────────────────────────────────

// vendaUnitOfWork binds sale persistence and trade-in product creation to one
// transaction. Stock, crediário installments and customer credit follow the
// sale inside the same transaction.
type vendaUnitOfWork struct {
	db        *gorm.DB
	vendas    repository.VendaRepository
	reservas  repository.ReservaRepository
	produtos  repository.ProdutoRepository
	crediario repository.CrediarioRepository
	clientes  repository.ClienteRepository
	estoque   EstoqueService
}

func (u *vendaUnitOfWork) Do(ctx context.Context, fn func(checkout.SaleStore, checkout.ProductCreator) error) error {
	return runTx(ctx, u.db, func(tx *gorm.DB) error {
		t := &vendaTx{u: u, tx: tx}
		return fn(t, t)
	})
}

// vendaTx is one save in progress.
type vendaTx struct {
	u       *vendaUnitOfWork
	tx      *gorm.DB
	criados []uuid.UUID
}

func (t *vendaTx) CreateProduct(_ context.Context, np payment.NewProduct) (*cart.Product, error) {
	p := novoProdutoFromTroca(np)
	if err := t.u.produtos.CreateTx(t.tx, p); err != nil {
		return nil, err
	}
	t.criados = append(t.criados, p.ID)
	cp := produtoToCart(p)
	return &cp, nil
}

func (t *vendaTx) Create(_ context.Context, sale *checkout.Sale, _ checkout.Actor) (*checkout.Sale, error) {
	if err := t.u.reservas.ConsumeTx(t.tx, sale.ID); err != nil {
		if errors.Is(err, repository.ErrReservaIndisponivel) {
			return nil, ErrNumeroExpirado
		}
		return nil, err
	}
	v, err := saleToVenda(sale)
	if err != nil {
		return nil, err
	}
	if err := t.u.vendas.CreateTx(t.tx, v); err != nil {
		return nil, err
	}
	if err := t.aplicarEfeitos(nil, v); err != nil {
		return nil, err
	}
	return sale, nil
}

func (t *vendaTx) Update(_ context.Context, sale *checkout.Sale, _ checkout.Actor) (*checkout.Sale, error) {
	prev, err := t.u.vendas.FindByIDTx(t.tx, sale.ID)
	if err != nil {
		return nil, notFound(err, ErrVendaNaoEncontrada)
	}
	v, err := saleToVenda(sale)
	if err != nil {
		return nil, err
	}
	v.CreatedAt = prev.CreatedAt
	if err := t.u.vendas.ReplaceTx(t.tx, v); err != nil {
		return nil, err
	}
	if err := t.aplicarEfeitos(prev, v); err != nil {
		return nil, err
	}
	return sale, nil
}

// aplicarEfeitos moves stock, crediário and customer credit from what prev
// committed to what next commits. Only settled sales commit anything.
func (t *vendaTx) aplicarEfeitos(prev, next *model.Venda) error {
	for _, id := range t.criados {
		if err := t.u.produtos.SetOrigemVendaTx(t.tx, id, next.ID); err != nil {
			return err
		}
	}
	if err := t.moverEstoque(prev, next); err != nil {
		return err
	}
	return t.ajustarCrediario(prev, next)
}

func (t *vendaTx) moverEstoque(prev, next *model.Venda) error {
	ref := next.ID
	antes, depois := quantidades(prev), quantidades(next)
	for _, id := range unionIDs(antes, depois) {
		delta := antes[id] - depois[id]
		tipo, motivo := model.MovVenda, "Venda "+ref
		if delta > 0 {
			tipo, motivo = model.MovEstornoEdicao, "Edição da venda "+ref
		}
		if err := t.u.estoque.MoverTx(t.tx, id, delta, tipo, motivo, &ref); err != nil {
			return err
		}
	}

	recebidosAntes, recebidosDepois := trocasRecebidas(prev), trocasRecebidas(next)
	for _, id := range unionIDs(recebidosAntes, recebidosDepois) {
		delta := recebidosDepois[id] - recebidosAntes[id]
		tipo, motivo := model.MovEntradaTroca, "Aparelho recebido na troca da venda "+ref
		if delta < 0 {
			tipo, motivo = model.MovEstornoEdicao, "Troca removida da venda "+ref
		}
		if err := t.u.estoque.MoverTx(t.tx, id, delta, tipo, motivo, &ref); err != nil {
			return err
		}
	}
	return nil
}

func (t *vendaTx) ajustarCrediario(prev, next *model.Venda) error {
	antes, depois := planosCrediario(prev), planosCrediario(next)

	var removidos []uuid.UUID
	for pid := range antes {
		if _, ok := depois[pid]; !ok {
			removidos = append(removidos, pid)
		}
	}
	if len(removidos) > 0 {
		if err := t.estornarParcelas(prev, removidos); err != nil {
			return err
		}
	}

	var novas []model.ParcelaCrediario
	financiado := decimal.Zero
	for pid, plano := range depois {
		if _, ok := antes[pid]; ok {
			continue
		}
		for _, inst := range plano.Schedule {
			valor := inst.Amount.Round(2)
			novas = append(novas, model.ParcelaCrediario{
				VendaID:     next.ID,
				PagamentoID: pid,
				ClienteID:   next.ClienteID,
				Numero:      inst.Number,
				Vencimento:  inst.DueDate,
				Valor:       valor,
				Juros:       inst.Interest.Round(2),
				Amortizacao: inst.Amortization.Round(2),
				Status:      model.ParcelaAberta,
			})
			financiado = financiado.Add(valor)
		}
	}
	if len(novas) == 0 {
		return nil
	}

	// The draft's copy of the customer may be stale; other sales can have
	// used credit since it was loaded.
	c, err := t.u.clientes.FindForUpdateTx(t.tx, next.ClienteID)
	if err != nil {
		return err
	}
	check := finance.CheckCreditLimit(finance.CreditProfile{
		AllowCredit: c.PermiteCrediario,
		Limit:       c.LimiteCredito,
		Used:        c.CreditoUsado,
	}, financiado)
	if !check.Allowed {
		return &checkout.CreditDeniedError{Check: check}
	}
	if err := t.u.crediario.CreateParcelasTx(t.tx, novas); err != nil {
		return err
	}
	return t.u.clientes.AddCreditoUsadoTx(t.tx, next.ClienteID, financiado)
}

// estornarParcelas drops the open installments of removed crediário payments
// and gives their remainder back to the customer's credit.
func (t *vendaTx) estornarParcelas(prev *model.Venda, pagamentos []uuid.UUID) error {
	alvo := make(map[uuid.UUID]bool, len(pagamentos))
	for _, id := range pagamentos {
		alvo[id] = true
	}
	parcelas, err := t.u.crediario.ListByVendaTx(t.tx, prev.ID)
	if err != nil {
		return err
	}
	var ids []uuid.UUID
	restante := decimal.Zero
	for _, p := range parcelas {
		if !alvo[p.PagamentoID] || p.Status != model.ParcelaAberta {
			continue
		}
		ids = append(ids, p.ID)
		restante = restante.Add(p.Restante())
	}
	if len(ids) == 0 {
		return nil
	}
	if err := t.u.crediario.DeleteTx(t.tx, ids); err != nil {
		return err
	}
	return t.u.clientes.AddCreditoUsadoTx(t.tx, prev.ClienteID, restante.Neg())
}

// trocasRecebidas lists the devices a settled sale took in as trade-in.
func trocasRecebidas(v *model.Venda) map[uuid.UUID]int {
	out := map[uuid.UUID]int{}
	if v == nil || !checkout.Status(v.Status).Settled() {
		return out
	}
	for _, pg := range v.Pagamentos {
		if !payment.Method(pg.Metodo).IsTradeIn() {
			continue
		}
		p := pagamentoToPayment(pg)
		if p.TradeIn == nil {
			continue
		}
		if id, err := uuid.Parse(p.TradeIn.ProductID); err == nil {
			out[id]++
		}
	}
	return out
}

// planosCrediario indexes the crediário plans of a settled sale by payment.
func planosCrediario(v *model.Venda) map[uuid.UUID]*payment.CreditPlan {
	out := map[uuid.UUID]*payment.CreditPlan{}
	if v == nil || !checkout.Status(v.Status).Settled() {
		return out
	}
	for _, pg := range v.Pagamentos {
		if !payment.Method(pg.Metodo).IsStoreCredit() {
			continue
		}
		if p := pagamentoToPayment(pg); p.Credit != nil {
			out[pg.ID] = p.Credit
		}
	}
	return out
}

// unionIDs returns the keys of a and b in a stable order so row locks are
// always taken in the same sequence.
func unionIDs(a, b map[uuid.UUID]int) []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, m := range []map[uuid.UUID]int{a, b} {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
