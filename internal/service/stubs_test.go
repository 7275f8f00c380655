package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/payment"
	"istorepro/internal/repository"
	"istorepro/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. DB() returns nil so runTx calls fn(nil) and the
// stubs ignore the tx argument.

type stubProdutoRepo struct {
	mu         sync.Mutex
	produtos   map[uuid.UUID]*model.Produto
	failCreate error
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) add(p model.Produto) *model.Produto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Ativo = true
	cp := p
	r.produtos[p.ID] = &cp
	return &cp
}

func (r *stubProdutoRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.produtos[id].Estoque
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	return r.CreateTx(nil, p)
}

func (r *stubProdutoRepo) CreateTx(_ *gorm.DB, p *model.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, other := range r.produtos {
		if p.IMEI1 != nil && other.IMEI1 != nil && *p.IMEI1 == *other.IMEI1 {
			return errors.New("duplicate key value violates unique constraint \"idx_produtos_imei1\"")
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.produtos[p.ID] = &cp
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	return r.FindForUpdateTx(nil, id)
}

func (r *stubProdutoRepo) FindByCodigo(_ context.Context, code string) (*model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.produtos {
		for _, c := range []*string{p.IMEI1, p.IMEI2, p.NumeroSerie} {
			if c != nil && *c == code && p.Ativo {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProdutoRepo) List(_ context.Context, f dto.ProdutoFilter) ([]model.Produto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Produto
	for _, p := range r.produtos {
		if f.Busca != "" && !strings.Contains(strings.ToLower(p.Nome), strings.ToLower(f.Busca)) {
			continue
		}
		if f.ComEstoque && p.Estoque == 0 {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.produtos[p.ID] = &cp
	return nil
}

func (r *stubProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *stubProdutoRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProdutoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.produtos[id].Estoque += delta
	return nil
}

func (r *stubProdutoRepo) SetOrigemVendaTx(_ *gorm.DB, id uuid.UUID, vendaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := vendaID
	r.produtos[id].OrigemVendaID = &v
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	mu     sync.Mutex
	vendas map[string]*model.Venda
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[string]*model.Venda)}
}

func cloneVenda(v *model.Venda) *model.Venda {
	cp := *v
	cp.Itens = append([]model.VendaItem(nil), v.Itens...)
	cp.Pagamentos = append([]model.Pagamento(nil), v.Pagamentos...)
	return &cp
}

func (r *stubVendaRepo) CreateTx(_ *gorm.DB, v *model.Venda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.vendas[v.ID]; dup {
		return errors.New("duplicate key value violates unique constraint \"vendas_pkey\"")
	}
	r.vendas[v.ID] = cloneVenda(v)
	return nil
}

func (r *stubVendaRepo) ReplaceTx(_ *gorm.DB, v *model.Venda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vendas[v.ID] = cloneVenda(v)
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id string) (*model.Venda, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubVendaRepo) FindByIDTx(_ *gorm.DB, id string) (*model.Venda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneVenda(v), nil
}

func (r *stubVendaRepo) List(_ context.Context, f dto.VendaFilter) ([]model.Venda, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Venda
	for _, v := range r.vendas {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		out = append(out, *cloneVenda(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubReservaRepo struct {
	mu       sync.Mutex
	seq      int64
	reservas map[string]*model.ReservaVenda
}

func newStubReservaRepo() *stubReservaRepo {
	return &stubReservaRepo{reservas: make(map[string]*model.ReservaVenda)}
}

func (r *stubReservaRepo) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.reservas[id]; ok {
		return res.Status
	}
	return ""
}

func (r *stubReservaRepo) NextNumber(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *stubReservaRepo) Create(_ context.Context, res *model.ReservaVenda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *res
	r.reservas[res.ID] = &cp
	return nil
}

func (r *stubReservaRepo) Cancel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.reservas[id]; ok && res.Status == model.ReservaAtiva {
		res.Status = model.ReservaCancelada
	}
	return nil
}

func (r *stubReservaRepo) Extend(_ context.Context, id string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.reservas[id]; ok && res.Status == model.ReservaAtiva {
		res.ExpiresAt = until
	}
	return nil
}

func (r *stubReservaRepo) ConsumeTx(_ *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservas[id]
	if !ok || res.Status != model.ReservaAtiva {
		return repository.ErrReservaIndisponivel
	}
	res.Status = model.ReservaConsumida
	return nil
}

func (r *stubReservaRepo) ListExpired(_ context.Context, now time.Time, limit int) ([]model.ReservaVenda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ReservaVenda
	for _, res := range r.reservas {
		if res.Status == model.ReservaAtiva && res.ExpiresAt.Before(now) {
			out = append(out, *res)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.ReservaRepository = (*stubReservaRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) add(c model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Ativo = true
	cp := c
	r.clientes[c.ID] = &cp
	return &cp
}

func (r *stubClienteRepo) get(id uuid.UUID) model.Cliente {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.clientes[id]
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.Create(ctx, c)
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clientes[id]; ok {
		c.Ativo = false
	}
	return nil
}

func (r *stubClienteRepo) UpdateLimiteCredito(_ context.Context, id uuid.UUID, limite decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.LimiteCredito = limite
	return nil
}

func (r *stubClienteRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) AddCreditoUsadoTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.CreditoUsado = decimal.Max(c.CreditoUsado.Add(delta), decimal.Zero)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubCrediarioRepo struct {
	mu       sync.Mutex
	parcelas map[uuid.UUID]*model.ParcelaCrediario
}

func newStubCrediarioRepo() *stubCrediarioRepo {
	return &stubCrediarioRepo{parcelas: make(map[uuid.UUID]*model.ParcelaCrediario)}
}

func (r *stubCrediarioRepo) byVenda(vendaID string) []model.ParcelaCrediario {
	out, _ := r.ListByVendaTx(nil, vendaID)
	return out
}

func (r *stubCrediarioRepo) CreateParcelasTx(_ *gorm.DB, ps []model.ParcelaCrediario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		cp := p
		r.parcelas[p.ID] = &cp
	}
	return nil
}

func (r *stubCrediarioRepo) DeleteTx(_ *gorm.DB, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.parcelas, id)
	}
	return nil
}

func (r *stubCrediarioRepo) ListByVendaTx(_ *gorm.DB, vendaID string) ([]model.ParcelaCrediario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ParcelaCrediario
	for _, p := range r.parcelas {
		if p.VendaID == vendaID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *stubCrediarioRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.ParcelaCrediario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parcelas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubCrediarioRepo) UpdateTx(_ *gorm.DB, p *model.ParcelaCrediario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.parcelas[p.ID] = &cp
	return nil
}

func (r *stubCrediarioRepo) List(_ context.Context, f dto.ParcelaFilter, _ time.Time) ([]model.ParcelaCrediario, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ParcelaCrediario
	for _, p := range r.parcelas {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubCrediarioRepo) DB() *gorm.DB { return nil }

var _ repository.CrediarioRepository = (*stubCrediarioRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubAuditoriaRepo struct {
	mu   sync.Mutex
	logs []model.LogAuditoria
}

func (r *stubAuditoriaRepo) Create(_ context.Context, l *model.LogAuditoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *l)
	return nil
}

func (r *stubAuditoriaRepo) ListByEntidade(_ context.Context, entidade, id string) ([]model.LogAuditoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.LogAuditoria
	for _, l := range r.logs {
		if l.Entidade == entidade && l.EntidadeID == id {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubAuditoriaRepo) actions(entidade string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, l := range r.logs {
		if l.Entidade == entidade {
			out = append(out, l.Acao)
		}
	}
	return out
}

var _ repository.AuditoriaRepository = (*stubAuditoriaRepo)(nil)

type stubMovimentoRepo struct {
	mu   sync.Mutex
	movs []model.MovimentoEstoque
}

func (r *stubMovimentoRepo) CreateTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimentoRepo) List(_ context.Context, f repository.MovimentoEstoqueFilter) ([]model.MovimentoEstoque, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimentoEstoque
	for _, m := range r.movs {
		if f.ProdutoID != nil && m.ProdutoID != *f.ProdutoID {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovimentoRepo) ofType(tipo string) []model.MovimentoEstoque {
	out, _, _ := r.List(context.Background(), repository.MovimentoEstoqueFilter{Tipo: tipo})
	return out
}

var _ repository.MovimentoEstoqueRepository = (*stubMovimentoRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubMetodoRepo struct {
	mu      sync.Mutex
	metodos []model.MetodoPagamento
	lists   int
}

func (r *stubMetodoRepo) List(_ context.Context) ([]model.MetodoPagamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	return append([]model.MetodoPagamento(nil), r.metodos...), nil
}

func (r *stubMetodoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MetodoPagamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.metodos {
		if r.metodos[i].ID == id {
			cp := r.metodos[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMetodoRepo) Create(_ context.Context, m *model.MetodoPagamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metodos = append(r.metodos, *m)
	return nil
}

func (r *stubMetodoRepo) Update(_ context.Context, m *model.MetodoPagamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.metodos {
		if r.metodos[i].ID == m.ID {
			r.metodos[i] = *m
		}
	}
	return nil
}

func (r *stubMetodoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.metodos {
		if r.metodos[i].ID == id {
			r.metodos = append(r.metodos[:i], r.metodos[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repository.MetodoPagamentoRepository = (*stubMetodoRepo)(nil)

type stubTermoRepo struct {
	termos []model.TermoGarantia
}

func (r *stubTermoRepo) List(_ context.Context, somenteAtivos bool) ([]model.TermoGarantia, error) {
	var out []model.TermoGarantia
	for _, t := range r.termos {
		if somenteAtivos && !t.Ativo {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubTermoRepo) FindByNome(_ context.Context, nome string) (*model.TermoGarantia, error) {
	for i := range r.termos {
		if r.termos[i].Nome == nome {
			cp := r.termos[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTermoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TermoGarantia, error) {
	for i := range r.termos {
		if r.termos[i].ID == id {
			cp := r.termos[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTermoRepo) Create(_ context.Context, t *model.TermoGarantia) error {
	r.termos = append(r.termos, *t)
	return nil
}

func (r *stubTermoRepo) Update(_ context.Context, t *model.TermoGarantia) error {
	for i := range r.termos {
		if r.termos[i].ID == t.ID {
			r.termos[i] = *t
		}
	}
	return nil
}

var _ repository.TermoGarantiaRepository = (*stubTermoRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubFornecedorRepo struct {
	fornecedores map[uuid.UUID]*model.Fornecedor
}

func newStubFornecedorRepo() *stubFornecedorRepo {
	return &stubFornecedorRepo{fornecedores: make(map[uuid.UUID]*model.Fornecedor)}
}

func (r *stubFornecedorRepo) Create(_ context.Context, f *model.Fornecedor) error {
	cp := *f
	r.fornecedores[f.ID] = &cp
	return nil
}

func (r *stubFornecedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	f, ok := r.fornecedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *stubFornecedorRepo) List(_ context.Context) ([]model.Fornecedor, error) {
	var out []model.Fornecedor
	for _, f := range r.fornecedores {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	return r.Create(ctx, f)
}

func (r *stubFornecedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if f, ok := r.fornecedores[id]; ok {
		f.Ativo = false
	}
	return nil
}

var _ repository.FornecedorRepository = (*stubFornecedorRepo)(nil)

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.PedidoCompra
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.PedidoCompra)}
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.PedidoCompra) error {
	cp := *p
	cp.Itens = append([]model.ItemPedidoCompra(nil), p.Itens...)
	r.pedidos[p.ID] = &cp
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PedidoCompra, error) {
	return r.FindForUpdateTx(nil, id)
}

func (r *stubPedidoRepo) List(_ context.Context, fornecedorID *uuid.UUID) ([]model.PedidoCompra, error) {
	var out []model.PedidoCompra
	for _, p := range r.pedidos {
		if fornecedorID != nil && p.FornecedorID != *fornecedorID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPedidoRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.PedidoCompra, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPedidoRepo) SetStatusTx(_ *gorm.DB, id uuid.UUID, status string, at *time.Time) error {
	p := r.pedidos[id]
	p.Status = status
	p.RecebidoEm = at
	return nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoCompraRepository = (*stubPedidoRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubReceiptQueue struct {
	mu   sync.Mutex
	jobs []worker.ReciboJob
}

func (q *stubReceiptQueue) EnqueueRecibo(_ context.Context, job worker.ReciboJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func metodo(nome, tipo string, ordem int, cfg *payment.RateConfig, variacoes ...string) model.MetodoPagamento {
	m := model.MetodoPagamento{ID: uuid.New(), Nome: nome, Tipo: tipo, Ativo: true, Ordem: ordem}
	if cfg != nil {
		b, _ := json.Marshal(cfg)
		m.Config = datatypes.JSON(b)
	}
	if len(variacoes) > 0 {
		b, _ := json.Marshal(variacoes)
		m.Variacoes = datatypes.JSON(b)
	}
	return m
}

func defaultMetodos() []model.MetodoPagamento {
	rates := &payment.RateConfig{
		DebitRate:               d("1.5"),
		CreditNoInterestRates:   []decimal.Decimal{d("3"), d("4"), d("5")},
		CreditWithInterestRates: []decimal.Decimal{d("3"), d("4"), d("5")},
	}
	return []model.MetodoPagamento{
		metodo("Dinheiro", "dinheiro", 1, nil),
		metodo("Pix", "pix", 2, nil, "CNPJ", "Celular"),
		metodo("Cartão de Débito", "cartao", 3, rates),
		metodo("Cartão de Crédito", "cartao", 4, rates),
		metodo("Crediário", "crediario", 5, nil),
		metodo("Aparelho na Troca", "troca", 6, nil),
	}
}
