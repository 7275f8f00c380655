package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"istorepro/internal/cart"
	"istorepro/internal/checkout"
	"istorepro/internal/dto"
	"istorepro/internal/finance"
	"istorepro/internal/model"
	"istorepro/internal/payment"
	"istorepro/internal/repository"
	"istorepro/internal/worker"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptQueue receives the receipt job of every settled sale.
type ReceiptQueue interface {
	EnqueueRecibo(ctx context.Context, job worker.ReciboJob) error
}

// VendaService drives sale drafts over the checkout engine and serves saved
// sales. Drafts live in memory; their sale numbers are reserved in Postgres.
type VendaService interface {
	Iniciar(ctx context.Context, vendedor checkout.Actor) (*dto.RascunhoResponse, error)
	AbrirEdicao(ctx context.Context, vendaID string) (*dto.RascunhoResponse, error)
	Obter(ctx context.Context, id string) (*dto.RascunhoResponse, error)
	Cancelar(ctx context.Context, id string) error

	DefinirCliente(ctx context.Context, id string, req dto.DefinirClienteRequest) (*dto.RascunhoResponse, error)
	DefinirVendedor(ctx context.Context, id string, req dto.DefinirVendedorRequest) (*dto.RascunhoResponse, error)
	DefinirGarantia(ctx context.Context, id string, req dto.DefinirGarantiaRequest) (*dto.RascunhoResponse, error)
	DefinirObservacoes(ctx context.Context, id string, req dto.ObservacoesRequest) (*dto.RascunhoResponse, error)
	DefinirDesconto(ctx context.Context, id string, req dto.DescontoRequest) (*dto.RascunhoResponse, error)

	SolicitarItem(ctx context.Context, id string, req dto.SolicitarItemRequest) (*dto.RascunhoResponse, error)
	ConfirmarItem(ctx context.Context, id string, req dto.ConfirmarItemRequest) (*dto.RascunhoResponse, error)
	DescartarItem(ctx context.Context, id string) (*dto.RascunhoResponse, error)
	AtualizarItem(ctx context.Context, id, produtoID string, req dto.AtualizarItemRequest) (*dto.RascunhoResponse, error)
	RemoverItem(ctx context.Context, id, produtoID string) (*dto.RascunhoResponse, error)

	SolicitarPagamento(ctx context.Context, id string, req dto.SolicitarPagamentoRequest) (*dto.PagamentoSolicitadoResponse, error)
	DescartarPagamento(ctx context.Context, id string) (*dto.RascunhoResponse, error)
	ConfirmarValor(ctx context.Context, id string, req dto.ValorRequest) (*dto.RascunhoResponse, error)
	CotarCartao(ctx context.Context, id string, req dto.CartaoRequest) (*checkout.CardQuote, error)
	ConfirmarCartao(ctx context.Context, id string, req dto.CartaoRequest) (*dto.RascunhoResponse, error)
	CotarCrediario(ctx context.Context, id string, req dto.CrediarioRequest) (*checkout.CreditQuote, error)
	ConfirmarCrediario(ctx context.Context, id string, req dto.CrediarioRequest) (*dto.RascunhoResponse, error)
	AdicionarTroca(ctx context.Context, id string, req dto.TrocaRequest) (*dto.RascunhoResponse, error)
	RemoverPagamento(ctx context.Context, id, pagamentoID string) (*dto.RascunhoResponse, error)
	AtualizarLimiteCredito(ctx context.Context, id string, req dto.LimiteCreditoRequest) (*dto.RascunhoResponse, error)

	Salvar(ctx context.Context, id string, req dto.SalvarVendaRequest, actor checkout.Actor) (*dto.VendaResponse, error)

	ObterVenda(ctx context.Context, id string) (*dto.VendaResponse, error)
	ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.ListResponse[dto.VendaResponse], error)

	// ExpirarRascunhos drops idle drafts and releases stale reservations.
	ExpirarRascunhos(ctx context.Context, now time.Time) (int, error)
}

// VendaRepos groups the repositories a VendaService needs.
type VendaRepos struct {
	Vendas    repository.VendaRepository
	Reservas  repository.ReservaRepository
	Produtos  repository.ProdutoRepository
	Clientes  repository.ClienteRepository
	Crediario repository.CrediarioRepository
	Auditoria repository.AuditoriaRepository
}

type vendaService struct {
	repos    VendaRepos
	estoque  EstoqueService
	metodos  MetodoPagamentoService
	locker   *redislock.Client
	recibos  ReceiptQueue
	drafts   *draftStore
	draftTTL time.Duration
	lockTTL  time.Duration
	now      func() time.Time
}

func NewVendaService(
	repos VendaRepos,
	estoque EstoqueService,
	metodos MetodoPagamentoService,
	locker *redislock.Client,
	recibos ReceiptQueue,
	draftTTL, lockTTL time.Duration,
) VendaService {
	return &vendaService{
		repos:    repos,
		estoque:  estoque,
		metodos:  metodos,
		locker:   locker,
		recibos:  recibos,
		drafts:   newDraftStore(),
		draftTTL: draftTTL,
		lockTTL:  lockTTL,
		now:      time.Now,
	}
}

func (s *vendaService) deps(ctx context.Context) (checkout.Deps, error) {
	methods, err := s.metodos.Snapshot(ctx)
	if err != nil {
		return checkout.Deps{}, err
	}
	return checkout.Deps{
		Numbering: &numeracao{reservas: s.repos.Reservas, ttl: s.draftTTL, now: s.now},
		UnitOfWork: &vendaUnitOfWork{
			db:        s.repos.Vendas.DB(),
			vendas:    s.repos.Vendas,
			reservas:  s.repos.Reservas,
			produtos:  s.repos.Produtos,
			crediario: s.repos.Crediario,
			clientes:  s.repos.Clientes,
			estoque:   s.estoque,
		},
		Audit:     auditSink{repo: s.repos.Auditoria},
		Customers: clienteLimite{clientes: s.repos.Clientes},
		Methods:   methods,
		Now:       s.now,
	}, nil
}

// with runs fn on the draft id while holding its lock.
func (s *vendaService) with(id string, fn func(d *checkout.Draft) error) error {
	e, ok := s.drafts.get(id)
	if !ok {
		return ErrRascunhoNaoEncontrado
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft.Closed() {
		return ErrRascunhoNaoEncontrado
	}
	e.touched = s.now()
	return fn(e.draft)
}

// mutate runs fn and answers with the resulting snapshot.
func (s *vendaService) mutate(id string, fn func(d *checkout.Draft) ([]checkout.Notice, error)) (*dto.RascunhoResponse, error) {
	var resp *dto.RascunhoResponse
	err := s.with(id, func(d *checkout.Draft) error {
		notices, err := fn(d)
		if err != nil {
			return err
		}
		resp = &dto.RascunhoResponse{Rascunho: d.Snapshot(), Avisos: notices}
		return nil
	})
	return resp, err
}

func silent(err error) ([]checkout.Notice, error) { return nil, err }

// ── Lifecycle ────────────────────────────────────────────────────────────────

func (s *vendaService) Iniciar(ctx context.Context, vendedor checkout.Actor) (*dto.RascunhoResponse, error) {
	deps, err := s.deps(ctx)
	if err != nil {
		return nil, err
	}
	d, err := checkout.StartDraft(ctx, deps, vendedor)
	if err != nil {
		return nil, err
	}
	s.drafts.put(d, s.now())
	log.Info().Str("sale_id", d.ID()).Str("user_id", vendedor.ID).Msg("sale draft started")
	return &dto.RascunhoResponse{Rascunho: d.Snapshot()}, nil
}

func (s *vendaService) AbrirEdicao(ctx context.Context, vendaID string) (*dto.RascunhoResponse, error) {
	if _, open := s.drafts.get(vendaID); open {
		return nil, ErrRascunhoEmEdicao
	}
	v, err := s.repos.Vendas.FindByID(ctx, vendaID)
	if err != nil {
		return nil, notFound(err, ErrVendaNaoEncontrada)
	}
	c, err := s.repos.Clientes.FindByID(ctx, v.ClienteID)
	if err != nil {
		return nil, notFound(err, ErrClienteNaoEncontrado)
	}

	vendidos := quantidades(v)
	stock := make(map[uuid.UUID]int, len(v.Itens))
	for _, it := range v.Itens {
		if _, seen := stock[it.ProdutoID]; seen {
			continue
		}
		p, err := s.repos.Produtos.FindByID(ctx, it.ProdutoID)
		if err != nil {
			return nil, notFound(err, ErrProdutoNaoEncontrado)
		}
		stock[it.ProdutoID] = p.Estoque + vendidos[it.ProdutoID]
	}

	deps, err := s.deps(ctx)
	if err != nil {
		return nil, err
	}
	d := checkout.OpenForEdit(deps, vendaToSale(v, stock), clienteToCustomer(c))
	if !s.drafts.put(d, s.now()) {
		return nil, ErrRascunhoEmEdicao
	}
	log.Info().Str("sale_id", v.ID).Str("status", v.Status).Msg("sale reopened for edit")
	return &dto.RascunhoResponse{Rascunho: d.Snapshot()}, nil
}

func (s *vendaService) Obter(_ context.Context, id string) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(*checkout.Draft) ([]checkout.Notice, error) { return nil, nil })
}

func (s *vendaService) Cancelar(ctx context.Context, id string) error {
	err := s.with(id, func(d *checkout.Draft) error {
		return d.Cancel(ctx)
	})
	if err != nil {
		return err
	}
	s.drafts.remove(id)
	log.Info().Str("sale_id", id).Msg("sale draft cancelled")
	return nil
}

// ── Header fields ────────────────────────────────────────────────────────────

func (s *vendaService) DefinirCliente(ctx context.Context, id string, req dto.DefinirClienteRequest) (*dto.RascunhoResponse, error) {
	cid, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, ErrClienteNaoEncontrado
	}
	c, err := s.repos.Clientes.FindByID(ctx, cid)
	if err != nil {
		return nil, notFound(err, ErrClienteNaoEncontrado)
	}
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.SetCustomer(clienteToCustomer(c)))
	})
}

func (s *vendaService) DefinirVendedor(_ context.Context, id string, req dto.DefinirVendedorRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.SetSalesperson(checkout.Actor{ID: req.ID, Name: req.Nome}))
	})
}

func (s *vendaService) DefinirGarantia(_ context.Context, id string, req dto.DefinirGarantiaRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.SetWarrantyTerm(req.Termo))
	})
}

func (s *vendaService) DefinirObservacoes(_ context.Context, id string, req dto.ObservacoesRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.SetObservations(req.Observacoes, req.ObservacoesInternas))
	})
}

func (s *vendaService) DefinirDesconto(_ context.Context, id string, req dto.DescontoRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.SetGlobalDiscount(cart.DiscountType(req.Tipo), req.Valor))
	})
}

// ── Items ────────────────────────────────────────────────────────────────────

func (s *vendaService) SolicitarItem(ctx context.Context, id string, req dto.SolicitarItemRequest) (*dto.RascunhoResponse, error) {
	pid, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	p, err := s.repos.Produtos.FindByID(ctx, pid)
	if err != nil {
		return nil, notFound(err, ErrProdutoNaoEncontrado)
	}
	if !p.Ativo {
		return nil, ErrProdutoInativo
	}
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.RequestAdd(produtoToCart(p)))
	})
}

func (s *vendaService) ConfirmarItem(_ context.Context, id string, req dto.ConfirmarItemRequest) (*dto.RascunhoResponse, error) {
	pt := cart.PriceType(req.TipoPreco)
	if pt == "" {
		pt = cart.PriceSale
	}
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.ConfirmAdd(req.Quantidade, pt))
	})
}

func (s *vendaService) DescartarItem(_ context.Context, id string) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		d.DiscardAdd()
		return nil, nil
	})
}

func (s *vendaService) AtualizarItem(_ context.Context, id, produtoID string, req dto.AtualizarItemRequest) (*dto.RascunhoResponse, error) {
	u := cart.ItemUpdate{
		Quantity:      req.Quantidade,
		SalePrice:     req.PrecoVenda,
		DiscountValue: req.ValorDesconto,
	}
	if req.TipoDesconto != nil {
		dt := cart.DiscountType(*req.TipoDesconto)
		u.DiscountType = &dt
	}
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return d.UpdateItem(produtoID, u)
	})
}

func (s *vendaService) RemoverItem(_ context.Context, id, produtoID string) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return d.RemoveItem(produtoID)
	})
}

// ── Payments ─────────────────────────────────────────────────────────────────

func (s *vendaService) SolicitarPagamento(_ context.Context, id string, req dto.SolicitarPagamentoRequest) (*dto.PagamentoSolicitadoResponse, error) {
	var resp *dto.PagamentoSolicitadoResponse
	err := s.with(id, func(d *checkout.Draft) error {
		pr, err := d.RequestPayment(payment.Method(req.Metodo), req.Variacao)
		if err != nil {
			return err
		}
		resp = &dto.PagamentoSolicitadoResponse{Solicitacao: *pr, Rascunho: d.Snapshot()}
		return nil
	})
	return resp, err
}

func (s *vendaService) DescartarPagamento(_ context.Context, id string) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		d.DiscardPayment()
		return nil, nil
	})
}

func (s *vendaService) ConfirmarValor(_ context.Context, id string, req dto.ValorRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		_, err := d.ConfirmAmountPayment(req.Valor)
		return nil, err
	})
}

func cardInput(req dto.CartaoRequest) checkout.CardInput {
	in := checkout.CardInput{
		ChargeAmount: req.ValorCobrado,
		FeeMode:      finance.FeeMode(req.ModoTaxa),
		Installments: req.Parcelas,
	}
	if in.FeeMode == "" {
		in.FeeMode = finance.MerchantAbsorbs
	}
	if in.Installments == 0 {
		in.Installments = 1
	}
	return in
}

func (s *vendaService) CotarCartao(_ context.Context, id string, req dto.CartaoRequest) (*checkout.CardQuote, error) {
	var q checkout.CardQuote
	err := s.with(id, func(d *checkout.Draft) error {
		var err error
		q, err = d.QuoteCardPayment(cardInput(req))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *vendaService) ConfirmarCartao(_ context.Context, id string, req dto.CartaoRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		_, err := d.ConfirmCardPayment(cardInput(req))
		return nil, err
	})
}

// refreshCredit reloads the customer's limit and used credit, which other
// sales may have changed since the draft picked the customer.
func (s *vendaService) refreshCredit(ctx context.Context, d *checkout.Draft) error {
	c := d.Customer()
	if c == nil {
		return nil
	}
	cid, err := uuid.Parse(c.ID)
	if err != nil {
		return ErrClienteNaoEncontrado
	}
	cliente, err := s.repos.Clientes.FindByID(ctx, cid)
	if err != nil {
		return notFound(err, ErrClienteNaoEncontrado)
	}
	d.RefreshCustomerCredit(clienteToCustomer(cliente).CreditProfile())
	return nil
}

func creditInput(req dto.CrediarioRequest) (checkout.CreditInput, error) {
	first, err := time.Parse("2006-01-02", req.PrimeiroVencimento)
	if err != nil {
		return checkout.CreditInput{}, &checkout.ValidationError{Field: "primeiro_vencimento", Err: ErrVencimentoInvalido}
	}
	in := checkout.CreditInput{
		DownPayment:     req.Entrada,
		AmountToFinance: req.ValorFinanciado,
		Installments:    req.Parcelas,
		Frequency:       finance.Frequency(req.Frequencia),
		FirstDueDate:    first,
		InterestRate:    req.TaxaJuros,
	}
	if in.Frequency == "" {
		in.Frequency = finance.Monthly
	}
	return in, nil
}

func (s *vendaService) CotarCrediario(ctx context.Context, id string, req dto.CrediarioRequest) (*checkout.CreditQuote, error) {
	in, err := creditInput(req)
	if err != nil {
		return nil, err
	}
	var q checkout.CreditQuote
	err = s.with(id, func(d *checkout.Draft) error {
		if err := s.refreshCredit(ctx, d); err != nil {
			return err
		}
		var err error
		q, err = d.QuoteCreditPlan(in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *vendaService) ConfirmarCrediario(ctx context.Context, id string, req dto.CrediarioRequest) (*dto.RascunhoResponse, error) {
	in, err := creditInput(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		if err := s.refreshCredit(ctx, d); err != nil {
			return nil, err
		}
		_, err := d.ConfirmCreditPlan(in)
		return nil, err
	})
}

func (s *vendaService) AdicionarTroca(ctx context.Context, id string, req dto.TrocaRequest) (*dto.RascunhoResponse, error) {
	in := checkout.TradeInInput{Value: req.Valor, ProductID: req.ProdutoID, ProductName: req.ProdutoNome}
	if req.ProdutoID != "" && req.ProdutoNome == "" {
		pid, err := uuid.Parse(req.ProdutoID)
		if err != nil {
			return nil, ErrProdutoNaoEncontrado
		}
		p, err := s.repos.Produtos.FindByID(ctx, pid)
		if err != nil {
			return nil, notFound(err, ErrProdutoNaoEncontrado)
		}
		in.ProductName = p.Nome
	}
	if np := req.NovoProduto; np != nil {
		in.NewProduct = &payment.NewProduct{
			Name:          np.Nome,
			Brand:         np.Marca,
			Model:         np.Modelo,
			Color:         np.Cor,
			Storage:       np.Armazenamento,
			Condition:     np.Condicao,
			BatteryHealth: np.SaudeBateria,
			SerialNumber:  np.NumeroSerie,
			IMEI1:         np.IMEI1,
			IMEI2:         np.IMEI2,
			CostPrice:     np.PrecoCusto,
			Price:         np.PrecoVenda,
		}
	}
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		_, err := d.AddTradeIn(in)
		return nil, err
	})
}

func (s *vendaService) RemoverPagamento(_ context.Context, id, pagamentoID string) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return d.RemovePayment(pagamentoID)
	})
}

func (s *vendaService) AtualizarLimiteCredito(ctx context.Context, id string, req dto.LimiteCreditoRequest) (*dto.RascunhoResponse, error) {
	return s.mutate(id, func(d *checkout.Draft) ([]checkout.Notice, error) {
		return silent(d.UpdateCustomerCreditLimit(ctx, req.Limite))
	})
}

// ── Save ─────────────────────────────────────────────────────────────────────

// Salvar persists the draft. A Redis lock keyed by sale id keeps two
// instances from saving the same sale at once.
func (s *vendaService) Salvar(ctx context.Context, id string, req dto.SalvarVendaRequest, actor checkout.Actor) (*dto.VendaResponse, error) {
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "lock:sale-save:"+id, s.lockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrVendaEmProcessamento
		}
		if err != nil {
			return nil, fmt.Errorf("obter trava da venda: %w", err)
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				log.Warn().Err(err).Str("sale_id", id).Msg("sale save lock release failed")
			}
		}()
	}

	var saved *checkout.Sale
	var editing bool
	err := s.with(id, func(d *checkout.Draft) error {
		editing = d.Editing()
		var err error
		saved, err = d.Save(ctx, checkout.Status(req.Status), actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.drafts.remove(id)

	acao, msg := "CREATE", fmt.Sprintf("Venda %s salva como %s (total %s)", saved.ID, saved.Status, saved.Total.StringFixed(2))
	if editing {
		acao = "UPDATE"
		msg = fmt.Sprintf("Venda %s editada: %s -> %s (total %s)", saved.ID, saved.PreviousStatus, saved.Status, saved.Total.StringFixed(2))
	}
	auditSink{repo: s.repos.Auditoria}.Record(ctx, checkout.AuditEntry{
		Action:     acao,
		EntityType: "venda",
		EntityID:   saved.ID,
		Message:    msg,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
	})

	if saved.Status.Settled() && s.recibos != nil {
		job := worker.ReciboJob{VendaID: saved.ID}
		if req.EmailRecibo != nil {
			job.Email = *req.EmailRecibo
		}
		if err := s.recibos.EnqueueRecibo(ctx, job); err != nil {
			log.Warn().Err(err).Str("sale_id", saved.ID).Msg("receipt job enqueue failed")
		}
	}

	v, err := saleToVenda(saved)
	if err != nil {
		return nil, err
	}
	resp := vendaToResponse(v)
	return &resp, nil
}

// ── Saved sales ──────────────────────────────────────────────────────────────

func (s *vendaService) ObterVenda(ctx context.Context, id string) (*dto.VendaResponse, error) {
	v, err := s.repos.Vendas.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVendaNaoEncontrada)
	}
	resp := vendaToResponse(v)
	return &resp, nil
}

func (s *vendaService) ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.ListResponse[dto.VendaResponse], error) {
	vendas, total, err := s.repos.Vendas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		out = append(out, vendaToResponse(&vendas[i]))
	}
	resp := dto.NewListResponse(out, total, filter.Paginacao)
	return &resp, nil
}

// ── Expiry ───────────────────────────────────────────────────────────────────

func (s *vendaService) ExpirarRascunhos(ctx context.Context, now time.Time) (int, error) {
	n := 0
	for _, id := range s.drafts.idleSince(now.Add(-s.draftTTL)) {
		if e, ok := s.drafts.get(id); ok {
			e.mu.Lock()
			e.draft.EndDraft(ctx)
			e.mu.Unlock()
		}
		s.drafts.remove(id)
		n++
		log.Info().Str("sale_id", id).Msg("idle sale draft expired")
	}

	expired, err := s.repos.Reservas.ListExpired(ctx, now, 200)
	if err != nil {
		return n, err
	}
	for _, r := range expired {
		if _, live := s.drafts.get(r.ID); live {
			if err := s.repos.Reservas.Extend(ctx, r.ID, now.Add(s.draftTTL)); err != nil {
				return n, err
			}
			continue
		}
		if err := s.repos.Reservas.Cancel(ctx, r.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func vendaToResponse(v *model.Venda) dto.VendaResponse {
	resp := dto.VendaResponse{
		ID:                  v.ID,
		ClienteID:           v.ClienteID.String(),
		ClienteNome:         v.ClienteNome,
		VendedorID:          v.VendedorID,
		VendedorNome:        v.VendedorNome,
		Subtotal:            v.Subtotal,
		Desconto:            v.Desconto,
		Total:               v.Total,
		Status:              v.Status,
		TermoGarantia:       v.TermoGarantia,
		Observacoes:         v.Observacoes,
		ObservacoesInternas: v.ObservacoesInternas,
		Itens:               make([]dto.VendaItemResponse, 0, len(v.Itens)),
		Pagamentos:          make([]dto.PagamentoResponse, 0, len(v.Pagamentos)),
		CreatedAt:           v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           v.UpdatedAt.Format(time.RFC3339),
	}
	for _, it := range v.Itens {
		resp.Itens = append(resp.Itens, dto.VendaItemResponse{
			ProdutoID:     it.ProdutoID.String(),
			Nome:          it.Nome,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			TipoPreco:     it.TipoPreco,
			TipoDesconto:  it.TipoDesconto,
			ValorDesconto: it.ValorDesconto,
			Total:         it.Total,
		})
	}
	for _, pg := range v.Pagamentos {
		pr := dto.PagamentoResponse{
			ID:       pg.ID.String(),
			Metodo:   pg.Metodo,
			Variacao: pg.Variacao,
			Valor:    pg.Valor,
		}
		if len(pg.Detalhes) > 0 {
			pr.Detalhes = json.RawMessage(pg.Detalhes)
		}
		resp.Pagamentos = append(resp.Pagamentos, pr)
	}
	return resp
}
