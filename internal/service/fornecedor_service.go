package service

import (
	"context"
	"time"

	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FornecedorService manages suppliers and their purchase orders.
type FornecedorService interface {
	Criar(ctx context.Context, req dto.FornecedorRequest) (*dto.FornecedorResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error)
	Listar(ctx context.Context) ([]dto.FornecedorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.FornecedorRequest) (*dto.FornecedorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	CriarPedido(ctx context.Context, req dto.PedidoCompraRequest) (*dto.PedidoCompraResponse, error)
	ObterPedido(ctx context.Context, id uuid.UUID) (*dto.PedidoCompraResponse, error)
	ListarPedidos(ctx context.Context, fornecedorID *uuid.UUID) ([]dto.PedidoCompraResponse, error)
	// ReceberPedido moves every item of an open order into stock.
	ReceberPedido(ctx context.Context, id uuid.UUID) (*dto.PedidoCompraResponse, error)
	CancelarPedido(ctx context.Context, id uuid.UUID) error
}

type fornecedorService struct {
	repo     repository.FornecedorRepository
	pedidos  repository.PedidoCompraRepository
	produtos repository.ProdutoRepository
	estoque  EstoqueService
	now      func() time.Time
}

func NewFornecedorService(
	repo repository.FornecedorRepository,
	pedidos repository.PedidoCompraRepository,
	produtos repository.ProdutoRepository,
	estoque EstoqueService,
) FornecedorService {
	return &fornecedorService{repo: repo, pedidos: pedidos, produtos: produtos, estoque: estoque, now: time.Now}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.FornecedorRequest) (*dto.FornecedorResponse, error) {
	f := &model.Fornecedor{ID: uuid.New(), Ativo: true}
	applyFornecedor(f, req)
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	resp := fornecedorToResponse(f)
	return &resp, nil
}

func (s *fornecedorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFornecedorNaoEncontrado)
	}
	resp := fornecedorToResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Listar(ctx context.Context) ([]dto.FornecedorResponse, error) {
	fs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FornecedorResponse, 0, len(fs))
	for i := range fs {
		out = append(out, fornecedorToResponse(&fs[i]))
	}
	return out, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.FornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFornecedorNaoEncontrado)
	}
	applyFornecedor(f, req)
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := fornecedorToResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, ErrFornecedorNaoEncontrado)
	}
	return s.repo.SoftDelete(ctx, id)
}

// ── Pedidos de compra ────────────────────────────────────────────────────────

func (s *fornecedorService) CriarPedido(ctx context.Context, req dto.PedidoCompraRequest) (*dto.PedidoCompraResponse, error) {
	fid, err := uuid.Parse(req.FornecedorID)
	if err != nil {
		return nil, ErrFornecedorNaoEncontrado
	}
	if _, err := s.repo.FindByID(ctx, fid); err != nil {
		return nil, notFound(err, ErrFornecedorNaoEncontrado)
	}

	p := &model.PedidoCompra{
		ID:           uuid.New(),
		FornecedorID: fid,
		Status:       model.PedidoAberto,
		Observacoes:  trimmed(req.Observacoes),
		Total:        decimal.Zero,
	}
	var nomes []*model.Produto
	for _, it := range req.Itens {
		pid, err := uuid.Parse(it.ProdutoID)
		if err != nil {
			return nil, ErrProdutoNaoEncontrado
		}
		prod, err := s.produtos.FindByID(ctx, pid)
		if err != nil {
			return nil, notFound(err, ErrProdutoNaoEncontrado)
		}
		p.Itens = append(p.Itens, model.ItemPedidoCompra{
			ID:         uuid.New(),
			PedidoID:   p.ID,
			ProdutoID:  pid,
			Quantidade: it.Quantidade,
			CustoUnit:  it.CustoUnit,
		})
		nomes = append(nomes, prod)
		p.Total = p.Total.Add(it.CustoUnit.Mul(decimal.NewFromInt(int64(it.Quantidade))))
	}
	if err := s.pedidos.Create(ctx, p); err != nil {
		return nil, err
	}
	for i := range p.Itens {
		p.Itens[i].Produto = nomes[i]
	}
	resp := pedidoToResponse(p)
	return &resp, nil
}

func (s *fornecedorService) ObterPedido(ctx context.Context, id uuid.UUID) (*dto.PedidoCompraResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPedidoNaoEncontrado)
	}
	resp := pedidoToResponse(p)
	return &resp, nil
}

func (s *fornecedorService) ListarPedidos(ctx context.Context, fornecedorID *uuid.UUID) ([]dto.PedidoCompraResponse, error) {
	ps, err := s.pedidos.List(ctx, fornecedorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoCompraResponse, 0, len(ps))
	for i := range ps {
		out = append(out, pedidoToResponse(&ps[i]))
	}
	return out, nil
}

func (s *fornecedorService) ReceberPedido(ctx context.Context, id uuid.UUID) (*dto.PedidoCompraResponse, error) {
	now := s.now()
	var pedido *model.PedidoCompra
	err := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		p, err := s.pedidos.FindForUpdateTx(tx, id)
		if err != nil {
			return notFound(err, ErrPedidoNaoEncontrado)
		}
		if p.Status != model.PedidoAberto {
			return ErrPedidoJaRecebido
		}
		ref := p.ID.String()
		for _, it := range p.Itens {
			if err := s.estoque.MoverTx(tx, it.ProdutoID, it.Quantidade, model.MovEntradaCompra, "Recebimento do pedido "+ref, &ref); err != nil {
				return err
			}
		}
		if err := s.pedidos.SetStatusTx(tx, id, model.PedidoRecebido, &now); err != nil {
			return err
		}
		p.Status = model.PedidoRecebido
		p.RecebidoEm = &now
		pedido = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("pedido_id", id.String()).Int("itens", len(pedido.Itens)).Msg("purchase order received")
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *fornecedorService) CancelarPedido(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		p, err := s.pedidos.FindForUpdateTx(tx, id)
		if err != nil {
			return notFound(err, ErrPedidoNaoEncontrado)
		}
		if p.Status != model.PedidoAberto {
			return ErrPedidoJaRecebido
		}
		return s.pedidos.SetStatusTx(tx, id, model.PedidoCancelado, nil)
	})
}

func applyFornecedor(f *model.Fornecedor, req dto.FornecedorRequest) {
	f.RazaoSocial = req.RazaoSocial
	f.NomeFantasia = trimmed(req.NomeFantasia)
	f.CNPJ = trimmed(req.CNPJ)
	f.Telefone = trimmed(req.Telefone)
	f.Email = trimmed(req.Email)
	f.CEP = trimmed(req.CEP)
	f.Endereco = trimmed(req.Endereco)
	f.Cidade = trimmed(req.Cidade)
	f.UF = trimmed(req.UF)
	f.Contatos = f.Contatos[:0]
	for _, c := range req.Contatos {
		f.Contatos = append(f.Contatos, model.ContatoFornecedor{
			ID:           uuid.New(),
			FornecedorID: f.ID,
			Nome:         c.Nome,
			Cargo:        trimmed(c.Cargo),
			Telefone:     trimmed(c.Telefone),
			Email:        trimmed(c.Email),
		})
	}
}

func fornecedorToResponse(f *model.Fornecedor) dto.FornecedorResponse {
	resp := dto.FornecedorResponse{
		ID:           f.ID.String(),
		RazaoSocial:  f.RazaoSocial,
		NomeFantasia: f.NomeFantasia,
		CNPJ:         f.CNPJ,
		Telefone:     f.Telefone,
		Email:        f.Email,
		CEP:          f.CEP,
		Endereco:     f.Endereco,
		Cidade:       f.Cidade,
		UF:           f.UF,
		Ativo:        f.Ativo,
		Contatos:     make([]dto.ContatoFornecedorResponse, 0, len(f.Contatos)),
	}
	for _, c := range f.Contatos {
		resp.Contatos = append(resp.Contatos, dto.ContatoFornecedorResponse{
			ID:       c.ID.String(),
			Nome:     c.Nome,
			Cargo:    c.Cargo,
			Telefone: c.Telefone,
			Email:    c.Email,
		})
	}
	return resp
}

func pedidoToResponse(p *model.PedidoCompra) dto.PedidoCompraResponse {
	resp := dto.PedidoCompraResponse{
		ID:           p.ID.String(),
		FornecedorID: p.FornecedorID.String(),
		Status:       p.Status,
		Total:        p.Total,
		Observacoes:  p.Observacoes,
		Itens:        make([]dto.ItemPedidoResponse, 0, len(p.Itens)),
	}
	if p.RecebidoEm != nil {
		r := p.RecebidoEm.Format(time.RFC3339)
		resp.RecebidoEm = &r
	}
	for _, it := range p.Itens {
		ir := dto.ItemPedidoResponse{
			ProdutoID:  it.ProdutoID.String(),
			Quantidade: it.Quantidade,
			CustoUnit:  it.CustoUnit,
		}
		if it.Produto != nil {
			ir.ProdutoNome = it.Produto.Nome
		}
		resp.Itens = append(resp.Itens, ir)
	}
	return resp
}
