package service

import (
	"context"
	"errors"
	"time"

	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const produtoCacheTTL = 5 * time.Minute

var ErrSerializadoComEstoque = errors.New("Produto com número de série ou IMEI só pode ter estoque 0 ou 1")

// ProdutoService defines the business logic contract for products.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ListResponse[dto.ProdutoResponse], error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjusteEstoqueRequest) (*dto.ProdutoResponse, error)
	Movimentos(ctx context.Context, id uuid.UUID, p dto.Paginacao) (*dto.ListResponse[dto.MovimentoEstoqueResponse], error)
}

type produtoService struct {
	repo    repository.ProdutoRepository
	estoque EstoqueService
	rdb     *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, estoque EstoqueService, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, estoque: estoque, rdb: rdb}
}

func produtoCacheKey(id uuid.UUID) string { return "produto:" + id.String() }

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		ID:             uuid.New(),
		Nome:           req.Nome,
		Marca:          req.Marca,
		Modelo:         req.Modelo,
		Cor:            req.Cor,
		Armazenamento:  req.Armazenamento,
		Condicao:       req.Condicao,
		SaudeBateria:   req.SaudeBateria,
		NumeroSerie:    trimmed(req.NumeroSerie),
		IMEI1:          trimmed(req.IMEI1),
		IMEI2:          trimmed(req.IMEI2),
		PrecoCusto:     req.PrecoCusto,
		CustoAdicional: req.CustoAdicional,
		PrecoVenda:     req.PrecoVenda,
		PrecoAtacado:   req.PrecoAtacado,
		EstoqueMinimo:  req.EstoqueMinimo,
		Ativo:          true,
	}
	if p.Marca == "" {
		p.Marca = "Apple"
	}
	if p.Condicao == "" {
		p.Condicao = "novo"
	}
	if p.Serializado() && req.Estoque > 1 {
		return nil, ErrSerializadoComEstoque
	}
	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, ErrFornecedorNaoEncontrado
		}
		p.FornecedorID = &fid
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return err
		}
		if req.Estoque == 0 {
			return nil
		}
		if err := s.estoque.MoverTx(tx, p.ID, req.Estoque, model.MovAjusteManual, "Estoque inicial", nil); err != nil {
			return err
		}
		p.Estoque = req.Estoque
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	var cached dto.ProdutoResponse
	if cacheGet(ctx, s.rdb, produtoCacheKey(id), &cached) {
		return &cached, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProdutoNaoEncontrado)
	}
	resp := produtoToResponse(p)
	cacheSet(ctx, s.rdb, produtoCacheKey(id), resp, produtoCacheTTL)
	return &resp, nil
}

func (s *produtoService) ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, notFound(err, ErrProdutoNaoEncontrado)
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ListResponse[dto.ProdutoResponse], error) {
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, produtoToResponse(&produtos[i]))
	}
	resp := dto.NewListResponse(out, total, filter.Paginacao)
	return &resp, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProdutoNaoEncontrado)
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	if req.Cor != nil {
		p.Cor = req.Cor
	}
	if req.Armazenamento != nil {
		p.Armazenamento = req.Armazenamento
	}
	if req.Condicao != nil {
		p.Condicao = *req.Condicao
	}
	if req.SaudeBateria != nil {
		p.SaudeBateria = req.SaudeBateria
	}
	if req.PrecoCusto != nil {
		p.PrecoCusto = *req.PrecoCusto
	}
	if req.CustoAdicional != nil {
		p.CustoAdicional = *req.CustoAdicional
	}
	if req.PrecoVenda != nil {
		p.PrecoVenda = *req.PrecoVenda
	}
	if req.PrecoAtacado != nil {
		p.PrecoAtacado = *req.PrecoAtacado
	}
	if req.EstoqueMinimo != nil {
		p.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, ErrFornecedorNaoEncontrado
		}
		p.FornecedorID = &fid
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	cacheDel(ctx, s.rdb, produtoCacheKey(id))
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, ErrProdutoNaoEncontrado)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	cacheDel(ctx, s.rdb, produtoCacheKey(id))
	return nil
}

func (s *produtoService) AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjusteEstoqueRequest) (*dto.ProdutoResponse, error) {
	if err := s.estoque.AjustarManual(ctx, id, req.Delta, req.Motivo); err != nil {
		return nil, err
	}
	cacheDel(ctx, s.rdb, produtoCacheKey(id))
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProdutoNaoEncontrado)
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Movimentos(ctx context.Context, id uuid.UUID, pg dto.Paginacao) (*dto.ListResponse[dto.MovimentoEstoqueResponse], error) {
	movs, total, err := s.estoque.Movimentos(ctx, repository.MovimentoEstoqueFilter{ProdutoID: &id, Page: pg.Page, Limit: pg.Limit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoEstoqueResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimentoEstoqueResponse{
			ID:            m.ID.String(),
			ProdutoID:     m.ProdutoID.String(),
			Tipo:          m.Tipo,
			Quantidade:    m.Quantidade,
			EstoqueAntes:  m.EstoqueAntes,
			EstoqueDepois: m.EstoqueDepois,
			Motivo:        m.Motivo,
			ReferenciaID:  m.ReferenciaID,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		})
	}
	resp := dto.NewListResponse(out, total, pg)
	return &resp, nil
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	resp := dto.ProdutoResponse{
		ID:             p.ID.String(),
		Nome:           p.Nome,
		Marca:          p.Marca,
		Modelo:         p.Modelo,
		Cor:            p.Cor,
		Armazenamento:  p.Armazenamento,
		Condicao:       p.Condicao,
		SaudeBateria:   p.SaudeBateria,
		NumeroSerie:    p.NumeroSerie,
		IMEI1:          p.IMEI1,
		IMEI2:          p.IMEI2,
		PrecoCusto:     p.PrecoCusto,
		CustoAdicional: p.CustoAdicional,
		PrecoVenda:     p.PrecoVenda,
		PrecoAtacado:   p.PrecoAtacado,
		Estoque:        p.Estoque,
		EstoqueMinimo:  p.EstoqueMinimo,
		Serializado:    p.Serializado(),
		OrigemVendaID:  p.OrigemVendaID,
		Ativo:          p.Ativo,
	}
	if p.FornecedorID != nil {
		fid := p.FornecedorID.String()
		resp.FornecedorID = &fid
	}
	return resp
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return optStr(*s)
}
