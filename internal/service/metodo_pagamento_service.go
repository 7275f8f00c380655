package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/payment"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

const (
	metodosCacheKey = "config:metodos_pagamento"
	metodosCacheTTL = 10 * time.Minute
)

// MetodoPagamentoService manages the configurable payment methods and the
// warranty terms printed on receipts.
type MetodoPagamentoService interface {
	// Snapshot is the ordered method list handed to each new draft.
	Snapshot(ctx context.Context) (payment.Snapshot, error)
	Listar(ctx context.Context) ([]payment.MethodConfig, error)
	Criar(ctx context.Context, req dto.MetodoPagamentoRequest) (*payment.MethodConfig, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.MetodoPagamentoRequest) (*payment.MethodConfig, error)
	Excluir(ctx context.Context, id uuid.UUID) error

	ListarTermos(ctx context.Context, somenteAtivos bool) ([]dto.TermoGarantiaResponse, error)
	CriarTermo(ctx context.Context, req dto.TermoGarantiaRequest) (*dto.TermoGarantiaResponse, error)
	AtualizarTermo(ctx context.Context, id uuid.UUID, req dto.TermoGarantiaRequest) (*dto.TermoGarantiaResponse, error)
}

type metodoPagamentoService struct {
	repo   repository.MetodoPagamentoRepository
	termos repository.TermoGarantiaRepository
	rdb    *redis.Client
}

func NewMetodoPagamentoService(repo repository.MetodoPagamentoRepository, termos repository.TermoGarantiaRepository, rdb *redis.Client) MetodoPagamentoService {
	return &metodoPagamentoService{repo: repo, termos: termos, rdb: rdb}
}

func (s *metodoPagamentoService) Snapshot(ctx context.Context) (payment.Snapshot, error) {
	var cached payment.Snapshot
	if cacheGet(ctx, s.rdb, metodosCacheKey, &cached) {
		return cached, nil
	}
	metodos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(metodos, func(i, j int) bool { return metodos[i].Ordem < metodos[j].Ordem })
	snap := make(payment.Snapshot, 0, len(metodos))
	for _, m := range metodos {
		snap = append(snap, metodoToConfig(m))
	}
	cacheSet(ctx, s.rdb, metodosCacheKey, snap, metodosCacheTTL)
	return snap, nil
}

func (s *metodoPagamentoService) Listar(ctx context.Context) ([]payment.MethodConfig, error) {
	return s.Snapshot(ctx)
}

func applyMetodo(m *model.MetodoPagamento, req dto.MetodoPagamentoRequest) error {
	cfg, err := json.Marshal(req.Config)
	if err != nil {
		return err
	}
	variacoes := req.Variacoes
	if variacoes == nil {
		variacoes = []string{}
	}
	vs, err := json.Marshal(variacoes)
	if err != nil {
		return err
	}
	m.Nome = req.Nome
	m.Tipo = req.Tipo
	m.Ativo = req.Ativo
	m.Ordem = req.Ordem
	m.Config = datatypes.JSON(cfg)
	m.Variacoes = datatypes.JSON(vs)
	return nil
}

func (s *metodoPagamentoService) Criar(ctx context.Context, req dto.MetodoPagamentoRequest) (*payment.MethodConfig, error) {
	m := &model.MetodoPagamento{ID: uuid.New()}
	if err := applyMetodo(m, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	cacheDel(ctx, s.rdb, metodosCacheKey)
	cfg := metodoToConfig(*m)
	return &cfg, nil
}

func (s *metodoPagamentoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.MetodoPagamentoRequest) (*payment.MethodConfig, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMetodoNaoEncontrado)
	}
	if err := applyMetodo(m, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	cacheDel(ctx, s.rdb, metodosCacheKey)
	cfg := metodoToConfig(*m)
	return &cfg, nil
}

func (s *metodoPagamentoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, ErrMetodoNaoEncontrado)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cacheDel(ctx, s.rdb, metodosCacheKey)
	return nil
}

// ── Termos de garantia ───────────────────────────────────────────────────────

func termoToResponse(t *model.TermoGarantia) dto.TermoGarantiaResponse {
	return dto.TermoGarantiaResponse{ID: t.ID.String(), Nome: t.Nome, Conteudo: t.Conteudo, Ativo: t.Ativo}
}

func (s *metodoPagamentoService) ListarTermos(ctx context.Context, somenteAtivos bool) ([]dto.TermoGarantiaResponse, error) {
	termos, err := s.termos.List(ctx, somenteAtivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TermoGarantiaResponse, 0, len(termos))
	for i := range termos {
		out = append(out, termoToResponse(&termos[i]))
	}
	return out, nil
}

func (s *metodoPagamentoService) CriarTermo(ctx context.Context, req dto.TermoGarantiaRequest) (*dto.TermoGarantiaResponse, error) {
	t := &model.TermoGarantia{ID: uuid.New(), Nome: req.Nome, Conteudo: req.Conteudo, Ativo: req.Ativo}
	if err := s.termos.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := termoToResponse(t)
	return &resp, nil
}

func (s *metodoPagamentoService) AtualizarTermo(ctx context.Context, id uuid.UUID, req dto.TermoGarantiaRequest) (*dto.TermoGarantiaResponse, error) {
	t, err := s.termos.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTermoNaoEncontrado)
	}
	t.Nome, t.Conteudo, t.Ativo = req.Nome, req.Conteudo, req.Ativo
	if err := s.termos.Update(ctx, t); err != nil {
		return nil, err
	}
	resp := termoToResponse(t)
	return &resp, nil
}
