package service

import (
	"context"
	"fmt"

	"istorepro/internal/model"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstoqueService owns every stock change. Each change locks the product row
// and writes a MovimentoEstoque so stock can be audited back to its cause.
type EstoqueService interface {
	// MoverTx applies delta inside tx; stock can never go negative.
	MoverTx(tx *gorm.DB, produtoID uuid.UUID, delta int, tipo, motivo string, referencia *string) error
	AjustarManual(ctx context.Context, produtoID uuid.UUID, delta int, motivo string) error
	Movimentos(ctx context.Context, filter repository.MovimentoEstoqueFilter) ([]model.MovimentoEstoque, int64, error)
}

type estoqueService struct {
	produtos   repository.ProdutoRepository
	movimentos repository.MovimentoEstoqueRepository
}

func NewEstoqueService(produtos repository.ProdutoRepository, movimentos repository.MovimentoEstoqueRepository) EstoqueService {
	return &estoqueService{produtos: produtos, movimentos: movimentos}
}

func (s *estoqueService) MoverTx(tx *gorm.DB, produtoID uuid.UUID, delta int, tipo, motivo string, referencia *string) error {
	if delta == 0 {
		return nil
	}
	p, err := s.produtos.FindForUpdateTx(tx, produtoID)
	if err != nil {
		return notFound(err, ErrProdutoNaoEncontrado)
	}
	depois := p.Estoque + delta
	if depois < 0 {
		return fmt.Errorf("%w: %s (disponível %d)", ErrEstoqueInsuficiente, p.Nome, p.Estoque)
	}
	if err := s.produtos.UpdateStockTx(tx, produtoID, delta); err != nil {
		return err
	}
	return s.movimentos.CreateTx(tx, &model.MovimentoEstoque{
		ProdutoID:     produtoID,
		Tipo:          tipo,
		Quantidade:    delta,
		EstoqueAntes:  p.Estoque,
		EstoqueDepois: depois,
		Motivo:        motivo,
		ReferenciaID:  referencia,
	})
}

func (s *estoqueService) AjustarManual(ctx context.Context, produtoID uuid.UUID, delta int, motivo string) error {
	return runTx(ctx, s.produtos.DB(), func(tx *gorm.DB) error {
		return s.MoverTx(tx, produtoID, delta, model.MovAjusteManual, motivo, nil)
	})
}

func (s *estoqueService) Movimentos(ctx context.Context, filter repository.MovimentoEstoqueFilter) ([]model.MovimentoEstoque, int64, error) {
	return s.movimentos.List(ctx, filter)
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
