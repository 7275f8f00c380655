package repository

import (
	"context"
	"time"

	"istorepro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PedidoCompraRepository interface {
	Create(ctx context.Context, p *model.PedidoCompra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoCompra, error)
	List(ctx context.Context, fornecedorID *uuid.UUID) ([]model.PedidoCompra, error)
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.PedidoCompra, error)
	SetStatusTx(tx *gorm.DB, id uuid.UUID, status string, at *time.Time) error
	DB() *gorm.DB
}

type pedidoCompraRepo struct{ db *gorm.DB }

func NewPedidoCompraRepository(db *gorm.DB) PedidoCompraRepository {
	return &pedidoCompraRepo{db: db}
}

func (r *pedidoCompraRepo) DB() *gorm.DB { return r.db }

func (r *pedidoCompraRepo) Create(ctx context.Context, p *model.PedidoCompra) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoCompraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoCompra, error) {
	var p model.PedidoCompra
	err := r.db.WithContext(ctx).Preload("Itens.Produto").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoCompraRepo) List(ctx context.Context, fornecedorID *uuid.UUID) ([]model.PedidoCompra, error) {
	var out []model.PedidoCompra
	q := r.db.WithContext(ctx).Preload("Itens")
	if fornecedorID != nil {
		q = q.Where("fornecedor_id = ?", *fornecedorID)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *pedidoCompraRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.PedidoCompra, error) {
	var p model.PedidoCompra
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Itens").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoCompraRepo) SetStatusTx(tx *gorm.DB, id uuid.UUID, status string, at *time.Time) error {
	return tx.Model(&model.PedidoCompra{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"recebido_em": at,
	}).Error
}
