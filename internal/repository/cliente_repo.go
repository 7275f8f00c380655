package repository

import (
	"context"

	"istorepro/internal/dto"
	"istorepro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	UpdateLimiteCredito(ctx context.Context, id uuid.UUID, limite decimal.Decimal) error
	// FindForUpdateTx reads the customer with a row lock held until tx ends.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	// AddCreditoUsadoTx moves credito_usado by delta (negative on payment).
	AddCreditoUsadoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("ativo = true")
	if filter.Busca != "" {
		q = q.Where("nome ILIKE ? OR cpf = ? OR telefone = ?", "%"+filter.Busca+"%", filter.Busca, filter.Busca)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nome ASC").Offset(filter.Offset()).Limit(filter.Limit).Find(&out).Error
	return out, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *clienteRepo) UpdateLimiteCredito(ctx context.Context, id uuid.UUID, limite decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("limite_credito", limite)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clienteRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) AddCreditoUsadoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("credito_usado", gorm.Expr("GREATEST(credito_usado + ?, 0)", delta)).Error
}
