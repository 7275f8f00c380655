package repository

import (
	"context"
	"time"

	"istorepro/internal/dto"
	"istorepro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CrediarioRepository interface {
	CreateParcelasTx(tx *gorm.DB, parcelas []model.ParcelaCrediario) error
	DeleteTx(tx *gorm.DB, ids []uuid.UUID) error
	ListByVendaTx(tx *gorm.DB, vendaID string) ([]model.ParcelaCrediario, error)
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.ParcelaCrediario, error)
	UpdateTx(tx *gorm.DB, p *model.ParcelaCrediario) error
	List(ctx context.Context, filter dto.ParcelaFilter, now time.Time) ([]model.ParcelaCrediario, int64, error)
	DB() *gorm.DB
}

type crediarioRepo struct{ db *gorm.DB }

func NewCrediarioRepository(db *gorm.DB) CrediarioRepository { return &crediarioRepo{db: db} }

func (r *crediarioRepo) DB() *gorm.DB { return r.db }

func (r *crediarioRepo) CreateParcelasTx(tx *gorm.DB, parcelas []model.ParcelaCrediario) error {
	if len(parcelas) == 0 {
		return nil
	}
	return tx.Create(&parcelas).Error
}

func (r *crediarioRepo) DeleteTx(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("id IN ?", ids).Delete(&model.ParcelaCrediario{}).Error
}

func (r *crediarioRepo) ListByVendaTx(tx *gorm.DB, vendaID string) ([]model.ParcelaCrediario, error) {
	var out []model.ParcelaCrediario
	err := tx.Where("venda_id = ?", vendaID).Order("numero ASC").Find(&out).Error
	return out, err
}

func (r *crediarioRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.ParcelaCrediario, error) {
	var p model.ParcelaCrediario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *crediarioRepo) UpdateTx(tx *gorm.DB, p *model.ParcelaCrediario) error {
	return tx.Save(p).Error
}

func (r *crediarioRepo) List(ctx context.Context, filter dto.ParcelaFilter, now time.Time) ([]model.ParcelaCrediario, int64, error) {
	var out []model.ParcelaCrediario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ParcelaCrediario{})
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Vencidas {
		q = q.Where("status = ? AND vencimento < ?", model.ParcelaAberta, now)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("vencimento ASC, numero ASC").Offset(filter.Offset()).Limit(filter.Limit).Find(&out).Error
	return out, total, err
}
