package repository

import (
	"context"
	"time"

	"istorepro/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReciboRepository interface {
	// Upsert creates the receipt of a sale or resets it to pending.
	Upsert(ctx context.Context, r *model.Recibo) error
	FindByVendaID(ctx context.Context, vendaID string) (*model.Recibo, error)
	Update(ctx context.Context, r *model.Recibo) error
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Recibo, error)
}

type reciboRepo struct{ db *gorm.DB }

func NewReciboRepository(db *gorm.DB) ReciboRepository { return &reciboRepo{db: db} }

func (r *reciboRepo) Upsert(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "venda_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"estado", "email_destino", "retry_count", "next_retry_at", "updated_at"}),
	}).Create(rec).Error
}

func (r *reciboRepo) FindByVendaID(ctx context.Context, vendaID string) (*model.Recibo, error) {
	var rec model.Recibo
	err := r.db.WithContext(ctx).Where("venda_id = ?", vendaID).First(&rec).Error
	return &rec, err
}

func (r *reciboRepo) Update(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *reciboRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Recibo, error) {
	var out []model.Recibo
	err := r.db.WithContext(ctx).
		Where("estado = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.ReciboErro, now).
		Order("next_retry_at ASC").Limit(limit).
		Find(&out).Error
	return out, err
}
