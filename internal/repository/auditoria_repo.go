package repository

import (
	"context"

	"istorepro/internal/model"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, l *model.LogAuditoria) error
	ListByEntidade(ctx context.Context, entidade, entidadeID string) ([]model.LogAuditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, l *model.LogAuditoria) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *auditoriaRepo) ListByEntidade(ctx context.Context, entidade, entidadeID string) ([]model.LogAuditoria, error) {
	var out []model.LogAuditoria
	err := r.db.WithContext(ctx).
		Where("entidade = ? AND entidade_id = ?", entidade, entidadeID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}
