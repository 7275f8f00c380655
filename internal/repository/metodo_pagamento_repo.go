package repository

import (
	"context"

	"istorepro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetodoPagamentoRepository interface {
	List(ctx context.Context) ([]model.MetodoPagamento, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPagamento, error)
	Create(ctx context.Context, m *model.MetodoPagamento) error
	Update(ctx context.Context, m *model.MetodoPagamento) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type metodoPagamentoRepo struct{ db *gorm.DB }

func NewMetodoPagamentoRepository(db *gorm.DB) MetodoPagamentoRepository {
	return &metodoPagamentoRepo{db: db}
}

func (r *metodoPagamentoRepo) List(ctx context.Context) ([]model.MetodoPagamento, error) {
	var out []model.MetodoPagamento
	err := r.db.WithContext(ctx).Order("ordem ASC, nome ASC").Find(&out).Error
	return out, err
}

func (r *metodoPagamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPagamento, error) {
	var m model.MetodoPagamento
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *metodoPagamentoRepo) Create(ctx context.Context, m *model.MetodoPagamento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metodoPagamentoRepo) Update(ctx context.Context, m *model.MetodoPagamento) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *metodoPagamentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MetodoPagamento{}, "id = ?", id).Error
}

type TermoGarantiaRepository interface {
	List(ctx context.Context, somenteAtivos bool) ([]model.TermoGarantia, error)
	FindByNome(ctx context.Context, nome string) (*model.TermoGarantia, error)
	Create(ctx context.Context, t *model.TermoGarantia) error
	Update(ctx context.Context, t *model.TermoGarantia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TermoGarantia, error)
}

type termoGarantiaRepo struct{ db *gorm.DB }

func NewTermoGarantiaRepository(db *gorm.DB) TermoGarantiaRepository {
	return &termoGarantiaRepo{db: db}
}

func (r *termoGarantiaRepo) List(ctx context.Context, somenteAtivos bool) ([]model.TermoGarantia, error) {
	var out []model.TermoGarantia
	q := r.db.WithContext(ctx)
	if somenteAtivos {
		q = q.Where("ativo = true")
	}
	err := q.Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *termoGarantiaRepo) FindByNome(ctx context.Context, nome string) (*model.TermoGarantia, error) {
	var t model.TermoGarantia
	err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&t).Error
	return &t, err
}

func (r *termoGarantiaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TermoGarantia, error) {
	var t model.TermoGarantia
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *termoGarantiaRepo) Create(ctx context.Context, t *model.TermoGarantia) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *termoGarantiaRepo) Update(ctx context.Context, t *model.TermoGarantia) error {
	return r.db.WithContext(ctx).Save(t).Error
}
