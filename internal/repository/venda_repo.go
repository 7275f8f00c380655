package repository

import (
	"context"

	"istorepro/internal/dto"
	"istorepro/internal/model"

	"gorm.io/gorm"
)

type VendaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venda) error
	// ReplaceTx overwrites the sale row and swaps its items and payments.
	ReplaceTx(tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id string) (*model.Venda, error)
	FindByIDTx(tx *gorm.DB, id string) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) ReplaceTx(tx *gorm.DB, v *model.Venda) error {
	if err := tx.Where("venda_id = ?", v.ID).Delete(&model.VendaItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("venda_id = ?", v.ID).Delete(&model.Pagamento{}).Error; err != nil {
		return err
	}
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id string) (*model.Venda, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *vendaRepo) FindByIDTx(tx *gorm.DB, id string) (*model.Venda, error) {
	var v model.Venda
	err := tx.Preload("Itens").Preload("Pagamentos", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venda{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Itens").Preload("Pagamentos").
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit).
		Find(&vendas).Error
	return vendas, total, err
}
