package repository

import (
	"context"

	"istorepro/internal/dto"
	"istorepro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProdutoRepository is the data access contract for products.
// Services depend on this interface so they can be tested with stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, code string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions; callers pass the tx instance.
	CreateTx(tx *gorm.DB, p *model.Produto) error
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	SetOrigemVendaTx(tx *gorm.DB, id uuid.UUID, vendaID string) error

	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) DB() *gorm.DB { return r.db }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) CreateTx(tx *gorm.DB, p *model.Produto) error {
	return tx.Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// FindByCodigo matches an IMEI or a serial number.
func (r *produtoRepo) FindByCodigo(ctx context.Context, code string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).
		Where("ativo = true").
		Where("imei1 = ? OR imei2 = ? OR numero_serie = ?", code, code, code).
		First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{})

	// Ativo filter: "false" = inactive, "all" = every product, anything else = active
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
	default:
		q = q.Where("ativo = true")
	}
	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR modelo ILIKE ? OR imei1 = ? OR imei2 = ? OR numero_serie = ?",
			like, like, filter.Busca, filter.Busca, filter.Busca)
	}
	if filter.FornecedorID != "" {
		q = q.Where("fornecedor_id = ?", filter.FornecedorID)
	}
	if filter.ComEstoque {
		q = q.Where("estoque > 0")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(filter.Offset()).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque", gorm.Expr("estoque + ?", delta)).Error
}

func (r *produtoRepo) SetOrigemVendaTx(tx *gorm.DB, id uuid.UUID, vendaID string) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).Update("origem_venda_id", vendaID).Error
}
