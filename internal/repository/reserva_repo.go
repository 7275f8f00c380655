package repository

import (
	"context"
	"errors"
	"time"

	"istorepro/internal/model"

	"gorm.io/gorm"
)

// ErrReservaIndisponivel means the reservation is not active: it was already
// consumed, cancelled, or never existed.
var ErrReservaIndisponivel = errors.New("reserva de venda indisponível")

// ReservaRepository hands out sale numbers and tracks who holds them.
type ReservaRepository interface {
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, r *model.ReservaVenda) error
	Cancel(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, until time.Time) error
	ConsumeTx(tx *gorm.DB, id string) error
	ListExpired(ctx context.Context, now time.Time, limit int) ([]model.ReservaVenda, error)
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepository(db *gorm.DB) ReservaRepository { return &reservaRepo{db: db} }

// NextNumber draws from a PostgreSQL sequence so numbers are never reused,
// even when the reserving draft is abandoned.
func (r *reservaRepo) NextNumber(ctx context.Context) (int64, error) {
	var num int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('vendas_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *reservaRepo) Create(ctx context.Context, res *model.ReservaVenda) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// Cancel releases an active reservation. Cancelling a reservation that is no
// longer active is a no-op.
func (r *reservaRepo) Cancel(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.ReservaVenda{}).
		Where("id = ? AND status = ?", id, model.ReservaAtiva).
		Update("status", model.ReservaCancelada).Error
}

// Extend pushes the expiry of an active reservation whose draft is still in use.
func (r *reservaRepo) Extend(ctx context.Context, id string, until time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ReservaVenda{}).
		Where("id = ? AND status = ?", id, model.ReservaAtiva).
		Update("expires_at", until).Error
}

func (r *reservaRepo) ConsumeTx(tx *gorm.DB, id string) error {
	res := tx.Model(&model.ReservaVenda{}).
		Where("id = ? AND status = ?", id, model.ReservaAtiva).
		Update("status", model.ReservaConsumida)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReservaIndisponivel
	}
	return nil
}

func (r *reservaRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.ReservaVenda, error) {
	var out []model.ReservaVenda
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", model.ReservaAtiva, now).
		Order("expires_at ASC").Limit(limit).
		Find(&out).Error
	return out, err
}
