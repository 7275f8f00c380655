package model

import "time"

// Status de ReservaVenda.
const (
	ReservaAtiva     = "ativa"
	ReservaCancelada = "cancelada"
	ReservaConsumida = "consumida"
)

// ReservaVenda holds a sale number for one open draft. A number is consumed
// by at most one sale and is never handed out again.
type ReservaVenda struct {
	ID        string    `gorm:"primaryKey;type:varchar(20)"`
	UsuarioID string    `gorm:"not null;index"`
	Status    string    `gorm:"not null;default:'ativa';index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReservaVenda) TableName() string { return "reservas_venda" }
