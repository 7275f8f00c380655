package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de ParcelaCrediario.
const (
	ParcelaAberta = "aberta"
	ParcelaPaga   = "paga"
)

// ParcelaCrediario is one receivable of a finalized crediário payment.
type ParcelaCrediario struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID     string          `gorm:"type:varchar(20);not null;index"`
	PagamentoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Numero      int             `gorm:"not null"`
	Vencimento  time.Time       `gorm:"type:date;not null;index"`
	Valor       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorPago   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Juros       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Amortizacao decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status      string          `gorm:"not null;default:'aberta'"`
	PagaEm      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ParcelaCrediario) TableName() string { return "parcelas_crediario" }

// Restante is what is still owed on the installment.
func (p ParcelaCrediario) Restante() decimal.Decimal {
	r := p.Valor.Sub(p.ValorPago)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
