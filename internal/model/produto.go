package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog record. Devices with a serial number or IMEI are
// unique units and never carry more than one in stock.
type Produto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string    `gorm:"index;not null"`
	Marca          string    `gorm:"not null;default:'Apple'"`
	Modelo         string
	Cor            *string
	Armazenamento  *string
	Condicao       string `gorm:"not null;default:'novo'"` // novo | seminovo | usado
	SaudeBateria   *int
	NumeroSerie    *string         `gorm:"uniqueIndex"`
	IMEI1          *string         `gorm:"column:imei1;uniqueIndex"`
	IMEI2          *string         `gorm:"column:imei2"`
	PrecoCusto     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CustoAdicional decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecoVenda     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecoAtacado   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estoque        int             `gorm:"not null;default:0"`
	EstoqueMinimo  int             `gorm:"not null;default:1"`
	FornecedorID   *uuid.UUID      `gorm:"type:uuid;index"`
	// OrigemVendaID is set on devices received as trade-in.
	OrigemVendaID *string `gorm:"index"`
	Ativo         bool    `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Produto) TableName() string { return "produtos" }

// Serializado reports whether the product is a unique unit.
func (p Produto) Serializado() bool {
	return nonEmpty(p.NumeroSerie) || nonEmpty(p.IMEI1) || nonEmpty(p.IMEI2)
}

func nonEmpty(s *string) bool { return s != nil && *s != "" }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
