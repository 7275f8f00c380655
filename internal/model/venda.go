package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Venda is a persisted sale. Its ID is the number reserved when the draft
// was opened.
type Venda struct {
	ID                  string          `gorm:"primaryKey;type:varchar(20)"`
	ClienteID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteNome         string          `gorm:"not null"`
	VendedorID          string          `gorm:"not null;index"`
	VendedorNome        string          `gorm:"not null"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desconto            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TipoDescontoGlobal  string
	ValorDescontoGlobal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status              string          `gorm:"not null;index"` // Pendente | Finalizada | Editada
	TermoGarantia       string          `gorm:"not null"`
	Observacoes         *string
	ObservacoesInternas *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Itens      []VendaItem `gorm:"foreignKey:VendaID"`
	Pagamentos []Pagamento `gorm:"foreignKey:VendaID"`
}

func (Venda) TableName() string { return "vendas" }

// VendaItem is one sale line as it was negotiated.
type VendaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID       string          `gorm:"type:varchar(20);not null;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nome          string          `gorm:"not null"`
	Serializado   bool            `gorm:"not null;default:false"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoPreco     string          `gorm:"not null;default:'venda'"`
	TipoDesconto  string          `gorm:"not null;default:'valor'"`
	ValorDesconto decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VendaItem) TableName() string { return "venda_itens" }

// Pagamento is one payment of a sale. Detalhes keeps the card, trade-in or
// crediário record as jsonb.
type Pagamento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendaID   string    `gorm:"type:varchar(20);not null;index"`
	Metodo    string    `gorm:"not null"`
	Variacao  *string
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Detalhes  datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (Pagamento) TableName() string { return "pagamentos" }
