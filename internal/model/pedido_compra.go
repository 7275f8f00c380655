package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de PedidoCompra.
const (
	PedidoAberto    = "aberto"
	PedidoRecebido  = "recebido"
	PedidoCancelado = "cancelado"
)

// PedidoCompra is a purchase order to a supplier. Receiving it moves its
// items into stock.
type PedidoCompra struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FornecedorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status       string          `gorm:"not null;default:'aberto'"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observacoes  *string
	RecebidoEm   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Fornecedor *Fornecedor        `gorm:"foreignKey:FornecedorID"`
	Itens      []ItemPedidoCompra `gorm:"foreignKey:PedidoID"`
}

func (PedidoCompra) TableName() string { return "pedidos_compra" }

type ItemPedidoCompra struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade int             `gorm:"not null"`
	CustoUnit  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemPedidoCompra) TableName() string { return "itens_pedido_compra" }
