package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de MovimentoEstoque.
const (
	MovVenda         = "venda"
	MovEstornoEdicao = "estorno_edicao"
	MovEntradaTroca  = "entrada_troca"
	MovEntradaCompra = "entrada_compra"
	MovAjusteManual  = "ajuste_manual"
)

// MovimentoEstoque records one stock change of a product.
type MovimentoEstoque struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"not null"`
	Quantidade    int       `gorm:"not null"` // positive = entrada, negative = saída
	EstoqueAntes  int       `gorm:"not null"`
	EstoqueDepois int       `gorm:"not null"`
	Motivo        string
	ReferenciaID  *string `gorm:"index"` // venda or pedido de compra
	CreatedAt     time.Time
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
