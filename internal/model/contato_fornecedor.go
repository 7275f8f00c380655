package model

import (
	"time"

	"github.com/google/uuid"
)

// ContatoFornecedor is one contact person at a supplier.
type ContatoFornecedor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FornecedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nome         string    `gorm:"not null"`
	Cargo        *string
	Telefone     *string
	Email        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ContatoFornecedor) TableName() string { return "contatos_fornecedor" }
