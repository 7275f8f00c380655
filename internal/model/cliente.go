package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a customer. CreditoUsado grows with finalized crediário sales
// and shrinks as installments are paid.
type Cliente struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome             string    `gorm:"index;not null"`
	CPF              *string   `gorm:"column:cpf;uniqueIndex"`
	Telefone         *string
	Email            *string
	DataNascimento   *time.Time
	CEP              *string `gorm:"column:cep"`
	Logradouro       *string
	Numero           *string
	Bairro           *string
	Cidade           *string
	UF               *string         `gorm:"column:uf;type:varchar(2)"`
	PermiteCrediario bool            `gorm:"not null;default:false"`
	LimiteCredito    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreditoUsado     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Ativo            bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Cliente) TableName() string { return "clientes" }
