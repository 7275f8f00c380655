package model

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor is a supplier.
type Fornecedor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazaoSocial  string    `gorm:"not null"`
	NomeFantasia *string
	CNPJ         *string `gorm:"column:cnpj;uniqueIndex"`
	Telefone     *string
	Email        *string
	CEP          *string `gorm:"column:cep"`
	Endereco     *string
	Cidade       *string
	UF           *string `gorm:"column:uf;type:varchar(2)"`
	Ativo        bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Contatos []ContatoFornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Fornecedor) TableName() string { return "fornecedores" }
