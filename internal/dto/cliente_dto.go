package dto

import "github.com/shopspring/decimal"

type ClienteRequest struct {
	Nome             string          `json:"nome"              validate:"required,min=2,max=120"`
	CPF              *string         `json:"cpf"               validate:"omitempty,numeric,len=11"`
	Telefone         *string         `json:"telefone"`
	Email            *string         `json:"email"             validate:"omitempty,email"`
	DataNascimento   *string         `json:"data_nascimento"   validate:"omitempty,datetime=2006-01-02"`
	CEP              *string         `json:"cep"               validate:"omitempty,numeric,len=8"`
	Logradouro       *string         `json:"logradouro"`
	Numero           *string         `json:"numero"`
	Bairro           *string         `json:"bairro"`
	Cidade           *string         `json:"cidade"`
	UF               *string         `json:"uf"                validate:"omitempty,len=2"`
	PermiteCrediario bool            `json:"permite_crediario"`
	LimiteCredito    decimal.Decimal `json:"limite_credito"    validate:"min=0"`
}

type LimiteCreditoRequest struct {
	Limite decimal.Decimal `json:"limite" validate:"min=0"`
}

type ClienteFilter struct {
	Busca string `form:"busca"` // nome, CPF or telefone
	Paginacao
}

type ClienteResponse struct {
	ID                string          `json:"id"`
	Nome              string          `json:"nome"`
	CPF               *string         `json:"cpf,omitempty"`
	Telefone          *string         `json:"telefone,omitempty"`
	Email             *string         `json:"email,omitempty"`
	DataNascimento    *string         `json:"data_nascimento,omitempty"`
	CEP               *string         `json:"cep,omitempty"`
	Logradouro        *string         `json:"logradouro,omitempty"`
	Numero            *string         `json:"numero,omitempty"`
	Bairro            *string         `json:"bairro,omitempty"`
	Cidade            *string         `json:"cidade,omitempty"`
	UF                *string         `json:"uf,omitempty"`
	PermiteCrediario  bool            `json:"permite_crediario"`
	LimiteCredito     decimal.Decimal `json:"limite_credito"`
	CreditoUsado      decimal.Decimal `json:"credito_usado"`
	CreditoDisponivel decimal.Decimal `json:"credito_disponivel"`
}

// EnderecoResponse is the postal-code lookup result.
type EnderecoResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}
