package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ContatoFornecedorInput struct {
	Nome     string  `json:"nome"     validate:"required,min=1"`
	Cargo    *string `json:"cargo"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type FornecedorRequest struct {
	RazaoSocial  string                   `json:"razao_social"  validate:"required,min=2"`
	NomeFantasia *string                  `json:"nome_fantasia"`
	CNPJ         *string                  `json:"cnpj"          validate:"omitempty,numeric,len=14"`
	Telefone     *string                  `json:"telefone"`
	Email        *string                  `json:"email"         validate:"omitempty,email"`
	CEP          *string                  `json:"cep"           validate:"omitempty,numeric,len=8"`
	Endereco     *string                  `json:"endereco"`
	Cidade       *string                  `json:"cidade"`
	UF           *string                  `json:"uf"            validate:"omitempty,len=2"`
	Contatos     []ContatoFornecedorInput `json:"contatos"      validate:"dive"`
}

type ItemPedidoInput struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Quantidade int             `json:"quantidade" validate:"required,min=1"`
	CustoUnit  decimal.Decimal `json:"custo_unit" validate:"min=0"`
}

type PedidoCompraRequest struct {
	FornecedorID string            `json:"fornecedor_id" validate:"required,uuid"`
	Observacoes  *string           `json:"observacoes"`
	Itens        []ItemPedidoInput `json:"itens"         validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ContatoFornecedorResponse struct {
	ID       string  `json:"id"`
	Nome     string  `json:"nome"`
	Cargo    *string `json:"cargo,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type FornecedorResponse struct {
	ID           string                      `json:"id"`
	RazaoSocial  string                      `json:"razao_social"`
	NomeFantasia *string                     `json:"nome_fantasia,omitempty"`
	CNPJ         *string                     `json:"cnpj,omitempty"`
	Telefone     *string                     `json:"telefone,omitempty"`
	Email        *string                     `json:"email,omitempty"`
	CEP          *string                     `json:"cep,omitempty"`
	Endereco     *string                     `json:"endereco,omitempty"`
	Cidade       *string                     `json:"cidade,omitempty"`
	UF           *string                     `json:"uf,omitempty"`
	Ativo        bool                        `json:"ativo"`
	Contatos     []ContatoFornecedorResponse `json:"contatos"`
}

type ItemPedidoResponse struct {
	ProdutoID   string          `json:"produto_id"`
	ProdutoNome string          `json:"produto_nome,omitempty"`
	Quantidade  int             `json:"quantidade"`
	CustoUnit   decimal.Decimal `json:"custo_unit"`
}

type PedidoCompraResponse struct {
	ID           string               `json:"id"`
	FornecedorID string               `json:"fornecedor_id"`
	Status       string               `json:"status"`
	Total        decimal.Decimal      `json:"total"`
	Observacoes  *string              `json:"observacoes,omitempty"`
	RecebidoEm   *string              `json:"recebido_em,omitempty"`
	Itens        []ItemPedidoResponse `json:"itens"`
}
