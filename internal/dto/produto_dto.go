package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome           string          `json:"nome"            validate:"required,min=2,max=120"`
	Marca          string          `json:"marca"           validate:"omitempty,max=60"`
	Modelo         string          `json:"modelo"`
	Cor            *string         `json:"cor"`
	Armazenamento  *string         `json:"armazenamento"`
	Condicao       string          `json:"condicao"        validate:"omitempty,oneof=novo seminovo usado"`
	SaudeBateria   *int            `json:"saude_bateria"   validate:"omitempty,min=0,max=100"`
	NumeroSerie    *string         `json:"numero_serie"`
	IMEI1          *string         `json:"imei1"           validate:"omitempty,numeric,len=15"`
	IMEI2          *string         `json:"imei2"           validate:"omitempty,numeric,len=15"`
	PrecoCusto     decimal.Decimal `json:"preco_custo"     validate:"min=0"`
	CustoAdicional decimal.Decimal `json:"custo_adicional" validate:"min=0"`
	PrecoVenda     decimal.Decimal `json:"preco_venda"     validate:"required,gt=0"`
	PrecoAtacado   decimal.Decimal `json:"preco_atacado"   validate:"min=0"`
	Estoque        int             `json:"estoque"         validate:"min=0"`
	EstoqueMinimo  int             `json:"estoque_minimo"  validate:"min=0"`
	FornecedorID   *string         `json:"fornecedor_id"   validate:"omitempty,uuid"`
}

type AtualizarProdutoRequest struct {
	Nome           *string          `json:"nome"            validate:"omitempty,min=2,max=120"`
	Cor            *string          `json:"cor"`
	Armazenamento  *string          `json:"armazenamento"`
	Condicao       *string          `json:"condicao"        validate:"omitempty,oneof=novo seminovo usado"`
	SaudeBateria   *int             `json:"saude_bateria"   validate:"omitempty,min=0,max=100"`
	PrecoCusto     *decimal.Decimal `json:"preco_custo"`
	CustoAdicional *decimal.Decimal `json:"custo_adicional"`
	PrecoVenda     *decimal.Decimal `json:"preco_venda"`
	PrecoAtacado   *decimal.Decimal `json:"preco_atacado"`
	EstoqueMinimo  *int             `json:"estoque_minimo"  validate:"omitempty,min=0"`
	FornecedorID   *string          `json:"fornecedor_id"   validate:"omitempty,uuid"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProdutoFilter struct {
	Busca        string `form:"busca"` // nome, serial or IMEI
	FornecedorID string `form:"fornecedor_id"`
	ComEstoque   bool   `form:"com_estoque"`
	Ativo        string `form:"ativo"` // "false" | "all" | default active only
	Paginacao
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	Marca          string          `json:"marca"`
	Modelo         string          `json:"modelo"`
	Cor            *string         `json:"cor,omitempty"`
	Armazenamento  *string         `json:"armazenamento,omitempty"`
	Condicao       string          `json:"condicao"`
	SaudeBateria   *int            `json:"saude_bateria,omitempty"`
	NumeroSerie    *string         `json:"numero_serie,omitempty"`
	IMEI1          *string         `json:"imei1,omitempty"`
	IMEI2          *string         `json:"imei2,omitempty"`
	PrecoCusto     decimal.Decimal `json:"preco_custo"`
	CustoAdicional decimal.Decimal `json:"custo_adicional"`
	PrecoVenda     decimal.Decimal `json:"preco_venda"`
	PrecoAtacado   decimal.Decimal `json:"preco_atacado"`
	Estoque        int             `json:"estoque"`
	EstoqueMinimo  int             `json:"estoque_minimo"`
	Serializado    bool            `json:"serializado"`
	FornecedorID   *string         `json:"fornecedor_id,omitempty"`
	OrigemVendaID  *string         `json:"origem_venda_id,omitempty"`
	Ativo          bool            `json:"ativo"`
}

type AjusteEstoqueRequest struct {
	Delta  int    `json:"delta"  validate:"required,ne=0"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type MovimentoEstoqueResponse struct {
	ID            string  `json:"id"`
	ProdutoID     string  `json:"produto_id"`
	Tipo          string  `json:"tipo"`
	Quantidade    int     `json:"quantidade"`
	EstoqueAntes  int     `json:"estoque_antes"`
	EstoqueDepois int     `json:"estoque_depois"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
