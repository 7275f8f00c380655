package dto

import (
	"istorepro/internal/checkout"

	"github.com/shopspring/decimal"
)

// ─── Draft requests ──────────────────────────────────────────────────────────

type DefinirClienteRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
}

type DefinirVendedorRequest struct {
	ID   string `json:"id"   validate:"required"`
	Nome string `json:"nome" validate:"required"`
}

type DefinirGarantiaRequest struct {
	Termo string `json:"termo" validate:"required"`
}

type ObservacoesRequest struct {
	Observacoes         string `json:"observacoes"          validate:"max=2000"`
	ObservacoesInternas string `json:"observacoes_internas" validate:"max=2000"`
}

type DescontoRequest struct {
	Tipo  string          `json:"tipo"  validate:"required,oneof=valor percentual"`
	Valor decimal.Decimal `json:"valor" validate:"min=0"`
}

type SolicitarItemRequest struct {
	ProdutoID string `json:"produto_id" validate:"required,uuid"`
}

type ConfirmarItemRequest struct {
	Quantidade int    `json:"quantidade" validate:"required,min=1"`
	TipoPreco  string `json:"tipo_preco" validate:"omitempty,oneof=venda custo atacado"`
}

type AtualizarItemRequest struct {
	Quantidade    *int             `json:"quantidade"     validate:"omitempty,min=1"`
	PrecoVenda    *decimal.Decimal `json:"preco_venda"`
	TipoDesconto  *string          `json:"tipo_desconto"  validate:"omitempty,oneof=valor percentual"`
	ValorDesconto *decimal.Decimal `json:"valor_desconto"`
}

type SolicitarPagamentoRequest struct {
	Metodo   string `json:"metodo"   validate:"required"`
	Variacao string `json:"variacao"`
}

type ValorRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required,gt=0"`
}

type CartaoRequest struct {
	ValorCobrado decimal.Decimal `json:"valor_cobrado" validate:"required,gt=0"`
	ModoTaxa     string          `json:"modo_taxa"     validate:"omitempty,oneof=sem_juros com_juros"`
	Parcelas     int             `json:"parcelas"      validate:"omitempty,min=1,max=24"`
}

type CrediarioRequest struct {
	Entrada            decimal.Decimal  `json:"entrada"             validate:"min=0"`
	ValorFinanciado    decimal.Decimal  `json:"valor_financiado"    validate:"min=0"`
	Parcelas           int              `json:"parcelas"            validate:"required,min=1,max=48"`
	Frequencia         string           `json:"frequencia"          validate:"omitempty,oneof=mensal quinzenal"`
	PrimeiroVencimento string           `json:"primeiro_vencimento" validate:"required,datetime=2006-01-02"`
	TaxaJuros          *decimal.Decimal `json:"taxa_juros"`
}

type NovoProdutoInput struct {
	Nome          string          `json:"nome"          validate:"required,min=2"`
	Marca         string          `json:"marca"`
	Modelo        string          `json:"modelo"`
	Cor           string          `json:"cor"`
	Armazenamento string          `json:"armazenamento"`
	Condicao      string          `json:"condicao"      validate:"omitempty,oneof=novo seminovo usado"`
	SaudeBateria  int             `json:"saude_bateria" validate:"min=0,max=100"`
	NumeroSerie   string          `json:"numero_serie"`
	IMEI1         string          `json:"imei1"         validate:"omitempty,numeric,len=15"`
	IMEI2         string          `json:"imei2"         validate:"omitempty,numeric,len=15"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"   validate:"min=0"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"   validate:"min=0"`
}

type TrocaRequest struct {
	Valor       decimal.Decimal   `json:"valor"        validate:"required,gt=0"`
	ProdutoID   string            `json:"produto_id"   validate:"omitempty,uuid"`
	ProdutoNome string            `json:"produto_nome"`
	NovoProduto *NovoProdutoInput `json:"novo_produto"`
}

type SalvarVendaRequest struct {
	Status      string  `json:"status"       validate:"required,oneof=Pendente Finalizada"`
	EmailRecibo *string `json:"email_recibo" validate:"omitempty,email"`
}

// ─── Draft responses ─────────────────────────────────────────────────────────

type RascunhoResponse struct {
	Rascunho checkout.Snapshot `json:"rascunho"`
	Avisos   []checkout.Notice `json:"avisos,omitempty"`
}

type PagamentoSolicitadoResponse struct {
	Solicitacao checkout.PaymentRequest `json:"solicitacao"`
	Rascunho    checkout.Snapshot       `json:"rascunho"`
}

// ─── Saved sales ─────────────────────────────────────────────────────────────

type VendaFilter struct {
	Status    string `form:"status"` // Pendente | Finalizada | Editada
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Data      string `form:"data"       validate:"omitempty,datetime=2006-01-02"`
	Paginacao
}

type VendaItemResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Nome          string          `json:"nome"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	TipoPreco     string          `json:"tipo_preco"`
	TipoDesconto  string          `json:"tipo_desconto"`
	ValorDesconto decimal.Decimal `json:"valor_desconto"`
	Total         decimal.Decimal `json:"total"`
}

type PagamentoResponse struct {
	ID       string          `json:"id"`
	Metodo   string          `json:"metodo"`
	Variacao *string         `json:"variacao,omitempty"`
	Valor    decimal.Decimal `json:"valor"`
	Detalhes any             `json:"detalhes,omitempty"`
}

type VendaResponse struct {
	ID                  string              `json:"id"`
	ClienteID           string              `json:"cliente_id"`
	ClienteNome         string              `json:"cliente_nome"`
	VendedorID          string              `json:"vendedor_id"`
	VendedorNome        string              `json:"vendedor_nome"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	Desconto            decimal.Decimal     `json:"desconto"`
	Total               decimal.Decimal     `json:"total"`
	Status              string              `json:"status"`
	TermoGarantia       string              `json:"termo_garantia"`
	Observacoes         *string             `json:"observacoes,omitempty"`
	ObservacoesInternas *string             `json:"observacoes_internas,omitempty"`
	Itens               []VendaItemResponse `json:"itens"`
	Pagamentos          []PagamentoResponse `json:"pagamentos"`
	CreatedAt           string              `json:"created_at"`
	UpdatedAt           string              `json:"updated_at"`
}
