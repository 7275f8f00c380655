package dto

import "github.com/shopspring/decimal"

type PagarParcelaRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required,gt=0"`
}

type ParcelaFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Status    string `form:"status"     validate:"omitempty,oneof=aberta paga"`
	Vencidas  bool   `form:"vencidas"`
	Paginacao
}

type ParcelaResponse struct {
	ID          string          `json:"id"`
	VendaID     string          `json:"venda_id"`
	ClienteID   string          `json:"cliente_id"`
	Numero      int             `json:"numero"`
	Vencimento  string          `json:"vencimento"`
	Valor       decimal.Decimal `json:"valor"`
	ValorPago   decimal.Decimal `json:"valor_pago"`
	Restante    decimal.Decimal `json:"restante"`
	Juros       decimal.Decimal `json:"juros"`
	Amortizacao decimal.Decimal `json:"amortizacao"`
	Status      string          `json:"status"`
}
