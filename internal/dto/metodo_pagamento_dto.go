package dto

import "istorepro/internal/payment"

type MetodoPagamentoRequest struct {
	Nome      string             `json:"nome"      validate:"required,min=2"`
	Tipo      string             `json:"tipo"      validate:"required,oneof=dinheiro pix cartao crediario troca transferencia outro"`
	Ativo     bool               `json:"ativo"`
	Ordem     int                `json:"ordem"     validate:"min=0"`
	Config    payment.RateConfig `json:"config"`
	Variacoes []string           `json:"variacoes"`
}

type TermoGarantiaRequest struct {
	Nome     string `json:"nome"     validate:"required,min=2"`
	Conteudo string `json:"conteudo" validate:"required"`
	Ativo    bool   `json:"ativo"`
}

type TermoGarantiaResponse struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Conteudo string `json:"conteudo"`
	Ativo    bool   `json:"ativo"`
}
