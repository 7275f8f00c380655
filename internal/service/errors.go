package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrRascunhoNaoEncontrado   = errors.New("Rascunho de venda não encontrado ou expirado")
	ErrVendaNaoEncontrada      = errors.New("Venda não encontrada")
	ErrProdutoNaoEncontrado    = errors.New("Produto não encontrado")
	ErrProdutoInativo          = errors.New("Produto inativo não pode ser vendido")
	ErrClienteNaoEncontrado    = errors.New("Cliente não encontrado")
	ErrFornecedorNaoEncontrado = errors.New("Fornecedor não encontrado")
	ErrPedidoNaoEncontrado     = errors.New("Pedido de compra não encontrado")
	ErrPedidoJaRecebido        = errors.New("Pedido de compra já foi recebido ou cancelado")
	ErrParcelaNaoEncontrada    = errors.New("Parcela não encontrada")
	ErrParcelaPaga             = errors.New("Parcela já está quitada")
	ErrValorAcimaDaParcela     = errors.New("Valor maior que o saldo da parcela")
	ErrMetodoNaoEncontrado     = errors.New("Forma de pagamento não encontrada")
	ErrTermoNaoEncontrado      = errors.New("Termo de garantia não encontrado")
	ErrEstoqueInsuficiente     = errors.New("Estoque insuficiente")
	ErrVendaEmProcessamento    = errors.New("Esta venda já está sendo salva em outra requisição")
	ErrVendaNaoEditavel        = errors.New("Apenas vendas salvas podem ser editadas")
	ErrRascunhoEmEdicao        = errors.New("Esta venda já está aberta para edição")
	ErrVencimentoInvalido      = errors.New("Data do primeiro vencimento inválida")
)

// notFound maps gorm's not-found to a domain sentinel and wraps anything else.
func notFound(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", sentinel.Error(), err)
}
