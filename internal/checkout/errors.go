package checkout

import (
	"errors"

	"istorepro/internal/finance"
)

var (
	ErrDraftClosed        = errors.New("Esta venda já foi encerrada")
	ErrNothingStaged      = errors.New("Nenhuma operação aguardando confirmação")
	ErrNoPendingBalance   = errors.New("Não há saldo pendente para esta forma de pagamento")
	ErrCustomerRequired   = errors.New("Selecione um cliente")
	ErrSalespersonMissing = errors.New("Selecione um vendedor")
	ErrEmptyCart          = errors.New("Adicione ao menos um produto")
	ErrWarrantyMissing    = errors.New("Selecione um termo de garantia")
	ErrBalancePending     = errors.New("Ainda há saldo pendente na venda")
	ErrExceedsBalance     = errors.New("Valor excede o saldo pendente")
	ErrInvalidAmount      = errors.New("Valor deve ser maior que zero")
	ErrMethodUnavailable  = errors.New("Forma de pagamento inativa")
	ErrWrongPaymentFlow   = errors.New("Confirmação incompatível com a forma de pagamento selecionada")
	ErrInvalidTarget      = errors.New("Status de destino inválido")
	ErrCannotParkSettled  = errors.New("Uma venda finalizada não pode voltar a ficar pendente")
	ErrTradeInCreation    = errors.New("Falha ao cadastrar o aparelho recebido na troca")
	ErrTradeInIncomplete  = errors.New("Informe o produto da troca ou os dados do novo aparelho")
)

// ValidationError names the sale field that blocked an operation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// CreditDeniedError blocks a crediário plan that does not fit the customer's limit.
type CreditDeniedError struct {
	Check finance.CreditCheck
}

func (e *CreditDeniedError) Error() string { return e.Check.Reason.Message() }

// NoticeCode identifies a non-blocking disclosure.
type NoticeCode string

const (
	NoticeQuantityClamped NoticeCode = "quantity_clamped"
	NoticeReturnedToStock NoticeCode = "returned_to_stock"
	NoticePaymentsCleared NoticeCode = "payments_cleared"
	NoticeTradeInRemoved  NoticeCode = "trade_in_removed"
)

// Notice is a warning surfaced to the operator alongside a successful operation.
type Notice struct {
	Code    NoticeCode `json:"code"`
	Message string     `json:"message"`
}
