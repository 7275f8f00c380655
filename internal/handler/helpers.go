package handler

import (
	"errors"
	"net/http"
	"reflect"

	"istorepro/internal/apierror"
	"istorepro/internal/cart"
	"istorepro/internal/checkout"
	"istorepro/internal/finance"
	"istorepro/internal/infra"
	"istorepro/internal/payment"
	"istorepro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// decimal.Decimal validates as a number so min/gt/required tags work on money fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On failure it writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Error mapping ────────────────────────────────────────────────────────────

type errorRule struct {
	target error
	status int
	code   string
}

// errorRules is checked in order; the first errors.Is match wins. The
// sentinel's own message is returned so wrapped causes never leak.
var errorRules = []errorRule{
	{service.ErrRascunhoNaoEncontrado, http.StatusNotFound, "rascunho_nao_encontrado"},
	{service.ErrVendaNaoEncontrada, http.StatusNotFound, "venda_nao_encontrada"},
	{service.ErrProdutoNaoEncontrado, http.StatusNotFound, "produto_nao_encontrado"},
	{service.ErrClienteNaoEncontrado, http.StatusNotFound, "cliente_nao_encontrado"},
	{service.ErrFornecedorNaoEncontrado, http.StatusNotFound, "fornecedor_nao_encontrado"},
	{service.ErrPedidoNaoEncontrado, http.StatusNotFound, "pedido_nao_encontrado"},
	{service.ErrParcelaNaoEncontrada, http.StatusNotFound, "parcela_nao_encontrada"},
	{service.ErrMetodoNaoEncontrado, http.StatusNotFound, "metodo_nao_encontrado"},
	{service.ErrTermoNaoEncontrado, http.StatusNotFound, "termo_nao_encontrado"},
	{cart.ErrItemNotFound, http.StatusNotFound, "item_nao_encontrado"},
	{payment.ErrPaymentNotFound, http.StatusNotFound, "pagamento_nao_encontrado"},
	{infra.ErrCEPNaoEncontrado, http.StatusNotFound, "cep_nao_encontrado"},

	{service.ErrVendaEmProcessamento, http.StatusConflict, "venda_em_processamento"},
	{service.ErrRascunhoEmEdicao, http.StatusConflict, "venda_em_edicao"},
	{service.ErrNumeroExpirado, http.StatusConflict, "numero_expirado"},
	{service.ErrPedidoJaRecebido, http.StatusConflict, "pedido_encerrado"},
	{service.ErrParcelaPaga, http.StatusConflict, "parcela_paga"},
	{service.ErrEstoqueInsuficiente, http.StatusConflict, "estoque_insuficiente"},
	{checkout.ErrDraftClosed, http.StatusConflict, "venda_encerrada"},
	{checkout.ErrCannotParkSettled, http.StatusConflict, "venda_finalizada"},
	{cart.ErrInsufficientStock, http.StatusConflict, "estoque_insuficiente"},
	{cart.ErrDuplicateUnique, http.StatusConflict, "item_duplicado"},

	{checkout.ErrTradeInCreation, http.StatusInternalServerError, "troca_falhou"},
	{infra.ErrCircuitOpen, http.StatusServiceUnavailable, "servico_indisponivel"},
}

// unprocessable are business-rule rejections answered with 422.
var unprocessable = []error{
	service.ErrProdutoInativo, service.ErrSerializadoComEstoque, service.ErrValorAcimaDaParcela,
	service.ErrVendaNaoEditavel, infra.ErrCEPInvalido,
	checkout.ErrNothingStaged, checkout.ErrNoPendingBalance, checkout.ErrCustomerRequired,
	checkout.ErrSalespersonMissing, checkout.ErrEmptyCart, checkout.ErrWarrantyMissing,
	checkout.ErrBalancePending, checkout.ErrExceedsBalance, checkout.ErrInvalidAmount,
	checkout.ErrMethodUnavailable, checkout.ErrWrongPaymentFlow, checkout.ErrInvalidTarget,
	checkout.ErrTradeInIncomplete,
	cart.ErrInvalidQuantity, cart.ErrSerializedQuantity, cart.ErrNegativeValue,
	cart.ErrUnknownPriceType, cart.ErrUnknownDiscountType, cart.ErrPercentAboveHundred,
	payment.ErrMethodNotConfigured, payment.ErrRateNotConfigured,
	finance.ErrInvalidFeeRate, finance.ErrInvalidInstallmentCount, finance.ErrUnknownFrequency,
}

// missingField are the save preconditions that name an unset field.
var missingField = []error{
	checkout.ErrCustomerRequired, checkout.ErrSalespersonMissing,
	checkout.ErrEmptyCart, checkout.ErrWarrantyMissing,
}

func validationCode(verr *checkout.ValidationError) string {
	switch {
	case errors.Is(verr.Err, checkout.ErrBalancePending):
		return "saldo_pendente"
	case errors.Is(verr.Err, service.ErrVencimentoInvalido):
		return "data_invalida"
	}
	for _, target := range missingField {
		if errors.Is(verr.Err, target) {
			return "campo_obrigatorio"
		}
	}
	return "campo_invalido"
}

// respondError writes the status and envelope for err. Unknown errors are
// attached to the context for ErrorHandler to log and answered with a 500.
func respondError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, apierror.WithCode(validationCode(verr), verr.Error()))
		return
	}
	var denied *checkout.CreditDeniedError
	if errors.As(err, &denied) {
		c.JSON(http.StatusUnprocessableEntity, apierror.WithCode("credito_negado", denied.Error()))
		return
	}
	for _, r := range errorRules {
		if errors.Is(err, r.target) {
			if r.status >= http.StatusInternalServerError {
				_ = c.Error(err)
			}
			c.JSON(r.status, apierror.WithCode(r.code, r.target.Error()))
			return
		}
	}
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(target.Error()))
			return
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Registro não encontrado"))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.Internal())
}
