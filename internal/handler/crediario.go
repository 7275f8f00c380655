package handler

import (
	"net/http"

	"istorepro/internal/dto"
	"istorepro/internal/middleware"
	"istorepro/internal/service"

	"github.com/gin-gonic/gin"
)

type CrediarioHandler struct{ svc service.CrediarioService }

func NewCrediarioHandler(svc service.CrediarioService) *CrediarioHandler {
	return &CrediarioHandler{svc: svc}
}

// Listar godoc
// @Summary Parcelas de crediário
// @Tags crediario
// @Produce json
// @Param cliente_id query string false "Cliente"
// @Param status query string false "aberta | paga"
// @Param vencidas query bool false "Somente vencidas"
// @Success 200 {object} dto.ListResponse[dto.ParcelaResponse]
// @Router /v1/crediario/parcelas [get]
func (h *CrediarioHandler) Listar(c *gin.Context) {
	var filter dto.ParcelaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagar godoc
// @Summary Registra pagamento (total ou parcial) de uma parcela
// @Tags crediario
// @Accept json
// @Produce json
// @Param id path string true "ID da parcela"
// @Param body body dto.PagarParcelaRequest true "Valor pago"
// @Success 200 {object} dto.ParcelaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/crediario/parcelas/{id}/pagamentos [post]
func (h *CrediarioHandler) Pagar(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.PagarParcelaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pagar(c.Request.Context(), id, req, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
