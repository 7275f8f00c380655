package handler

import (
	"net/http"

	"istorepro/internal/dto"
	"istorepro/internal/service"

	"github.com/gin-gonic/gin"
)

// ConfiguracoesHandler serves payment methods and warranty terms.
type ConfiguracoesHandler struct {
	svc service.MetodoPagamentoService
}

func NewConfiguracoesHandler(svc service.MetodoPagamentoService) *ConfiguracoesHandler {
	return &ConfiguracoesHandler{svc: svc}
}

// ListarMetodos godoc
// @Summary Formas de pagamento com taxas e variações
// @Tags configuracoes
// @Produce json
// @Success 200 {array} payment.MethodConfig
// @Router /v1/metodos-pagamento [get]
func (h *ConfiguracoesHandler) ListarMetodos(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracoesHandler) CriarMetodo(c *gin.Context) {
	var req dto.MetodoPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConfiguracoesHandler) AtualizarMetodo(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.MetodoPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracoesHandler) ExcluirMetodo(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarTermos godoc
// @Summary Termos de garantia
// @Tags configuracoes
// @Produce json
// @Param todos query bool false "Inclui termos inativos"
// @Success 200 {array} dto.TermoGarantiaResponse
// @Router /v1/termos-garantia [get]
func (h *ConfiguracoesHandler) ListarTermos(c *gin.Context) {
	resp, err := h.svc.ListarTermos(c.Request.Context(), c.Query("todos") != "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracoesHandler) CriarTermo(c *gin.Context) {
	var req dto.TermoGarantiaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarTermo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConfiguracoesHandler) AtualizarTermo(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.TermoGarantiaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarTermo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
