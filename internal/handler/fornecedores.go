package handler

import (
	"net/http"

	"istorepro/internal/apierror"
	"istorepro/internal/dto"
	"istorepro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FornecedoresHandler struct{ svc service.FornecedorService }

func NewFornecedoresHandler(svc service.FornecedorService) *FornecedoresHandler {
	return &FornecedoresHandler{svc: svc}
}

func (h *FornecedoresHandler) Criar(c *gin.Context) {
	var req dto.FornecedorRequest
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

func (h *FornecedoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FornecedoresHandler) ObterPorID(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FornecedoresHandler) Atualizar(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.FornecedorRequest
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

func (h *FornecedoresHandler) Desativar(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Pedidos de compra ────────────────────────────────────────────────────────

// CriarPedido godoc
// @Summary Abre um pedido de compra
// @Tags fornecedores
// @Accept json
// @Produce json
// @Param body body dto.PedidoCompraRequest true "Pedido"
// @Success 201 {object} dto.PedidoCompraResponse
// @Router /v1/pedidos-compra [post]
func (h *FornecedoresHandler) CriarPedido(c *gin.Context) {
	var req dto.PedidoCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarPedido(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FornecedoresHandler) ListarPedidos(c *gin.Context) {
	var fornecedorID *uuid.UUID
	if raw := c.Query("fornecedor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fornecedor_id inválido"))
			return
		}
		fornecedorID = &id
	}
	resp, err := h.svc.ListarPedidos(c.Request.Context(), fornecedorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FornecedoresHandler) ObterPedido(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPedido(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReceberPedido godoc
// @Summary Recebe um pedido de compra e dá entrada no estoque
// @Tags fornecedores
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.PedidoCompraResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/pedidos-compra/{id}/receber [post]
func (h *FornecedoresHandler) ReceberPedido(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ReceberPedido(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FornecedoresHandler) CancelarPedido(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CancelarPedido(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
