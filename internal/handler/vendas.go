package handler

import (
	"context"
	"net/http"
	"os"

	"istorepro/internal/apierror"
	"istorepro/internal/dto"
	"istorepro/internal/middleware"
	"istorepro/internal/model"
	"istorepro/internal/repository"
	"istorepro/internal/service"

	"github.com/gin-gonic/gin"
)

// VendasHandler exposes the sale draft session and saved sales.
type VendasHandler struct {
	svc     service.VendaService
	recibos repository.ReciboRepository
}

func NewVendasHandler(svc service.VendaService, recibos repository.ReciboRepository) *VendasHandler {
	return &VendasHandler{svc: svc, recibos: recibos}
}

// draftCall binds T from the body and applies fn to the draft in :id.
func draftCall[T any](c *gin.Context, fn func(context.Context, string, T) (*dto.RascunhoResponse, error)) {
	var req T
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := fn(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func respond[T any](c *gin.Context, resp T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Draft lifecycle ──────────────────────────────────────────────────────────

// Iniciar godoc
// @Summary      Inicia uma venda
// @Description  Reserva o próximo número de venda e abre um rascunho com o usuário como vendedor.
// @Tags         vendas
// @Produce      json
// @Param        X-User-ID   header string true  "Usuário"
// @Param        X-User-Name header string false "Nome do usuário"
// @Success      201 {object} dto.RascunhoResponse
// @Router       /v1/vendas/rascunhos [post]
func (h *VendasHandler) Iniciar(c *gin.Context) {
	resp, err := h.svc.Iniciar(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AbrirEdicao godoc
// @Summary      Abre uma venda salva para edição
// @Tags         vendas
// @Produce      json
// @Param        id path string true "Número da venda"
// @Success      200 {object} dto.RascunhoResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/vendas/{id}/edicao [post]
func (h *VendasHandler) AbrirEdicao(c *gin.Context) {
	resp, err := h.svc.AbrirEdicao(c.Request.Context(), c.Param("id"))
	respond(c, resp, err)
}

func (h *VendasHandler) Obter(c *gin.Context) {
	resp, err := h.svc.Obter(c.Request.Context(), c.Param("id"))
	respond(c, resp, err)
}

// Cancelar godoc
// @Summary      Descarta o rascunho e libera o número reservado
// @Tags         vendas
// @Param        id path string true "Número da venda"
// @Success      204
// @Router       /v1/vendas/rascunhos/{id} [delete]
func (h *VendasHandler) Cancelar(c *gin.Context) {
	if err := h.svc.Cancelar(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Header ───────────────────────────────────────────────────────────────────

func (h *VendasHandler) DefinirCliente(c *gin.Context)  { draftCall(c, h.svc.DefinirCliente) }
func (h *VendasHandler) DefinirVendedor(c *gin.Context) { draftCall(c, h.svc.DefinirVendedor) }
func (h *VendasHandler) DefinirGarantia(c *gin.Context) { draftCall(c, h.svc.DefinirGarantia) }
func (h *VendasHandler) DefinirObservacoes(c *gin.Context) {
	draftCall(c, h.svc.DefinirObservacoes)
}
func (h *VendasHandler) DefinirDesconto(c *gin.Context) { draftCall(c, h.svc.DefinirDesconto) }

// ── Items ────────────────────────────────────────────────────────────────────

// SolicitarItem godoc
// @Summary      Seleciona um produto para adicionar
// @Description  O produto fica aguardando confirmação de quantidade e tipo de preço.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "Número da venda"
// @Param        body body dto.SolicitarItemRequest true "Produto"
// @Success      200 {object} dto.RascunhoResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/vendas/rascunhos/{id}/solicitacao-item [post]
func (h *VendasHandler) SolicitarItem(c *gin.Context) { draftCall(c, h.svc.SolicitarItem) }
func (h *VendasHandler) ConfirmarItem(c *gin.Context) { draftCall(c, h.svc.ConfirmarItem) }

func (h *VendasHandler) DescartarItem(c *gin.Context) {
	resp, err := h.svc.DescartarItem(c.Request.Context(), c.Param("id"))
	respond(c, resp, err)
}

func (h *VendasHandler) AtualizarItem(c *gin.Context) {
	var req dto.AtualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarItem(c.Request.Context(), c.Param("id"), c.Param("produtoId"), req)
	respond(c, resp, err)
}

func (h *VendasHandler) RemoverItem(c *gin.Context) {
	resp, err := h.svc.RemoverItem(c.Request.Context(), c.Param("id"), c.Param("produtoId"))
	respond(c, resp, err)
}

// ── Payments ─────────────────────────────────────────────────────────────────

// SolicitarPagamento godoc
// @Summary      Seleciona a forma de pagamento
// @Description  Devolve o fluxo de confirmação (valor, cartão, crediário ou troca) e o valor sugerido.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string                        true "Número da venda"
// @Param        body body dto.SolicitarPagamentoRequest true "Forma de pagamento"
// @Success      200 {object} dto.PagamentoSolicitadoResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/vendas/rascunhos/{id}/solicitacao-pagamento [post]
func (h *VendasHandler) SolicitarPagamento(c *gin.Context) {
	var req dto.SolicitarPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SolicitarPagamento(c.Request.Context(), c.Param("id"), req)
	respond(c, resp, err)
}

func (h *VendasHandler) DescartarPagamento(c *gin.Context) {
	resp, err := h.svc.DescartarPagamento(c.Request.Context(), c.Param("id"))
	respond(c, resp, err)
}

func (h *VendasHandler) ConfirmarValor(c *gin.Context) { draftCall(c, h.svc.ConfirmarValor) }

// CotarCartao godoc
// @Summary      Simula a cobrança no cartão
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string            true "Número da venda"
// @Param        body body dto.CartaoRequest true "Cobrança"
// @Success      200 {object} checkout.CardQuote
// @Router       /v1/vendas/rascunhos/{id}/pagamentos/cartao/cotacao [post]
func (h *VendasHandler) CotarCartao(c *gin.Context) {
	var req dto.CartaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CotarCartao(c.Request.Context(), c.Param("id"), req)
	respond(c, resp, err)
}

func (h *VendasHandler) ConfirmarCartao(c *gin.Context) { draftCall(c, h.svc.ConfirmarCartao) }

// CotarCrediario godoc
// @Summary      Simula o plano de crediário
// @Description  Devolve parcelas, vencimentos, amortização e a checagem de limite do cliente.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string               true "Número da venda"
// @Param        body body dto.CrediarioRequest true "Plano"
// @Success      200 {object} checkout.CreditQuote
// @Router       /v1/vendas/rascunhos/{id}/pagamentos/crediario/cotacao [post]
func (h *VendasHandler) CotarCrediario(c *gin.Context) {
	var req dto.CrediarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CotarCrediario(c.Request.Context(), c.Param("id"), req)
	respond(c, resp, err)
}

func (h *VendasHandler) ConfirmarCrediario(c *gin.Context) { draftCall(c, h.svc.ConfirmarCrediario) }
func (h *VendasHandler) AdicionarTroca(c *gin.Context)     { draftCall(c, h.svc.AdicionarTroca) }

func (h *VendasHandler) RemoverPagamento(c *gin.Context) {
	resp, err := h.svc.RemoverPagamento(c.Request.Context(), c.Param("id"), c.Param("pagamentoId"))
	respond(c, resp, err)
}

func (h *VendasHandler) AtualizarLimiteCredito(c *gin.Context) {
	draftCall(c, h.svc.AtualizarLimiteCredito)
}

// ── Save ─────────────────────────────────────────────────────────────────────

// Salvar godoc
// @Summary      Salva a venda
// @Description  Finalizada exige saldo zero; Pendente estaciona a venda. Editar uma venda finalizada resulta em Editada.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string                  true "Número da venda"
// @Param        body body dto.SalvarVendaRequest true "Status de destino"
// @Success      200 {object} dto.VendaResponse
// @Failure      409 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/vendas/rascunhos/{id}/salvar [post]
func (h *VendasHandler) Salvar(c *gin.Context) {
	var req dto.SalvarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Salvar(c.Request.Context(), c.Param("id"), req, middleware.GetActor(c))
	respond(c, resp, err)
}

// ── Saved sales ──────────────────────────────────────────────────────────────

// Listar godoc
// @Summary      Lista vendas salvas
// @Tags         vendas
// @Produce      json
// @Param        status     query string false "Pendente | Finalizada | Editada"
// @Param        cliente_id query string false "Cliente"
// @Param        data       query string false "AAAA-MM-DD"
// @Success      200 {object} dto.ListResponse[dto.VendaResponse]
// @Router       /v1/vendas [get]
func (h *VendasHandler) Listar(c *gin.Context) {
	var filter dto.VendaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarVendas(c.Request.Context(), filter)
	respond(c, resp, err)
}

func (h *VendasHandler) ObterVenda(c *gin.Context) {
	resp, err := h.svc.ObterVenda(c.Request.Context(), c.Param("id"))
	respond(c, resp, err)
}

// BaixarRecibo godoc
// @Summary      Baixa o recibo em PDF
// @Tags         vendas
// @Produce      application/pdf
// @Param        id path string true "Número da venda"
// @Success      200
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/vendas/{id}/recibo [get]
func (h *VendasHandler) BaixarRecibo(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.recibos.FindByVendaID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Recibo não encontrado"))
		return
	}
	if rec.Estado != model.ReciboGerado || rec.PDFPath == nil {
		c.JSON(http.StatusConflict, apierror.WithCode("recibo_pendente", "O recibo ainda está sendo gerado"))
		return
	}
	if _, err := os.Stat(*rec.PDFPath); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusGone, apierror.New("Arquivo do recibo não está mais disponível"))
		return
	}
	c.FileAttachment(*rec.PDFPath, "recibo-"+id+".pdf")
}
