package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"istorepro/internal/checkout"
	"istorepro/internal/dto"
	"istorepro/internal/middleware"
	"istorepro/internal/model"
	"istorepro/internal/repository"
	"istorepro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubVendaService implements only the calls these tests reach; anything
// else panics on the nil embedded interface.
type stubVendaService struct {
	service.VendaService

	actor   checkout.Actor
	salvar  dto.SalvarVendaRequest
	valor   dto.ValorRequest
	saveErr error
}

func (s *stubVendaService) Iniciar(_ context.Context, vendedor checkout.Actor) (*dto.RascunhoResponse, error) {
	s.actor = vendedor
	return &dto.RascunhoResponse{Rascunho: checkout.Snapshot{ID: "000007", SalespersonID: vendedor.ID}}, nil
}

func (s *stubVendaService) ConfirmarValor(_ context.Context, id string, req dto.ValorRequest) (*dto.RascunhoResponse, error) {
	s.valor = req
	return &dto.RascunhoResponse{Rascunho: checkout.Snapshot{ID: id}}, nil
}

func (s *stubVendaService) Salvar(_ context.Context, id string, req dto.SalvarVendaRequest, actor checkout.Actor) (*dto.VendaResponse, error) {
	s.salvar = req
	s.actor = actor
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return &dto.VendaResponse{ID: id, Status: req.Status}, nil
}

type stubReciboRepo struct {
	recibos map[string]*model.Recibo
}

func (r *stubReciboRepo) Upsert(_ context.Context, rec *model.Recibo) error {
	r.recibos[rec.VendaID] = rec
	return nil
}

func (r *stubReciboRepo) FindByVendaID(_ context.Context, vendaID string) (*model.Recibo, error) {
	rec, ok := r.recibos[vendaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubReciboRepo) Update(_ context.Context, rec *model.Recibo) error {
	r.recibos[rec.VendaID] = rec
	return nil
}

func (r *stubReciboRepo) ListPendingRetries(context.Context, time.Time, int) ([]model.Recibo, error) {
	return nil, nil
}

var _ repository.ReciboRepository = (*stubReciboRepo)(nil)

func newVendasEngine(svc service.VendaService, recibos repository.ReciboRepository) *gin.Engine {
	h := NewVendasHandler(svc, recibos)
	r := gin.New()
	v1 := r.Group("/v1", middleware.Actor())
	v1.POST("/vendas/rascunhos", h.Iniciar)
	v1.POST("/vendas/rascunhos/:id/pagamentos/valor", h.ConfirmarValor)
	v1.POST("/vendas/rascunhos/:id/salvar", h.Salvar)
	v1.GET("/vendas/:id/recibo", h.BaixarRecibo)
	return r
}

func doJSON(r http.Handler, method, path string, body any, user string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(middleware.UserIDHeader, user)
		req.Header.Set(middleware.UserNameHeader, "Ana Lima")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIniciar_UsesActorAsSalesperson(t *testing.T) {
	svc := &stubVendaService{}
	w := doJSON(newVendasEngine(svc, nil), http.MethodPost, "/v1/vendas/rascunhos", nil, "u-1")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, checkout.Actor{ID: "u-1", Name: "Ana Lima"}, svc.actor)

	var resp dto.RascunhoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "000007", resp.Rascunho.ID)
}

func TestIniciar_WithoutUserIsRejected(t *testing.T) {
	w := doJSON(newVendasEngine(&stubVendaService{}, nil), http.MethodPost, "/v1/vendas/rascunhos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConfirmarValor_Validation(t *testing.T) {
	svc := &stubVendaService{}
	r := newVendasEngine(svc, nil)

	w := doJSON(r, http.MethodPost, "/v1/vendas/rascunhos/000007/pagamentos/valor", map[string]any{"valor": 0}, "u-1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/vendas/rascunhos/000007/pagamentos/valor", bytes.NewBufferString("{"))
	req.Header.Set(middleware.UserIDHeader, "u-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/v1/vendas/rascunhos/000007/pagamentos/valor", map[string]any{"valor": "150.50"}, "u-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.valor.Valor.Equal(decimal.RequireFromString("150.50")))
}

func TestSalvar(t *testing.T) {
	t.Run("status invalido", func(t *testing.T) {
		w := doJSON(newVendasEngine(&stubVendaService{}, nil), http.MethodPost,
			"/v1/vendas/rascunhos/000007/salvar", map[string]any{"status": "Editada"}, "u-1")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("finalizada", func(t *testing.T) {
		svc := &stubVendaService{}
		w := doJSON(newVendasEngine(svc, nil), http.MethodPost,
			"/v1/vendas/rascunhos/000007/salvar", map[string]any{"status": "Finalizada"}, "u-2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-2", svc.actor.ID)

		var resp dto.VendaResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Finalizada", resp.Status)
	})

	t.Run("saldo pendente", func(t *testing.T) {
		svc := &stubVendaService{saveErr: checkout.ErrBalancePending}
		w := doJSON(newVendasEngine(svc, nil), http.MethodPost,
			"/v1/vendas/rascunhos/000007/salvar", map[string]any{"status": "Finalizada"}, "u-1")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBaixarRecibo(t *testing.T) {
	dir := t.TempDir()
	gerado := filepath.Join(dir, "000001.pdf")
	require.NoError(t, os.WriteFile(gerado, []byte("%PDF-1.3"), 0o644))
	sumido := filepath.Join(dir, "000003.pdf")

	repo := &stubReciboRepo{recibos: map[string]*model.Recibo{
		"000001": {VendaID: "000001", Estado: model.ReciboGerado, PDFPath: &gerado},
		"000002": {VendaID: "000002", Estado: model.ReciboPendente},
		"000003": {VendaID: "000003", Estado: model.ReciboGerado, PDFPath: &sumido},
	}}
	r := newVendasEngine(&stubVendaService{}, repo)

	cases := map[string]int{
		"000001": http.StatusOK,
		"000002": http.StatusConflict,
		"000003": http.StatusGone,
		"000099": http.StatusNotFound,
	}
	for id, status := range cases {
		w := doJSON(r, http.MethodGet, "/v1/vendas/"+id+"/recibo", nil, "")
		assert.Equal(t, status, w.Code, id)
	}

	w := doJSON(r, http.MethodGet, "/v1/vendas/000001/recibo", nil, "")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "recibo-000001.pdf")
}
