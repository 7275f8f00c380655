package service_test

import (
	"context"
	"testing"
	"time"

	"istorepro/internal/checkout"
	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCrediario(t *testing.T) (service.CrediarioService, *stubCrediarioRepo, *stubClienteRepo, *model.ParcelaCrediario) {
	t.Helper()
	repo := newStubCrediarioRepo()
	clientes := newStubClienteRepo()
	c := clientes.add(model.Cliente{Nome: "Marina", PermiteCrediario: true, LimiteCredito: d("3000"), CreditoUsado: d("1000")})
	p := model.ParcelaCrediario{
		ID:         uuid.New(),
		VendaID:    "000010",
		ClienteID:  c.ID,
		Numero:     1,
		Vencimento: time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC),
		Valor:      d("500"),
		ValorPago:  d("0"),
		Status:     model.ParcelaAberta,
	}
	require.NoError(t, repo.CreateParcelasTx(nil, []model.ParcelaCrediario{p}))
	return service.NewCrediarioService(repo, clientes, &stubAuditoriaRepo{}), repo, clientes, &p
}

func TestCrediario_PagarParcial(t *testing.T) {
	svc, _, clientes, p := setupCrediario(t)

	resp, err := svc.Pagar(context.Background(), p.ID, dto.PagarParcelaRequest{Valor: d("200")}, checkout.Actor{ID: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, model.ParcelaAberta, resp.Status)
	assert.True(t, resp.Restante.Equal(d("300")))
	assert.True(t, clientes.get(p.ClienteID).CreditoUsado.Equal(d("800")))
}

func TestCrediario_PagarQuitaParcela(t *testing.T) {
	svc, _, _, p := setupCrediario(t)
	ctx := context.Background()

	_, err := svc.Pagar(ctx, p.ID, dto.PagarParcelaRequest{Valor: d("500")}, checkout.Actor{})
	require.NoError(t, err)

	_, err = svc.Pagar(ctx, p.ID, dto.PagarParcelaRequest{Valor: d("1")}, checkout.Actor{})
	assert.ErrorIs(t, err, service.ErrParcelaPaga)
}

func TestCrediario_PagarAcimaDoRestante(t *testing.T) {
	svc, repo, _, p := setupCrediario(t)

	_, err := svc.Pagar(context.Background(), p.ID, dto.PagarParcelaRequest{Valor: d("500.01")}, checkout.Actor{})
	assert.ErrorIs(t, err, service.ErrValorAcimaDaParcela)
	assert.True(t, repo.byVenda("000010")[0].ValorPago.IsZero())
}

func TestCrediario_ParcelaInexistente(t *testing.T) {
	svc, _, _, _ := setupCrediario(t)
	_, err := svc.Pagar(context.Background(), uuid.New(), dto.PagarParcelaRequest{Valor: d("10")}, checkout.Actor{})
	assert.ErrorIs(t, err, service.ErrParcelaNaoEncontrada)
}
