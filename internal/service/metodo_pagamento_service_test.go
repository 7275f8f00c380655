package service_test

import (
	"bytes"
	"context"
	"testing"

	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/payment"
	"istorepro/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetodo_SnapshotOrdenadoPorOrdem(t *testing.T) {
	metodos := defaultMetodos()
	metodos[0], metodos[5] = metodos[5], metodos[0]
	svc := service.NewMetodoPagamentoService(&stubMetodoRepo{metodos: metodos}, &stubTermoRepo{}, nil)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 6)
	assert.Equal(t, "Dinheiro", snap[0].Name)
	assert.Equal(t, "Aparelho na Troca", snap[5].Name)

	pix, ok := snap.Find("Pix")
	require.True(t, ok)
	assert.Equal(t, []string{"CNPJ", "Celular"}, pix.Variations)

	credito, ok := snap.Find("Cartão de Crédito")
	require.True(t, ok)
	require.Len(t, credito.Config.CreditWithInterestRates, 3)
	assert.True(t, credito.Config.CreditWithInterestRates[2].Equal(d("5")))
}

func TestMetodo_CriarAtualizarExcluir(t *testing.T) {
	repo := &stubMetodoRepo{metodos: defaultMetodos()}
	svc := service.NewMetodoPagamentoService(repo, &stubTermoRepo{}, nil)
	ctx := context.Background()

	created, err := svc.Criar(ctx, dto.MetodoPagamentoRequest{
		Nome:  "Transferência",
		Tipo:  "transferencia",
		Ativo: true,
		Ordem: 7,
	})
	require.NoError(t, err)
	assert.Empty(t, created.Variations)

	id := uuid.MustParse(created.ID)
	updated, err := svc.Atualizar(ctx, id, dto.MetodoPagamentoRequest{
		Nome:   "Transferência",
		Tipo:   "transferencia",
		Ordem:  7,
		Config: payment.RateConfig{DebitRate: decimal.Zero},
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	require.NoError(t, svc.Excluir(ctx, id))
	assert.ErrorIs(t, svc.Excluir(ctx, id), service.ErrMetodoNaoEncontrado)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	_, ok := snap.Find("Transferência")
	assert.False(t, ok)
}

func TestMetodo_TermosDeGarantia(t *testing.T) {
	termos := &stubTermoRepo{termos: []model.TermoGarantia{
		{ID: uuid.New(), Nome: "Garantia 90 dias", Conteudo: "Cobre defeitos de fabricação.", Ativo: true},
		{ID: uuid.New(), Nome: "Sem garantia", Conteudo: "Produto vendido no estado.", Ativo: false},
	}}
	svc := service.NewMetodoPagamentoService(&stubMetodoRepo{}, termos, nil)
	ctx := context.Background()

	ativos, err := svc.ListarTermos(ctx, true)
	require.NoError(t, err)
	require.Len(t, ativos, 1)
	assert.Equal(t, "Garantia 90 dias", ativos[0].Nome)

	novo, err := svc.CriarTermo(ctx, dto.TermoGarantiaRequest{Nome: "Garantia 1 ano", Conteudo: "Aparelhos novos.", Ativo: true})
	require.NoError(t, err)

	_, err = svc.AtualizarTermo(ctx, uuid.MustParse(novo.ID), dto.TermoGarantiaRequest{Nome: "Garantia 12 meses", Conteudo: "Aparelhos novos.", Ativo: true})
	require.NoError(t, err)
	todos, err := svc.ListarTermos(ctx, false)
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	_, err = svc.AtualizarTermo(ctx, uuid.New(), dto.TermoGarantiaRequest{Nome: "x", Conteudo: "y"})
	assert.ErrorIs(t, err, service.ErrTermoNaoEncontrado)
}

func TestMetodo_ConfigCorrompidaGeraAviso(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	cartao := metodo("Cartão de Crédito", "cartao", 1, nil)
	cartao.Config = []byte(`{"debit_rate": "abc"`)
	svc := service.NewMetodoPagamentoService(&stubMetodoRepo{metodos: []model.MetodoPagamento{cartao}}, &stubTermoRepo{}, nil)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Empty(t, snap[0].Config.CreditWithInterestRates)

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), cartao.ID.String())
}
