package infra

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"istorepro/internal/finance"
	"istorepro/internal/model"
	"istorepro/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVenda(t *testing.T) *model.Venda {
	t.Helper()
	credit, err := json.Marshal(payment.Payment{
		Method: payment.StoreCredit,
		Value:  decimal.NewFromInt(600),
		Credit: &payment.CreditPlan{
			Installments: 2,
			Frequency:    finance.Monthly,
			Schedule: []payment.Installment{
				{Number: 1, DueDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300)},
				{Number: 2, DueDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300)},
			},
		},
	})
	require.NoError(t, err)
	return &model.Venda{
		ID:            "000123",
		ClienteNome:   "João Silva",
		VendedorNome:  "Marina",
		Subtotal:      decimal.NewFromInt(1050),
		Desconto:      decimal.NewFromInt(50),
		Total:         decimal.NewFromInt(1000),
		Status:        "Finalizada",
		TermoGarantia: "Garantia 90 dias",
		UpdatedAt:     time.Date(2024, 1, 10, 15, 4, 0, 0, time.UTC),
		Itens: []model.VendaItem{
			{Nome: "iPhone 13 128GB Meia-noite (seminovo)", Quantidade: 1, Total: decimal.NewFromInt(1000)},
			{Nome: "Película", Quantidade: 1, Total: decimal.NewFromInt(50)},
		},
		Pagamentos: []model.Pagamento{
			{ID: uuid.New(), Metodo: "Dinheiro", Valor: decimal.NewFromInt(400)},
			{ID: uuid.New(), Metodo: "Crediário", Valor: decimal.NewFromInt(600), Detalhes: credit},
		},
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := GenerateReceiptPDF(ReceiptData{
		Loja:          "iStore Pro",
		Venda:         sampleVenda(t),
		TermoGarantia: "O aparelho possui garantia de 90 dias contra defeitos de funcionamento.",
	}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "recibo_000123.pdf"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestGenerateReceiptPDF_CreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "recibos")
	_, err := GenerateReceiptPDF(ReceiptData{Loja: "iStore Pro", Venda: sampleVenda(t)}, dir)
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
