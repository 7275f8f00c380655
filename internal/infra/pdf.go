package infra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"istorepro/internal/model"
	"istorepro/internal/payment"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReceiptData is what a sale receipt prints.
type ReceiptData struct {
	Loja          string
	Venda         *model.Venda
	TermoGarantia string // full warranty text; empty prints only the term name
}

// GenerateReceiptPDF renders the receipt of a saved sale on 80mm roll paper
// and writes it to storagePath/recibo_{venda}.pdf.
func GenerateReceiptPDF(data ReceiptData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	v := data.Venda
	filePath := filepath.Join(storagePath, fmt.Sprintf("recibo_%s.pdf", v.ID))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: 297},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	w := pageW - 8
	line := func() {
		pdf.Ln(1)
		pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
		pdf.Ln(1.5)
	}
	row := func(label, value string, style string) {
		pdf.SetFont("Helvetica", style, 7)
		pdf.CellFormat(w*0.62, 4, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(w*0.38, 4, tr(value), "", 1, "R", false, 0, "")
	}

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(w, 6, tr(data.Loja), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(w, 4, tr("Recibo de Venda"), "", 1, "C", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(w, 4, tr("Venda Nº "+v.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(w, 4, v.UpdatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(w, 4, tr("Cliente: "+v.ClienteNome), "", 1, "L", false, 0, "")
	pdf.CellFormat(w, 4, tr("Vendedor: "+v.VendedorNome), "", 1, "L", false, 0, "")
	if v.Status == "Editada" {
		pdf.CellFormat(w, 4, tr("Venda editada"), "", 1, "L", false, 0, "")
	}
	line()

	// ── Items ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(w*0.52, 4, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(w*0.12, 4, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(w*0.36, 4, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	for _, it := range v.Itens {
		nome := it.Nome
		if r := []rune(nome); len(r) > 28 {
			nome = string(r[:27]) + "..."
		}
		pdf.CellFormat(w*0.52, 4, tr(nome), "", 0, "L", false, 0, "")
		pdf.CellFormat(w*0.12, 4, fmt.Sprintf("%d", it.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(w*0.36, 4, brl(it.Total), "", 1, "R", false, 0, "")
	}
	line()

	// ── Totals ───────────────────────────────────────────────────────────────
	row("Subtotal", brl(v.Subtotal), "")
	if v.Desconto.IsPositive() {
		row("Desconto", "-"+brl(v.Desconto), "")
	}
	row("TOTAL", brl(v.Total), "B")
	line()

	// ── Payments ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(w, 4, "Pagamentos", "", 1, "L", false, 0, "")
	var pago decimal.Decimal
	for _, pg := range v.Pagamentos {
		pago = pago.Add(pg.Valor)
		label := pg.Metodo
		if pg.Variacao != nil && *pg.Variacao != "" {
			label += " (" + *pg.Variacao + ")"
		}
		det := decodeDetalhes(pg)
		if det.Card != nil && det.Card.Installments > 1 {
			label += fmt.Sprintf(" %dx %s", det.Card.Installments, brl(det.Card.InstallmentValue))
		}
		if det.TradeIn != nil && det.TradeIn.ProductName != "" {
			label += ": " + det.TradeIn.ProductName
		}
		row(label, brl(pg.Valor), "")
		if det.Credit != nil {
			for _, inst := range det.Credit.Schedule {
				row(fmt.Sprintf("   Parcela %d - %s", inst.Number, inst.DueDate.Format("02/01/2006")), brl(inst.Amount), "")
			}
		}
	}
	if troco := pago.Sub(v.Total); troco.GreaterThan(decimal.NewFromFloat(0.01)) {
		row("Troco", brl(troco), "")
	}
	line()

	// ── Warranty ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(w, 4, tr("Garantia: "+v.TermoGarantia), "", 1, "L", false, 0, "")
	if data.TermoGarantia != "" {
		pdf.SetFont("Helvetica", "", 6)
		pdf.MultiCell(w, 3, tr(data.TermoGarantia), "", "J", false)
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(w, 4, tr("Obrigado pela preferência!"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func decodeDetalhes(pg model.Pagamento) payment.Payment {
	var p payment.Payment
	if len(pg.Detalhes) > 0 {
		_ = json.Unmarshal(pg.Detalhes, &p)
	}
	return p
}

func brl(d decimal.Decimal) string { return "R$ " + d.StringFixed(2) }
