package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"istorepro/internal/cart"
	"istorepro/internal/checkout"
	"istorepro/internal/model"
	"istorepro/internal/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// ── Produto ↔ cart ───────────────────────────────────────────────────────────

func produtoToCart(p *model.Produto) cart.Product {
	return cart.Product{
		ID:                  p.ID.String(),
		Name:                p.Nome,
		Stock:               p.Estoque,
		Price:               p.PrecoVenda,
		CostPrice:           p.PrecoCusto,
		AdditionalCostPrice: p.CustoAdicional,
		WholesalePrice:      p.PrecoAtacado,
		SerialNumber:        derefStr(p.NumeroSerie),
		IMEI1:               derefStr(p.IMEI1),
		IMEI2:               derefStr(p.IMEI2),
	}
}

func novoProdutoFromTroca(np payment.NewProduct) *model.Produto {
	p := &model.Produto{
		ID:            uuid.New(),
		Nome:          np.Name,
		Marca:         np.Brand,
		Modelo:        np.Model,
		Cor:           optStr(np.Color),
		Armazenamento: optStr(np.Storage),
		Condicao:      np.Condition,
		NumeroSerie:   optStr(np.SerialNumber),
		IMEI1:         optStr(np.IMEI1),
		IMEI2:         optStr(np.IMEI2),
		PrecoCusto:    np.CostPrice,
		PrecoVenda:    np.Price,
		Estoque:       0,
		EstoqueMinimo: 0,
		Ativo:         true,
	}
	if p.Marca == "" {
		p.Marca = "Apple"
	}
	if p.Condicao == "" {
		p.Condicao = "usado"
	}
	if np.BatteryHealth > 0 {
		bh := np.BatteryHealth
		p.SaudeBateria = &bh
	}
	return p
}

func clienteToCustomer(c *model.Cliente) *checkout.Customer {
	return &checkout.Customer{
		ID:          c.ID.String(),
		Name:        c.Nome,
		AllowCredit: c.PermiteCrediario,
		CreditLimit: c.LimiteCredito,
		CreditUsed:  c.CreditoUsado,
	}
}

// ── Sale ↔ Venda ─────────────────────────────────────────────────────────────

func saleToVenda(s *checkout.Sale) (*model.Venda, error) {
	clienteID, err := uuid.Parse(s.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("cliente inválido: %w", err)
	}
	v := &model.Venda{
		ID:                  s.ID,
		ClienteID:           clienteID,
		ClienteNome:         s.CustomerName,
		VendedorID:          s.SalespersonID,
		VendedorNome:        s.SalespersonName,
		Subtotal:            s.Subtotal,
		Desconto:            s.Discount,
		TipoDescontoGlobal:  string(s.GlobalDiscountType),
		ValorDescontoGlobal: s.GlobalDiscountValue,
		Total:               s.Total,
		Status:              string(s.Status),
		TermoGarantia:       s.WarrantyTerm,
		Observacoes:         optStr(s.Observations),
		ObservacoesInternas: optStr(s.InternalObservations),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	for _, it := range s.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("produto inválido %q: %w", it.ProductID, err)
		}
		v.Itens = append(v.Itens, model.VendaItem{
			ID:            uuid.New(),
			VendaID:       s.ID,
			ProdutoID:     pid,
			Nome:          it.Name,
			Serializado:   it.Serialized,
			Quantidade:    it.Quantity,
			PrecoUnitario: it.SalePrice,
			TipoPreco:     string(it.PriceType),
			TipoDesconto:  string(it.DiscountType),
			ValorDesconto: it.DiscountValue,
			Total:         it.Total(),
		})
	}
	for i, p := range s.Payments {
		pg, err := paymentToPagamento(s.ID, p)
		if err != nil {
			return nil, err
		}
		// keeps ledger order on reload
		pg.CreatedAt = s.UpdatedAt.Add(time.Duration(i) * time.Microsecond)
		v.Pagamentos = append(v.Pagamentos, pg)
	}
	return v, nil
}

func paymentToPagamento(vendaID string, p payment.Payment) (model.Pagamento, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		id = uuid.New()
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return model.Pagamento{}, fmt.Errorf("serializar pagamento: %w", err)
	}
	return model.Pagamento{
		ID:       id,
		VendaID:  vendaID,
		Metodo:   string(p.Method),
		Variacao: optStr(p.Variation),
		Valor:    p.Value,
		Detalhes: datatypes.JSON(raw),
	}, nil
}

// pagamentoToPayment restores the ledger entry. Detalhes carries the full
// payment; the columns win when they disagree.
func pagamentoToPayment(pg model.Pagamento) payment.Payment {
	var p payment.Payment
	if len(pg.Detalhes) > 0 {
		_ = json.Unmarshal(pg.Detalhes, &p)
	}
	p.ID = pg.ID.String()
	p.Method = payment.Method(pg.Metodo)
	p.Variation = derefStr(pg.Variacao)
	p.Value = pg.Valor
	return p
}

// vendaToSale rebuilds the aggregate. stock maps product id to what can be
// sold right now; for an edit that is the current stock plus the quantity
// this sale already took.
func vendaToSale(v *model.Venda, stock map[uuid.UUID]int) *checkout.Sale {
	s := &checkout.Sale{
		ID:                   v.ID,
		CustomerID:           v.ClienteID.String(),
		CustomerName:         v.ClienteNome,
		SalespersonID:        v.VendedorID,
		SalespersonName:      v.VendedorNome,
		Subtotal:             v.Subtotal,
		Discount:             v.Desconto,
		GlobalDiscountType:   cart.DiscountType(v.TipoDescontoGlobal),
		GlobalDiscountValue:  v.ValorDescontoGlobal,
		Total:                v.Total,
		Status:               checkout.Status(v.Status),
		WarrantyTerm:         v.TermoGarantia,
		Observations:         derefStr(v.Observacoes),
		InternalObservations: derefStr(v.ObservacoesInternas),
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
	if s.GlobalDiscountType == "" {
		s.GlobalDiscountType = cart.DiscountCurrency
	}
	for _, it := range v.Itens {
		st, ok := stock[it.ProdutoID]
		if !ok {
			st = it.Quantidade
		}
		s.Items = append(s.Items, cart.Item{
			ProductID:     it.ProdutoID.String(),
			Name:          it.Nome,
			Serialized:    it.Serializado,
			Stock:         st,
			Quantity:      it.Quantidade,
			SalePrice:     it.PrecoUnitario,
			PriceType:     cart.PriceType(it.TipoPreco),
			DiscountType:  cart.DiscountType(it.TipoDesconto),
			DiscountValue: it.ValorDesconto,
		})
	}
	for _, pg := range v.Pagamentos {
		s.Payments = append(s.Payments, pagamentoToPayment(pg))
	}
	return s
}

// quantidades sums sold units per product for a settled sale; parked sales
// hold no stock.
func quantidades(v *model.Venda) map[uuid.UUID]int {
	out := map[uuid.UUID]int{}
	if v == nil || !checkout.Status(v.Status).Settled() {
		return out
	}
	for _, it := range v.Itens {
		out[it.ProdutoID] += it.Quantidade
	}
	return out
}

// ── Method config ────────────────────────────────────────────────────────────

func metodoToConfig(m model.MetodoPagamento) payment.MethodConfig {
	cfg := payment.MethodConfig{
		ID:     m.ID.String(),
		Name:   m.Nome,
		Type:   m.Tipo,
		Active: m.Ativo,
	}
	if len(m.Config) > 0 {
		if err := json.Unmarshal(m.Config, &cfg.Config); err != nil {
			log.Warn().Err(err).Str("method_id", cfg.ID).Str("method", m.Nome).Msg("payment method rate config unreadable")
		}
	}
	if len(m.Variacoes) > 0 {
		if err := json.Unmarshal(m.Variacoes, &cfg.Variations); err != nil {
			log.Warn().Err(err).Str("method_id", cfg.ID).Str("method", m.Nome).Msg("payment method variations unreadable")
		}
	}
	return cfg
}

func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
