// Package cart keeps the line items of a sale being built and derives its
// subtotal, discounts and total. Totals are recomputed on every read.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock   = errors.New("Estoque insuficiente para a quantidade solicitada")
	ErrDuplicateUnique     = errors.New("Este item único já está no carrinho")
	ErrItemNotFound        = errors.New("Item não encontrado no carrinho")
	ErrInvalidQuantity     = errors.New("Quantidade deve ser no mínimo 1")
	ErrSerializedQuantity  = errors.New("Quantidade de item serializado não pode ser alterada")
	ErrNegativeValue       = errors.New("Preço e desconto não podem ser negativos")
	ErrUnknownPriceType    = errors.New("Tipo de preço desconhecido")
	ErrUnknownDiscountType = errors.New("Tipo de desconto desconhecido")
	ErrPercentAboveHundred = errors.New("Desconto percentual não pode passar de 100%")
)

var hundred = decimal.NewFromInt(100)

// PriceType tags which catalog tier sourced the negotiated price.
type PriceType string

const (
	PriceSale      PriceType = "venda"
	PriceCost      PriceType = "custo"
	PriceWholesale PriceType = "atacado"
)

// DiscountType says how a discount value is read.
type DiscountType string

const (
	DiscountCurrency DiscountType = "valor"
	DiscountPercent  DiscountType = "percentual"
)

// Product is the slice of a catalog record the cart reads.
type Product struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Stock               int             `json:"stock"`
	Price               decimal.Decimal `json:"price"`
	CostPrice           decimal.Decimal `json:"cost_price"`
	AdditionalCostPrice decimal.Decimal `json:"additional_cost_price"`
	WholesalePrice      decimal.Decimal `json:"wholesale_price"`
	SerialNumber        string          `json:"serial_number,omitempty"`
	IMEI1               string          `json:"imei1,omitempty"`
	IMEI2               string          `json:"imei2,omitempty"`
}

// Serialized reports whether the product is a unique unit (serial or IMEI).
func (p Product) Serialized() bool {
	return p.SerialNumber != "" || p.IMEI1 != "" || p.IMEI2 != ""
}

// ResolvePrice returns the unit price for the given tier, falling back to the
// catalog price when the tier has no value.
func (p Product) ResolvePrice(pt PriceType) (decimal.Decimal, error) {
	switch pt {
	case PriceSale, "":
		return p.Price, nil
	case PriceCost:
		cost := p.CostPrice.Add(p.AdditionalCostPrice)
		if cost.IsZero() {
			return p.Price, nil
		}
		return cost, nil
	case PriceWholesale:
		if !p.WholesalePrice.IsPositive() {
			return p.Price, nil
		}
		return p.WholesalePrice, nil
	}
	return decimal.Zero, ErrUnknownPriceType
}

// Item is one cart line.
type Item struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Serialized    bool            `json:"serialized"`
	Stock         int             `json:"stock"`
	Quantity      int             `json:"quantity"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PriceType     PriceType       `json:"price_type"`
	DiscountType  DiscountType    `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// Subtotal is SalePrice * Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.SalePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Discount is the currency value of the line discount, capped at the subtotal.
func (i Item) Discount() decimal.Decimal {
	return applyDiscount(i.DiscountType, i.DiscountValue, i.Subtotal())
}

// Total is Subtotal - Discount, never negative.
func (i Item) Total() decimal.Decimal {
	return i.Subtotal().Sub(i.Discount())
}

func applyDiscount(dt DiscountType, value, base decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() || !base.IsPositive() {
		return decimal.Zero
	}
	d := value
	if dt == DiscountPercent {
		d = base.Mul(value).Div(hundred)
	}
	if d.GreaterThan(base) {
		return base
	}
	return d
}

func validDiscount(dt DiscountType, value decimal.Decimal) error {
	switch dt {
	case DiscountCurrency, "":
	case DiscountPercent:
		if value.GreaterThan(hundred) {
			return ErrPercentAboveHundred
		}
	default:
		return ErrUnknownDiscountType
	}
	if value.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

// Cart is the mutable set of lines of one draft. Not safe for concurrent use.
type Cart struct {
	items               []Item
	globalDiscountType  DiscountType
	globalDiscountValue decimal.Decimal
}

func New() *Cart {
	return &Cart{globalDiscountType: DiscountCurrency}
}

// Load replaces the cart contents, used when reopening a saved sale.
func (c *Cart) Load(items []Item) {
	c.items = append([]Item(nil), items...)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) index(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity units of p in the cart. A second add of a non-serialized
// product sums quantities on the same line and overwrites its price tier.
// On error the cart is unchanged.
func (c *Cart) Add(p Product, quantity int, pt PriceType) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	price, err := p.ResolvePrice(pt)
	if err != nil {
		return err
	}
	if pt == "" {
		pt = PriceSale
	}

	idx := c.index(p.ID)
	if idx >= 0 && p.Serialized() {
		return ErrDuplicateUnique
	}
	if p.Serialized() && quantity > 1 {
		return ErrSerializedQuantity
	}

	total := quantity
	if idx >= 0 {
		total += c.items[idx].Quantity
	}
	if total > p.Stock {
		return ErrInsufficientStock
	}

	if idx >= 0 {
		it := &c.items[idx]
		it.Quantity = total
		it.SalePrice = price
		it.PriceType = pt
		it.Stock = p.Stock
		return nil
	}

	c.items = append(c.items, Item{
		ProductID:     p.ID,
		Name:          p.Name,
		Serialized:    p.Serialized(),
		Stock:         p.Stock,
		Quantity:      total,
		SalePrice:     price,
		PriceType:     pt,
		DiscountType:  DiscountCurrency,
		DiscountValue: decimal.Zero,
	})
	return nil
}

// ItemUpdate carries the mutable fields of a line; nil fields are left alone.
type ItemUpdate struct {
	Quantity      *int
	SalePrice     *decimal.Decimal
	DiscountType  *DiscountType
	DiscountValue *decimal.Decimal
}

// Adjustment reports a quantity that had to be clamped to [1, stock].
type Adjustment struct {
	Clamped   bool
	Requested int
	Applied   int
}

// UpdateItem changes a line. Quantity is clamped to [1, stock] and the clamp is
// reported back instead of being silently absorbed. A sold-out line can only
// keep or lower its quantity.
func (c *Cart) UpdateItem(productID string, u ItemUpdate) (Adjustment, error) {
	idx := c.index(productID)
	if idx < 0 {
		return Adjustment{}, ErrItemNotFound
	}
	next := c.items[idx]
	var adj Adjustment

	if u.Quantity != nil {
		if next.Serialized && *u.Quantity != next.Quantity {
			return Adjustment{}, ErrSerializedQuantity
		}
		q := *u.Quantity
		if q < 1 {
			q = 1
		}
		if next.Stock < 1 && q > next.Quantity {
			return Adjustment{}, ErrInsufficientStock
		}
		if next.Stock > 0 && q > next.Stock {
			q = next.Stock
		}
		if q != *u.Quantity {
			adj = Adjustment{Clamped: true, Requested: *u.Quantity, Applied: q}
		}
		next.Quantity = q
	}
	if u.SalePrice != nil {
		if u.SalePrice.IsNegative() {
			return Adjustment{}, ErrNegativeValue
		}
		next.SalePrice = *u.SalePrice
	}
	if u.DiscountType != nil {
		next.DiscountType = *u.DiscountType
	}
	if u.DiscountValue != nil {
		next.DiscountValue = *u.DiscountValue
	}
	if err := validDiscount(next.DiscountType, next.DiscountValue); err != nil {
		return Adjustment{}, err
	}

	c.items[idx] = next
	return adj, nil
}

// Remove deletes a line and returns it.
func (c *Cart) Remove(productID string) (Item, error) {
	idx := c.index(productID)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return removed, nil
}

// SetGlobalDiscount sets the sale-level discount. Percent is applied against
// Subtotal - ItemDiscounts.
func (c *Cart) SetGlobalDiscount(dt DiscountType, value decimal.Decimal) error {
	if dt == "" {
		dt = DiscountCurrency
	}
	if err := validDiscount(dt, value); err != nil {
		return err
	}
	c.globalDiscountType = dt
	c.globalDiscountValue = value
	return nil
}

func (c *Cart) GlobalDiscountSetting() (DiscountType, decimal.Decimal) {
	return c.globalDiscountType, c.globalDiscountValue
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

func (c *Cart) ItemDiscounts() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.Discount())
	}
	return sum
}

// GlobalDiscount is the currency value of the sale-level discount.
func (c *Cart) GlobalDiscount() decimal.Decimal {
	return applyDiscount(c.globalDiscountType, c.globalDiscountValue, c.Subtotal().Sub(c.ItemDiscounts()))
}

// Discount is ItemDiscounts + GlobalDiscount.
func (c *Cart) Discount() decimal.Decimal {
	return c.ItemDiscounts().Add(c.GlobalDiscount())
}

// Total is Subtotal - ItemDiscounts - GlobalDiscount.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Sub(c.Discount())
}
