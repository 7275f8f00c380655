package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func capa() Product {
	return Product{ID: "capa-1", Name: "Capa MagSafe", Stock: 5, Price: d("150"), CostPrice: d("40"), WholesalePrice: d("90")}
}

func iphone() Product {
	return Product{ID: "ip15-1", Name: "iPhone 15 128GB", Stock: 1, Price: d("5200"), CostPrice: d("4000"), AdditionalCostPrice: d("150"), IMEI1: "356789012345678"}
}

func TestAdd_SerializedDuplicateRejected(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(iphone(), 1, PriceSale))

	err := c.Add(iphone(), 1, PriceSale)
	assert.ErrorIs(t, err, ErrDuplicateUnique)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestAdd_StockExceededLeavesQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(capa(), 3, PriceSale))

	err := c.Add(capa(), 3, PriceSale)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, c.Items()[0].Quantity)
}

func TestAdd_MergesAndLastPriceTierWins(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(capa(), 2, PriceSale))
	require.NoError(t, c.Add(capa(), 1, PriceWholesale))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, PriceWholesale, items[0].PriceType)
	assert.True(t, items[0].SalePrice.Equal(d("90")))
}

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		tier    PriceType
		want    string
	}{
		{"sale", iphone(), PriceSale, "5200"},
		{"cost plus additional", iphone(), PriceCost, "4150"},
		{"cost falls back when zero", Product{Price: d("100")}, PriceCost, "100"},
		{"wholesale", capa(), PriceWholesale, "90"},
		{"wholesale falls back when unset", iphone(), PriceWholesale, "5200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.product.ResolvePrice(tt.tier)
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), got.String())
		})
	}

	_, err := iphone().ResolvePrice("promo")
	assert.ErrorIs(t, err, ErrUnknownPriceType)
}

func TestUpdateItem_ClampsQuantityWithWarning(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(capa(), 1, PriceSale))

	q := 9
	adj, err := c.UpdateItem("capa-1", ItemUpdate{Quantity: &q})
	require.NoError(t, err)
	assert.True(t, adj.Clamped)
	assert.Equal(t, 9, adj.Requested)
	assert.Equal(t, 5, adj.Applied)
	assert.Equal(t, 5, c.Items()[0].Quantity)

	zero := 0
	adj, err = c.UpdateItem("capa-1", ItemUpdate{Quantity: &zero})
	require.NoError(t, err)
	assert.True(t, adj.Clamped)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestUpdateItem_SoldOutLineCannotGrow(t *testing.T) {
	c := New()
	c.Load([]Item{{ProductID: "capa-1", Name: "Capa MagSafe", Quantity: 2, Stock: 0, SalePrice: d("150"), PriceType: PriceSale}})

	q := 3
	_, err := c.UpdateItem("capa-1", ItemUpdate{Quantity: &q})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, c.Items()[0].Quantity)

	q = 1
	adj, err := c.UpdateItem("capa-1", ItemUpdate{Quantity: &q})
	require.NoError(t, err)
	assert.False(t, adj.Clamped)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestUpdateItem_SerializedQuantityRejected(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(iphone(), 1, PriceSale))

	q := 2
	_, err := c.UpdateItem("ip15-1", ItemUpdate{Quantity: &q})
	assert.ErrorIs(t, err, ErrSerializedQuantity)
}

func TestUpdateItem_InvalidDiscountLeavesLine(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(capa(), 1, PriceSale))

	pct := DiscountPercent
	v := d("120")
	_, err := c.UpdateItem("capa-1", ItemUpdate{DiscountType: &pct, DiscountValue: &v})
	assert.ErrorIs(t, err, ErrPercentAboveHundred)
	assert.Equal(t, DiscountCurrency, c.Items()[0].DiscountType)
}

func TestTotals(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(iphone(), 1, PriceSale))
	require.NoError(t, c.Add(capa(), 2, PriceSale))

	pct := DiscountPercent
	ten := d("10")
	_, err := c.UpdateItem("capa-1", ItemUpdate{DiscountType: &pct, DiscountValue: &ten})
	require.NoError(t, err)

	fifty := d("50")
	_, err = c.UpdateItem("ip15-1", ItemUpdate{DiscountValue: &fifty})
	require.NoError(t, err)

	// 5200 + 300 = 5500; discounts 50 + 30 = 80
	assert.True(t, c.Subtotal().Equal(d("5500")))
	assert.True(t, c.ItemDiscounts().Equal(d("80")))

	require.NoError(t, c.SetGlobalDiscount(DiscountPercent, d("10")))
	// 10% of 5420
	assert.True(t, c.GlobalDiscount().Equal(d("542")))
	assert.True(t, c.Total().Equal(d("4878")))
}

func TestItemTotalNeverNegative(t *testing.T) {
	it := Item{SalePrice: d("100"), Quantity: 1, DiscountType: DiscountCurrency, DiscountValue: d("250")}
	assert.True(t, it.Total().IsZero())
}

func TestRemove(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(capa(), 1, PriceSale))

	removed, err := c.Remove("capa-1")
	require.NoError(t, err)
	assert.Equal(t, "Capa MagSafe", removed.Name)
	assert.Zero(t, c.Len())

	_, err = c.Remove("capa-1")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
