package telegram

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/shared"
)

func productFixture() *order.Product {
	return &order.Product{
		Title:    "Red Summer Dress",
		URL:      "/products/red-summer-dress",
		Currency: "INR",
		Variants: []order.ProductVariant{
			{SKU: "DRESS-RED-S", Title: "S", Price: decimal.NewFromInt(1499), Inventory: 2},
			{SKU: "DRESS-RED-M", Title: "M", Price: decimal.NewFromInt(1499), Inventory: 4},
		},
	}
}

func TestSplitArgs(t *testing.T) {
	assert.Empty(t, splitArgs(""))
	assert.Equal(t, []string{"DRESS-RED-M", "5"}, splitArgs("  DRESS-RED-M   5 "))
}

func TestNormalizeOrderName(t *testing.T) {
	assert.Equal(t, "#1001", normalizeOrderName("1001"))
	assert.Equal(t, "#1001", normalizeOrderName("#1001"))
	assert.Empty(t, normalizeOrderName(""))
}

func TestRenderProduct(t *testing.T) {
	b := &Bot{
		domain: "https://nikkifashion.com",
		deps:   Deps{Currency: shared.DefaultCurrencyTable()},
	}

	p := productFixture()
	card := b.renderProduct("DRESS-RED-M", p)

	assert.Contains(t, card, "*Red Summer Dress*")
	assert.Contains(t, card, "₹")
	assert.Contains(t, card, "▸ M")
	assert.Contains(t, card, "stock 4")
	assert.Contains(t, card, "https://nikkifashion.com/products/red-summer-dress")
}
