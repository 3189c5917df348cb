package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound indicates no order matched the requested display name.
	ErrOrderNotFound = errors.New("order: order not found")
	// ErrMutationFailed indicates the store rejected an order update or
	// fulfillment creation call.
	ErrMutationFailed = errors.New("order: upstream mutation failed")
	// ErrNoLocation indicates a fulfillment could not be created because the
	// order has no resolvable fulfillment location.
	ErrNoLocation = errors.New("order: no fulfillment location available")
	// ErrVariantNotFound indicates no variant matched the requested SKU.
	ErrVariantNotFound = errors.New("order: variant not found for SKU")
)

// LineItem is a purchasable unit on an order.
type LineItem struct {
	ID                  string
	SKU                 string
	VariantID           string
	Quantity            int
	FulfillableQuantity int
	FulfillmentService  string
	LocationID          string
}

// ShippingLine is the single free-text shipping descriptor on an order.
// The title doubles as an informal delivery-status channel; see the
// delivery package for the title grammar.
type ShippingLine struct {
	Title string
}

// Order is the store-owned aggregate the bot reads and mutates. The bot
// never caches orders; every read is a fresh fetch from the store.
type Order struct {
	ID            string
	Name          string
	Note          string
	Tags          []string
	LineItems     []LineItem
	ShippingLines []ShippingLine
}

// ShippingTitle returns the first shipping line title, or empty when the
// order has no shipping lines.
func (o *Order) ShippingTitle() string {
	if len(o.ShippingLines) == 0 {
		return ""
	}
	return o.ShippingLines[0].Title
}

// Update carries the mutable order fields for a partial update. Nil fields
// are left untouched on the store side.
type Update struct {
	Note          *string
	ShippingTitle *string
	Tags          []string
}

// FulfillmentRequest attaches a tracking number and carrier to an order.
type FulfillmentRequest struct {
	OrderID        string
	TrackingNumber string
	CarrierName    string
	LineItems      []LineItem
	LocationID     string
}

// ProductVariant is one sellable variant returned by a product lookup.
type ProductVariant struct {
	SKU       string
	Title     string
	Price     decimal.Decimal
	Inventory int
}

// Product is the result of a product-by-SKU lookup, used by the operator
// command surface.
type Product struct {
	Title       string
	Description string
	URL         string
	ImageURLs   []string
	Variants    []ProductVariant
	Currency    string
}
