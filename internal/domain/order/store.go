package order

import (
	"context"
	"time"
)

// Store is the port to the upstream e-commerce store. It follows the
// Ports & Adapters pattern: the interface lives in the domain layer and the
// Shopify GraphQL adapter in the infrastructure layer implements it.
type Store interface {
	// GetOrderByName resolves an order by its display name (e.g. "#1001").
	// Returns ErrOrderNotFound when no order matches.
	GetOrderByName(ctx context.Context, name string) (*Order, error)

	// UpdateOrder applies a partial update to an order's mutable fields.
	UpdateOrder(ctx context.Context, orderID string, update Update) error

	// CreateFulfillment attaches a tracking number and carrier to the order.
	// Returns ErrNoLocation when no fulfillment location can be resolved.
	CreateFulfillment(ctx context.Context, req FulfillmentRequest) error

	// InventoryBySKU returns the current available quantity for a SKU.
	InventoryBySKU(ctx context.Context, sku string) (int, error)

	// SetInventory sets the absolute available quantity for an inventory
	// item at a location.
	SetInventory(ctx context.Context, itemID, locationID string, quantity int) error

	// ResolveInventoryItem resolves the inventory item and location GIDs
	// for a SKU. Returns ErrVariantNotFound when the SKU is unknown.
	ResolveInventoryItem(ctx context.Context, sku string) (itemID, locationID string, err error)

	// ProductBySKU looks up a product and its variants for display.
	ProductBySKU(ctx context.Context, sku string) (*Product, error)

	// SoldQuantity returns the total quantity of a SKU sold since the
	// given time, summed over all matching orders.
	SoldQuantity(ctx context.Context, sku string, since time.Time) (int, error)
}
