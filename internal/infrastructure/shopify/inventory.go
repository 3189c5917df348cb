package shopify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
)

const inventoryItemAndLocationQuery = `
query($sku:String!){
  productVariants(first:1,query:$sku){edges{node{inventoryItem{id}}}}
  locations(first:1){edges{node{id}}}
}`

const variantInventoryQuery = `
query($sku:String!){
  productVariants(first:1,query:$sku){edges{node{sku inventoryQuantity}}}
}`

const setQuantitiesMutation = `
mutation($in:InventorySetQuantitiesInput!){
  inventorySetQuantities(input:$in){
    inventoryAdjustmentGroup{changes{name delta}}
    userErrors{field message}
  }
}`

// ResolveInventoryItem resolves the inventory item and location GIDs for
// a SKU.
func (c *Client) ResolveInventoryItem(ctx context.Context, sku string) (string, string, error) {
	var resp struct {
		ProductVariants struct {
			Edges []struct {
				Node struct {
					InventoryItem struct {
						ID string `json:"id"`
					} `json:"inventoryItem"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"productVariants"`
		Locations struct {
			Edges []struct {
				Node struct {
					ID string `json:"id"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"locations"`
	}
	if err := c.graphql(ctx, inventoryItemAndLocationQuery, map[string]any{"sku": sku}, &resp); err != nil {
		return "", "", err
	}
	if len(resp.ProductVariants.Edges) == 0 || len(resp.Locations.Edges) == 0 {
		return "", "", fmt.Errorf("%w: %s", order.ErrVariantNotFound, sku)
	}
	return resp.ProductVariants.Edges[0].Node.InventoryItem.ID, resp.Locations.Edges[0].Node.ID, nil
}

// InventoryBySKU returns the current available quantity for a SKU.
func (c *Client) InventoryBySKU(ctx context.Context, sku string) (int, error) {
	var resp struct {
		ProductVariants struct {
			Edges []struct {
				Node struct {
					SKU               string `json:"sku"`
					InventoryQuantity int    `json:"inventoryQuantity"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"productVariants"`
	}
	if err := c.graphql(ctx, variantInventoryQuery, map[string]any{"sku": sku}, &resp); err != nil {
		return 0, err
	}
	if len(resp.ProductVariants.Edges) == 0 {
		return 0, fmt.Errorf("%w: %s", order.ErrVariantNotFound, sku)
	}
	return resp.ProductVariants.Edges[0].Node.InventoryQuantity, nil
}

// SetInventory sets the absolute available quantity for an inventory item
// at a location.
func (c *Client) SetInventory(ctx context.Context, itemID, locationID string, quantity int) error {
	var resp struct {
		InventorySetQuantities struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"inventorySetQuantities"`
	}
	variables := map[string]any{
		"in": map[string]any{
			"name":                  "available",
			"reason":                "other",
			"ignoreCompareQuantity": true,
			"quantities": []map[string]any{{
				"inventoryItemId": itemID,
				"locationId":      locationID,
				"quantity":        quantity,
			}},
		},
	}
	if err := c.graphql(ctx, setQuantitiesMutation, variables, &resp); err != nil {
		return fmt.Errorf("%w: set inventory: %v", order.ErrMutationFailed, err)
	}
	if errs := resp.InventorySetQuantities.UserErrors; len(errs) > 0 {
		return fmt.Errorf("%w: set inventory: %s", order.ErrMutationFailed, errs[0].Message)
	}

	c.logger.Debug("Inventory quantity set",
		zap.String("inventory_item", itemID),
		zap.String("location", locationID),
		zap.Int("quantity", quantity),
	)
	return nil
}
