package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/config"
)

// newTestClient points a client at a local Admin API stub.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.ShopifyConfig{
		Store:      "nikki-fashion.myshopify.com",
		AdminToken: "shpat_test",
		APIVersion: "2025-07",
		Timeout:    5 * time.Second,
	}, zap.NewNop())
	c.baseURL = srv.URL
	return c
}

func TestGetOrderByName(t *testing.T) {
	t.Run("Exact name match converts to the domain aggregate", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
			assert.Equal(t, "/admin/api/2025-07/orders.json", r.URL.Path)
			assert.Equal(t, "#1001", r.URL.Query().Get("name"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"orders": []map[string]any{{
					"id":   450789469,
					"name": "#1001",
					"note": "leave at door",
					"tags": "vip, repeat",
					"line_items": []map[string]any{{
						"id":                   466157049,
						"sku":                  "DRESS-RED-M",
						"variant_id":           39072856,
						"quantity":             1,
						"fulfillable_quantity": 1,
					}},
					"shipping_lines": []map[string]any{{"title": "Delhivery"}},
					"location_id":    24826418,
				}},
			})
		}))

		o, err := client.GetOrderByName(context.Background(), "#1001")
		require.NoError(t, err)

		assert.Equal(t, "450789469", o.ID)
		assert.Equal(t, "leave at door", o.Note)
		assert.Equal(t, []string{"vip", "repeat"}, o.Tags)
		require.Len(t, o.LineItems, 1)
		assert.Equal(t, "DRESS-RED-M", o.LineItems[0].SKU)
		assert.Equal(t, "39072856", o.LineItems[0].VariantID)
		assert.Equal(t, "24826418", o.LineItems[0].LocationID)
		assert.Equal(t, "Delhivery", o.ShippingTitle())
	})

	t.Run("Substring matches from upstream are rejected", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"orders": []map[string]any{{"id": 1, "name": "#10012"}},
			})
		}))

		_, err := client.GetOrderByName(context.Background(), "#1001")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("Upstream failure surfaces as a request error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := client.GetOrderByName(context.Background(), "#1001")
		assert.ErrorIs(t, err, ErrRequestFailed)
	})
}

func TestCreateFulfillment(t *testing.T) {
	t.Run("Missing location fails before any upstream call", func(t *testing.T) {
		called := false
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		err := client.CreateFulfillment(context.Background(), order.FulfillmentRequest{
			OrderID:        "1",
			TrackingNumber: "TRK1",
			CarrierName:    "Delhivery",
			LineItems:      []order.LineItem{{ID: "li1", FulfillableQuantity: 1}},
		})
		assert.ErrorIs(t, err, order.ErrNoLocation)
		assert.False(t, called)
	})

	t.Run("Payload carries tracking data and fulfillable items only", func(t *testing.T) {
		var payload map[string]any
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2025-07/orders/1/fulfillments.json", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.WriteHeader(http.StatusCreated)
		}))

		err := client.CreateFulfillment(context.Background(), order.FulfillmentRequest{
			OrderID:        "1",
			TrackingNumber: "TRK1",
			CarrierName:    "Delhivery",
			LineItems: []order.LineItem{
				{ID: "li1", FulfillableQuantity: 2, LocationID: "24826418"},
				{ID: "li2", FulfillableQuantity: 0},
			},
		})
		require.NoError(t, err)

		fulfillment := payload["fulfillment"].(map[string]any)
		assert.Equal(t, "TRK1", fulfillment["tracking_number"])
		assert.Equal(t, "Delhivery", fulfillment["tracking_company"])
		assert.Equal(t, true, fulfillment["notify_customer"])
		assert.Len(t, fulfillment["line_items"].([]any), 1)
	})
}

func TestInventory(t *testing.T) {
	t.Run("InventoryBySKU reads the variant quantity", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2025-07/graphql.json", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"productVariants": map[string]any{
						"edges": []map[string]any{{
							"node": map[string]any{"sku": "DRESS-RED-M", "inventoryQuantity": 7},
						}},
					},
				},
			})
		}))

		qty, err := client.InventoryBySKU(context.Background(), "DRESS-RED-M")
		require.NoError(t, err)
		assert.Equal(t, 7, qty)
	})

	t.Run("Unknown SKU maps to ErrVariantNotFound", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"productVariants": map[string]any{"edges": []any{}},
				},
			})
		}))

		_, err := client.InventoryBySKU(context.Background(), "NOPE")
		assert.ErrorIs(t, err, order.ErrVariantNotFound)
	})

	t.Run("GraphQL errors surface as such", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]any{{"message": "Throttled"}},
			})
		}))

		_, err := client.InventoryBySKU(context.Background(), "ANY")
		assert.ErrorIs(t, err, ErrGraphQLErrors)
	})

	t.Run("SetInventory user errors become mutation failures", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"inventorySetQuantities": map[string]any{
						"userErrors": []map[string]any{{"message": "invalid location"}},
					},
				},
			})
		}))

		err := client.SetInventory(context.Background(), "gid://item/1", "gid://loc/1", 0)
		assert.ErrorIs(t, err, order.ErrMutationFailed)
	})
}
