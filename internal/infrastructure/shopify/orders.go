package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
)

// restOrder is the REST Admin API order shape, limited to the fields the
// bot reads and writes.
type restOrder struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Note          string             `json:"note"`
	Tags          string             `json:"tags"`
	LineItems     []restLineItem     `json:"line_items"`
	ShippingLines []restShippingLine `json:"shipping_lines"`
	LocationID    int64              `json:"location_id"`
}

type restLineItem struct {
	ID                  int64  `json:"id"`
	SKU                 string `json:"sku"`
	VariantID           int64  `json:"variant_id"`
	Quantity            int    `json:"quantity"`
	FulfillableQuantity int    `json:"fulfillable_quantity"`
	FulfillmentService  string `json:"fulfillment_service"`
	OriginLocationID    int64  `json:"origin_location_id"`
}

type restShippingLine struct {
	Title string `json:"title"`
}

// toDomain converts a REST order into the domain aggregate.
func (o *restOrder) toDomain() *order.Order {
	out := &order.Order{
		ID:   fmt.Sprintf("%d", o.ID),
		Name: o.Name,
		Note: o.Note,
	}
	if o.Tags != "" {
		for _, tag := range strings.Split(o.Tags, ",") {
			out.Tags = append(out.Tags, strings.TrimSpace(tag))
		}
	}
	for _, li := range o.LineItems {
		item := order.LineItem{
			ID:                  fmt.Sprintf("%d", li.ID),
			SKU:                 li.SKU,
			Quantity:            li.Quantity,
			FulfillableQuantity: li.FulfillableQuantity,
			FulfillmentService:  li.FulfillmentService,
		}
		if li.VariantID != 0 {
			item.VariantID = fmt.Sprintf("%d", li.VariantID)
		}
		if li.OriginLocationID != 0 {
			item.LocationID = fmt.Sprintf("%d", li.OriginLocationID)
		} else if o.LocationID != 0 {
			item.LocationID = fmt.Sprintf("%d", o.LocationID)
		}
		out.LineItems = append(out.LineItems, item)
	}
	for _, sl := range o.ShippingLines {
		out.ShippingLines = append(out.ShippingLines, order.ShippingLine{Title: sl.Title})
	}
	return out
}

// GetOrderByName resolves an order by its display name, e.g. "#1001".
func (c *Client) GetOrderByName(ctx context.Context, name string) (*order.Order, error) {
	path := fmt.Sprintf("orders.json?status=any&name=%s", url.QueryEscape(name))

	var resp struct {
		Orders []restOrder `json:"orders"`
	}
	if err := c.rest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	// The name filter is a substring match upstream; insist on an exact hit.
	for i := range resp.Orders {
		if resp.Orders[i].Name == name {
			return resp.Orders[i].toDomain(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, name)
}

// UpdateOrder applies a partial update to the order's mutable fields. Nil
// fields are omitted from the payload and left untouched upstream.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, update order.Update) error {
	payload := map[string]any{"id": orderID}
	if update.Note != nil {
		payload["note"] = *update.Note
	}
	if update.ShippingTitle != nil {
		payload["shipping_lines"] = []map[string]string{{"title": *update.ShippingTitle}}
	}
	if update.Tags != nil {
		payload["tags"] = strings.Join(update.Tags, ", ")
	}

	err := c.rest(ctx, http.MethodPut, fmt.Sprintf("orders/%s.json", orderID), map[string]any{"order": payload}, nil)
	if err != nil {
		return fmt.Errorf("%w: update order %s: %v", order.ErrMutationFailed, orderID, err)
	}
	c.logger.Debug("Order updated", zap.String("order_id", orderID))
	return nil
}

// CreateFulfillment attaches a tracking number and carrier to the order.
// The location comes from the request, falling back to the first line
// item's location; with no resolvable location the call fails with
// order.ErrNoLocation before any upstream call.
func (c *Client) CreateFulfillment(ctx context.Context, req order.FulfillmentRequest) error {
	locationID := req.LocationID
	if locationID == "" {
		for _, li := range req.LineItems {
			if li.LocationID != "" {
				locationID = li.LocationID
				break
			}
		}
	}
	if locationID == "" {
		return fmt.Errorf("%w: order %s", order.ErrNoLocation, req.OrderID)
	}

	items := make([]map[string]any, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		if li.FulfillableQuantity <= 0 {
			continue
		}
		items = append(items, map[string]any{
			"id":       li.ID,
			"quantity": li.FulfillableQuantity,
		})
	}

	payload := map[string]any{
		"fulfillment": map[string]any{
			"location_id":      locationID,
			"tracking_number":  req.TrackingNumber,
			"tracking_company": req.CarrierName,
			"notify_customer":  true,
			"line_items":       items,
		},
	}

	path := fmt.Sprintf("orders/%s/fulfillments.json", req.OrderID)
	if err := c.rest(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("%w: fulfillment for order %s: %v", order.ErrMutationFailed, req.OrderID, err)
	}

	c.logger.Info("Fulfillment created",
		zap.String("order_id", req.OrderID),
		zap.String("tracking_number", req.TrackingNumber),
		zap.String("carrier", req.CarrierName),
	)
	return nil
}
