package shopify

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
)

const productBySKUQuery = `
query($sku:String!){
  shop{currencyCode}
  products(first:1,query:$sku){
    edges{node{
      title description onlineStoreUrl
      images(first:5){edges{node{src}}}
      variants(first:5){edges{node{sku title price inventoryQuantity}}}
    }}
  }
}`

const soldQuantityQuery = `
query($q:String!,$cursor:String){
  orders(first:50,query:$q,after:$cursor){
    pageInfo{hasNextPage endCursor}
    edges{node{
      lineItems(first:50){edges{node{sku quantity}}}
    }}
  }
}`

// soldQuantityMaxPages bounds the pagination walk over the sales window.
const soldQuantityMaxPages = 20

// ProductBySKU looks up a product and its variants for operator display.
func (c *Client) ProductBySKU(ctx context.Context, sku string) (*order.Product, error) {
	var resp struct {
		Shop struct {
			CurrencyCode string `json:"currencyCode"`
		} `json:"shop"`
		Products struct {
			Edges []struct {
				Node struct {
					Title          string `json:"title"`
					Description    string `json:"description"`
					OnlineStoreURL string `json:"onlineStoreUrl"`
					Images         struct {
						Edges []struct {
							Node struct {
								Src string `json:"src"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"images"`
					Variants struct {
						Edges []struct {
							Node struct {
								SKU               string `json:"sku"`
								Title             string `json:"title"`
								Price             string `json:"price"`
								InventoryQuantity int    `json:"inventoryQuantity"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.graphql(ctx, productBySKUQuery, map[string]any{"sku": sku}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Products.Edges) == 0 {
		return nil, fmt.Errorf("%w: %s", order.ErrVariantNotFound, sku)
	}

	node := resp.Products.Edges[0].Node
	product := &order.Product{
		Title:       node.Title,
		Description: node.Description,
		URL:         node.OnlineStoreURL,
		Currency:    resp.Shop.CurrencyCode,
	}
	for _, img := range node.Images.Edges {
		product.ImageURLs = append(product.ImageURLs, img.Node.Src)
	}
	for _, v := range node.Variants.Edges {
		price, err := decimal.NewFromString(v.Node.Price)
		if err != nil {
			price = decimal.Zero
		}
		product.Variants = append(product.Variants, order.ProductVariant{
			SKU:       v.Node.SKU,
			Title:     v.Node.Title,
			Price:     price,
			Inventory: v.Node.InventoryQuantity,
		})
	}
	return product, nil
}

// SoldQuantity returns the total quantity of a SKU sold since the given
// time, summed over all orders in the window.
func (c *Client) SoldQuantity(ctx context.Context, sku string, since time.Time) (int, error) {
	query := fmt.Sprintf("created_at:>=%s", since.UTC().Format("2006-01-02"))

	total := 0
	var cursor *string
	for page := 0; page < soldQuantityMaxPages; page++ {
		var resp struct {
			Orders struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						LineItems struct {
							Edges []struct {
								Node struct {
									SKU      string `json:"sku"`
									Quantity int    `json:"quantity"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"lineItems"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		}
		variables := map[string]any{"q": query}
		if cursor != nil {
			variables["cursor"] = *cursor
		}
		if err := c.graphql(ctx, soldQuantityQuery, variables, &resp); err != nil {
			return 0, err
		}

		for _, edge := range resp.Orders.Edges {
			for _, li := range edge.Node.LineItems.Edges {
				if li.Node.SKU == sku {
					total += li.Node.Quantity
				}
			}
		}

		if !resp.Orders.PageInfo.HasNextPage {
			break
		}
		end := resp.Orders.PageInfo.EndCursor
		cursor = &end
	}
	return total, nil
}
