package reconcile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/ratelimit"
)

// fakeStore is an in-memory order.Store recording mutations.
type fakeStore struct {
	orders    map[string]*order.Order
	inventory map[string]int
	items     map[string][2]string // sku -> item, location GIDs

	fulfillments []order.FulfillmentRequest
	updates      map[string][]order.Update
	setCalls     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    make(map[string]*order.Order),
		inventory: make(map[string]int),
		items:     make(map[string][2]string),
		updates:   make(map[string][]order.Update),
	}
}

func (s *fakeStore) GetOrderByName(_ context.Context, name string) (*order.Order, error) {
	o, ok := s.orders[name]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *fakeStore) UpdateOrder(_ context.Context, orderID string, update order.Update) error {
	s.updates[orderID] = append(s.updates[orderID], update)
	return nil
}

func (s *fakeStore) CreateFulfillment(_ context.Context, req order.FulfillmentRequest) error {
	s.fulfillments = append(s.fulfillments, req)
	return nil
}

func (s *fakeStore) InventoryBySKU(_ context.Context, sku string) (int, error) {
	qty, ok := s.inventory[sku]
	if !ok {
		return 0, order.ErrVariantNotFound
	}
	return qty, nil
}

func (s *fakeStore) SetInventory(_ context.Context, itemID, locationID string, quantity int) error {
	s.setCalls = append(s.setCalls, itemID)
	for sku, ids := range s.items {
		if ids[0] == itemID {
			s.inventory[sku] = quantity
		}
	}
	return nil
}

func (s *fakeStore) ResolveInventoryItem(_ context.Context, sku string) (string, string, error) {
	ids, ok := s.items[sku]
	if !ok {
		return "", "", order.ErrVariantNotFound
	}
	return ids[0], ids[1], nil
}

func (s *fakeStore) ProductBySKU(_ context.Context, sku string) (*order.Product, error) {
	return nil, order.ErrVariantNotFound
}

func (s *fakeStore) SoldQuantity(_ context.Context, sku string, since time.Time) (int, error) {
	return 0, nil
}

// fakeFeed is a canned tracking.FeedSource.
type fakeFeed struct {
	records []tracking.Record
	err     error
}

func (f *fakeFeed) Fetch(context.Context) ([]tracking.Record, error) {
	return f.records, f.err
}

// memLedger is an in-memory tracking.Ledger.
type memLedger struct {
	ids     map[string]struct{}
	commits int
}

func newMemLedger(ids ...string) *memLedger {
	l := &memLedger{ids: make(map[string]struct{})}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	return l
}

func (l *memLedger) Contains(id string) bool {
	_, ok := l.ids[id]
	return ok
}

func (l *memLedger) Commit(ids []string) error {
	if len(ids) > 0 {
		l.commits++
	}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	return nil
}

func (l *memLedger) Size() int { return len(l.ids) }

func newTestService(store *fakeStore, feed *fakeFeed, ledger tracking.Ledger) *Service {
	return NewService(store, feed, ledger, ratelimit.Unpaced{}, "Delhivery", zap.NewNop())
}

func TestRun(t *testing.T) {
	t.Run("Packed record creates a fulfillment and lands in the ledger", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1001"] = &order.Order{
			ID:   "gid://shopify/Order/1",
			Name: "#1001",
			LineItems: []order.LineItem{
				{ID: "li1", SKU: "DRESS-RED-M", VariantID: "v1", FulfillableQuantity: 1},
			},
		}
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK1", OrderName: "#1001", Status: "PACKED"},
		}}
		ledger := newMemLedger()

		result, err := newTestService(store, feed, ledger).Run(context.Background())
		require.NoError(t, err)

		require.Len(t, store.fulfillments, 1)
		assert.Equal(t, "TRK1", store.fulfillments[0].TrackingNumber)
		assert.Equal(t, "Delhivery", store.fulfillments[0].CarrierName)

		assert.Equal(t, 1, result.Records)
		assert.Equal(t, []string{"TRK1"}, result.NewIDs)
		assert.True(t, ledger.Contains("TRK1"))
	})

	t.Run("Second run over the same feed does nothing", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1001"] = &order.Order{ID: "o1", Name: "#1001"}
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK1", OrderName: "#1001", Status: "PACKED"},
		}}
		ledger := newMemLedger()
		svc := newTestService(store, feed, ledger)

		_, err := svc.Run(context.Background())
		require.NoError(t, err)
		second, err := svc.Run(context.Background())
		require.NoError(t, err)

		assert.Zero(t, second.Records)
		assert.Equal(t, 1, second.Skipped)
		assert.Empty(t, second.Actions)
		assert.Len(t, store.fulfillments, 1)
	})

	t.Run("Feed failure aborts the run with the ledger untouched", func(t *testing.T) {
		ledger := newMemLedger()
		feed := &fakeFeed{err: tracking.ErrFeedUnavailable}

		_, err := newTestService(newFakeStore(), feed, ledger).Run(context.Background())
		assert.ErrorIs(t, err, tracking.ErrFeedUnavailable)
		assert.Zero(t, ledger.Size())
		assert.Zero(t, ledger.commits)
	})

	t.Run("Record without an order name is committed without store calls", func(t *testing.T) {
		store := newFakeStore()
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK1", Status: "PACKED"},
		}}
		ledger := newMemLedger()

		result, err := newTestService(store, feed, ledger).Run(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Actions, 1)
		assert.Contains(t, result.Actions[0], "no order ID found in feed row")
		assert.Empty(t, store.fulfillments)
		assert.Empty(t, store.updates)
		assert.True(t, ledger.Contains("TRK1"))
	})

	t.Run("One failing record does not stop the rest", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1002"] = &order.Order{ID: "o2", Name: "#1002"}
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK1", OrderName: "#9999", Status: "PACKED"},
			{TrackingID: "TRK2", OrderName: "#1002", Status: "PACKED"},
		}}
		ledger := newMemLedger()

		result, err := newTestService(store, feed, ledger).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, result.Records)
		assert.Contains(t, result.Actions[0], "not found")
		assert.True(t, ledger.Contains("TRK1"))
		assert.True(t, ledger.Contains("TRK2"))
		assert.Len(t, store.fulfillments, 1)
	})

	t.Run("Non-packed record checks inventory and sets the carrier", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1003"] = &order.Order{
			ID:   "o3",
			Name: "#1003",
			LineItems: []order.LineItem{
				{ID: "li1", SKU: "KURTI-BLU-S", VariantID: "v1"},
			},
			ShippingLines: []order.ShippingLine{{Title: "BlueDart - Rescheduled to 2025-02-01"}},
		}
		store.inventory["KURTI-BLU-S"] = 0
		store.items["KURTI-BLU-S"] = [2]string{"item1", "loc1"}
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK3", OrderName: "#1003", Status: "IN TRANSIT"},
		}}
		ledger := newMemLedger()

		result, err := newTestService(store, feed, ledger).Run(context.Background())
		require.NoError(t, err)

		joined := strings.Join(result.Actions, "\n")
		assert.Contains(t, joined, "marked out of stock")
		assert.Contains(t, joined, "carrier set to Delhivery")
		assert.Equal(t, []string{"item1"}, store.setCalls)

		updates := store.updates["o3"]
		require.Len(t, updates, 1)
		require.NotNil(t, updates[0].ShippingTitle)
		assert.Equal(t, "Delhivery - Rescheduled to 2025-02-01", *updates[0].ShippingTitle)
		require.NotNil(t, updates[0].Note)
		assert.Contains(t, *updates[0].Note, "--- DELIVERY PARTNER UPDATE ---")
	})

	t.Run("Items already in stock are reported, not touched", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1004"] = &order.Order{
			ID:   "o4",
			Name: "#1004",
			LineItems: []order.LineItem{
				{ID: "li1", SKU: "SAREE-GRN-F", VariantID: "v1"},
			},
		}
		store.inventory["SAREE-GRN-F"] = 7
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK4", OrderName: "#1004", Status: "SHIPPED"},
		}}

		result, err := newTestService(store, feed, newMemLedger()).Run(context.Background())
		require.NoError(t, err)

		assert.Contains(t, strings.Join(result.Actions, "\n"), "in stock (7)")
		assert.Empty(t, store.setCalls)
	})

	t.Run("Line item without SKU or variant is flagged", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1005"] = &order.Order{
			ID:        "o5",
			Name:      "#1005",
			LineItems: []order.LineItem{{ID: "li1"}},
		}
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK5", OrderName: "#1005", Status: "SHIPPED"},
		}}

		result, err := newTestService(store, feed, newMemLedger()).Run(context.Background())
		require.NoError(t, err)
		assert.Contains(t, strings.Join(result.Actions, "\n"), "missing SKU or variant")
	})
}

func TestReconcileOne(t *testing.T) {
	t.Run("Processes a record the ledger already contains", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1001"] = &order.Order{ID: "o1", Name: "#1001"}
		ledger := newMemLedger("TRK1")
		svc := newTestService(store, &fakeFeed{}, ledger)

		actions := svc.ReconcileOne(context.Background(), tracking.Record{
			TrackingID: "TRK1", OrderName: "#1001", Status: "PACKED",
		})

		require.NotEmpty(t, actions)
		assert.Len(t, store.fulfillments, 1)
	})

	t.Run("Never commits to the ledger", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1001"] = &order.Order{ID: "o1", Name: "#1001"}
		ledger := newMemLedger()
		svc := newTestService(store, &fakeFeed{}, ledger)

		svc.ReconcileOne(context.Background(), tracking.Record{
			TrackingID: "TRK-NEW", OrderName: "#1001", Status: "PACKED",
		})

		assert.False(t, ledger.Contains("TRK-NEW"))
		assert.Zero(t, ledger.commits)
	})
}
