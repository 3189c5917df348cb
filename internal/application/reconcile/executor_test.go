package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/ratelimit"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/scheduler"
)

func TestJobExecutor(t *testing.T) {
	t.Run("Pass results are copied onto the job", func(t *testing.T) {
		store := newFakeStore()
		store.orders["#1001"] = &order.Order{ID: "o1", Name: "#1001"}
		feed := &fakeFeed{records: []tracking.Record{
			{TrackingID: "TRK1", OrderName: "#1001", Status: "PACKED"},
			{TrackingID: "TRK-OLD", OrderName: "#1000", Status: "PACKED"},
		}}
		ledger := newMemLedger("TRK-OLD")
		svc := NewService(store, feed, ledger, ratelimit.Unpaced{}, "Delhivery", zap.NewNop())

		job := scheduler.NewJob("interval")
		require.NoError(t, NewJobExecutor(svc, ledger).Execute(context.Background(), job))

		assert.Equal(t, 1, job.Records)
		assert.Equal(t, 1, job.Skipped)
		assert.Equal(t, 1, job.NewIDs)
		assert.NotEmpty(t, job.Actions)
		assert.Equal(t, 2, job.LedgerLen)
	})

	t.Run("Feed failure propagates as the job error", func(t *testing.T) {
		feed := &fakeFeed{err: tracking.ErrFeedUnavailable}
		svc := NewService(newFakeStore(), feed, newMemLedger(), ratelimit.Unpaced{}, "Delhivery", zap.NewNop())

		job := scheduler.NewJob("interval")
		err := NewJobExecutor(svc, newMemLedger()).Execute(context.Background(), job)
		assert.ErrorIs(t, err, tracking.ErrFeedUnavailable)
	})
}
