package tracking

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrFeedUnavailable indicates the tracking feed could not be fetched
	// or parsed. A reconciliation run aborts on this error; the ledger is
	// left untouched.
	ErrFeedUnavailable = errors.New("tracking: feed unavailable")
)

// Record is one shipment row from the external tracking feed. Records are
// ephemeral: they are sourced fresh on every run and identified solely by
// their tracking ID.
type Record struct {
	TrackingID string
	OrderName  string
	Status     string
}

// IsPacked reports whether the feed marked this shipment as packed and
// ready for fulfillment. The comparison is case-insensitive.
func (r Record) IsPacked() bool {
	return strings.EqualFold(r.Status, "PACKED")
}

// Ledger is the persistent set of already-processed tracking IDs. It grows
// monotonically: once an ID is committed it is never reprocessed and never
// pruned.
type Ledger interface {
	// Contains reports whether the tracking ID has already been processed.
	Contains(id string) bool

	// Commit appends the given IDs, skipping any already present. An empty
	// set is a no-op.
	Commit(ids []string) error

	// Size returns the number of IDs currently in the ledger.
	Size() int
}

// FeedSource fetches the external tracking feed. The returned records form
// a finite sequence consumed once per run; rows without a tracking ID have
// already been dropped.
type FeedSource interface {
	Fetch(ctx context.Context) ([]Record, error)
}
