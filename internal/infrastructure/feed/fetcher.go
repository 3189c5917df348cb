// Package feed retrieves the third-party tracking feed: a CSV document
// published at a fixed HTTPS URL with at least the TRACKING ID, SHOPIFY
// ORDER ID and STATUS columns.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/csvfeed"
)

// Feed column names. The upstream sheet owns these literals.
const (
	columnTrackingID = "TRACKING ID"
	columnOrderName  = "SHOPIFY ORDER ID"
	columnStatus     = "STATUS"
)

// Fetcher implements tracking.FeedSource over an HTTPS published-sheet
// CSV endpoint.
type Fetcher struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFetcher creates a fetcher for the given published-sheet URL.
func NewFetcher(url string, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("feed"),
	}
}

// Fetch retrieves and parses the feed. Any transport or parse failure is
// wrapped in tracking.ErrFeedUnavailable: the caller aborts the whole run
// on it. Rows without a tracking ID are dropped; duplicate tracking IDs
// within one fetch keep the first row.
func (f *Fetcher) Fetch(ctx context.Context) ([]tracking.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", tracking.ErrFeedUnavailable, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", tracking.ErrFeedUnavailable, resp.StatusCode)
	}

	parser, err := csvfeed.NewParser(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrFeedUnavailable, err)
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrFeedUnavailable, err)
	}
	if missing := parser.MissingHeaders([]string{columnTrackingID, columnOrderName, columnStatus}); len(missing) > 0 {
		return nil, fmt.Errorf("%w: feed missing columns %v", tracking.ErrFeedUnavailable, missing)
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrFeedUnavailable, err)
	}

	seen := make(map[string]struct{}, len(rows))
	records := make([]tracking.Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		id := row.Get(columnTrackingID)
		if id == "" {
			dropped++
			continue
		}
		if _, ok := seen[id]; ok {
			dropped++
			continue
		}
		seen[id] = struct{}{}
		records = append(records, tracking.Record{
			TrackingID: id,
			OrderName:  row.Get(columnOrderName),
			Status:     row.Get(columnStatus),
		})
	}

	f.logger.Info("Tracking feed fetched",
		zap.Int("records", len(records)),
		zap.Int("dropped_rows", dropped),
	)
	return records, nil
}
