// Package reconcile orchestrates one tracking reconciliation pass: fetch
// the feed, filter against the processed-ID ledger, match records to store
// orders, apply conditional inventory/fulfillment/carrier actions, append
// delivery events to the order audit trail, and extend the ledger.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/delivery"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/ratelimit"
)

// PassResult summarizes one reconciliation pass. Actions is the
// human-readable line per record outcome, success or failure, in feed
// order.
type PassResult struct {
	Actions []string
	// Records is the number of feed records processed this pass.
	Records int
	// Skipped is the number of records filtered out by the ledger.
	Skipped int
	// NewIDs are the tracking IDs first seen this pass, committed to the
	// ledger at the end whether or not their record succeeded.
	NewIDs []string
}

// Service runs reconciliation passes. A single Service instance assumes
// non-concurrent runs; the scheduler enforces that with one worker.
type Service struct {
	store   order.Store
	feed    tracking.FeedSource
	ledger  tracking.Ledger
	pacer   ratelimit.Pacer
	carrier string
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a reconciliation service. carrier is the fixed
// carrier name attached to fulfillments and shipping lines.
func NewService(store order.Store, feed tracking.FeedSource, ledger tracking.Ledger, pacer ratelimit.Pacer, carrier string, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		feed:    feed,
		ledger:  ledger,
		pacer:   pacer,
		carrier: carrier,
		logger:  logger.Named("reconcile"),
		now:     time.Now,
	}
}

// Run executes one reconciliation pass. A feed fetch failure aborts the
// whole run with the ledger untouched; any record-level failure is
// recorded as an action line and never stops the pass. Every newly seen
// tracking ID is committed at the end, failed records included, so a
// record is never retried once seen.
func (s *Service) Run(ctx context.Context) (*PassResult, error) {
	records, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := &PassResult{}
	for _, rec := range records {
		if s.ledger.Contains(rec.TrackingID) {
			result.Skipped++
			continue
		}
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("reconcile: pass interrupted: %w", err)
		}

		result.NewIDs = append(result.NewIDs, rec.TrackingID)
		result.Records++
		result.Actions = append(result.Actions, s.processRecord(ctx, rec)...)
	}

	if err := s.ledger.Commit(result.NewIDs); err != nil {
		return result, fmt.Errorf("reconcile: ledger commit: %w", err)
	}

	s.logger.Info("Reconciliation pass finished",
		zap.Int("records", result.Records),
		zap.Int("skipped", result.Skipped),
		zap.Int("new_ids", len(result.NewIDs)),
	)
	return result, nil
}

// ReconcileOne processes a single record bypassing the ledger filter and
// without committing anything. This is the operator escape hatch for
// records that were marked processed by a failed earlier run.
func (s *Service) ReconcileOne(ctx context.Context, rec tracking.Record) []string {
	return s.processRecord(ctx, rec)
}

// processRecord applies the per-record state machine and returns the
// human-readable action lines for it. Terminal outcomes: no order ID,
// order not found, packed→fulfilled, item missing SKU/variant, inventory
// checked (zero → marked out of stock, else in-stock noted), carrier set.
func (s *Service) processRecord(ctx context.Context, rec tracking.Record) []string {
	if rec.OrderName == "" {
		return []string{fmt.Sprintf("%s: no order ID found in feed row", rec.TrackingID)}
	}

	o, err := s.store.GetOrderByName(ctx, rec.OrderName)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return []string{fmt.Sprintf("%s: order %s not found", rec.TrackingID, rec.OrderName)}
		}
		return []string{fmt.Sprintf("%s: order %s lookup failed: %v", rec.TrackingID, rec.OrderName, err)}
	}

	if rec.IsPacked() {
		return []string{s.fulfillPacked(ctx, rec, o)}
	}

	actions := s.checkLineItems(ctx, rec, o)
	actions = append(actions, s.setCarrier(ctx, rec, o))
	return actions
}

// fulfillPacked attaches the tracking ID and fixed carrier to a packed
// order via a fulfillment creation call.
func (s *Service) fulfillPacked(ctx context.Context, rec tracking.Record, o *order.Order) string {
	err := s.store.CreateFulfillment(ctx, order.FulfillmentRequest{
		OrderID:        o.ID,
		TrackingNumber: rec.TrackingID,
		CarrierName:    s.carrier,
		LineItems:      o.LineItems,
	})
	if err != nil {
		return fmt.Sprintf("%s: order %s fulfillment failed: %v", rec.TrackingID, rec.OrderName, err)
	}
	return fmt.Sprintf("%s: order %s packed, fulfillment created with carrier %s", rec.TrackingID, rec.OrderName, s.carrier)
}

// checkLineItems walks the order's line items, flagging missing SKU or
// variant identifiers and marking zero-inventory variants out of stock.
func (s *Service) checkLineItems(ctx context.Context, rec tracking.Record, o *order.Order) []string {
	var actions []string
	for _, item := range o.LineItems {
		if item.SKU == "" || item.VariantID == "" {
			actions = append(actions, fmt.Sprintf("%s: order %s item missing SKU or variant", rec.TrackingID, rec.OrderName))
			continue
		}

		qty, err := s.store.InventoryBySKU(ctx, item.SKU)
		if err != nil {
			actions = append(actions, fmt.Sprintf("%s: inventory check failed for %s: %v", rec.TrackingID, item.SKU, err))
			continue
		}

		if qty == 0 {
			actions = append(actions, s.markOutOfStock(ctx, rec, item))
			continue
		}
		actions = append(actions, fmt.Sprintf("%s: %s in stock (%d)", rec.TrackingID, item.SKU, qty))
	}
	return actions
}

// markOutOfStock sets the variant's quantity to zero at its location.
func (s *Service) markOutOfStock(ctx context.Context, rec tracking.Record, item order.LineItem) string {
	itemID, locationID, err := s.store.ResolveInventoryItem(ctx, item.SKU)
	if err != nil {
		return fmt.Sprintf("%s: could not resolve inventory for %s: %v", rec.TrackingID, item.SKU, err)
	}
	if err := s.store.SetInventory(ctx, itemID, locationID, 0); err != nil {
		return fmt.Sprintf("%s: marking %s out of stock failed: %v", rec.TrackingID, item.SKU, err)
	}
	return fmt.Sprintf("%s: %s marked out of stock", rec.TrackingID, item.SKU)
}

// setCarrier rewrites the order's shipping line to the fixed carrier,
// preserving any embedded rescheduled-date fragment, and appends a
// partner-update event to the order's audit trail.
func (s *Service) setCarrier(ctx context.Context, rec tracking.Record, o *order.Order) string {
	title := delivery.SpliceShippingTitle(o.ShippingTitle(), s.carrier)
	note := delivery.Append(o.Note, delivery.PartnerUpdateEvent{
		Partner:    s.carrier,
		OccurredAt: s.now(),
	})

	err := s.store.UpdateOrder(ctx, o.ID, order.Update{
		Note:          &note,
		ShippingTitle: &title,
	})
	if err != nil {
		return fmt.Sprintf("%s: setting carrier on order %s failed: %v", rec.TrackingID, rec.OrderName, err)
	}
	return fmt.Sprintf("%s: order %s carrier set to %s", rec.TrackingID, rec.OrderName, s.carrier)
}
