// Package orderops implements the operator-facing order and inventory
// actions: delivery lifecycle events appended to the order audit trail,
// the shipping-line carrier/date surgery, and direct stock adjustments.
package orderops

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/delivery"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
)

// Service applies operator actions against the order store.
type Service struct {
	store  order.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an order operations service.
func NewService(store order.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("orderops"),
		now:    time.Now,
	}
}

// appendEvent fetches an order by name, appends one delivery event to its
// note, optionally rewrites the shipping title, and writes both back.
func (s *Service) appendEvent(ctx context.Context, orderName string, e delivery.Event, title *string) (*order.Order, error) {
	o, err := s.store.GetOrderByName(ctx, orderName)
	if err != nil {
		return nil, err
	}

	note := delivery.Append(o.Note, e)
	update := order.Update{Note: &note, ShippingTitle: title}
	if err := s.store.UpdateOrder(ctx, o.ID, update); err != nil {
		return nil, err
	}

	s.logger.Info("Delivery event appended",
		zap.String("order", orderName),
		zap.String("marker", e.Marker().String()),
	)
	return o, nil
}

// Reschedule records a new delivery date on the order: an event block in
// the note plus the "Rescheduled to <date>" fragment embedded in the
// shipping line title.
func (s *Service) Reschedule(ctx context.Context, orderName, date, reason string) error {
	o, err := s.store.GetOrderByName(ctx, orderName)
	if err != nil {
		return err
	}

	note := delivery.Append(o.Note, delivery.RescheduleEvent{
		NewDate:    date,
		Reason:     reason,
		OccurredAt: s.now(),
	})
	title := delivery.ParseShippingTitle(o.ShippingTitle()).WithReschedule(date).String()

	return s.store.UpdateOrder(ctx, o.ID, order.Update{Note: &note, ShippingTitle: &title})
}

// UpdatePartner records a delivery partner change, splicing the partner
// name into the shipping title while preserving any embedded rescheduled
// date.
func (s *Service) UpdatePartner(ctx context.Context, orderName, partner string) error {
	o, err := s.store.GetOrderByName(ctx, orderName)
	if err != nil {
		return err
	}

	note := delivery.Append(o.Note, delivery.PartnerUpdateEvent{
		Partner:    partner,
		OccurredAt: s.now(),
	})
	title := delivery.SpliceShippingTitle(o.ShippingTitle(), partner)

	return s.store.UpdateOrder(ctx, o.ID, order.Update{Note: &note, ShippingTitle: &title})
}

// Hold records that the order is on hold.
func (s *Service) Hold(ctx context.Context, orderName, reason string) error {
	_, err := s.appendEvent(ctx, orderName, delivery.HoldEvent{
		Reason:     reason,
		OccurredAt: s.now(),
	}, nil)
	return err
}

// Schedule records a confirmed delivery date and slot.
func (s *Service) Schedule(ctx context.Context, orderName, date, slot string) error {
	_, err := s.appendEvent(ctx, orderName, delivery.ScheduledEvent{
		Date:       date,
		Slot:       slot,
		OccurredAt: s.now(),
	}, nil)
	return err
}

// NotifyCustomer records a customer notification.
func (s *Service) NotifyCustomer(ctx context.Context, orderName, channel, message string) error {
	_, err := s.appendEvent(ctx, orderName, delivery.NotificationEvent{
		Channel:    channel,
		Message:    message,
		OccurredAt: s.now(),
	}, nil)
	return err
}

// RescheduleHistory returns the typed reschedule history of an order,
// oldest first.
func (s *Service) RescheduleHistory(ctx context.Context, orderName string) ([]delivery.RescheduleEvent, error) {
	o, err := s.store.GetOrderByName(ctx, orderName)
	if err != nil {
		return nil, err
	}
	return delivery.RescheduleHistory(o.Note), nil
}

// SetStock sets the absolute inventory quantity for a SKU and returns the
// previous quantity.
func (s *Service) SetStock(ctx context.Context, sku string, quantity int) (previous int, err error) {
	itemID, locationID, err := s.store.ResolveInventoryItem(ctx, sku)
	if err != nil {
		return 0, err
	}
	previous, err = s.store.InventoryBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	if err := s.store.SetInventory(ctx, itemID, locationID, quantity); err != nil {
		return previous, err
	}
	s.logger.Info("Stock set",
		zap.String("sku", sku),
		zap.Int("from", previous),
		zap.Int("to", quantity),
	)
	return previous, nil
}

// Return adds a returned quantity back to a SKU's inventory and returns
// the new quantity.
func (s *Service) Return(ctx context.Context, sku string, quantity int) (newQuantity int, err error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("orderops: return quantity must be positive")
	}
	previous, err := s.SetStockDelta(ctx, sku, quantity)
	if err != nil {
		return 0, err
	}
	return previous + quantity, nil
}

// SetStockDelta adjusts a SKU's inventory by delta and returns the
// previous quantity.
func (s *Service) SetStockDelta(ctx context.Context, sku string, delta int) (previous int, err error) {
	itemID, locationID, err := s.store.ResolveInventoryItem(ctx, sku)
	if err != nil {
		return 0, err
	}
	previous, err = s.store.InventoryBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	if err := s.store.SetInventory(ctx, itemID, locationID, previous+delta); err != nil {
		return previous, err
	}
	return previous, nil
}
