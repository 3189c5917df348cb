// Package alerting implements the threshold-based low-stock detector and
// the optional auto-restock follow-up.
package alerting

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/inventory"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
)

// Engine evaluates the persisted SKU → threshold map against live
// inventory.
type Engine struct {
	store       order.Store
	thresholds  inventory.ThresholdStore
	autoRestock inventory.AutoRestockStore
	logger      *zap.Logger
}

// NewEngine creates an alert engine.
func NewEngine(store order.Store, thresholds inventory.ThresholdStore, autoRestock inventory.AutoRestockStore, logger *zap.Logger) *Engine {
	return &Engine{
		store:       store,
		thresholds:  thresholds,
		autoRestock: autoRestock,
		logger:      logger.Named("alerting"),
	}
}

// SetThreshold creates or updates the low-stock threshold for a SKU.
func (e *Engine) SetThreshold(sku string, threshold int) error {
	return e.thresholds.Set(sku, threshold)
}

// SetAutoRestock creates or updates the auto-restock target for a SKU.
func (e *Engine) SetAutoRestock(sku string, target int) error {
	return e.autoRestock.Set(sku, target)
}

// CheckLowStock returns an alert for every configured SKU whose current
// inventory is at or below its threshold. A SKU whose inventory cannot be
// fetched is skipped silently: not alerted, not an error. Results are
// sorted by SKU for stable operator output.
func (e *Engine) CheckLowStock(ctx context.Context) ([]inventory.Alert, error) {
	thresholds := e.thresholds.Thresholds()

	var alerts []inventory.Alert
	for sku, threshold := range thresholds {
		current, err := e.store.InventoryBySKU(ctx, sku)
		if err != nil {
			e.logger.Debug("Inventory fetch skipped for alert check",
				zap.String("sku", sku),
				zap.Error(err),
			)
			continue
		}
		if current <= threshold {
			alerts = append(alerts, inventory.Alert{
				SKU:       sku,
				Current:   current,
				Threshold: threshold,
			})
		}
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].SKU < alerts[j].SKU })
	return alerts, nil
}

// ApplyAutoRestock sets inventory back to the configured target for every
// alerted SKU that has an auto-restock entry. Returns a human-readable
// action line per restock attempt.
func (e *Engine) ApplyAutoRestock(ctx context.Context, alerts []inventory.Alert) []string {
	targets := e.autoRestock.Targets()

	var actions []string
	for _, alert := range alerts {
		target, ok := targets[alert.SKU]
		if !ok {
			continue
		}
		if target <= alert.Current {
			continue
		}

		itemID, locationID, err := e.store.ResolveInventoryItem(ctx, alert.SKU)
		if err != nil {
			actions = append(actions, fmt.Sprintf("%s: auto-restock failed: %v", alert.SKU, err))
			continue
		}
		if err := e.store.SetInventory(ctx, itemID, locationID, target); err != nil {
			actions = append(actions, fmt.Sprintf("%s: auto-restock failed: %v", alert.SKU, err))
			continue
		}
		actions = append(actions, fmt.Sprintf("%s: auto-restocked %d → %d", alert.SKU, alert.Current, target))
		e.logger.Info("Auto-restock applied",
			zap.String("sku", alert.SKU),
			zap.Int("from", alert.Current),
			zap.Int("to", target),
		)
	}
	return actions
}
