package inventory

// Alert is a low-stock finding: a SKU whose current quantity is at or
// below its configured threshold.
type Alert struct {
	SKU       string
	Current   int
	Threshold int
}

// ThresholdStore is the persisted SKU → low-stock threshold map. The bot
// process is the only writer.
type ThresholdStore interface {
	// Set creates or updates the threshold for a SKU.
	Set(sku string, threshold int) error
	// Remove deletes the threshold for a SKU; removing an absent SKU is a
	// no-op.
	Remove(sku string) error
	// Thresholds returns a copy of the full map.
	Thresholds() map[string]int
}

// AutoRestockStore is the persisted SKU → restock target map. When a SKU
// trips its low-stock alert and has an auto-restock entry, inventory is
// set back to the target quantity.
type AutoRestockStore interface {
	Set(sku string, target int) error
	Remove(sku string) error
	Targets() map[string]int
}
