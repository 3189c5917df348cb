// Package forecast produces restock recommendations from trailing sales.
// The predicted monthly demand is defined to equal the observed demand
// over the trailing 30-day window: no smoothing, no seasonality.
package forecast

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
)

// ErrNoSalesData indicates the SKU had zero observed sales in the
// trailing window.
var ErrNoSalesData = errors.New("forecast: no sales data for SKU")

// window is the trailing demand observation period.
const window = 30 * 24 * time.Hour

// minimumRecommendedStock floors the recommendation for any SKU that
// sold at all.
const minimumRecommendedStock = 10

// Prediction is a restock recommendation for one SKU.
type Prediction struct {
	SKU              string
	CurrentStock     int
	MonthlyDemand    int
	RecommendedStock int
	StockNeeded      int
}

// Predictor aggregates trailing sales into restock recommendations.
type Predictor struct {
	store  order.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewPredictor creates a demand predictor.
func NewPredictor(store order.Store, logger *zap.Logger) *Predictor {
	return &Predictor{
		store:  store,
		logger: logger.Named("forecast"),
		now:    time.Now,
	}
}

// Predict returns the restock recommendation for a SKU, or ErrNoSalesData
// when nothing sold in the trailing window.
func (p *Predictor) Predict(ctx context.Context, sku string) (*Prediction, error) {
	since := p.now().Add(-window)

	demand, err := p.store.SoldQuantity(ctx, sku, since)
	if err != nil {
		return nil, err
	}
	if demand == 0 {
		return nil, ErrNoSalesData
	}

	current, err := p.store.InventoryBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	prediction := &Prediction{
		SKU:              sku,
		CurrentStock:     current,
		MonthlyDemand:    demand,
		RecommendedStock: max(demand, minimumRecommendedStock),
		StockNeeded:      max(demand-current, 0),
	}
	p.logger.Debug("Demand predicted",
		zap.String("sku", sku),
		zap.Int("monthly_demand", demand),
		zap.Int("current_stock", current),
	)
	return prediction, nil
}
