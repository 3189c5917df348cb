package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShippingTitle(t *testing.T) {
	t.Run("Bare carrier title has no date", func(t *testing.T) {
		parsed := ParseShippingTitle("Standard Shipping")
		assert.Equal(t, "Standard Shipping", parsed.Carrier)
		assert.Empty(t, parsed.RescheduledTo)
	})

	t.Run("Combined title splits into carrier and date", func(t *testing.T) {
		parsed := ParseShippingTitle("Delhivery - Rescheduled to 2025-02-01")
		assert.Equal(t, "Delhivery", parsed.Carrier)
		assert.Equal(t, "2025-02-01", parsed.RescheduledTo)
	})

	t.Run("Title starting with the fragment has no carrier", func(t *testing.T) {
		parsed := ParseShippingTitle("Rescheduled to 2025-02-01")
		assert.Empty(t, parsed.Carrier)
		assert.Equal(t, "2025-02-01", parsed.RescheduledTo)
	})

	t.Run("Empty title parses to zero value", func(t *testing.T) {
		assert.Equal(t, ShippingTitle{}, ParseShippingTitle(""))
	})
}

func TestShippingTitleString(t *testing.T) {
	t.Run("Round trip preserves the combined format", func(t *testing.T) {
		original := "BlueDart - Rescheduled to 2025-03-10"
		assert.Equal(t, original, ParseShippingTitle(original).String())
	})

	t.Run("No date serializes to the bare carrier", func(t *testing.T) {
		assert.Equal(t, "Delhivery", ShippingTitle{Carrier: "Delhivery"}.String())
	})
}

func TestSpliceShippingTitle(t *testing.T) {
	t.Run("Partner change preserves the embedded date", func(t *testing.T) {
		got := SpliceShippingTitle("Delhivery - Rescheduled to 2025-02-01", "BlueDart")
		assert.Equal(t, "BlueDart - Rescheduled to 2025-02-01", got)
	})

	t.Run("Partner change replaces a date-free title entirely", func(t *testing.T) {
		got := SpliceShippingTitle("Free Shipping", "Delhivery")
		assert.Equal(t, "Delhivery", got)
	})

	t.Run("Reschedule keeps the carrier", func(t *testing.T) {
		title := ParseShippingTitle("Delhivery").WithReschedule("2025-04-05").String()
		assert.Equal(t, "Delhivery - Rescheduled to 2025-04-05", title)

		again := ParseShippingTitle(title).WithReschedule("2025-04-20").String()
		assert.Equal(t, "Delhivery - Rescheduled to 2025-04-20", again)
	})
}
