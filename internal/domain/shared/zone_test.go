package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneTableLookup(t *testing.T) {
	table := DefaultZoneTable()

	tests := []struct {
		name    string
		pincode string
		want    Zone
	}{
		{"Lower bound of the local range", "100000", ZoneLocal},
		{"Upper bound of the local range is inclusive", "110000", ZoneLocal},
		{"Just past local is regional", "110001", ZoneRegional},
		{"Upper bound of the regional range", "499999", ZoneRegional},
		{"Lower bound of the national range", "500000", ZoneNational},
		{"Upper bound of the national range", "899999", ZoneNational},
		{"Beyond every named range falls back to standard", "999999", ZoneStandard},
		{"Below every named range falls back to standard", "99999", ZoneStandard},
		{"Non-numeric pincode is invalid", "abc123", ZoneInvalid},
		{"Empty pincode is invalid", "", ZoneInvalid},
		{"Negative number is invalid", "-110001", ZoneInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Lookup(tt.pincode))
		})
	}
}

func TestZoneTableEstimate(t *testing.T) {
	table := DefaultZoneTable()

	t.Run("Local zone delivers in one to two days", func(t *testing.T) {
		zone, minDays, maxDays := table.Estimate("105000")
		assert.Equal(t, ZoneLocal, zone)
		assert.Equal(t, 1, minDays)
		assert.Equal(t, 2, maxDays)
	})

	t.Run("Standard fallback carries the widest window", func(t *testing.T) {
		zone, minDays, maxDays := table.Estimate("999999")
		assert.Equal(t, ZoneStandard, zone)
		assert.Equal(t, 5, minDays)
		assert.Equal(t, 10, maxDays)
	})

	t.Run("Invalid pincode has no window", func(t *testing.T) {
		zone, minDays, maxDays := table.Estimate("not-a-pin")
		assert.Equal(t, ZoneInvalid, zone)
		assert.Zero(t, minDays)
		assert.Zero(t, maxDays)
	})
}

func TestCurrencyTable(t *testing.T) {
	table := DefaultCurrencyTable()

	t.Run("Known codes map to symbols", func(t *testing.T) {
		assert.Equal(t, "₹", table.Symbol("INR"))
		assert.Equal(t, "$", table.Symbol("USD"))
	})

	t.Run("Unknown code falls back to the code with a space", func(t *testing.T) {
		assert.Equal(t, "CHF ", table.Symbol("CHF"))
	})
}
