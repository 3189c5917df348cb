package shared

import "strconv"

// Zone classifies a destination pincode into a delivery zone.
type Zone string

const (
	ZoneLocal    Zone = "Local"
	ZoneRegional Zone = "Regional"
	ZoneNational Zone = "National"
	// ZoneStandard is the fallback for any numeric pincode outside the
	// named ranges.
	ZoneStandard Zone = "Standard"
	// ZoneInvalid is returned for non-numeric pincodes.
	ZoneInvalid Zone = "Invalid"
)

// String returns the string representation of the zone.
func (z Zone) String() string {
	return string(z)
}

// ZoneRange maps a contiguous inclusive pincode interval to a zone and its
// estimated delivery window in days.
type ZoneRange struct {
	Zone    Zone
	Min     int
	Max     int
	MinDays int
	MaxDays int
}

// ZoneTable resolves pincodes against an ordered list of ranges. The table
// is an immutable configuration value threaded through constructors, not a
// package global.
type ZoneTable struct {
	ranges       []ZoneRange
	fallbackDays [2]int
}

// DefaultZoneTable returns the store's delivery zone table. Local covers
// the home region up to and including 110000; anything numeric beyond the
// named ranges ships as Standard.
func DefaultZoneTable() ZoneTable {
	return ZoneTable{
		ranges: []ZoneRange{
			{Zone: ZoneLocal, Min: 100000, Max: 110000, MinDays: 1, MaxDays: 2},
			{Zone: ZoneRegional, Min: 110001, Max: 499999, MinDays: 2, MaxDays: 4},
			{Zone: ZoneNational, Min: 500000, Max: 899999, MinDays: 4, MaxDays: 7},
		},
		fallbackDays: [2]int{5, 10},
	}
}

// Lookup classifies a pincode. Non-numeric input yields ZoneInvalid;
// numeric input outside every named range yields ZoneStandard.
func (t ZoneTable) Lookup(pincode string) Zone {
	zone, _, _ := t.Estimate(pincode)
	return zone
}

// Estimate classifies a pincode and returns the estimated delivery window
// in days for operator display.
func (t ZoneTable) Estimate(pincode string) (zone Zone, minDays, maxDays int) {
	n, err := strconv.Atoi(pincode)
	if err != nil || n < 0 {
		return ZoneInvalid, 0, 0
	}
	for _, r := range t.ranges {
		if n >= r.Min && n <= r.Max {
			return r.Zone, r.MinDays, r.MaxDays
		}
	}
	return ZoneStandard, t.fallbackDays[0], t.fallbackDays[1]
}
