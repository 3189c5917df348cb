package delivery

import "strings"

// rescheduledTo is the literal fragment embedded in a shipping line title
// when a delivery has been rescheduled. External tooling greps for it, so
// the fragment is a frozen contract.
const rescheduledTo = "Rescheduled to "

// ShippingTitle models the two facts overloaded onto an order's single
// shipping line title: the carrier name and an optional rescheduled
// delivery date. The combined legacy string only exists at the store
// boundary; code should carry this struct instead.
type ShippingTitle struct {
	Carrier       string
	RescheduledTo string
}

// ParseShippingTitle splits a legacy title back into carrier and date.
// A title without the rescheduled fragment is all carrier.
func ParseShippingTitle(title string) ShippingTitle {
	before, after, ok := strings.Cut(title, rescheduledTo)
	if !ok {
		return ShippingTitle{Carrier: strings.TrimSpace(title)}
	}
	return ShippingTitle{
		Carrier:       strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(before), "-")),
		RescheduledTo: strings.TrimSpace(after),
	}
}

// String serializes back into the legacy title format:
// "<Carrier> - Rescheduled to <date>" when a date is present, the bare
// carrier name otherwise.
func (t ShippingTitle) String() string {
	if t.RescheduledTo == "" {
		return t.Carrier
	}
	if t.Carrier == "" {
		return rescheduledTo + t.RescheduledTo
	}
	return t.Carrier + " - " + rescheduledTo + t.RescheduledTo
}

// WithReschedule returns a title carrying the new delivery date, keeping
// the existing carrier.
func (t ShippingTitle) WithReschedule(date string) ShippingTitle {
	t.RescheduledTo = date
	return t
}

// WithPartner returns a title with the carrier replaced. Any embedded
// rescheduled date is preserved: this is the splice behavior the legacy
// format demands. When the incoming title had no date fragment the partner
// name simply replaces the whole title.
func (t ShippingTitle) WithPartner(partner string) ShippingTitle {
	t.Carrier = partner
	return t
}

// SpliceShippingTitle applies a partner update directly to a legacy title
// string. Brittle by contract: if the "Rescheduled to" fragment is absent
// the partner name replaces the entire title.
func SpliceShippingTitle(title, partner string) string {
	return ParseShippingTitle(title).WithPartner(partner).String()
}
