package delivery

import "time"

// Marker is the fixed literal label delimiting one event-type's block
// inside the order note field. Markers are part of the external
// serialization contract and must not change while legacy notes exist.
type Marker string

const (
	MarkerReschedule    Marker = "RESCHEDULE INFO"
	MarkerPartnerUpdate Marker = "DELIVERY PARTNER UPDATE"
	MarkerHold          Marker = "ORDER ON HOLD"
	MarkerScheduled     Marker = "DELIVERY SCHEDULED"
	MarkerNotification  Marker = "CUSTOMER NOTIFICATION"
)

// String returns the string representation of the marker.
func (m Marker) String() string {
	return string(m)
}

// IsValid returns true if the marker is one of the supported literals.
func (m Marker) IsValid() bool {
	switch m {
	case MarkerReschedule, MarkerPartnerUpdate, MarkerHold, MarkerScheduled, MarkerNotification:
		return true
	default:
		return false
	}
}

// Field keys shared by the event variants.
const (
	keyNewDate   = "New Date"
	keyReason    = "Reason"
	keyPartner   = "Partner"
	keyDate      = "Date"
	keySlot      = "Slot"
	keyChannel   = "Channel"
	keyMessage   = "Message"
	keyUpdatedAt = "Updated At"
)

// Field is one key/value line inside an event block.
type Field struct {
	Key   string
	Value string
}

// Event is one structured delivery-lifecycle fact. Events are appended to
// an order's audit trail and never mutated or removed; history is
// reconstructed by decoding the note text, not stored structurally.
type Event interface {
	// Marker returns the block marker for this event variant.
	Marker() Marker
	// Fields returns the ordered key/value lines of the block, including
	// the timestamp line.
	Fields() []Field
}

// RescheduleEvent records a customer-requested delivery date change.
type RescheduleEvent struct {
	NewDate    string
	Reason     string
	OccurredAt time.Time
}

func (e RescheduleEvent) Marker() Marker { return MarkerReschedule }

func (e RescheduleEvent) Fields() []Field {
	return []Field{
		{keyNewDate, e.NewDate},
		{keyReason, e.Reason},
		{keyUpdatedAt, e.OccurredAt.Format(time.RFC3339)},
	}
}

// PartnerUpdateEvent records a change of the delivery partner handling the
// shipment.
type PartnerUpdateEvent struct {
	Partner    string
	OccurredAt time.Time
}

func (e PartnerUpdateEvent) Marker() Marker { return MarkerPartnerUpdate }

func (e PartnerUpdateEvent) Fields() []Field {
	return []Field{
		{keyPartner, e.Partner},
		{keyUpdatedAt, e.OccurredAt.Format(time.RFC3339)},
	}
}

// HoldEvent records that the order was placed on hold.
type HoldEvent struct {
	Reason     string
	OccurredAt time.Time
}

func (e HoldEvent) Marker() Marker { return MarkerHold }

func (e HoldEvent) Fields() []Field {
	return []Field{
		{keyReason, e.Reason},
		{keyUpdatedAt, e.OccurredAt.Format(time.RFC3339)},
	}
}

// ScheduledEvent records a confirmed delivery date and time slot.
type ScheduledEvent struct {
	Date       string
	Slot       string
	OccurredAt time.Time
}

func (e ScheduledEvent) Marker() Marker { return MarkerScheduled }

func (e ScheduledEvent) Fields() []Field {
	return []Field{
		{keyDate, e.Date},
		{keySlot, e.Slot},
		{keyUpdatedAt, e.OccurredAt.Format(time.RFC3339)},
	}
}

// NotificationEvent records a message sent to the customer.
type NotificationEvent struct {
	Channel    string
	Message    string
	OccurredAt time.Time
}

func (e NotificationEvent) Marker() Marker { return MarkerNotification }

func (e NotificationEvent) Fields() []Field {
	return []Field{
		{keyChannel, e.Channel},
		{keyMessage, e.Message},
		{keyUpdatedAt, e.OccurredAt.Format(time.RFC3339)},
	}
}
