package support

import (
	"errors"
	"time"
)

var (
	// ErrTicketNotFound indicates no ticket matched the requested ID.
	ErrTicketNotFound = errors.New("support: ticket not found")
	// ErrInvalidStatus indicates an unknown ticket status value.
	ErrInvalidStatus = errors.New("support: invalid ticket status")
)

// Status represents the lifecycle state of a support ticket.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "InProgress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// IsValid returns true if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Ticket is one operator-filed support ticket tied to an order. IDs are a
// zero-padded monotonically increasing sequence scoped to the store.
type Ticket struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TicketStore is the persisted ticket collection. The bot process is the
// only writer.
type TicketStore interface {
	// Create files a new Open ticket and assigns the next sequence ID.
	Create(orderID, description string) (Ticket, error)
	// UpdateStatus transitions a ticket to the given status.
	UpdateStatus(id string, status Status) (Ticket, error)
	// Get returns a ticket by ID.
	Get(id string) (Ticket, error)
	// List returns all tickets, oldest first.
	List() []Ticket
}
