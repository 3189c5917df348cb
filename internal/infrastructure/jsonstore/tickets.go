package jsonstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/support"
)

// ticketFile is the on-disk shape of the ticket store. The sequence
// counter is persisted alongside the tickets so IDs stay monotonic across
// process restarts.
type ticketFile struct {
	Sequence int              `json:"sequence"`
	Tickets  []support.Ticket `json:"tickets"`
}

// TicketStore implements support.TicketStore over a whole-file JSON store.
type TicketStore struct {
	path string
	now  func() time.Time

	mu   sync.Mutex
	data ticketFile
}

// OpenTicketStore loads the ticket store at path; a missing file yields an
// empty store with the sequence at zero.
func OpenTicketStore(path string) (*TicketStore, error) {
	s := &TicketStore{path: path, now: time.Now}
	if err := load(path, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

// Create files a new Open ticket and assigns the next zero-padded
// sequence ID.
func (s *TicketStore) Create(orderID, description string) (support.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Sequence++
	now := s.now()
	ticket := support.Ticket{
		ID:          fmt.Sprintf("%04d", s.data.Sequence),
		OrderID:     orderID,
		Description: description,
		Status:      support.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.data.Tickets = append(s.data.Tickets, ticket)

	if err := save(s.path, &s.data); err != nil {
		// Roll back the in-memory append so a later retry reuses the ID.
		s.data.Tickets = s.data.Tickets[:len(s.data.Tickets)-1]
		s.data.Sequence--
		return support.Ticket{}, err
	}
	return ticket, nil
}

// UpdateStatus transitions a ticket to the given status.
func (s *TicketStore) UpdateStatus(id string, status support.Status) (support.Ticket, error) {
	if !status.IsValid() {
		return support.Ticket{}, support.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Tickets {
		if s.data.Tickets[i].ID != id {
			continue
		}
		previous := s.data.Tickets[i]
		s.data.Tickets[i].Status = status
		s.data.Tickets[i].UpdatedAt = s.now()
		if err := save(s.path, &s.data); err != nil {
			s.data.Tickets[i] = previous
			return support.Ticket{}, err
		}
		return s.data.Tickets[i], nil
	}
	return support.Ticket{}, support.ErrTicketNotFound
}

// Get returns a ticket by ID.
func (s *TicketStore) Get(id string) (support.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.data.Tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return support.Ticket{}, support.ErrTicketNotFound
}

// List returns all tickets, oldest first.
func (s *TicketStore) List() []support.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]support.Ticket, len(s.data.Tickets))
	copy(out, s.data.Tickets)
	return out
}
