package jsonstore

import "sync"

// NotificationStore persists the chat IDs subscribed to report fan-outs.
type NotificationStore struct {
	path string

	mu    sync.Mutex
	chats map[int64]bool
}

// OpenNotificationStore loads the subscription store at path; a missing
// file yields an empty store.
func OpenNotificationStore(path string) (*NotificationStore, error) {
	s := &NotificationStore{path: path, chats: make(map[int64]bool)}
	if err := load(path, &s.chats); err != nil {
		return nil, err
	}
	if s.chats == nil {
		s.chats = make(map[int64]bool)
	}
	return s, nil
}

// Subscribe adds a chat to the fan-out list.
func (s *NotificationStore) Subscribe(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatID] = true
	return save(s.path, s.chats)
}

// Unsubscribe removes a chat from the fan-out list.
func (s *NotificationStore) Unsubscribe(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.chats[chatID] {
		return nil
	}
	delete(s.chats, chatID)
	return save(s.path, s.chats)
}

// Subscribers returns the subscribed chat IDs.
func (s *NotificationStore) Subscribers() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		out = append(out, id)
	}
	return out
}
