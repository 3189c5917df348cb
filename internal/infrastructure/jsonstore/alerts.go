package jsonstore

import "sync"

// SKUQuantityStore is a persisted SKU → integer map. It backs both the
// low-stock threshold store and the auto-restock target store, which share
// the same shape but live in separate files.
type SKUQuantityStore struct {
	path string

	mu     sync.Mutex
	values map[string]int
}

// OpenSKUQuantityStore loads the store at path; a missing file yields an
// empty store.
func OpenSKUQuantityStore(path string) (*SKUQuantityStore, error) {
	s := &SKUQuantityStore{path: path, values: make(map[string]int)}
	if err := load(path, &s.values); err != nil {
		return nil, err
	}
	if s.values == nil {
		s.values = make(map[string]int)
	}
	return s, nil
}

// Set creates or updates the value for a SKU and rewrites the file.
func (s *SKUQuantityStore) Set(sku string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[sku] = value
	return save(s.path, s.values)
}

// Remove deletes a SKU entry; removing an absent SKU is a no-op that
// still succeeds without touching the file.
func (s *SKUQuantityStore) Remove(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[sku]; !ok {
		return nil
	}
	delete(s.values, sku)
	return save(s.path, s.values)
}

// Thresholds returns a copy of the map. Named for the inventory
// ThresholdStore port.
func (s *SKUQuantityStore) Thresholds() map[string]int {
	return s.snapshot()
}

// Targets returns a copy of the map. Named for the inventory
// AutoRestockStore port.
func (s *SKUQuantityStore) Targets() map[string]int {
	return s.snapshot()
}

func (s *SKUQuantityStore) snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
