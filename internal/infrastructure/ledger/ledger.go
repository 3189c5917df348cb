// Package ledger persists the set of already-processed tracking IDs as a
// newline-separated file. The file is append-only: IDs are added, never
// rewritten in place and never pruned.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileLedger implements tracking.Ledger over a flat file. Loading a
// non-existent file yields an empty ledger, never an error.
type FileLedger struct {
	path string

	mu  sync.RWMutex
	ids map[string]struct{}
}

// Open loads the ledger file at path, creating an empty ledger when the
// file does not exist yet.
func Open(path string) (*FileLedger, error) {
	l := &FileLedger{
		path: path,
		ids:  make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		l.ids[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ledger: read %s: %w", path, err)
	}

	return l, nil
}

// Contains reports whether the tracking ID has already been processed.
func (l *FileLedger) Contains(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.ids[id]
	return ok
}

// Size returns the number of IDs currently in the ledger.
func (l *FileLedger) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

// Commit appends the given IDs to the file, skipping any already present.
// An empty set is a no-op. The append is atomic at the call level: either
// all new IDs land in memory and on disk, or the error leaves the ledger
// file untouched.
func (l *FileLedger) Commit(ids []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var fresh []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := l.ids[id]; ok {
			continue
		}
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 {
		return nil
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ledger: create dir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("ledger: open %s for append: %w", l.path, err)
	}
	defer f.Close()

	var b strings.Builder
	for _, id := range fresh {
		b.WriteString(id)
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("ledger: append to %s: %w", l.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("ledger: sync %s: %w", l.path, err)
	}

	for _, id := range fresh {
		l.ids[id] = struct{}{}
	}
	return nil
}
