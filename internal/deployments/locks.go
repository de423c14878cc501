package deployments

import (
	"sync"

	"github.com/google/uuid"
)

// recordLocks serializes operations per deployment id. Operations on
// different ids proceed in parallel; two operations on the same id never
// interleave their read-modify-write of the record.
type recordLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{
		entries: make(map[uuid.UUID]*lockEntry),
	}
}

// Lock acquires the lock for id and returns the corresponding unlock
// function. Entries are reference counted so the map does not grow with
// the number of deployments ever seen.
func (l *recordLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}
