// Package state owns the live account directory and its snapshot store,
// and scopes every access to one logical operation.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// State guards the directory with a single reader-writer boundary. Mutations
// run through Update (operator worker), queries through View, so readers
// always see a directory that is between operations, never mid-operation.
type State struct {
	mu    sync.RWMutex
	dir   *directory.Directory
	store storage.Snapshot
}

func New(dir *directory.Directory, store storage.Snapshot) *State {
	return &State{dir: dir, store: store}
}

// View runs fn with shared access to the directory.
func (s *State) View(fn func(dir *directory.Directory) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.dir)
}

// Update runs fn with exclusive access to the directory. fn may call Flush;
// the lock is held until fn returns, so check-then-mutate sequences and the
// flush that follows them are a single atomic step for all other callers.
func (s *State) Update(fn func(dir *directory.Directory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.dir)
}

// Flush writes the whole directory to the snapshot store. Call only from
// within an Update callback; the write lock must already be held.
func (s *State) Flush(ctx context.Context) error {
	if err := s.store.Save(ctx, s.dir); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}
