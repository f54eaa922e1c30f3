// Package memory is an in-process snapshot backend. It keeps the persisted
// form of the directory and counts saves, which makes flush points cheap to
// assert in tests.
package memory

import (
	"context"
	"sync"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	users   []storage.UserData
	saves   int
	saveErr error
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) (*directory.Directory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.Rebuild(s.users), nil
}

func (s *Store) Save(ctx context.Context, dir *directory.Directory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.users = storage.Flatten(dir)
	s.saves++
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Saves reports how many snapshots have been taken.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailSavesWith makes every subsequent Save return err; nil restores normal
// behavior.
func (s *Store) FailSavesWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}
