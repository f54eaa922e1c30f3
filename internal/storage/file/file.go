// Package file is a single-file snapshot backend. The whole directory is
// msgpack-encoded and written atomically via a temp file and rename.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type snapshotFile struct {
	Users []storage.UserData `msgpack:"users"`
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the snapshot. A missing file yields an empty directory; a file
// that cannot be decoded is an error the caller may degrade from.
func (s *Store) Load(ctx context.Context) (*directory.Directory, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return directory.New(), nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var snap snapshotFile
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return storage.Rebuild(snap.Users), nil
}

// Save writes the whole directory as one unit. The rename makes the swap
// atomic on the same filesystem, so a failed write never clobbers the
// previous snapshot.
func (s *Store) Save(ctx context.Context, dir *directory.Directory) error {
	raw, err := msgpack.Marshal(snapshotFile{Users: storage.Flatten(dir)})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
