package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

func TestLoad_FreshStoreIsEmpty(t *testing.T) {
	store := New()

	dir, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, dir.Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := New()

	dir := directory.New()
	alice, err := dir.Register("alice", "secret1")
	assert.NoError(t, err)
	alice.Wallet.AddTransaction(ledger.NewRecord(ledger.Income, "Salary", 2000, ""))

	assert.NoError(t, store.Save(context.Background(), dir))
	assert.Equal(t, 1, store.Saves())

	loaded, err := store.Load(context.Background())
	assert.NoError(t, err)

	restored, err := loaded.Authenticate("alice", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, float64(2000), restored.Wallet.Balance())
}

func TestSave_SnapshotIsDetachedFromLiveDirectory(t *testing.T) {
	store := New()

	dir := directory.New()
	alice, _ := dir.Register("alice", "pw")
	assert.NoError(t, store.Save(context.Background(), dir))

	// Mutations after the save must not leak into the stored snapshot.
	alice.Wallet.AddTransaction(ledger.NewRecord(ledger.Income, "Salary", 500, ""))

	loaded, err := store.Load(context.Background())
	assert.NoError(t, err)
	restored, err := loaded.Resolve("alice")
	assert.NoError(t, err)
	assert.Empty(t, restored.Wallet.Transactions())
}

func TestFailSavesWith(t *testing.T) {
	store := New()
	boom := errors.New("disk full")
	store.FailSavesWith(boom)

	err := store.Save(context.Background(), directory.New())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Saves())

	store.FailSavesWith(nil)
	assert.NoError(t, store.Save(context.Background(), directory.New()))
	assert.Equal(t, 1, store.Saves())
}
