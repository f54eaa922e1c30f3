package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/state"
)

// Flush snapshots the directory without mutating it. Used at session end.
type Flush struct{}

func (a *Flush) Perform(ctx context.Context, st *state.State) error {
	return st.Update(func(dir *directory.Directory) error {
		return st.Flush(ctx)
	})
}
