package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/state"
)

// RegisterUser creates an account with an empty wallet and flushes the
// directory.
type RegisterUser struct {
	Login  string
	Secret string
}

func (a *RegisterUser) Perform(ctx context.Context, st *state.State) error {
	return st.Update(func(dir *directory.Directory) error {
		if _, err := dir.Register(a.Login, a.Secret); err != nil {
			return err
		}
		if err := st.Flush(ctx); err != nil {
			dir.Deregister(a.Login)
			return err
		}
		return nil
	})
}
