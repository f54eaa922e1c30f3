// Package actions holds the mutations the operator performs against the
// account state. Each action is all-or-nothing: it mutates the directory,
// flushes the snapshot, and undoes its own mutation when the flush fails.
package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/state"
)

type IAction interface {
	Perform(ctx context.Context, st *state.State) error
}
