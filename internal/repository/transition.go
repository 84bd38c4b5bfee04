package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
)

// TransitionRepository stores the learned table as a single named record.
// Get returns apperror.ErrRecordNotFound when nothing is stored and
// apperror.ErrCorruptPersistedState when the record does not decode.
type TransitionRepository interface {
	Get(ctx context.Context) (*markov.Table, error)
	Save(ctx context.Context, table *markov.Table) error
}
