package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
)

type transitionRepo interface {
	Get(ctx context.Context) (*markov.Table, error)
	Save(ctx context.Context, table *markov.Table) error
}

// Persistence loads and saves the learned table. Loading never fails: a missing or
// unreadable record becomes an empty table.
type Persistence struct {
	logger *slog.Logger
	repo   transitionRepo
}

func NewPersistence(logger *slog.Logger, repo transitionRepo) *Persistence {
	return &Persistence{
		logger: logger.With("component", "persistence"),
		repo:   repo,
	}
}

func (that *Persistence) Load(ctx context.Context) *markov.Table {
	log := that.logger.With("method", "Load")

	table, err := that.repo.Get(ctx)
	switch {
	case err == nil:
		persistenceOperations.WithLabelValues("load", "ok").Inc()
		log.Info("transition table loaded", "states", table.Len(), "transitions", table.Transitions())
		return table
	case errors.Is(err, apperror.ErrRecordNotFound):
		persistenceOperations.WithLabelValues("load", "empty").Inc()
		log.Warn("no stored transition table, starting empty")
	case errors.Is(err, apperror.ErrCorruptPersistedState):
		persistenceOperations.WithLabelValues("load", "corrupt").Inc()
		log.Warn("stored transition table is corrupt, starting empty", "error", err)
	default:
		persistenceOperations.WithLabelValues("load", "error").Inc()
		log.Warn("could not read transition table, starting empty", "error", err)
	}

	return markov.NewTable()
}

// Save overwrites the stored record. Failures wrap apperror.ErrStorageWriteFailure.
func (that *Persistence) Save(ctx context.Context, table *markov.Table) error {
	if err := that.repo.Save(ctx, table); err != nil {
		persistenceOperations.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("%w: %w", apperror.ErrStorageWriteFailure, err)
	}

	persistenceOperations.WithLabelValues("save", "ok").Inc()
	that.logger.Debug("transition table saved", "states", table.Len(), "transitions", table.Transitions())

	return nil
}
