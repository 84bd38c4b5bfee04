package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/policy"
)

// Engine answers moves for one game. It owns that game's session history; the learned
// table behind it may be shared with other engines.
type Engine struct {
	logger   *slog.Logger
	mark     entity.Mark
	model    *markov.Model
	policy   *policy.Policy
	learning bool
}

func NewEngine(logger *slog.Logger, mark entity.Mark, model *markov.Model, searcher *minimax.Searcher, learning bool) *Engine {
	return &Engine{
		logger:   logger.With("component", "engine", "mark", string(mark)),
		mark:     mark,
		model:    model,
		policy:   policy.New(logger, model, searcher),
		learning: learning,
	}
}

func (that *Engine) Mark() entity.Mark {
	return that.mark
}

// Decide returns the move and the strategy that produced it.
func (that *Engine) Decide(board entity.Board, available []entity.Move) (policy.Decision, error) {
	decision, err := that.policy.Decide(board, that.mark, available)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("failed to decide move: %w", err)
	}

	return decision, nil
}

// RequestMove returns false only when the board is terminal.
func (that *Engine) RequestMove(board entity.Board, available []entity.Move) (entity.Move, bool) {
	decision, err := that.Decide(board, available)
	if err != nil {
		return entity.Move{}, false
	}

	return decision.Move, true
}

// NotifyOpponentMove records that the opponent played move from prev. Moves that were not
// legal on prev are ignored.
func (that *Engine) NotifyOpponentMove(prev entity.Board, move entity.Move) {
	if !that.learning {
		return
	}

	if _, err := prev.Apply(move, that.mark.Opponent()); err != nil {
		that.logger.Warn("ignoring opponent move", "move", move.String(), "state", string(prev.Key()), "error", err)
		return
	}

	that.model.Observe(prev.Key(), move)
}

// EndGame folds the session into the learned table and persists it. A save failure is
// returned but the learned counts stay in memory.
func (that *Engine) EndGame(ctx context.Context) error {
	if !that.learning {
		return nil
	}

	if err := that.model.EndOfGame(ctx); err != nil {
		that.logger.Warn("learning for this game was not persisted", "error", err)
		return err
	}

	return nil
}

// EngineFactory builds one Engine per game over a shared table and searcher.
type EngineFactory struct {
	logger   *slog.Logger
	table    *markov.Table
	saver    markov.Saver
	searcher *minimax.Searcher
	learning bool
	seed     int64
	games    atomic.Int64
}

// NewEngineFactory uses seed for reproducible sampling; seed 0 seeds from the clock.
func NewEngineFactory(logger *slog.Logger, table *markov.Table, saver markov.Saver, searcher *minimax.Searcher, learning bool, seed int64) *EngineFactory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &EngineFactory{
		logger:   logger,
		table:    table,
		saver:    saver,
		searcher: searcher,
		learning: learning,
		seed:     seed,
	}
}

func (that *EngineFactory) NewEngine(mark entity.Mark) *Engine {
	rng := rand.New(rand.NewSource(that.seed + that.games.Add(1))) //nolint: gosec // not security sensitive
	model := markov.NewModel(that.table, that.saver, rng)

	return NewEngine(that.logger, mark, model, that.searcher, that.learning)
}

func (that *EngineFactory) Table() *markov.Table {
	return that.table
}
