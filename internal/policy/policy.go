// Package policy picks the automated side's move by trying a fixed chain of strategies:
// immediate win, immediate block, learned prediction, then exhaustive search.
package policy

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Strategy string

const (
	StrategyWin     Strategy = "win"
	StrategyBlock   Strategy = "block"
	StrategyLearned Strategy = "learned"
	StrategySearch  Strategy = "search"
)

// Decision is a chosen move together with the strategy that produced it.
type Decision struct {
	Move     entity.Move
	Strategy Strategy
}

type predictor interface {
	Sample(key entity.StateKey, available []entity.Move) (entity.Move, bool)
}

type searcher interface {
	BestMove(board entity.Board, mark entity.Mark) (entity.Move, bool)
}

type step struct {
	strategy Strategy
	choose   func(board entity.Board, mark entity.Mark, available []entity.Move) (entity.Move, bool)
}

type Policy struct {
	logger *slog.Logger
	steps  []step
}

// New builds the chain. A nil predictor skips the learned step.
func New(logger *slog.Logger, learned predictor, search searcher) *Policy {
	that := &Policy{
		logger: logger.With("component", "policy"),
	}

	that.steps = []step{
		{strategy: StrategyWin, choose: func(board entity.Board, mark entity.Mark, _ []entity.Move) (entity.Move, bool) {
			return completingMove(board, mark)
		}},
		{strategy: StrategyBlock, choose: func(board entity.Board, mark entity.Mark, _ []entity.Move) (entity.Move, bool) {
			return completingMove(board, mark.Opponent())
		}},
	}

	if learned != nil {
		that.steps = append(that.steps, step{strategy: StrategyLearned, choose: func(board entity.Board, _ entity.Mark, available []entity.Move) (entity.Move, bool) {
			return learned.Sample(board.Key(), available)
		}})
	}

	that.steps = append(that.steps, step{strategy: StrategySearch, choose: func(board entity.Board, mark entity.Mark, _ []entity.Move) (entity.Move, bool) {
		return search.BestMove(board, mark)
	}})

	return that
}

// Decide returns exactly one move for mark on a non-terminal board. available restricts the
// learned step; when nil the board's empty cells are used.
func (that *Policy) Decide(board entity.Board, mark entity.Mark, available []entity.Move) (Decision, error) {
	if !mark.IsPlayer() {
		return Decision{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.IsTerminal() {
		return Decision{}, apperror.ErrNoAvailableMoves
	}

	if available == nil {
		available = board.EmptyCells()
	}

	for _, candidate := range that.steps {
		move, ok := candidate.choose(board, mark, available)
		if !ok {
			continue
		}

		decisionsTotal.WithLabelValues(string(candidate.strategy)).Inc()
		that.logger.Debug("move decided", "strategy", candidate.strategy, "move", move.String(), "state", string(board.Key()))

		return Decision{Move: move, Strategy: candidate.strategy}, nil
	}

	return Decision{}, apperror.ErrNoAvailableMoves
}

// completingMove returns the first empty cell that gives mark a line, trying each on a copy.
func completingMove(board entity.Board, mark entity.Mark) (entity.Move, bool) {
	for _, move := range board.EmptyCells() {
		next, err := board.Apply(move, mark)
		if err != nil {
			continue
		}

		if winner, ok := next.Winner(); ok && winner == mark {
			return move, true
		}
	}

	return entity.Move{}, false
}
