// Package markov holds the learned opponent model: a first-order frequency table from
// board state to the moves the opponent played from it.
//
// Counts only grow. Nothing decays, so old habits weigh as much as recent ones.
package markov

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Transition is one observed opponent move.
type Transition struct {
	State entity.StateKey
	Move  entity.Move
}

type Saver interface {
	Save(ctx context.Context, table *Table) error
}

// Model owns the session history of one game and shares the Table with other games.
type Model struct {
	table   *Table
	saver   Saver
	rng     *rand.Rand
	history []Transition
}

func NewModel(table *Table, saver Saver, rng *rand.Rand) *Model {
	return &Model{
		table: table,
		saver: saver,
		rng:   rng,
	}
}

func (that *Model) Table() *Table {
	return that.table
}

// RecordTransition folds a single observation straight into the table.
func (that *Model) RecordTransition(key entity.StateKey, move entity.Move) {
	that.table.Record(key, move)
	transitionsRecorded.Inc()
}

// Observe appends an opponent move to the session history.
func (that *Model) Observe(key entity.StateKey, move entity.Move) {
	that.history = append(that.history, Transition{State: key, Move: move})
}

func (that *Model) History() []Transition {
	history := make([]Transition, len(that.history))
	copy(history, that.history)

	return history
}

// Sample draws a move with probability count/sum over the recorded moves that are still available.
// It returns false when nothing recorded for key is available.
func (that *Model) Sample(key entity.StateKey, available []entity.Move) (entity.Move, bool) {
	recorded := that.table.Moves(key)
	if len(recorded) == 0 {
		return entity.Move{}, false
	}

	candidates := make([]entity.Move, 0, len(available))
	seen := make(map[entity.Move]bool, len(available))
	total := 0
	for _, move := range available {
		count := recorded[move]
		if count <= 0 || seen[move] {
			continue
		}
		seen[move] = true
		candidates = append(candidates, move)
		total += count
	}

	if total == 0 {
		return entity.Move{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Index() < candidates[j].Index()
	})

	pick := that.rng.Intn(total) //nolint: gosec // not security sensitive
	for _, move := range candidates {
		pick -= recorded[move]
		if pick < 0 {
			return move, true
		}
	}

	return candidates[len(candidates)-1], true
}

// EndOfGame folds the session history into the table, clears it and saves the table.
// The table is saved even when the history is empty.
func (that *Model) EndOfGame(ctx context.Context) error {
	for _, transition := range that.history {
		that.RecordTransition(transition.State, transition.Move)
	}
	that.history = nil

	if that.saver == nil {
		return nil
	}

	if err := that.saver.Save(ctx, that.table); err != nil {
		return fmt.Errorf("failed to save transition table: %w", err)
	}

	return nil
}
