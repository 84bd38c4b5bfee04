package markov

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Table maps a board state to how often each move was played from it.
// It is safe for concurrent use so several games can share one table.
type Table struct {
	mu     sync.RWMutex
	counts map[entity.StateKey]map[entity.Move]int
}

func NewTable() *Table {
	return &Table{
		counts: make(map[entity.StateKey]map[entity.Move]int),
	}
}

// Record increments the count for (key, move).
func (that *Table) Record(key entity.StateKey, move entity.Move) {
	that.Add(key, move, 1)
}

// Add increases the count for (key, move) by n. Non-positive n is ignored.
func (that *Table) Add(key entity.StateKey, move entity.Move, n int) {
	if n <= 0 {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	moves, ok := that.counts[key]
	if !ok {
		moves = make(map[entity.Move]int)
		that.counts[key] = moves
	}
	moves[move] += n
}

// Moves returns a copy of the counts recorded for key.
func (that *Table) Moves(key entity.StateKey) map[entity.Move]int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	moves := make(map[entity.Move]int, len(that.counts[key]))
	for move, count := range that.counts[key] {
		moves[move] = count
	}

	return moves
}

// Len returns the number of states with at least one recorded move.
func (that *Table) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.counts)
}

// Transitions returns the number of distinct (state, move) entries.
func (that *Table) Transitions() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	total := 0
	for _, moves := range that.counts {
		total += len(moves)
	}

	return total
}

// Snapshot returns a deep copy of the table contents.
func (that *Table) Snapshot() map[entity.StateKey]map[entity.Move]int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot := make(map[entity.StateKey]map[entity.Move]int, len(that.counts))
	for key, moves := range that.counts {
		copied := make(map[entity.Move]int, len(moves))
		for move, count := range moves {
			copied[move] = count
		}
		snapshot[key] = copied
	}

	return snapshot
}
