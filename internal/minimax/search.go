// Package minimax implements exhaustive adversarial search over the 3x3 board.
//
// Scores are taken from the maximizing mark's perspective: +1 win, -1 loss, 0 draw.
// There is no depth discount, so equally scored moves tie and the first one in
// row-major order is chosen.
package minimax

import (
	"math"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ScoreWin  = 1
	ScoreDraw = 0
	ScoreLoss = -1
)

type position struct {
	board     entity.Board
	toMove    entity.Mark
	maximizer entity.Mark
}

// Searcher memoizes position scores. The cache never changes which move is returned.
type Searcher struct {
	mu    sync.Mutex
	cache map[position]int
}

func NewSearcher() *Searcher {
	return &Searcher{
		cache: make(map[position]int),
	}
}

var defaultSearcher = NewSearcher()

// BestMove runs the shared default searcher.
func BestMove(board entity.Board, mark entity.Mark) (entity.Move, bool) {
	return defaultSearcher.BestMove(board, mark)
}

// BestMove returns the optimal move for mark, or false when the board has no empty cell.
func (that *Searcher) BestMove(board entity.Board, mark entity.Mark) (entity.Move, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	bestScore := math.MinInt
	var bestMove entity.Move
	found := false

	for _, move := range board.EmptyCells() {
		next, err := board.Apply(move, mark)
		if err != nil {
			continue
		}

		// strict comparison keeps the first move on ties
		if score := that.score(next, mark.Opponent(), mark); score > bestScore {
			bestScore = score
			bestMove = move
			found = true
		}
	}

	return bestMove, found
}

// OptimalMoves returns every move for mark that keeps the best value, in row-major order.
func (that *Searcher) OptimalMoves(board entity.Board, mark entity.Mark) []entity.Move {
	that.mu.Lock()
	defer that.mu.Unlock()

	best := math.MinInt
	var moves []entity.Move

	for _, move := range board.EmptyCells() {
		next, err := board.Apply(move, mark)
		if err != nil {
			continue
		}

		score := that.score(next, mark.Opponent(), mark)
		switch {
		case score > best:
			best = score
			moves = []entity.Move{move}
		case score == best:
			moves = append(moves, move)
		}
	}

	return moves
}

// Score returns the game-theoretic value of board with toMove to play, seen from maximizer.
func (that *Searcher) Score(board entity.Board, toMove, maximizer entity.Mark) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.score(board, toMove, maximizer)
}

func (that *Searcher) score(board entity.Board, toMove, maximizer entity.Mark) int {
	if winner, ok := board.Winner(); ok {
		if winner == maximizer {
			return ScoreWin
		}
		return ScoreLoss
	}

	if board.IsFull() {
		return ScoreDraw
	}

	pos := position{board: board, toMove: toMove, maximizer: maximizer}
	if cached, ok := that.cache[pos]; ok {
		return cached
	}

	maximizing := toMove == maximizer
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, move := range board.EmptyCells() {
		next, err := board.Apply(move, toMove)
		if err != nil {
			continue
		}

		childScore := that.score(next, toMove.Opponent(), maximizer)
		if maximizing {
			best = max(best, childScore)
		} else {
			best = min(best, childScore)
		}
	}

	that.cache[pos] = best

	return best
}
