package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/policy"
)

// Opponent picks moves for the side the engine plays against.
type Opponent interface {
	Move(board entity.Board, mark entity.Mark) (entity.Move, bool)
}

// OptimalOpponent plays a uniformly random move among those that keep the best value.
type OptimalOpponent struct {
	searcher *minimax.Searcher
	rng      *rand.Rand
}

func NewOptimalOpponent(searcher *minimax.Searcher, rng *rand.Rand) *OptimalOpponent {
	return &OptimalOpponent{searcher: searcher, rng: rng}
}

func (that *OptimalOpponent) Move(board entity.Board, mark entity.Mark) (entity.Move, bool) {
	moves := that.searcher.OptimalMoves(board, mark)
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	return moves[that.rng.Intn(len(moves))], true
}

type SimulationReport struct {
	Games        int
	EngineWins   int
	OpponentWins int
	Draws        int
	Strategies   map[policy.Strategy]int
}

// Simulator plays engine vs opponent games without a human.
type Simulator struct {
	logger   *slog.Logger
	engines  engineFactory
	opponent Opponent
}

func NewSimulator(logger *slog.Logger, engines engineFactory, opponent Opponent) *Simulator {
	return &Simulator{
		logger:   logger.With("component", "simulator"),
		engines:  engines,
		opponent: opponent,
	}
}

// Run plays games with the engine holding engineMark. X always moves first.
func (that *Simulator) Run(ctx context.Context, games int, engineMark entity.Mark) (*SimulationReport, error) {
	report := &SimulationReport{Strategies: make(map[policy.Strategy]int)}

	for played := 0; played < games; played++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("simulation interrupted: %w", err)
		}

		result, err := that.play(ctx, engineMark, report)
		if err != nil {
			return report, err
		}

		report.Games++
		switch result {
		case engineMark:
			report.EngineWins++
		case engineMark.Opponent():
			report.OpponentWins++
		default:
			report.Draws++
		}
	}

	that.logger.Info("simulation done",
		"games", report.Games,
		"engine_wins", report.EngineWins,
		"opponent_wins", report.OpponentWins,
		"draws", report.Draws,
	)

	return report, nil
}

func (that *Simulator) play(ctx context.Context, engineMark entity.Mark, report *SimulationReport) (entity.Mark, error) {
	engine := that.engines.NewEngine(engineMark)
	board := entity.Board{}
	turn := entity.MarkX

	for !board.IsTerminal() {
		var move entity.Move

		if turn == engineMark {
			decision, err := engine.Decide(board, nil)
			if err != nil {
				return entity.EmptyCell, err
			}

			report.Strategies[decision.Strategy]++
			move = decision.Move
		} else {
			var ok bool
			if move, ok = that.opponent.Move(board, turn); !ok {
				break
			}

			engine.NotifyOpponentMove(board, move)
		}

		next, err := board.Apply(move, turn)
		if err != nil {
			return entity.EmptyCell, fmt.Errorf("failed simulated turn: %w", err)
		}

		board = next
		turn = turn.Opponent()
	}

	if err := engine.EndGame(ctx); err != nil {
		that.logger.Warn("failed to persist simulated game", "error", err)
	}

	return board.Result(), nil
}
