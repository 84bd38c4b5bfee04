package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

type engineFactory interface {
	NewEngine(mark entity.Mark) *service.Engine
}

type session struct {
	mu     sync.Mutex
	game   *entity.Game
	engine *service.Engine
	human  entity.Mark
}

// GameManager runs human vs engine games. Each game has its own board and engine session;
// the learned table behind the engines is shared.
type GameManager struct {
	logger  *slog.Logger
	engines engineFactory

	mu       sync.Mutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, engines engineFactory) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		engines:  engines,
		sessions: make(map[string]*session),
	}
}

// NewGame starts a game where the human plays humanMark. When the engine plays X it has
// already made its opening move in the returned game.
func (that *GameManager) NewGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error) {
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}

	gameID := uuid.NewString()
	engine := that.engines.NewEngine(humanMark.Opponent())

	game := entity.NewGame(gameID)
	game.Players = []*entity.Player{
		{ID: uuid.NewString(), Mark: humanMark},
		entity.NewEnginePlayer(gameID, engine.Mark()),
	}

	current := &session{game: game, engine: engine, human: humanMark}

	current.mu.Lock()
	defer current.mu.Unlock()

	if game.Turn == engine.Mark() {
		if err := that.engineTurn(ctx, current); err != nil {
			return nil, err
		}
	}

	that.mu.Lock()
	that.sessions[gameID] = current
	that.mu.Unlock()

	that.logger.Info("game started", "game_id", gameID, "human", string(humanMark))

	return snapshot(game), nil
}

// MakeTurn plays the human move and the engine's reply. Once the game is finished its
// learning is flushed and the game is forgotten; a failed save is logged only.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	current, err := that.getSession(gameID)
	if err != nil {
		return nil, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	prev := current.game.Board
	if err = current.game.MakeTurn(current.human, move); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	current.engine.NotifyOpponentMove(prev, move)

	if current.game.IsOngoing() {
		if err = that.engineTurn(ctx, current); err != nil {
			return nil, err
		}
	}

	if current.game.IsFinished() {
		that.finish(ctx, current)
	}

	return snapshot(current.game), nil
}

// Abandon drops an unfinished game and flushes what the engine observed so far.
func (that *GameManager) Abandon(ctx context.Context, gameID string) error {
	current, err := that.getSession(gameID)
	if err != nil {
		return err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	that.finish(ctx, current)

	return nil
}

func (that *GameManager) GetGame(gameID string) (*entity.Game, error) {
	current, err := that.getSession(gameID)
	if err != nil {
		return nil, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	return snapshot(current.game), nil
}

func (that *GameManager) engineTurn(ctx context.Context, current *session) error {
	log := that.logger.With("method", "engineTurn", "game_id", current.game.ID)

	move, ok := current.engine.RequestMove(current.game.Board, nil)
	if !ok {
		return fmt.Errorf("%w: game %s", apperror.ErrNoAvailableMoves, current.game.ID)
	}

	if err := current.game.MakeTurn(current.engine.Mark(), move); err != nil {
		return fmt.Errorf("failed engine turn: %w", err)
	}

	log.DebugContext(ctx, "engine moved", "move", move.String())

	return nil
}

func (that *GameManager) finish(ctx context.Context, current *session) {
	log := that.logger.With("method", "finish", "game_id", current.game.ID)

	that.mu.Lock()
	delete(that.sessions, current.game.ID)
	that.mu.Unlock()

	if err := current.engine.EndGame(ctx); err != nil {
		log.Error("failed to persist learning", "error", err)
	}

	log.Info("game finished", "status", current.game.Status, "winner", string(current.game.Winner))
}

func (that *GameManager) getSession(gameID string) (*session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	return current, nil
}

func snapshot(game *entity.Game) *entity.Game {
	clone := *game
	clone.Players = append([]*entity.Player(nil), game.Players...)

	return &clone
}
