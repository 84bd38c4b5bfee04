package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/policy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

var errStorageIsFull = errors.New("storage is full")

type mockSaver struct {
	mock.Mock
}

func (that *mockSaver) Save(ctx context.Context, table *markov.Table) error {
	args := that.Called(ctx, table)
	return args.Error(0)
}

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	sharedSearch  = minimax.NewSearcher()
)

func newTestManager(saver markov.Saver) (*GameManager, *service.EngineFactory) {
	factory := service.NewEngineFactory(discardLogger, markov.NewTable(), saver, sharedSearch, true, 5)
	return NewGameManager(discardLogger, factory), factory
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human X starts on an empty board", func(t *testing.T) {
		manager, _ := newTestManager(&mockSaver{})

		game, err := manager.NewGame(ctx, entity.MarkX)

		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Equal(t, entity.MarkX, game.Turn)
		assert.True(t, game.IsOngoing())
		require.NotNil(t, game.EnginePlayer())
		assert.Equal(t, entity.MarkO, game.EnginePlayer().Mark)
		assert.Equal(t, entity.MarkX, game.HumanPlayer().Mark)
	})

	t.Run("Engine opens when the human plays O", func(t *testing.T) {
		manager, _ := newTestManager(&mockSaver{})

		game, err := manager.NewGame(ctx, entity.MarkO)

		require.NoError(t, err)
		assert.Equal(t, 1, game.Board.CountMarks(entity.MarkX))
		assert.Equal(t, entity.MarkO, game.Turn)
	})

	t.Run("Rejects a non player mark", func(t *testing.T) {
		manager, _ := newTestManager(&mockSaver{})

		_, err := manager.NewGame(ctx, entity.MarkTie)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown game", func(t *testing.T) {
		manager, _ := newTestManager(&mockSaver{})

		_, err := manager.MakeTurn(ctx, "missing", entity.Move{})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Occupied cell leaves the game unchanged", func(t *testing.T) {
		// Given: a game where the engine already opened
		manager, _ := newTestManager(&mockSaver{})
		game, err := manager.NewGame(ctx, entity.MarkO)
		require.NoError(t, err)

		var taken entity.Move
		for index := 0; index < entity.BoardSize; index++ {
			if game.Board[index] != entity.EmptyCell {
				taken = entity.MoveFromIndex(index)
			}
		}

		// When: the human plays on the engine's cell
		_, err = manager.MakeTurn(ctx, game.ID, taken)

		// Then: the move is rejected and the board is as before
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		current, err := manager.GetGame(game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.Board, current.Board)
	})

	t.Run("Engine replies and never loses a full game", func(t *testing.T) {
		// Given: a human X playing the first empty cell every turn
		saver := &mockSaver{}
		saver.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		manager, factory := newTestManager(saver)

		game, err := manager.NewGame(ctx, entity.MarkX)
		require.NoError(t, err)

		// When: playing until the game is over
		for game.IsOngoing() {
			game, err = manager.MakeTurn(ctx, game.ID, game.Board.EmptyCells()[0])
			require.NoError(t, err)
		}

		// Then: the human did not win, learning was flushed and the game is gone
		assert.NotEqual(t, entity.MarkX, game.Winner)
		assert.Positive(t, factory.Table().Transitions())
		saver.AssertExpectations(t)

		_, err = manager.GetGame(game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Failed save does not fail the game", func(t *testing.T) {
		saver := &mockSaver{}
		saver.On("Save", mock.Anything, mock.Anything).Return(errStorageIsFull).Once()
		manager, _ := newTestManager(saver)

		game, err := manager.NewGame(ctx, entity.MarkX)
		require.NoError(t, err)

		for game.IsOngoing() {
			game, err = manager.MakeTurn(ctx, game.ID, game.Board.EmptyCells()[0])
			require.NoError(t, err)
		}

		assert.True(t, game.IsFinished())
		saver.AssertExpectations(t)
	})
}

func TestGameManager_Abandon(t *testing.T) {
	ctx := context.Background()

	// Given: a game with one human move
	saver := &mockSaver{}
	saver.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	manager, factory := newTestManager(saver)

	game, err := manager.NewGame(ctx, entity.MarkX)
	require.NoError(t, err)
	_, err = manager.MakeTurn(ctx, game.ID, entity.Move{Row: 1, Col: 1})
	require.NoError(t, err)

	// When: the game is abandoned
	require.NoError(t, manager.Abandon(ctx, game.ID))

	// Then: the observed move was learned and the game is gone
	assert.Equal(t, map[entity.Move]int{{Row: 1, Col: 1}: 1}, factory.Table().Moves(entity.Board{}.Key()))
	saver.AssertExpectations(t)
	require.ErrorIs(t, manager.Abandon(ctx, game.ID), apperror.ErrGameNotFound)
}

func TestSimulator_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Engine never loses to an optimal opponent", func(t *testing.T) {
		for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
			factory := service.NewEngineFactory(discardLogger, markov.NewTable(), nil, sharedSearch, false, 9)
			opponent := NewOptimalOpponent(sharedSearch, rand.New(rand.NewSource(13))) //nolint: gosec // test
			simulator := NewSimulator(discardLogger, factory, opponent)

			report, err := simulator.Run(ctx, 200, mark)

			require.NoError(t, err)
			assert.Equal(t, 200, report.Games)
			assert.Equal(t, 200, report.Draws, "engine %s", mark)
			assert.Zero(t, report.OpponentWins)
			assert.Positive(t, report.Strategies[policy.StrategySearch])
		}
	})

	t.Run("Cancelled context stops early", func(t *testing.T) {
		factory := service.NewEngineFactory(discardLogger, markov.NewTable(), nil, sharedSearch, false, 9)
		simulator := NewSimulator(discardLogger, factory, NewOptimalOpponent(sharedSearch, rand.New(rand.NewSource(1)))) //nolint: gosec // test

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		report, err := simulator.Run(cancelled, 10, entity.MarkO)

		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, report.Games)
	})
}
