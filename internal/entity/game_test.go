package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should be finished and not ongoing
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
	})

	t.Run("IsOngoing returns true for a new game", func(t *testing.T) {
		game := NewGame("123")

		assert.True(t, game.IsOngoing())
		assert.Equal(t, MarkX, game.Turn)
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("Updates game state when Player O wins", func(t *testing.T) {
		// Given: a game where O has a full column
		game := &Game{
			Board:  Board{MarkO, MarkX, MarkX, MarkO, MarkX, EmptyCell, MarkO, EmptyCell, EmptyCell},
			Status: StatusOngoing,
			Turn:   MarkX,
		}

		// When: updating the game state
		game.UpdateGameState()

		// Then: the game should be finished with O as the winner
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, MarkO, game.Winner)
		assert.Equal(t, EmptyCell, game.Turn)
	})

	t.Run("Updates game state when the game is a tie", func(t *testing.T) {
		game := &Game{
			Board: Board{
				MarkX, MarkO, MarkX,
				MarkX, MarkO, MarkO,
				MarkO, MarkX, MarkX,
			},
			Status: StatusOngoing,
			Turn:   MarkO,
		}

		game.UpdateGameState()

		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, MarkTie, game.Winner)
		assert.Equal(t, EmptyCell, game.Turn)
	})

	t.Run("Game remains ongoing when there is no winner or tie", func(t *testing.T) {
		game := &Game{
			Board:  Board{MarkX, MarkO},
			Status: StatusOngoing,
			Turn:   MarkX,
		}

		game.UpdateGameState()

		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, EmptyCell, game.Winner)
		assert.Equal(t, MarkX, game.Turn)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: A new game
		game := NewGame("123")

		// When: Player X makes a valid turn
		err := game.MakeTurn(MarkX, Move{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: The board holds the mark and the turn switches
		expectedGame := &Game{
			ID:     "123",
			Board:  Board{MarkX},
			Turn:   MarkO,
			Status: StatusOngoing,
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: A game where cell 0,0 is occupied by Player X
		game := NewGame("123")
		require.NoError(t, game.MakeTurn(MarkX, Move{Row: 0, Col: 0}))

		// When: Player O tries to make a move to the same cell
		err := game.MakeTurn(MarkO, Move{Row: 0, Col: 0})

		// Then: An ErrIllegalMove error should be returned
		require.ErrorIs(t, err, apperror.ErrIllegalMove)

		// And: The game state should remain unchanged
		assert.Equal(t, Board{MarkX}, game.Board)
		assert.Equal(t, MarkO, game.Turn)
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		game := NewGame("123")

		err := game.MakeTurn(MarkO, Move{Row: 0, Col: 1})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, game.Board)
	})

	t.Run("Error on Invalid Cell", func(t *testing.T) {
		game := NewGame("123")

		err := game.MakeTurn(MarkX, Move{Row: 5, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Error after the game is finished", func(t *testing.T) {
		// Given: X completes the top row
		game := NewGame("123")
		for _, turn := range []struct {
			mark Mark
			move Move
		}{
			{MarkX, Move{0, 0}}, {MarkO, Move{1, 0}},
			{MarkX, Move{0, 1}}, {MarkO, Move{1, 1}},
			{MarkX, Move{0, 2}},
		} {
			require.NoError(t, game.MakeTurn(turn.mark, turn.move))
		}
		require.True(t, game.IsFinished())
		require.Equal(t, MarkX, game.Winner)

		// When: O tries to keep playing
		err := game.MakeTurn(MarkO, Move{2, 2})

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_Players(t *testing.T) {
	game := NewGame("g1")
	human := &Player{ID: "p1", Mark: MarkX}
	engine := NewEnginePlayer(game.ID, MarkO)
	game.Players = []*Player{human, engine}

	assert.Same(t, engine, game.EnginePlayer())
	assert.Same(t, human, game.HumanPlayer())
	assert.Equal(t, "engine:g1", engine.ID)
}
