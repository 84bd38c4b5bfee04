package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Game struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Winner  Mark      `json:"winner"`
	Status  string    `json:"status"`
	Turn    Mark      `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
}

// NewGame returns an ongoing game on an empty board. X always moves first.
func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Turn:   MarkX,
		Status: StatusOngoing,
	}
}

func (that *Game) UpdateGameState() {
	switch result := that.Board.Result(); result {
	// one player wins
	case MarkX, MarkO:
		that.Winner = result
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case MarkTie:
		that.Winner = MarkTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

// MakeTurn applies move for mark. On error the game is left unchanged.
func (that *Game) MakeTurn(mark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := that.Board.Apply(move, mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board = board
	that.Turn = mark.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) EnginePlayer() *Player {
	for _, player := range that.Players {
		if player.IsEngine() {
			return player
		}
	}

	return nil
}

func (that *Game) HumanPlayer() *Player {
	for _, player := range that.Players {
		if !player.IsEngine() {
			return player
		}
	}

	return nil
}
