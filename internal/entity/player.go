package entity

import "strings"

const engineIDPrefix = "engine:"

type Player struct {
	ID   string `json:"id"`
	Mark Mark   `json:"mark,omitempty"`
}

func NewEnginePlayer(gameID string, mark Mark) *Player {
	return &Player{
		ID:   engineIDPrefix + gameID,
		Mark: mark,
	}
}

func (that *Player) IsEngine() bool {
	return strings.HasPrefix(that.ID, engineIDPrefix)
}
