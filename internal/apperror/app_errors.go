package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameNotFound     = errors.New("game not found")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrIllegalMove      = errors.New("cell is already occupied")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrInvalidMark      = errors.New("invalid mark")

	ErrRecordNotFound        = errors.New("persisted record not found")
	ErrCorruptPersistedState = errors.New("persisted state is corrupt")
	ErrStorageWriteFailure   = errors.New("failed to write persisted state")
)
