package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const emptySentinel = '_'

// StateKey is the canonical encoding of a Board: nine characters over {X, O, _}, row-major.
type StateKey string

// ParseStateKey validates an encoded key. It accepts the current nine-character form and the
// legacy tuple form "('X', '_', ...)" written by older learning files.
func ParseStateKey(s string) (StateKey, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "(") {
		return parseLegacyStateKey(s)
	}

	if len(s) != BoardSize {
		return "", fmt.Errorf("%w: state key %q must have %d cells", apperror.ErrCorruptPersistedState, s, BoardSize)
	}

	for i := 0; i < len(s); i++ {
		if !isKeyCell(s[i]) {
			return "", fmt.Errorf("%w: state key %q has invalid cell %q", apperror.ErrCorruptPersistedState, s, s[i])
		}
	}

	return StateKey(s), nil
}

func parseLegacyStateKey(s string) (StateKey, error) {
	if !strings.HasSuffix(s, ")") {
		return "", fmt.Errorf("%w: unterminated tuple key %q", apperror.ErrCorruptPersistedState, s)
	}

	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != BoardSize {
		return "", fmt.Errorf("%w: tuple key %q must have %d cells", apperror.ErrCorruptPersistedState, s, BoardSize)
	}

	key := make([]byte, 0, BoardSize)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) != 3 || part[0] != part[2] || (part[0] != '\'' && part[0] != '"') || !isKeyCell(part[1]) {
			return "", fmt.Errorf("%w: tuple key %q has invalid cell %q", apperror.ErrCorruptPersistedState, s, part)
		}
		key = append(key, part[1])
	}

	return StateKey(key), nil
}

func isKeyCell(c byte) bool {
	return c == emptySentinel || c == 'X' || c == 'O'
}

// Board decodes the key. Keys built by ParseStateKey or Board.Key always decode.
func (that StateKey) Board() (Board, error) {
	var board Board

	if len(that) != BoardSize {
		return board, fmt.Errorf("%w: state key %q", apperror.ErrCorruptPersistedState, string(that))
	}

	for i := 0; i < BoardSize; i++ {
		switch c := that[i]; c {
		case emptySentinel:
			board[i] = EmptyCell
		case 'X', 'O':
			board[i] = Mark(c)
		default:
			return board, fmt.Errorf("%w: state key %q", apperror.ErrCorruptPersistedState, string(that))
		}
	}

	return board, nil
}
