package markov

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// document is the persisted form: state key -> "row,col" -> count.
type document map[string]map[string]int

// MarshalTable encodes the table as an indented JSON document with sorted keys.
func MarshalTable(table *Table) ([]byte, error) {
	doc := make(document, table.Len())

	for key, moves := range table.Snapshot() {
		encoded := make(map[string]int, len(moves))
		for move, count := range moves {
			encoded[move.String()] = count
		}
		doc[string(key)] = encoded
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transition table: %w", err)
	}

	return data, nil
}

// UnmarshalTable decodes a persisted document. Empty input yields apperror.ErrRecordNotFound;
// anything that does not validate yields apperror.ErrCorruptPersistedState.
func UnmarshalTable(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperror.ErrRecordNotFound
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptPersistedState, err)
	}

	table := NewTable()
	for rawKey, moves := range doc {
		key, err := entity.ParseStateKey(rawKey)
		if err != nil {
			return nil, err
		}

		board, err := key.Board()
		if err != nil {
			return nil, err
		}

		for rawMove, count := range moves {
			move, err := entity.ParseMove(rawMove)
			if err != nil {
				return nil, fmt.Errorf("%w: state %s: %w", apperror.ErrCorruptPersistedState, key, err)
			}

			if board.At(move) != entity.EmptyCell {
				return nil, fmt.Errorf("%w: state %s: move %s targets an occupied cell", apperror.ErrCorruptPersistedState, key, move)
			}

			if count < 0 {
				return nil, fmt.Errorf("%w: state %s: move %s has negative count %d", apperror.ErrCorruptPersistedState, key, move, count)
			}

			table.Add(key, move, count)
		}
	}

	return table, nil
}
