package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
)

type badgerTransitions struct {
	db  *badger.DB
	key []byte
}

func NewBadgerTransitionRepository(db *badger.DB, record string) TransitionRepository {
	return &badgerTransitions{
		db:  db,
		key: []byte(transitionKeyPrefix + record),
	}
}

func (that *badgerTransitions) Get(_ context.Context) (*markov.Table, error) {
	var data []byte

	err := that.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(that.key)
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperror.ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get transitions: %w", err)
	}

	table, err := markov.UnmarshalTable(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transitions: %w", err)
	}

	return table, nil
}

func (that *badgerTransitions) Save(_ context.Context, table *markov.Table) error {
	data, err := markov.MarshalTable(table)
	if err != nil {
		return err
	}

	err = that.db.Update(func(txn *badger.Txn) error {
		return txn.Set(that.key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to set transitions: %w", err)
	}

	return nil
}
