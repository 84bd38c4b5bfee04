package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
)

const transitionKeyPrefix = "transitions:"

type dbTransitions struct {
	client *redis.Client
	key    string
}

func NewRedisTransitionRepository(client *redis.Client, record string) TransitionRepository {
	return &dbTransitions{
		client: client,
		key:    transitionKeyPrefix + record,
	}
}

func (that *dbTransitions) Get(ctx context.Context) (*markov.Table, error) {
	response, err := that.client.Get(ctx, that.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get transitions: %w", err)
	}

	table, err := markov.UnmarshalTable(response)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transitions: %w", err)
	}

	return table, nil
}

func (that *dbTransitions) Save(ctx context.Context, table *markov.Table) error {
	data, err := markov.MarshalTable(table)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, that.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set transitions: %w", err)
	}

	return nil
}
