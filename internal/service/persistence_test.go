package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
)

var (
	errRedisDown = errors.New("redis down")
	errDiskFull  = errors.New("disk full")
)

type mockTransitionRepo struct {
	mock.Mock
}

func (that *mockTransitionRepo) Get(ctx context.Context) (*markov.Table, error) {
	args := that.Called(ctx)

	table, _ := args.Get(0).(*markov.Table)
	return table, args.Error(1)
}

func (that *mockTransitionRepo) Save(ctx context.Context, table *markov.Table) error {
	args := that.Called(ctx, table)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPersistence_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored table", func(t *testing.T) {
		// Given: a repository holding one transition
		stored := markov.NewTable()
		stored.Record(entity.Board{}.Key(), entity.Move{Row: 1, Col: 1})

		repo := &mockTransitionRepo{}
		repo.On("Get", mock.Anything).Return(stored, nil).Once()
		before := testutil.ToFloat64(persistenceOperations.WithLabelValues("load", "ok"))

		// When: loading
		table := NewPersistence(discardLogger(), repo).Load(ctx)

		// Then: the stored table comes back untouched
		assert.Same(t, stored, table)
		assert.InDelta(t, 1, testutil.ToFloat64(persistenceOperations.WithLabelValues("load", "ok"))-before, 0)
		repo.AssertExpectations(t)
	})

	cases := []struct {
		name   string
		err    error
		result string
	}{
		{"Missing record gives empty table", apperror.ErrRecordNotFound, "empty"},
		{"Corrupt record gives empty table", apperror.ErrCorruptPersistedState, "corrupt"},
		{"Storage failure gives empty table", errRedisDown, "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a repository that fails with tc.err
			repo := &mockTransitionRepo{}
			repo.On("Get", mock.Anything).Return(nil, tc.err).Once()
			before := testutil.ToFloat64(persistenceOperations.WithLabelValues("load", tc.result))

			// When: loading
			table := NewPersistence(discardLogger(), repo).Load(ctx)

			// Then: an empty table is returned instead of an error
			require.NotNil(t, table)
			assert.Equal(t, 0, table.Len())
			assert.InDelta(t, 1, testutil.ToFloat64(persistenceOperations.WithLabelValues("load", tc.result))-before, 0)
			repo.AssertExpectations(t)
		})
	}
}

func TestPersistence_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes through to the repository", func(t *testing.T) {
		table := markov.NewTable()
		repo := &mockTransitionRepo{}
		repo.On("Save", mock.Anything, table).Return(nil).Once()

		err := NewPersistence(discardLogger(), repo).Save(ctx, table)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Wraps repository failures", func(t *testing.T) {
		// Given: a repository that cannot write
		table := markov.NewTable()
		repo := &mockTransitionRepo{}
		repo.On("Save", mock.Anything, table).Return(errDiskFull).Once()

		// When: saving
		err := NewPersistence(discardLogger(), repo).Save(ctx, table)

		// Then: both the taxonomy error and the cause are visible
		require.ErrorIs(t, err, apperror.ErrStorageWriteFailure)
		require.ErrorIs(t, err, errDiskFull)
	})
}
