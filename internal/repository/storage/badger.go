package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

var ErrBadgerPathRequired = errors.New("path is required for persistent badger database")

type BadgerConfig struct {
	// Path is ignored when InMemory is set.
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     *slog.Logger
}

// badgerLogger routes badger's internal logging through slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (that *badgerLogger) Errorf(format string, args ...interface{}) {
	that.logger.Error(fmt.Sprintf(format, args...))
}

func (that *badgerLogger) Warningf(format string, args ...interface{}) {
	that.logger.Warn(fmt.Sprintf(format, args...))
}

func (that *badgerLogger) Infof(format string, args ...interface{}) {
	that.logger.Debug(fmt.Sprintf(format, args...))
}

func (that *badgerLogger) Debugf(format string, args ...interface{}) {
	that.logger.Debug(fmt.Sprintf(format, args...))
}

func NewBadgerStorage(conf BadgerConfig) (*badger.DB, error) {
	var opts badger.Options

	if conf.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if conf.Path == "" {
			return nil, ErrBadgerPathRequired
		}

		if err := os.MkdirAll(conf.Path, 0o750); err != nil {
			return nil, fmt.Errorf("can't create badger directory %s: %w", conf.Path, err)
		}
		opts = badger.DefaultOptions(conf.Path)
	}

	opts = opts.WithSyncWrites(conf.SyncWrites).WithNumVersionsToKeep(1)

	if conf.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: conf.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("can't open badger database: %w", err)
	}

	return db, nil
}
