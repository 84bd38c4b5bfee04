package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/transport/cli"
)

var (
	ErrAddrNotFound          = errors.New("redis address string is empty")
	ErrUnknownStorageDriver  = errors.New("unknown storage driver")
	ErrRecordNameNotProvided = errors.New("storage record name is empty")
)

// RunApp - runs the command given by args.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	engineMark, err := entity.ParseMark(conf.Engine.Mark)
	if err != nil {
		return fmt.Errorf("invalid engine mark: %w", err)
	}

	repo, closeRepo, err := openTransitionRepository(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("could not open transition storage: %w", err)
	}
	defer closeRepo()

	command := cli.NewRootCommand(cli.Dependencies{
		Logger:     logger,
		Store:      service.NewPersistence(logger, repo),
		Searcher:   minimax.NewSearcher(),
		EngineMark: engineMark,
		Seed:       conf.Engine.Seed,
		Learning:   conf.Engine.Learning(),
	})
	command.SetArgs(args)

	if err = command.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// openTransitionRepository returns the configured backend and a func releasing it.
func openTransitionRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.TransitionRepository, func(), error) {
	log := logger.With("method", "openTransitionRepository", "driver", conf.Storage.Driver)

	if conf.Storage.Record == "" {
		return nil, nil, ErrRecordNameNotProvided
	}

	switch conf.Storage.Driver {
	case config.DriverFile:
		return repository.NewFileTransitionRepository(conf.Storage.FilePath), func() {}, nil

	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisTransitionRepository(redisStorage, conf.Storage.Record), closeFn, nil

	case config.DriverBadger:
		db, err := storage.NewBadgerStorage(storage.BadgerConfig{
			Path:       conf.Storage.BadgerPath,
			SyncWrites: true,
			Logger:     logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not open badger storage: %w", err)
		}

		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Error("could not close badger storage", "error", err)
			}
		}

		return repository.NewBadgerTransitionRepository(db, conf.Storage.Record), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, conf.Storage.Driver)
	}
}
