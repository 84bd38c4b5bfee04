package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

type tableStore interface {
	Load(ctx context.Context) *markov.Table
	Save(ctx context.Context, table *markov.Table) error
}

type Dependencies struct {
	Logger     *slog.Logger
	Store      tableStore
	Searcher   *minimax.Searcher
	EngineMark entity.Mark
	Seed       int64
	Learning   bool
}

// NewRootCommand builds the command tree. Output goes to the command's out writer and input
// is read from its in reader, so tests can drive it with buffers.
func NewRootCommand(deps Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Tic-tac-toe engine that searches perfectly and learns how you play",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newPlayCommand(deps),
		newSimulateCommand(deps),
		newStatsCommand(deps),
	)

	return rootCmd
}
