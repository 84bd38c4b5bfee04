package cli

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
	"github.com/rocketscienceinc/tictactoe-engine/internal/policy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const defaultSimulatedGames = 1000

func newSimulateCommand(deps Dependencies) *cobra.Command {
	var games int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play the engine against a random optimal opponent on a fresh table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if games <= 0 {
				return fmt.Errorf("-n must be positive, got %d", games)
			}

			seed := deps.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			// fresh table and no saver: simulated games never touch the store
			engines := service.NewEngineFactory(deps.Logger, markov.NewTable(), nil, deps.Searcher, false, seed)
			opponent := usecase.NewOptimalOpponent(deps.Searcher, rand.New(rand.NewSource(seed))) //nolint: gosec // not security sensitive
			simulator := usecase.NewSimulator(deps.Logger, engines, opponent)

			report, err := simulator.Run(cmd.Context(), games, deps.EngineMark)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			printReport(cmd, report)

			return nil
		},
	}

	cmd.Flags().IntVarP(&games, "games", "n", defaultSimulatedGames, "number of games to play")

	return cmd
}

func printReport(cmd *cobra.Command, report *usecase.SimulationReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "games: %d\n", report.Games)
	fmt.Fprintf(out, "engine wins: %d\n", report.EngineWins)
	fmt.Fprintf(out, "opponent wins: %d\n", report.OpponentWins)
	fmt.Fprintf(out, "draws: %d\n", report.Draws)

	strategies := make([]policy.Strategy, 0, len(report.Strategies))
	for strategy := range report.Strategies {
		strategies = append(strategies, strategy)
	}
	slices.Sort(strategies)

	for _, strategy := range strategies {
		fmt.Fprintf(out, "decisions by %s: %d\n", strategy, report.Strategies[strategy])
	}
}
