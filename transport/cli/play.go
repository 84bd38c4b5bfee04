package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const quitCommand = "q"

func newPlayCommand(deps Dependencies) *cobra.Command {
	var humanMark string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the engine, entering moves as row,col",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mark := deps.EngineMark.Opponent()
			if humanMark != "" {
				parsed, err := entity.ParseMark(humanMark)
				if err != nil {
					return fmt.Errorf("invalid --mark: %w", err)
				}
				mark = parsed
			}

			return runPlay(cmd, deps, mark)
		},
	}

	cmd.Flags().StringVar(&humanMark, "mark", "", "mark you play, X moves first (default: opposite of engine.mark)")

	return cmd
}

func runPlay(cmd *cobra.Command, deps Dependencies, humanMark entity.Mark) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	table := deps.Store.Load(ctx)
	engines := service.NewEngineFactory(deps.Logger, table, deps.Store, deps.Searcher, deps.Learning, deps.Seed)
	manager := usecase.NewGameManager(deps.Logger, engines)

	game, err := manager.NewGame(ctx, humanMark)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	fmt.Fprintf(out, "You play %s. Enter moves as row,col (0-2), %s to quit.\n", humanMark, quitCommand)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for game.IsOngoing() {
		fmt.Fprintf(out, "\n%s\n> ", game.Board)

		if !scanner.Scan() {
			if err = scanner.Err(); err != nil {
				return fmt.Errorf("failed to read move: %w", err)
			}

			return manager.Abandon(ctx, game.ID)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == quitCommand {
			fmt.Fprintln(out, "Game abandoned.")
			return manager.Abandon(ctx, game.ID)
		}

		move, err := entity.ParseMove(line)
		if err != nil {
			fmt.Fprintf(out, "Cannot read %q: expected row,col\n", line)
			continue
		}

		next, err := manager.MakeTurn(ctx, game.ID, move)
		switch {
		case errors.Is(err, apperror.ErrIllegalMove), errors.Is(err, apperror.ErrInvalidCell):
			fmt.Fprintf(out, "Cell %s is not available\n", move)
			continue
		case err != nil:
			return fmt.Errorf("failed make turn: %w", err)
		}

		game = next
	}

	fmt.Fprintf(out, "\n%s\n%s\n", game.Board, outcome(game, humanMark))

	return nil
}

func outcome(game *entity.Game, humanMark entity.Mark) string {
	switch game.Winner {
	case humanMark:
		return "You win."
	case humanMark.Opponent():
		return "Engine wins."
	default:
		return "Draw."
	}
}
