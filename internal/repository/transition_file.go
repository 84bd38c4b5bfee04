package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/markov"
)

type fileTransitions struct {
	path string
}

func NewFileTransitionRepository(path string) TransitionRepository {
	return &fileTransitions{
		path: path,
	}
}

func (that *fileTransitions) Get(_ context.Context) (*markov.Table, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperror.ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", that.path, err)
	}

	table, err := markov.UnmarshalTable(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", that.path, err)
	}

	return table, nil
}

// Save writes to a temporary file next to the target and renames it into place.
func (that *fileTransitions) Save(_ context.Context, table *markov.Table) error {
	data, err := markov.MarshalTable(table)
	if err != nil {
		return err
	}

	dir := filepath.Dir(that.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(that.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck // gone after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", that.path, err)
	}

	return nil
}
