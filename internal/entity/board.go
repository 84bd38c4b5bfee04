package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
	// MarkTie is recorded as a winner when the board fills up with no line.
	MarkTie Mark = "-"
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// WinCombos lists the 8 winning lines: rows, columns, then diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func ParseMark(s string) (Mark, error) {
	switch mark := Mark(strings.ToUpper(strings.TrimSpace(s))); mark {
	case MarkX, MarkO:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// Move is a 0-indexed (row, col) coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func MoveFromIndex(index int) Move {
	return Move{Row: index / BoardSide, Col: index % BoardSide}
}

func (that Move) Index() int {
	return that.Row*BoardSide + that.Col
}

func (that Move) IsValid() bool {
	return that.Row >= 0 && that.Row < BoardSide && that.Col >= 0 && that.Col < BoardSide
}

// String returns the "row,col" form used as the persisted move key.
func (that Move) String() string {
	return strconv.Itoa(that.Row) + "," + strconv.Itoa(that.Col)
}

// ParseMove parses the "row,col" encoding. Both coordinates must be single digits in [0,2].
func ParseMove(s string) (Move, error) {
	rowPart, colPart, ok := strings.Cut(s, ",")
	if !ok {
		return Move{}, fmt.Errorf("%w: move %q is not in row,col form", apperror.ErrInvalidCell, s)
	}

	row, err := parseCoordinate(rowPart)
	if err != nil {
		return Move{}, fmt.Errorf("move %q row: %w", s, err)
	}

	col, err := parseCoordinate(colPart)
	if err != nil {
		return Move{}, fmt.Errorf("move %q col: %w", s, err)
	}

	return Move{Row: row, Col: col}, nil
}

func parseCoordinate(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 || s[0] < '0' || s[0] >= '0'+BoardSide {
		return 0, fmt.Errorf("%w: coordinate %q", apperror.ErrInvalidCell, s)
	}

	return int(s[0] - '0'), nil
}

// Board is a row-major 3x3 grid. It is a value type: Apply returns a modified copy.
type Board [BoardSize]Mark

func (that Board) At(move Move) Mark {
	return that[move.Index()]
}

// Apply places mark on move and returns the resulting board. The receiver is never modified.
func (that Board) Apply(move Move, mark Mark) (Board, error) {
	if !move.IsValid() {
		return that, fmt.Errorf("%w: %d,%d", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if !mark.IsPlayer() {
		return that, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that[move.Index()] != EmptyCell {
		return that, fmt.Errorf("%w: %s", apperror.ErrIllegalMove, move)
	}

	that[move.Index()] = mark

	return that, nil
}

// Winner returns the mark owning the first complete line in WinCombos order.
func (that Board) Winner() (Mark, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) IsTerminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.IsFull()
}

// Result returns the winner, MarkTie for a full board without a line, or EmptyCell while the game continues.
func (that Board) Result() Mark {
	if winner, ok := that.Winner(); ok {
		return winner
	}

	if that.IsFull() {
		return MarkTie
	}

	return EmptyCell
}

// EmptyCells enumerates free cells in row-major order.
func (that Board) EmptyCells() []Move {
	moves := make([]Move, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, MoveFromIndex(i))
		}
	}

	return moves
}

func (that Board) CountMarks(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that Board) Key() StateKey {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte(emptySentinel)
			continue
		}
		sb.WriteString(string(cell))
	}

	return StateKey(sb.String())
}

// String renders the board as three text rows for terminal output.
func (that Board) String() string {
	var sb strings.Builder

	for row := 0; row < BoardSide; row++ {
		if row > 0 {
			sb.WriteString("\n---+---+---\n")
		}

		for col := 0; col < BoardSide; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}

			cell := that[row*BoardSide+col]
			if cell == EmptyCell {
				cell = " "
			}
			sb.WriteString(" " + string(cell) + " ")
		}
	}

	return sb.String()
}
