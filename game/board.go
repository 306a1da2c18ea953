package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalMove is returned by [Board.MakeMove] when the position is
	// occupied, outside the mandated target sub-board, or inside a
	// sub-board that is won or full.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned by [Board.MakeMove] once the game has
	// reached a terminal state.
	ErrGameOver = errors.New("game is already over")
)

// Board is the full state of one game: the 9×9 grid, the player to move,
// and the last move made. It is mutated only through [Board.MakeMove] and
// [Board.Reset]; everything else is derived from the grid on demand.
//
// A Board is not safe for concurrent mutation. Use [Board.Copy] to hand
// independent snapshots to other goroutines.
type Board struct {
	grid    Grid
	current Mark
	last    Position
	hasLast bool
}

// NewBoard creates an empty board with X to move.
func NewBoard() *Board {
	return &Board{current: MarkX}
}

// NewBoardFromGrid creates a board in a mid-game state. The grid may hold
// only NoMark, MarkX, and MarkO values, current must be MarkX or MarkO,
// and last is taken as the most recent move.
func NewBoardFromGrid(grid Grid, current Mark, last Position) (*Board, error) {
	if current != MarkX && current != MarkO {
		return nil, fmt.Errorf("current player must be X or O, got %d", current)
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if grid[y][x] > MarkO {
				return nil, fmt.Errorf("invalid mark %d at (%d, %d)", grid[y][x], x, y)
			}
		}
	}
	return &Board{
		grid:    grid,
		current: current,
		last:    last,
		hasLast: true,
	}, nil
}

// MakeMove places the current player's mark at the given position, records
// it as the last move, and passes the turn. It fails with [ErrGameOver]
// once the game has ended and with [ErrIllegalMove] when the position is
// not in the current legal set. A failed call leaves the board unchanged.
func (b *Board) MakeMove(pos Position) error {
	if b.GameOver() {
		return ErrGameOver
	}
	if !b.legal(pos) {
		return fmt.Errorf("%w: position %v", ErrIllegalMove, pos)
	}

	b.grid[pos.BoardY()][pos.BoardX()] = b.current
	b.last = pos
	b.hasLast = true
	b.current = b.current.Opponent()
	return nil
}

func (b *Board) legal(pos Position) bool {
	for _, m := range b.LegalMoves() {
		if m == pos {
			return true
		}
	}
	return false
}

// Reset returns the board to the empty state with starting to move.
// Any value other than MarkX or MarkO selects the default starter, X.
func (b *Board) Reset(starting Mark) {
	if starting != MarkX && starting != MarkO {
		starting = MarkX
	}
	b.grid = Grid{}
	b.current = starting
	b.last = Position{}
	b.hasLast = false
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	b2 := *b
	return &b2
}

// Grid returns a snapshot of the 9×9 grid.
func (b *Board) Grid() Grid {
	return b.grid
}

// CurrentPlayer returns the mark whose turn it is.
func (b *Board) CurrentPlayer() Mark {
	return b.current
}

// LastMove returns the most recent move, or false if no move has been
// made since the board was created or reset.
func (b *Board) LastMove() (Position, bool) {
	return b.last, b.hasLast
}

// MetaBoard returns the 3×3 matrix of sub-board winners.
func (b *Board) MetaBoard() SubGrid {
	var meta SubGrid
	for gridY := 0; gridY < 3; gridY++ {
		for gridX := 0; gridX < 3; gridX++ {
			meta[gridY][gridX] = b.grid.SubGrid(gridX, gridY).Winner()
		}
	}
	return meta
}

// GameOver reports whether the game has ended, either by a completed line
// on the meta-board or by every sub-board being won or full.
func (b *Board) GameOver() bool {
	meta := b.MetaBoard()
	if meta.HasLine(MarkX) || meta.HasLine(MarkO) {
		return true
	}
	for gridY := 0; gridY < 3; gridY++ {
		for gridX := 0; gridX < 3; gridX++ {
			if b.subGridAvailable(gridX, gridY) {
				return false
			}
		}
	}
	return true
}

// Winner returns the mark holding a line on the meta-board, or NoMark
// when the game is drawn or still running.
func (b *Board) Winner() Mark {
	return b.MetaBoard().Winner()
}

// Render draws the board as nine rows of cells. Within a row, sub-board
// columns are separated by " | " and cells by a single space; the three
// macro-rows are separated by a line of 23 dashes.
func (b *Board) Render() string {
	var s strings.Builder
	for metaRow := 0; metaRow < 3; metaRow++ {
		if metaRow > 0 {
			s.WriteByte('\n')
			s.WriteString(strings.Repeat("-", 23))
		}
		for cellRow := 0; cellRow < 3; cellRow++ {
			if metaRow > 0 || cellRow > 0 {
				s.WriteByte('\n')
			}
			for metaCol := 0; metaCol < 3; metaCol++ {
				if metaCol > 0 {
					s.WriteString(" | ")
				}
				for cellCol := 0; cellCol < 3; cellCol++ {
					if cellCol > 0 {
						s.WriteByte(' ')
					}
					s.WriteString(b.grid[metaRow*3+cellRow][metaCol*3+cellCol].String())
				}
			}
		}
	}
	return s.String()
}

func (b *Board) String() string {
	return b.Render()
}
