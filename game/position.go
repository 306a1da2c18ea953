package game

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is returned when a position is constructed from an
// out-of-range index or coordinate.
var ErrInvalidPosition = errors.New("invalid position")

// Position identifies one of the 81 cells on the board. Its canonical
// form is a global index in [0, 80], counted row by row from the top-left
// corner. Two positions are equal iff their indices are equal.
type Position struct {
	index uint8
}

// PositionFromIndex returns the position for a global board index.
// If the index is outside [0, 80], returns an error.
func PositionFromIndex(i int) (Position, error) {
	if i < 0 || i > 80 {
		return Position{}, fmt.Errorf("%w: index %d", ErrInvalidPosition, i)
	}
	return Position{index: uint8(i)}, nil
}

// PositionAt returns the position for cell (cellX, cellY) of the
// sub-board at (gridX, gridY). All four coordinates must be in [0, 2].
func PositionAt(gridX, gridY, cellX, cellY int) (Position, error) {
	if gridX < 0 || gridX > 2 || gridY < 0 || gridY > 2 ||
		cellX < 0 || cellX > 2 || cellY < 0 || cellY > 2 {
		return Position{}, fmt.Errorf(
			"%w: grid (%d, %d) cell (%d, %d)",
			ErrInvalidPosition, gridX, gridY, cellX, cellY)
	}
	x := gridX*3 + cellX
	y := gridY*3 + cellY
	return Position{index: uint8(x + y*9)}, nil
}

// Index returns the global board index in [0, 80].
func (p Position) Index() int { return int(p.index) }

// BoardX returns the column on the full 9×9 board.
func (p Position) BoardX() int { return int(p.index) % 9 }

// BoardY returns the row on the full 9×9 board.
func (p Position) BoardY() int { return int(p.index) / 9 }

// SubGridX returns the column of the position's sub-board.
func (p Position) SubGridX() int { return p.BoardX() / 3 }

// SubGridY returns the row of the position's sub-board.
func (p Position) SubGridY() int { return p.BoardY() / 3 }

// SubGridID returns the sub-board index in [0, 8], counted row by row.
func (p Position) SubGridID() int { return p.SubGridX() + p.SubGridY()*3 }

// CellX returns the column within the position's sub-board.
func (p Position) CellX() int { return p.BoardX() % 3 }

// CellY returns the row within the position's sub-board.
func (p Position) CellY() int { return p.BoardY() % 3 }

// CellID returns the cell index within the sub-board in [0, 8].
func (p Position) CellID() int { return p.CellX() + p.CellY()*3 }

func (p Position) String() string {
	return fmt.Sprintf("%d (grid (%d, %d), cell (%d, %d))",
		p.index, p.SubGridX(), p.SubGridY(), p.CellX(), p.CellY())
}
