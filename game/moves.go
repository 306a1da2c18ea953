package game

// LegalMoves returns every position the current player may play, in no
// particular order.
//
// The first move of a game may go anywhere. Every later move is sent to
// the sub-board whose grid coordinates match the cell coordinates of the
// previous move; when that sub-board is already won or full, the player
// may instead pick any empty cell of any sub-board that is neither.
func (b *Board) LegalMoves() []Position {
	if !b.hasLast {
		moves := make([]Position, 0, 81)
		for i := 0; i < 81; i++ {
			moves = append(moves, Position{index: uint8(i)})
		}
		return moves
	}

	targetX, targetY := b.last.CellX(), b.last.CellY()
	if b.subGridAvailable(targetX, targetY) {
		return b.appendEmptyCells(nil, targetX, targetY)
	}

	var moves []Position
	for gridY := 0; gridY < 3; gridY++ {
		for gridX := 0; gridX < 3; gridX++ {
			if b.subGridAvailable(gridX, gridY) {
				moves = b.appendEmptyCells(moves, gridX, gridY)
			}
		}
	}
	return moves
}

// subGridAvailable reports whether the sub-board at (gridX, gridY) can
// still be played in: it has no winner and at least one empty cell.
func (b *Board) subGridAvailable(gridX, gridY int) bool {
	sg := b.grid.SubGrid(gridX, gridY)
	return sg.Winner() == NoMark && !sg.Full()
}

func (b *Board) appendEmptyCells(moves []Position, gridX, gridY int) []Position {
	for cellY := 0; cellY < 3; cellY++ {
		for cellX := 0; cellX < 3; cellX++ {
			x := gridX*3 + cellX
			y := gridY*3 + cellY
			if b.grid[y][x] == NoMark {
				moves = append(moves, Position{index: uint8(x + y*9)})
			}
		}
	}
	return moves
}
