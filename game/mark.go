// Package game implements the rules of Ultimate Tic-Tac-Toe: a 9×9 board
// made of nine 3×3 sub-boards, where each move sends the opponent to the
// sub-board matching the cell just played, and winning three sub-boards
// in a row wins the game.
package game

// Mark represents a piece on the board.
type Mark uint8

const (
	NoMark Mark = iota
	MarkX
	MarkO
)

// String returns the string representation of the mark.
func (m Mark) String() string {
	switch m {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the opposing mark.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return NoMark
	}
}
