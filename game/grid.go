package game

// SubGrid is a 3×3 matrix of marks, indexed [y][x]. It is used both as a
// view of a single sub-board and as the meta-board of sub-board winners.
type SubGrid [3][3]Mark

// HasLine reports whether m holds a full row, column, or diagonal.
func (sg SubGrid) HasLine(m Mark) bool {
	if m == NoMark {
		return false
	}
	for i := 0; i < 3; i++ {
		if sg[i][0] == m && sg[i][1] == m && sg[i][2] == m {
			return true
		}
		if sg[0][i] == m && sg[1][i] == m && sg[2][i] == m {
			return true
		}
	}
	if sg[0][0] == m && sg[1][1] == m && sg[2][2] == m {
		return true
	}
	return sg[0][2] == m && sg[1][1] == m && sg[2][0] == m
}

// Winner returns the mark holding a completed line, or NoMark. When both
// marks hold lines, which only an injected state can produce, the X line
// is reported.
func (sg SubGrid) Winner() Mark {
	if sg.HasLine(MarkX) {
		return MarkX
	}
	if sg.HasLine(MarkO) {
		return MarkO
	}
	return NoMark
}

// Full reports whether no cell is empty.
func (sg SubGrid) Full() bool {
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if sg[y][x] == NoMark {
				return false
			}
		}
	}
	return true
}

// Grid is the full 9×9 board, indexed [y][x].
type Grid [9][9]Mark

// At returns the mark at the given position.
func (g Grid) At(p Position) Mark {
	return g[p.BoardY()][p.BoardX()]
}

// SubGrid extracts the 3×3 sub-board at (gridX, gridY).
func (g Grid) SubGrid(gridX, gridY int) SubGrid {
	var sg SubGrid
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			sg[y][x] = g[gridY*3+y][gridX*3+x]
		}
	}
	return sg
}
