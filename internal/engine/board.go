package engine

// board is a size×size grid stored row-major. Zero means empty; occupied
// cells hold powers of two starting at 2.
type board struct {
	size  int
	cells []int
}

func newBoard(size int) board {
	return board{
		size:  size,
		cells: make([]int, size*size),
	}
}

// at returns the tile at (row, col), or 0 when the coordinates fall
// outside the board.
func (b board) at(row, col int) int {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return 0
	}
	return b.cells[row*b.size+col]
}

// emptyCells returns the flat indexes of all empty cells.
func (b board) emptyCells() []int {
	var cells []int
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

// emptyCount returns the number of empty cells.
func (b board) emptyCount() int {
	count := 0
	for _, v := range b.cells {
		if v == 0 {
			count++
		}
	}
	return count
}

// hasAdjacentEqual returns true if any two horizontally or vertically
// neighboring tiles hold the same nonzero value.
func (b board) hasAdjacentEqual() bool {
	for row := range b.size {
		for col := range b.size {
			v := b.at(row, col)
			if v == 0 {
				continue
			}
			// Check right and bottom neighbors
			if col < b.size-1 && b.at(row, col+1) == v {
				return true
			}
			if row < b.size-1 && b.at(row+1, col) == v {
				return true
			}
		}
	}
	return false
}

// canMove returns true if at least one direction would change the board.
func (b board) canMove() bool {
	return b.emptyCount() > 0 || b.hasAdjacentEqual()
}

// maxTile returns the largest tile value on the board.
func (b board) maxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}
