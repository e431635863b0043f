package engine

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// lineIndex maps (line, pos) to a flat cell index, where line numbers the
// rows or columns perpendicular to dir and pos runs from the edge the
// tiles slide toward. One slide routine serves all four directions.
func (b board) lineIndex(dir Direction, line, pos int) int {
	switch dir {
	case DirLeft:
		return line*b.size + pos
	case DirRight:
		return line*b.size + (b.size - 1 - pos)
	case DirUp:
		return pos*b.size + line
	default: // DirDown
		return (b.size-1-pos)*b.size + line
	}
}

// slide moves every tile toward the dir edge, merging equal neighbors.
// It reports the score gained, whether anything moved, and whether a
// merge produced winTile.
func (b *board) slide(dir Direction, winTile int) (gained int, changed, madeWin bool) {
	line := make([]int, b.size)
	for l := range b.size {
		for p := range b.size {
			line[p] = b.cells[b.lineIndex(dir, l, p)]
		}
		g, ch, win := slideLine(line, winTile)
		for p := range b.size {
			b.cells[b.lineIndex(dir, l, p)] = line[p]
		}
		gained += g
		changed = changed || ch
		madeWin = madeWin || win
	}
	return gained, changed, madeWin
}

// slideLine compacts line toward index zero in a single pass, merging
// equal pairs as they meet. A tile produced by a merge never merges
// again in the same move: [2,2,4] becomes [4,4,0], not [8,0,0].
// The line is modified in place.
func slideLine(line []int, winTile int) (gained int, changed, madeWin bool) {
	write := 0   // next slot to fill
	pending := 0 // tile at write-1 that may still merge
	for i, v := range line {
		if v == 0 {
			continue
		}
		if pending == v {
			merged := v * 2
			line[write-1] = merged
			gained += merged
			changed = true
			pending = 0
			if merged == winTile {
				madeWin = true
			}
			continue
		}
		if i != write {
			changed = true
		}
		line[write] = v
		pending = v
		write++
	}
	for i := write; i < len(line); i++ {
		line[i] = 0
	}
	return gained, changed, madeWin
}
