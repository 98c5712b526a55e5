package engine

// ContainsFullRow reports whether any row of the field has no empty cell.
func ContainsFullRow(f *Field) bool {
	for row := 1; row <= TotalHeight; row++ {
		if rowFull(f, row) {
			return true
		}
	}
	return false
}

// FullRows returns the indexes of all full rows, bottom first.
func FullRows(f *Field) []int {
	var rows []int
	for row := 1; row <= TotalHeight; row++ {
		if rowFull(f, row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// ClearRows removes every full row, moving the remaining rows down so they sit
// contiguously from row 1 in their original order, and empties everything
// above them. Returns the number of rows removed.
func ClearRows(f *Field) int {
	kept := make([]int, 0, TotalHeight)
	for row := 1; row <= TotalHeight; row++ {
		if !rowFull(f, row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == TotalHeight {
		return 0
	}

	// kept is ascending and dst <= src, so copying in order never
	// overwrites a row that has not been read yet.
	dst := 1
	for _, src := range kept {
		if src != dst {
			f.grid[dst-1] = f.grid[src-1]
		}
		dst++
	}
	for row := dst; row <= TotalHeight; row++ {
		f.grid[row-1] = [Width]Space{}
	}
	return TotalHeight - len(kept)
}

func rowFull(f *Field, row int) bool {
	for col := 1; col <= Width; col++ {
		if f.Get(row, col) == Empty {
			return false
		}
	}
	return true
}
