package reversi

// CaptureSet lists the cells flipped by a move, grouped by direction
type CaptureSet []Coord

// Directions are the eight compass offsets in scan order
var Directions = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// ComputeCaptures returns the stones the player would flip by placing at
// (row, col). An empty result means the move is illegal.
func ComputeCaptures(b Board, row, col int, p Player) CaptureSet {
	if !InBounds(row, col) || b[row][col] != Empty {
		return nil
	}

	opponent := p.Opponent()
	var captures CaptureSet

	for _, d := range Directions {
		var run CaptureSet
		r, c := row+d.Row, col+d.Col

		for InBounds(r, c) {
			cell := b[r][c]
			if cell == opponent {
				run = append(run, Coord{Row: r, Col: c})
			} else {
				// Own stone closes the run, anything else ends the ray empty-handed
				if cell == p && len(run) > 0 {
					captures = append(captures, run...)
				}
				break
			}
			r += d.Row
			c += d.Col
		}
	}

	return captures
}

// LegalMoves scans the board row-major and returns every square with a
// non-empty capture set
func LegalMoves(b Board, p Player) []Coord {
	moves := []Coord{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if len(ComputeCaptures(b, r, c, p)) > 0 {
				moves = append(moves, Coord{Row: r, Col: c})
			}
		}
	}
	return moves
}

func HasLegalMove(b Board, p Player) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if len(ComputeCaptures(b, r, c, p)) > 0 {
				return true
			}
		}
	}
	return false
}

// Winner compares stone counts. ok is false on a draw.
func Winner(b Board) (winner Player, ok bool) {
	black := b.CountStones(Black)
	white := b.CountStones(White)
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	default:
		return Empty, false
	}
}
