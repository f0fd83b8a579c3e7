package reversi

import (
	"errors"
	"fmt"
	"strings"
)

// StartingPosition is the standard opening with Black to move
const StartingPosition = "8/8/8/3WB3/3BW3/8/8/8 b"

var ErrInvalidPosition = errors.New("invalid position")

// ParsePosition reads a board in rank notation: eight ranks separated by '/',
// row 0 first, 'B' and 'W' for stones and digits for runs of empty cells,
// followed by the side to move ('b' or 'w').
func ParsePosition(s string) (Board, Player, error) {
	var b Board

	parts := strings.Fields(s)
	if len(parts) != 2 {
		return b, Empty, fmt.Errorf("%w: expected 2 parts, got %d", ErrInvalidPosition, len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Size {
		return b, Empty, fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidPosition, Size, len(ranks))
	}

	for r, rank := range ranks {
		col := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				col += int(ch - '0')
			case ch == 'B' || ch == 'b':
				if col >= Size {
					return b, Empty, fmt.Errorf("%w: rank %d overflows", ErrInvalidPosition, r+1)
				}
				b[r][col] = Black
				col++
			case ch == 'W' || ch == 'w':
				if col >= Size {
					return b, Empty, fmt.Errorf("%w: rank %d overflows", ErrInvalidPosition, r+1)
				}
				b[r][col] = White
				col++
			default:
				return b, Empty, fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidPosition, ch, r+1)
			}
		}
		if col != Size {
			return b, Empty, fmt.Errorf("%w: rank %d has %d cells", ErrInvalidPosition, r+1, col)
		}
	}

	turn, err := ParsePlayer(parts[1])
	if err != nil || len(parts[1]) != 1 {
		return b, Empty, fmt.Errorf("%w: side to move must be 'b' or 'w'", ErrInvalidPosition)
	}

	return b, turn, nil
}

// FormatPosition is the inverse of ParsePosition
func FormatPosition(b Board, turn Player) string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if b[r][c] == Black {
				sb.WriteByte('B')
			} else {
				sb.WriteByte('W')
			}
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(turn.String())
	return sb.String()
}

// Position returns the game's current position in rank notation
func (g *Game) Position() string {
	return FormatPosition(g.board, g.turn)
}
