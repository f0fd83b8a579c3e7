// FILE: internal/reversi/board.go
package reversi

import (
	"fmt"
	"strings"
)

const Size = 8

type Cell byte

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	default:
		return "-"
	}
}

// Name returns the display name of a stone color
func (c Cell) Name() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// Player is the acting color, always Black or White
type Player = Cell

func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// ParsePlayer accepts "b"/"w" and the full color names
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	default:
		return Empty, fmt.Errorf("invalid player %q: must be 'b' or 'w'", s)
	}
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns the square in a1..h8 notation, column letter first
func (c Coord) String() string {
	if !InBounds(c.Row, c.Col) {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

// ParseCoord parses a1..h8 notation
func ParseCoord(s string) (Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Coord{}, fmt.Errorf("invalid square %q: expected a1..h8", s)
	}
	return Coord{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Board is the 8x8 grid, row-major. Copying a Board copies the position.
type Board [Size][Size]Cell

// NewBoard returns the standard starting position
func NewBoard() Board {
	var b Board
	b.Initialize()
	return b
}

// Initialize clears the grid and places the four center stones
func (b *Board) Initialize() {
	*b = Board{}
	mid := Size / 2
	b[mid-1][mid-1] = White
	b[mid-1][mid] = Black
	b[mid][mid-1] = Black
	b[mid][mid] = White
}

func (b *Board) At(c Coord) Cell {
	return b[c.Row][c.Col]
}

func (b *Board) Set(c Coord, v Cell) {
	b[c.Row][c.Col] = v
}

// PlaceAndFlip puts the player's stone at the target and turns every captured
// cell to the player's color. The caller must have validated the move.
func (b *Board) PlaceAndFlip(p Player, at Coord, captures CaptureSet) {
	b[at.Row][at.Col] = p
	for _, c := range captures {
		b[c.Row][c.Col] = p
	}
}

func (b *Board) CountStones(c Cell) int {
	n := 0
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			if b[r][col] == c {
				n++
			}
		}
	}
	return n
}

// ToASCII renders the board with column letters and row numbers.
// Cells listed in marks are drawn as '*'.
func (b *Board) ToASCII(marks []Coord) string {
	marked := make(map[Coord]bool, len(marks))
	for _, m := range marks {
		marked[m] = true
	}

	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case Black:
				sb.WriteString("B ")
			case White:
				sb.WriteString("W ")
			default:
				if marked[Coord{Row: r, Col: c}] {
					sb.WriteString("* ")
				} else {
					sb.WriteString(". ")
				}
			}
		}
		sb.WriteString(fmt.Sprintf("%d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
