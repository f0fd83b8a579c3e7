package reversi

import (
	"errors"
	"testing"
)

func TestStartingPositionRoundTrip(t *testing.T) {
	b, turn, err := ParsePosition(StartingPosition)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b != NewBoard() || turn != Black {
		t.Fatalf("starting position parsed to a different board")
	}
	if got := FormatPosition(b, turn); got != StartingPosition {
		t.Fatalf("format = %q, want %q", got, StartingPosition)
	}
}

func TestFormatAfterMoves(t *testing.T) {
	g := NewGame()
	g.AttemptMove(2, 3)

	want := "8/8/3B4/3BB3/3BW3/8/8/8 w"
	if got := g.Position(); got != want {
		t.Fatalf("position = %q, want %q", got, want)
	}

	b, turn, err := ParsePosition(want)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b != g.Board() || turn != White {
		t.Fatalf("round trip mismatch")
	}
}

func TestParsePositionErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8/8",
		"8/8/8/8/8/8/8 b",
		"8/8/8/8/8/8/8/8 x",
		"8/8/8/8/8/8/8/8 black",
		"9/8/8/8/8/8/8/8 b",
		"7/8/8/8/8/8/8/8 b",
		"8B/8/8/8/8/8/8/8 b",
		"8/8/8/3WX3/3BW3/8/8/8 b",
	}
	for _, s := range bad {
		if _, _, err := ParsePosition(s); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidPosition", s, err)
		}
	}
}

func TestCoordNotation(t *testing.T) {
	c, err := ParseCoord("d3")
	if err != nil {
		t.Fatalf("parse d3: %v", err)
	}
	if c != (Coord{Row: 2, Col: 3}) {
		t.Fatalf("d3 = %+v", c)
	}
	if c.String() != "d3" {
		t.Fatalf("string = %q", c.String())
	}
	for _, s := range []string{"", "i1", "a0", "a9", "d33"} {
		if _, err := ParseCoord(s); err == nil {
			t.Errorf("ParseCoord(%q) succeeded", s)
		}
	}
}
