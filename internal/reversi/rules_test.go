package reversi

import (
	"math/rand"
	"reflect"
	"testing"
)

func mustPosition(t *testing.T, s string) (Board, Player) {
	t.Helper()
	b, turn, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b, turn
}

func TestInitialBoard(t *testing.T) {
	b := NewBoard()

	want := map[Coord]Cell{
		{3, 3}: White,
		{3, 4}: Black,
		{4, 3}: Black,
		{4, 4}: White,
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if got := b[r][c]; got != want[Coord{r, c}] {
				t.Errorf("cell (%d,%d) = %v, want %v", r, c, got, want[Coord{r, c}])
			}
		}
	}
	if b.CountStones(Black) != 2 || b.CountStones(White) != 2 || b.CountStones(Empty) != 60 {
		t.Fatalf("unexpected counts: black=%d white=%d empty=%d",
			b.CountStones(Black), b.CountStones(White), b.CountStones(Empty))
	}
}

func TestInitialLegalMovesForBlack(t *testing.T) {
	b := NewBoard()

	moves := LegalMoves(b, Black)
	want := []Coord{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
	if !reflect.DeepEqual(moves, want) {
		t.Fatalf("legal moves = %v, want %v", moves, want)
	}

	for _, m := range moves {
		if n := len(ComputeCaptures(b, m.Row, m.Col, Black)); n != 1 {
			t.Errorf("move %v captures %d stones, want 1", m, n)
		}
	}
}

func TestLegalMovesIdempotent(t *testing.T) {
	b := NewBoard()
	first := LegalMoves(b, White)
	second := LegalMoves(b, White)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestComputeCaptures(t *testing.T) {
	tests := []struct {
		name     string
		position string
		row, col int
		player   Player
		want     CaptureSet
	}{
		{
			name:     "occupied target",
			position: StartingPosition,
			row:      3, col: 3,
			player: Black,
			want:   nil,
		},
		{
			name:     "out of bounds target",
			position: StartingPosition,
			row:      -1, col: 3,
			player: Black,
			want:   nil,
		},
		{
			name:     "empty gap breaks the ray",
			position: "8/8/8/4W1B1/8/8/8/8 b",
			row:      3, col: 3,
			player: Black,
			want:   nil,
		},
		{
			name:     "adjacent own stone captures nothing",
			position: "8/8/8/4BW2/8/8/8/8 b",
			row:      3, col: 3,
			player: Black,
			want:   nil,
		},
		{
			name:     "run without anchor reaches the edge",
			position: "8/8/8/4WWWW/8/8/8/8 b",
			row:      3, col: 3,
			player: Black,
			want:   nil,
		},
		{
			name:     "long run is captured",
			position: "8/8/8/4WWWB/8/8/8/8 b",
			row:      3, col: 3,
			player: Black,
			want:   CaptureSet{{3, 4}, {3, 5}, {3, 6}},
		},
		{
			name:     "all eight directions",
			position: "8/1B1B1B2/2WWW3/1BW1WB2/2WWW3/1B1B1B2/8/8 b",
			row:      3, col: 3,
			player: Black,
			want: CaptureSet{
				{2, 2}, {2, 3}, {2, 4},
				{3, 2}, {3, 4},
				{4, 2}, {4, 3}, {4, 4},
			},
		},
		{
			name:     "white captures toward black anchor",
			position: StartingPosition,
			row:      2, col: 4,
			player: White,
			want:   CaptureSet{{3, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := mustPosition(t, tt.position)
			got := ComputeCaptures(b, tt.row, tt.col, tt.player)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("captures = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCornersAndEdgesStayOnBoard(t *testing.T) {
	// Every cell is White except the candidate, so each ray runs to the edge
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b[r][c] = White
		}
	}

	for _, sq := range []Coord{{0, 0}, {0, 7}, {7, 0}, {7, 7}, {0, 3}, {7, 4}, {3, 0}, {4, 7}} {
		board := b
		board.Set(sq, Empty)
		if got := ComputeCaptures(board, sq.Row, sq.Col, Black); len(got) != 0 {
			t.Errorf("candidate %v captured %v without an anchor", sq, got)
		}
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		position string
		winner   Player
		ok       bool
	}{
		{"BB6/8/8/8/8/8/8/8 b", Black, true},
		{"BWW5/8/8/8/8/8/8/8 b", White, true},
		{"B6W/8/8/8/8/8/8/8 b", Empty, false},
	}
	for _, tt := range tests {
		b, _ := mustPosition(t, tt.position)
		winner, ok := Winner(b)
		if winner != tt.winner || ok != tt.ok {
			t.Errorf("%s: winner=%v ok=%v, want %v %v", tt.position, winner, ok, tt.winner, tt.ok)
		}
	}
}

// TestRandomPlayouts plays seeded random games and checks the move and
// termination properties at every step
func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 50; game++ {
		g := NewGame()

		for step := 0; !g.IsOver(); step++ {
			if step > 200 {
				t.Fatalf("game %d did not terminate", game)
			}

			board := g.Board()
			turn := g.Turn()
			moves := g.LegalMoves(turn)

			legal := make(map[Coord]bool, len(moves))
			for _, m := range moves {
				legal[m] = true
				if len(ComputeCaptures(board, m.Row, m.Col, turn)) == 0 {
					t.Fatalf("legal move %v has no captures", m)
				}
			}
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					if board[r][c] == Empty && !legal[Coord{r, c}] &&
						len(ComputeCaptures(board, r, c, turn)) != 0 {
						t.Fatalf("square (%d,%d) captures but is not listed", r, c)
					}
				}
			}
			if len(moves) == 0 {
				t.Fatalf("in-progress game left %v without a move", turn)
			}

			pick := moves[rng.Intn(len(moves))]
			before := g.Status()
			res := g.AttemptMove(pick.Row, pick.Col)
			if !res.Accepted {
				t.Fatalf("legal move %v rejected: %v", pick, res.Reason)
			}
			after := g.Status()

			mover, other := before.Black, before.White
			moverAfter, otherAfter := after.Black, after.White
			if turn == White {
				mover, other = before.White, before.Black
				moverAfter, otherAfter = after.White, after.Black
			}
			if moverAfter != mover+1+len(res.Captures) || otherAfter != other-len(res.Captures) {
				t.Fatalf("counts %d/%d -> %d/%d with %d captures",
					mover, other, moverAfter, otherAfter, len(res.Captures))
			}

			changed := 0
			next := g.Board()
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					if next[r][c] != board[r][c] {
						changed++
					}
				}
			}
			if changed != 1+len(res.Captures) {
				t.Fatalf("%d cells changed, want %d", changed, 1+len(res.Captures))
			}
		}

		final := g.Board()
		if HasLegalMove(final, Black) || HasLegalMove(final, White) {
			t.Fatalf("game %d over while a move exists", game)
		}
		st := g.Status()
		total := st.Black + st.White
		if total < 4 || total > 64 || final.CountStones(Empty) != 64-total {
			t.Fatalf("game %d ended with black=%d white=%d", game, st.Black, st.White)
		}
	}
}
