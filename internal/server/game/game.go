// FILE: internal/server/game/game.go
package game

import (
	"reversi/internal/reversi"
	"reversi/internal/server/core"
)

// Snapshot records the position after each accepted move. The first
// snapshot is the starting position and has no move.
type Snapshot struct {
	Position string
	Move     string         // a1..h8, empty for the start
	Player   reversi.Player // who made Move
	NextTurn reversi.Player
	PassedBy reversi.Player // side that passed right after Move, Empty if none
}

// Game is a server-side session around one reversi game
type Game struct {
	play       *reversi.Game
	initial    reversi.Board
	initialTo  reversi.Player
	snapshots  []Snapshot
	lastResult *reversi.MoveResult
	version    int
}

// New starts a session from the given position. The position is resolved
// once, so a side without moves is passed immediately.
func New(b reversi.Board, turn reversi.Player) *Game {
	g := &Game{
		initial:   b,
		initialTo: turn,
	}
	g.start()
	return g
}

func (g *Game) start() {
	g.play = reversi.NewGameFrom(g.initial, g.initialTo)
	start := Snapshot{
		Position: g.play.Position(),
		NextTurn: g.play.Turn(),
	}
	if g.play.Turn() != g.initialTo {
		start.PassedBy = g.initialTo
	}
	g.snapshots = []Snapshot{start}
	g.lastResult = nil
}

// Attempt plays the side to move. Rejected attempts change nothing.
func (g *Game) Attempt(row, col int) reversi.MoveResult {
	result := g.play.AttemptMove(row, col)
	if !result.Accepted {
		return result
	}

	snap := Snapshot{
		Position: g.play.Position(),
		Move:     result.Coord.String(),
		Player:   result.Player,
		NextTurn: g.play.Turn(),
	}
	for _, e := range result.Events {
		if e.Kind == reversi.EventPass {
			snap.PassedBy = e.Player
		}
	}
	g.snapshots = append(g.snapshots, snap)
	g.lastResult = &result
	g.version++
	return result
}

// Reset returns the session to its initial position
func (g *Game) Reset() {
	g.start()
	g.version++
}

func (g *Game) Board() reversi.Board {
	return g.play.Board()
}

func (g *Game) Turn() reversi.Player {
	return g.play.Turn()
}

func (g *Game) Status() reversi.StatusReport {
	return g.play.Status()
}

func (g *Game) LegalMoves(p reversi.Player) []reversi.Coord {
	return g.play.LegalMoves(p)
}

func (g *Game) State() core.State {
	return core.StateOf(g.play)
}

func (g *Game) LastResult() *reversi.MoveResult {
	return g.lastResult
}

// Version increases with every state change
func (g *Game) Version() int {
	return g.version
}

func (g *Game) CurrentPosition() string {
	return g.play.Position()
}

func (g *Game) InitialPosition() string {
	return reversi.FormatPosition(g.initial, g.initialTo)
}

// Snapshots returns a copy of the history, starting position first
func (g *Game) Snapshots() []Snapshot {
	out := make([]Snapshot, len(g.snapshots))
	copy(out, g.snapshots)
	return out
}

func (g *Game) Moves() []string {
	moves := make([]string, 0, len(g.snapshots)-1)
	for _, snap := range g.snapshots[1:] {
		moves = append(moves, snap.Move)
	}
	return moves
}
