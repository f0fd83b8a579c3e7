package core

import "reversi/internal/reversi"

type State int

const (
	StateOngoing State = iota
	StateBlackWins
	StateWhiteWins
	StateDraw
)

func (s State) String() string {
	switch s {
	case StateBlackWins:
		return "black wins"
	case StateWhiteWins:
		return "white wins"
	case StateDraw:
		return "draw"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// StateOf derives the outcome of a game from its status and final board
func StateOf(g *reversi.Game) State {
	if !g.IsOver() {
		return StateOngoing
	}
	winner, ok := g.Winner()
	if !ok {
		return StateDraw
	}
	if winner == reversi.Black {
		return StateBlackWins
	}
	return StateWhiteWins
}
