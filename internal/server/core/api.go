package core

import "reversi/internal/reversi"

// Request types

type CreateGameRequest struct {
	Position string `json:"position,omitempty" validate:"omitempty,min=17,max=80"`
}

// MoveRequest fields are pointers so an omitted coordinate fails validation
type MoveRequest struct {
	Row *int `json:"row" validate:"required,min=0,max=7"`
	Col *int `json:"col" validate:"required,min=0,max=7"`
}

// Response types

type GameResponse struct {
	GameID     string          `json:"gameId"`
	Position   string          `json:"position"`
	Board      [][]string      `json:"board"` // rows of "b", "w" or "-"
	Turn       string          `json:"turn"`  // "b" or "w"
	State      string          `json:"state"` // "ongoing", "black wins", "white wins", "draw"
	BlackCount int             `json:"blackCount"`
	WhiteCount int             `json:"whiteCount"`
	LegalMoves []reversi.Coord `json:"legalMoves"`
	Moves      []string        `json:"moves"`
	History    []HistoryEntry  `json:"history"`
	Version    int             `json:"version"`
	LastMove   *MoveInfo       `json:"lastMove,omitempty"`
}

// HistoryEntry is one position in a game's history. The first entry is the
// starting position and has no move.
type HistoryEntry struct {
	Move     string `json:"move,omitempty"`
	Player   string `json:"player,omitempty"`
	Position string `json:"position"`
	PassedBy string `json:"passedBy,omitempty"`
}

type MoveInfo struct {
	Move        string          `json:"move"` // a1..h8
	Row         int             `json:"row"`
	Col         int             `json:"col"`
	PlayerColor string          `json:"playerColor"`
	Captures    []reversi.Coord `json:"captures"`
	Events      []EventInfo     `json:"events,omitempty"`
}

// EventInfo mirrors a reversi.Event; Player is empty for a drawn game over
type EventInfo struct {
	Type   string `json:"type"` // "move", "pass", "game_over"
	Player string `json:"player,omitempty"`
}

// MoveResponse is returned for every move attempt. An illegal move is a
// normal outcome: Accepted is false and Reason says why.
type MoveResponse struct {
	Accepted bool            `json:"accepted"`
	Reason   string          `json:"reason,omitempty"`
	Captures []reversi.Coord `json:"captures"`
	Game     GameResponse    `json:"game"`
}

type LegalMovesResponse struct {
	Player string          `json:"player"`
	Moves  []reversi.Coord `json:"moves"`
}

type BoardResponse struct {
	Position string `json:"position"`
	Board    string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// NewEventInfos converts core game events for the wire
func NewEventInfos(events []reversi.Event) []EventInfo {
	infos := make([]EventInfo, 0, len(events))
	for _, e := range events {
		info := EventInfo{Type: e.Kind.String()}
		if e.Player != reversi.Empty {
			info.Player = e.Player.String()
		}
		infos = append(infos, info)
	}
	return infos
}
