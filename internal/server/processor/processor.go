// FILE: internal/server/processor/processor.go
package processor

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"reversi/internal/reversi"
	"reversi/internal/server/core"
	"reversi/internal/server/game"
	"reversi/internal/server/service"
)

// Position validation regex, checked before parsing
var positionPattern = regexp.MustCompile(`^[BW1-8/]+ [bw]$`)

// Processor validates commands and turns service results into responses
type Processor struct {
	svc *service.Service
}

// New creates a processor over the given service
func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdResetGame:
		return p.handleResetGame(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetLegalMoves:
		return p.handleGetLegalMoves(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// isPositionSafe rejects control characters and anything outside the notation alphabet
func (p *Processor) isPositionSafe(pos string) bool {
	for _, r := range pos {
		if unicode.IsControl(r) {
			return false
		}
	}
	return positionPattern.MatchString(pos)
}

// handleCreateGame creates a game from the standard opening or a supplied position
func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	position := reversi.StartingPosition
	if pos := strings.TrimSpace(args.Position); pos != "" {
		if !p.isPositionSafe(pos) {
			return p.errorResponse("invalid position format or characters", core.ErrInvalidPosition)
		}
		position = pos
	}

	b, turn, err := reversi.ParsePosition(position)
	if err != nil {
		return p.errorDetails("invalid position", core.ErrInvalidPosition, err)
	}

	gameID := p.svc.GenerateGameID()
	if err = p.svc.CreateGame(gameID, b, turn); err != nil {
		if errors.Is(err, service.ErrTooManyGames) {
			return p.errorDetails("too many games", core.ErrResourceLimit, err)
		}
		return p.errorDetails("failed to create game", core.ErrInternalError, err)
	}

	return p.gameResponse(gameID)
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	return p.gameResponse(cmd.GameID)
}

// handleMakeMove attempts a placement for the side to move. A rejected
// placement is a successful command with Accepted set to false.
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(MoveArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	result, err := p.svc.ApplyMove(cmd.GameID, args.Row, args.Col)
	if err != nil {
		return p.serviceError(err)
	}

	resp := core.MoveResponse{
		Accepted: result.Accepted,
		Captures: coords(result.Captures),
	}
	if !result.Accepted {
		resp.Reason = result.Reason.String()
	}

	err = p.svc.ViewGame(cmd.GameID, func(g *game.Game) {
		resp.Game = p.buildGameResponse(cmd.GameID, g)
	})
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

// handleResetGame restarts a game from the position it was created with
func (p *Processor) handleResetGame(cmd Command) ProcessorResponse {
	if err := p.svc.ResetGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{
		Success: true,
	}
}

// handleGetBoard returns board visualization with the side to move's options marked
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	var resp core.BoardResponse
	err := p.svc.ViewGame(cmd.GameID, func(g *game.Game) {
		b := g.Board()
		var marks []reversi.Coord
		if g.State() == core.StateOngoing {
			marks = g.LegalMoves(g.Turn())
		}
		resp = core.BoardResponse{
			Position: g.CurrentPosition(),
			Board:    b.ToASCII(marks),
		}
	})
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

func (p *Processor) handleGetLegalMoves(cmd Command) ProcessorResponse {
	args, _ := cmd.Args.(LegalMovesArgs)

	var player reversi.Player
	if args.Player != "" {
		parsed, err := reversi.ParsePlayer(args.Player)
		if err != nil {
			return p.errorDetails("invalid player", core.ErrInvalidRequest, err)
		}
		player = parsed
	}

	var resp core.LegalMovesResponse
	err := p.svc.ViewGame(cmd.GameID, func(g *game.Game) {
		if player == reversi.Empty {
			player = g.Turn()
		}
		resp = core.LegalMovesResponse{
			Player: player.String(),
			Moves:  g.LegalMoves(player),
		}
	})
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

// gameResponse wraps the current state of a game
func (p *Processor) gameResponse(gameID string) ProcessorResponse {
	var resp core.GameResponse
	err := p.svc.ViewGame(gameID, func(g *game.Game) {
		resp = p.buildGameResponse(gameID, g)
	})
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

// buildGameResponse constructs standard game response
func (p *Processor) buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	b := g.Board()
	st := g.Status()

	rows := make([][]string, reversi.Size)
	for r := 0; r < reversi.Size; r++ {
		rows[r] = make([]string, reversi.Size)
		for c := 0; c < reversi.Size; c++ {
			rows[r][c] = b.At(reversi.Coord{Row: r, Col: c}).String()
		}
	}

	legal := []reversi.Coord{}
	if g.State() == core.StateOngoing {
		legal = g.LegalMoves(g.Turn())
	}

	resp := core.GameResponse{
		GameID:     gameID,
		Position:   g.CurrentPosition(),
		Board:      rows,
		Turn:       g.Turn().String(),
		State:      g.State().String(),
		BlackCount: st.Black,
		WhiteCount: st.White,
		LegalMoves: legal,
		Moves:      g.Moves(),
		History:    history(g.Snapshots()),
		Version:    g.Version(),
	}

	// Include last move if available
	if result := g.LastResult(); result != nil {
		resp.LastMove = &core.MoveInfo{
			Move:        result.Coord.String(),
			Row:         result.Coord.Row,
			Col:         result.Coord.Col,
			PlayerColor: result.Player.String(),
			Captures:    coords(result.Captures),
			Events:      core.NewEventInfos(result.Events),
		}
	}

	return resp
}

// serviceError maps service failures to API error codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound)
	case errors.Is(err, service.ErrTooManyGames):
		return p.errorDetails("too many games", core.ErrResourceLimit, err)
	default:
		log.Printf("processor: unexpected service error: %v", err)
		return p.errorDetails("internal error", core.ErrInternalError, err)
	}
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func (p *Processor) errorDetails(message, code string, err error) ProcessorResponse {
	resp := p.errorResponse(message, code)
	resp.Error.Details = fmt.Sprint(err)
	return resp
}

// coords never returns nil so captures always encode as a JSON array
func coords(cs reversi.CaptureSet) []reversi.Coord {
	out := make([]reversi.Coord, len(cs))
	copy(out, cs)
	return out
}

func history(snaps []game.Snapshot) []core.HistoryEntry {
	out := make([]core.HistoryEntry, len(snaps))
	for i, snap := range snaps {
		out[i] = core.HistoryEntry{Move: snap.Move, Position: snap.Position}
		if snap.Move != "" {
			out[i].Player = snap.Player.String()
		}
		if snap.PassedBy != reversi.Empty {
			out[i].PassedBy = snap.PassedBy.String()
		}
	}
	return out
}
