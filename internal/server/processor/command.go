// FILE: internal/server/processor/command.go
package processor

import (
	"reversi/internal/server/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdDeleteGame
	CmdMakeMove
	CmdResetGame
	CmdGetBoard
	CmdGetLegalMoves
)

func (t CommandType) String() string {
	switch t {
	case CmdCreateGame:
		return "create_game"
	case CmdGetGame:
		return "get_game"
	case CmdDeleteGame:
		return "delete_game"
	case CmdMakeMove:
		return "make_move"
	case CmdResetGame:
		return "reset_game"
	case CmdGetBoard:
		return "get_board"
	case CmdGetLegalMoves:
		return "get_legal_moves"
	default:
		return "unknown"
	}
}

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	GameID string // For game-specific commands
	Args   any    // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

// MoveArgs is a placement for the side to move, 0-based
type MoveArgs struct {
	Row, Col int
}

// LegalMovesArgs selects whose moves to list; empty means the side to move
type LegalMovesArgs struct {
	Player string
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewMakeMoveCommand(gameID string, row, col int) Command {
	return Command{
		Type:   CmdMakeMove,
		GameID: gameID,
		Args:   MoveArgs{Row: row, Col: col},
	}
}

func NewResetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdResetGame,
		GameID: gameID,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewGetLegalMovesCommand(gameID, player string) Command {
	return Command{
		Type:   CmdGetLegalMoves,
		GameID: gameID,
		Args:   LegalMovesArgs{Player: player},
	}
}
