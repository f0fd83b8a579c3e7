// FILE: internal/transport/cli/handler.go
package cli

import (
	"fmt"
	"strings"

	"reversi/internal/cli"
	"reversi/internal/reversi"
	"reversi/internal/server/core"
	"reversi/internal/server/processor"
)

// CLIHandler runs a hotseat game in the terminal on top of the processor
type CLIHandler struct {
	proc    *processor.Processor
	view    *cli.CLI
	gameID  string
	initial string
	game    core.GameResponse
}

func New(proc *processor.Processor, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		proc: proc,
		view: view,
	}
}

// Start creates the first game. An empty position means the standard opening.
func (h *CLIHandler) Start(position string) error {
	if err := h.newGame(position); err != nil {
		return err
	}
	h.showBoard()
	return nil
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() {
	for {
		cmd, err := h.view.GetCommand(h.getPrompt())
		if err != nil {
			h.view.ShowError(err)
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	if h.gameID != "" && h.game.State == core.StateOngoing.String() {
		return h.view.Prompt(h.game.Turn)
	}
	return h.view.Prompt("")
}

// ProcessCommand handles one command, returning false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		if err := h.newGame(""); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage("New game started.")
		h.showBoard()

	case cli.CmdReset:
		if !h.requireGame() {
			return true
		}
		resp := h.proc.Execute(processor.NewResetGameCommand(h.gameID))
		if !resp.Success {
			h.view.ShowError(responseError(resp))
			return true
		}
		h.game = resp.Data.(core.GameResponse)
		h.view.ShowMessage("Game reset.")
		h.showBoard()

	case cli.CmdLoad:
		if cmd.Raw == "" {
			h.view.ShowMessage("Usage: load <position>, e.g. load " + reversi.StartingPosition)
			return true
		}
		if err := h.newGame(cmd.Raw); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage("Position loaded.")
		h.showBoard()

	case cli.CmdMove:
		if !h.requireGame() {
			return true
		}
		h.handleMove(cmd.Args[0])

	case cli.CmdMoves:
		if !h.requireGame() {
			return true
		}
		if h.game.State != core.StateOngoing.String() {
			h.view.ShowMessage("The game is over.")
			return true
		}
		resp := h.proc.Execute(processor.NewGetLegalMovesCommand(h.gameID, ""))
		if !resp.Success {
			h.view.ShowError(responseError(resp))
			return true
		}
		lm := resp.Data.(core.LegalMovesResponse)
		h.view.ShowLegalMoves(lm.Player, squares(lm.Moves))

	case cli.CmdPosition:
		if !h.requireGame() {
			return true
		}
		h.view.ShowMessage(h.game.Position)

	case cli.CmdHistory:
		if !h.requireGame() {
			return true
		}
		h.view.ShowHistory(h.initial, h.game)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color on|off")
			return true
		}
		switch strings.ToLower(cmd.Args[0]) {
		case "on":
			h.view.SetColor(true)
		case "off":
			h.view.SetColor(false)
		default:
			h.view.ShowMessage("Usage: color on|off")
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color: %s", strings.ToLower(cmd.Args[0])))
		if h.gameID != "" {
			h.showBoard()
		}

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) handleMove(square string) {
	at, err := reversi.ParseCoord(square)
	if err != nil {
		h.view.ShowError(fmt.Errorf("%v (type 'help' for commands)", err))
		return
	}

	resp := h.proc.Execute(processor.NewMakeMoveCommand(h.gameID, at.Row, at.Col))
	if !resp.Success {
		h.view.ShowError(responseError(resp))
		return
	}

	mv := resp.Data.(core.MoveResponse)
	h.game = mv.Game
	if !mv.Accepted {
		h.view.ShowRejected(at.String(), mv.Reason)
		return
	}

	h.view.ShowMove(mv.Game.LastMove)
	h.showBoard()
}

// newGame replaces the current game with one from the given position
func (h *CLIHandler) newGame(position string) error {
	resp := h.proc.Execute(processor.NewCreateGameCommand(core.CreateGameRequest{Position: position}))
	if !resp.Success {
		return responseError(resp)
	}

	if h.gameID != "" {
		h.proc.Execute(processor.NewDeleteGameCommand(h.gameID))
	}

	h.game = resp.Data.(core.GameResponse)
	h.gameID = h.game.GameID
	h.initial = h.game.Position
	return nil
}

// showBoard draws the board with the side to move's options marked
func (h *CLIHandler) showBoard() {
	resp := h.proc.Execute(processor.NewGetBoardCommand(h.gameID))
	if !resp.Success {
		h.view.ShowError(responseError(resp))
		return
	}
	h.view.DisplayBoard(resp.Data.(core.BoardResponse).Board)
	h.view.ShowStatus(h.game)

	if h.game.State != core.StateOngoing.String() {
		h.view.ShowGameOver(h.game)
	}
}

func (h *CLIHandler) requireGame() bool {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'load <position>'.")
		return false
	}
	return true
}

func responseError(resp processor.ProcessorResponse) error {
	if resp.Error == nil {
		return fmt.Errorf("unknown error")
	}
	if resp.Error.Details != "" {
		return fmt.Errorf("%s: %s", resp.Error.Error, resp.Error.Details)
	}
	return fmt.Errorf("%s", resp.Error.Error)
}

func squares(moves []reversi.Coord) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
