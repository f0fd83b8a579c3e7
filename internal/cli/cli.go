// FILE: internal/cli/cli.go
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"reversi/internal/display"
	"reversi/internal/server/core"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdReset
	CmdLoad
	CmdMove
	CmdMoves
	CmdPosition
	CmdColor
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// LineReader supplies input lines. io.EOF ends the session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// scannerReader reads lines from a plain stream, writing the prompt itself
type scannerReader struct {
	scanner *bufio.Scanner
	output  io.Writer
}

// NewScannerReader reads from a non-interactive stream such as a pipe
func NewScannerReader(input io.Reader, output io.Writer) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(input), output: output}
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.output, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

type CLI struct {
	input  LineReader
	output io.Writer
	color  bool
}

func New(input LineReader, output io.Writer, color bool) *CLI {
	return &CLI{
		input:  input,
		output: output,
		color:  color,
	}
}

// GetCommand reads and parses one command. End of input yields CmdQuit.
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	line, err := c.input.ReadLine(prompt)
	if err == io.EOF {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}
	return ParseCommand(input), nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew}
	case "reset":
		return &Command{Type: CmdReset}
	case "load":
		return &Command{Type: CmdLoad, Args: args, Raw: strings.Join(args, " ")}
	case "moves", "legal":
		return &Command{Type: CmdMoves}
	case "position", "pos":
		return &Command{Type: CmdPosition}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Anything else is taken as a square
		return &Command{Type: CmdMove, Args: []string{cmd}, Raw: input}
	}
}

func (c *CLI) SetColor(on bool) {
	c.color = on
}

func (c *CLI) Color() bool {
	return c.color
}

func (c *CLI) Prompt(turn string) string {
	return display.Prompt(c.color, turn)
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(display.Paint(c.color, display.Red, fmt.Sprintf("Error: %v", err)))
}

func (c *CLI) DisplayBoard(ascii string) {
	fmt.Fprintln(c.output)
	display.RenderBoard(c.output, ascii, c.color)
}

// ShowStatus prints the score line and whose turn it is
func (c *CLI) ShowStatus(g core.GameResponse) {
	score := fmt.Sprintf("Black %d - White %d", g.BlackCount, g.WhiteCount)
	if g.State == core.StateOngoing.String() {
		c.ShowMessage(fmt.Sprintf("%s   %s to move", score, display.ColorForTurn(c.color, g.Turn)))
		return
	}
	c.ShowMessage(score)
}

// ShowMove reports an accepted placement and the turn events it caused
func (c *CLI) ShowMove(m *core.MoveInfo) {
	c.ShowMessage(fmt.Sprintf("%s plays %s, %d captured",
		display.ColorForTurn(c.color, m.PlayerColor), m.Move, len(m.Captures)))

	for _, e := range m.Events {
		switch e.Type {
		case "pass":
			c.ShowMessage(display.Paint(c.color, display.Yellow,
				fmt.Sprintf("%s has no legal move and passes.", colorName(e.Player))))
		case "game_over":
			c.ShowMessage(display.Paint(c.color, display.Yellow, "Neither side can move."))
		}
	}
}

func (c *CLI) ShowRejected(square, reason string) {
	c.ShowMessage(display.Paint(c.color, display.Red, fmt.Sprintf("Illegal move %s: %s", square, reason)))
}

func (c *CLI) ShowLegalMoves(turn string, moves []string) {
	if len(moves) == 0 {
		c.ShowMessage(fmt.Sprintf("%s has no legal moves", colorName(turn)))
		return
	}
	c.ShowMessage(fmt.Sprintf("Legal moves for %s: %s", colorName(turn), strings.Join(moves, " ")))
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <square>         - Place a stone for the side to move (e.g., d3, f5)
  moves            - List legal moves for the side to move
  new              - Start a new game from the standard opening
  reset            - Restart the current game from its starting position
  load <position>  - Start from a position, e.g. load 8/8/8/3WB3/3BW3/8/8/8 b
  position         - Print the current position
  history          - Show the moves played so far
  color on|off     - Toggle colored output
  quit/exit        - Exit the program
  help/?           - Show this help message

Passes are automatic: when a side has no legal move the turn goes back
to the other side.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage(display.Paint(c.color, display.Cyan, "Welcome to Reversi!"))
	c.ShowMessage("Two players share this terminal. Black moves first.")
	c.ShowMessage("Enter a square such as 'd3' to play, or 'help' for commands.")
	c.ShowMessage("")
}

func (c *CLI) ShowHistory(initial string, g core.GameResponse) {
	c.ShowMessage(fmt.Sprintf("Starting position: %s", initial))

	for i, h := range g.History {
		if i > 0 {
			c.ShowMessage(fmt.Sprintf("%2d. %s %s", i, h.Move, colorName(h.Player)))
		}
		if h.PassedBy != "" {
			c.ShowMessage(fmt.Sprintf("    %s passes", colorName(h.PassedBy)))
		}
	}
	if len(g.History) <= 1 {
		c.ShowMessage("No moves yet")
	}
	c.ShowMessage(fmt.Sprintf("Current position: %s", g.Position))
	c.ShowMessage(fmt.Sprintf("Game state: %s", g.State))
}

func (c *CLI) ShowGameOver(g core.GameResponse) {
	msg := fmt.Sprintf("Game over: %s (Black %d - White %d)", g.State, g.BlackCount, g.WhiteCount)
	c.ShowMessage("\n" + display.Paint(c.color, display.Bold+display.Yellow, msg))
	c.ShowMessage("Start again with 'new' or 'reset'.")
}

func colorName(p string) string {
	switch p {
	case "b":
		return "Black"
	case "w":
		return "White"
	default:
		return p
	}
}
