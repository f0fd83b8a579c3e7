// FILE: internal/reversi/game.go
package reversi

type Status int

const (
	InProgress Status = iota
	Over
)

func (s Status) String() string {
	if s == Over {
		return "over"
	}
	return "in progress"
}

type EventKind int

const (
	EventMove EventKind = iota
	EventPass
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventPass:
		return "pass"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a notification produced by a state transition. For EventPass,
// Player is the side that passed. For EventGameOver it is the winner, or
// Empty on a draw.
type Event struct {
	Kind   EventKind
	Player Player
}

// RejectReason classifies why a move attempt was not accepted
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectGameOver
	RejectOutOfBounds
	RejectOccupied
	RejectNoCaptures
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return ""
	case RejectGameOver:
		return "game is over"
	case RejectOutOfBounds:
		return "square is off the board"
	case RejectOccupied:
		return "square is occupied"
	case RejectNoCaptures:
		return "move captures nothing"
	default:
		return "unknown"
	}
}

// MoveResult is the outcome of AttemptMove
type MoveResult struct {
	Accepted bool
	Reason   RejectReason
	Player   Player
	Coord    Coord
	Captures CaptureSet
	Events   []Event
}

// StatusReport is the read model exposed after every state change
type StatusReport struct {
	Status Status
	Turn   Player
	Black  int
	White  int
}

// Game owns the board and the turn marker and drives turn resolution.
// It is not safe for concurrent use.
type Game struct {
	board  Board
	turn   Player
	status Status
}

func NewGame() *Game {
	g := &Game{}
	g.Initialize()
	return g
}

// NewGameFrom starts from an arbitrary position and resolves it once, so a
// side without moves is passed and a dead position is immediately over.
func NewGameFrom(b Board, turn Player) *Game {
	if turn != White {
		turn = Black
	}
	g := &Game{board: b, turn: turn, status: InProgress}
	g.Resolve()
	return g
}

func (g *Game) Initialize() {
	g.board.Initialize()
	g.turn = Black
	g.status = InProgress
}

// Reset discards the current game and starts over
func (g *Game) Reset() {
	g.Initialize()
}

// Board returns a copy of the current position
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Turn() Player {
	return g.turn
}

func (g *Game) IsOver() bool {
	return g.status == Over
}

func (g *Game) LegalMoves(p Player) []Coord {
	return LegalMoves(g.board, p)
}

func (g *Game) Status() StatusReport {
	return StatusReport{
		Status: g.status,
		Turn:   g.turn,
		Black:  g.board.CountStones(Black),
		White:  g.board.CountStones(White),
	}
}

// Winner reports the winner once the game is over. ok is false while the game
// is running or when it ended in a draw.
func (g *Game) Winner() (Player, bool) {
	if g.status != Over {
		return Empty, false
	}
	return Winner(g.board)
}

// AttemptMove plays the current player at (row, col). A rejected attempt
// leaves the game untouched.
func (g *Game) AttemptMove(row, col int) MoveResult {
	result := MoveResult{
		Player: g.turn,
		Coord:  Coord{Row: row, Col: col},
	}

	switch {
	case g.status == Over:
		result.Reason = RejectGameOver
		return result
	case !InBounds(row, col):
		result.Reason = RejectOutOfBounds
		return result
	case g.board[row][col] != Empty:
		result.Reason = RejectOccupied
		return result
	}

	captures := ComputeCaptures(g.board, row, col, g.turn)
	if len(captures) == 0 {
		result.Reason = RejectNoCaptures
		return result
	}

	g.board.PlaceAndFlip(g.turn, result.Coord, captures)
	g.toggleTurn()

	result.Accepted = true
	result.Captures = captures
	result.Events = append([]Event{{Kind: EventMove, Player: result.Player}}, g.Resolve()...)
	return result
}

// Resolve runs one step of turn resolution for the current player: nothing
// happens if they can move, they pass if only the opponent can move, and the
// game ends if neither can.
func (g *Game) Resolve() []Event {
	if g.status == Over {
		return nil
	}
	if HasLegalMove(g.board, g.turn) {
		return nil
	}

	if HasLegalMove(g.board, g.turn.Opponent()) {
		passed := g.turn
		g.toggleTurn()
		return []Event{{Kind: EventPass, Player: passed}}
	}

	g.status = Over
	winner, _ := Winner(g.board)
	return []Event{{Kind: EventGameOver, Player: winner}}
}

func (g *Game) toggleTurn() {
	g.turn = g.turn.Opponent()
}
