package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reversi/internal/server/core"
	"reversi/internal/server/processor"
	"reversi/internal/server/service"

	"github.com/gofiber/fiber/v2"
)

const unknownGameID = "7f1d2c3b-4a59-4e8f-9d6c-5b4a3f2e1d0c"

func newTestApp(t *testing.T) (*fiber.App, *service.Service) {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Shutdown(time.Second) })
	return NewFiberApp(processor.New(svc), svc, true), svc
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func createGame(t *testing.T, app *fiber.App, body string) core.GameResponse {
	t.Helper()
	status, data := do(t, app, fiber.MethodPost, "/api/v1/games", body)
	if status != fiber.StatusCreated {
		t.Fatalf("create status %d: %s", status, data)
	}
	return decode[core.GameResponse](t, data)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	status, data := do(t, app, fiber.MethodGet, "/health", "")
	if status != fiber.StatusOK {
		t.Fatalf("status %d", status)
	}
	health := decode[map[string]any](t, data)
	if health["status"] != "healthy" || health["storage"] != "disabled" {
		t.Fatalf("health: %v", health)
	}
}

func TestCreateGame(t *testing.T) {
	app, _ := newTestApp(t)

	g := createGame(t, app, "")
	if g.Turn != "b" || g.State != "ongoing" || len(g.Board) != 8 {
		t.Fatalf("default game: %+v", g)
	}

	g = createGame(t, app, `{"position":"WB6/8/8/8/8/8/8/8 w"}`)
	if g.Turn != "w" || len(g.LegalMoves) != 1 {
		t.Fatalf("positioned game: %+v", g)
	}

	status, data := do(t, app, fiber.MethodPost, "/api/v1/games", `{"position":"8/8/8/8/8/8/8/8/8 b"}`)
	if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrInvalidPosition {
		t.Fatalf("bad position: %d %s", status, data)
	}

	status, data = do(t, app, fiber.MethodPost, "/api/v1/games", `{"position":"x"}`)
	if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrInvalidRequest {
		t.Fatalf("short position: %d %s", status, data)
	}

	status, _ = do(t, app, fiber.MethodPost, "/api/v1/games", `{not json`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("malformed body: %d", status)
	}
}

func TestContentType(t *testing.T) {
	app, _ := newTestApp(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/games", strings.NewReader("position=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestMoves(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app, "")
	path := "/api/v1/games/" + g.GameID + "/moves"

	status, data := do(t, app, fiber.MethodPost, path, `{"row":2,"col":3}`)
	if status != fiber.StatusOK {
		t.Fatalf("move status %d: %s", status, data)
	}
	mv := decode[core.MoveResponse](t, data)
	if !mv.Accepted || mv.Game.Turn != "w" || len(mv.Captures) != 1 {
		t.Fatalf("move: %+v", mv)
	}
	if h := mv.Game.History; len(h) != 2 || h[1].Move != "d3" || h[1].Player != "b" || h[1].PassedBy != "" {
		t.Fatalf("history: %+v", h)
	}

	// Illegal placement is a normal answer
	status, data = do(t, app, fiber.MethodPost, path, `{"row":0,"col":0}`)
	mv = decode[core.MoveResponse](t, data)
	if status != fiber.StatusOK || mv.Accepted || mv.Reason == "" {
		t.Fatalf("illegal move: %d %+v", status, mv)
	}

	status, data = do(t, app, fiber.MethodPost, path, `{"row":8,"col":0}`)
	if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrInvalidRequest {
		t.Fatalf("out of range: %d %s", status, data)
	}

	status, _ = do(t, app, fiber.MethodPost, path, "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("empty move body: %d", status)
	}
}

func TestMoveRequiresBothCoordinates(t *testing.T) {
	app, _ := newTestApp(t)
	// Black at a1 would take b1 and end the game
	g := createGame(t, app, `{"position":"1WB5/8/8/8/8/8/8/8 b"}`)
	path := "/api/v1/games/" + g.GameID + "/moves"

	for _, body := range []string{`{}`, `{"row":0}`, `{"col":0}`} {
		status, data := do(t, app, fiber.MethodPost, path, body)
		if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrInvalidRequest {
			t.Fatalf("%s: %d %s", body, status, data)
		}
	}

	status, data := do(t, app, fiber.MethodGet, "/api/v1/games/"+g.GameID, "")
	if got := decode[core.GameResponse](t, data); status != fiber.StatusOK || len(got.Moves) != 0 || got.State != "ongoing" {
		t.Fatalf("incomplete requests changed the game: %d %+v", status, got)
	}

	status, data = do(t, app, fiber.MethodPost, path, `{"row":0,"col":0}`)
	if mv := decode[core.MoveResponse](t, data); status != fiber.StatusOK || !mv.Accepted {
		t.Fatalf("explicit a1: %d %s", status, data)
	}
}

func TestGameIDValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := do(t, app, fiber.MethodGet, "/api/v1/games/not-a-uuid", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("invalid id: %d", status)
	}

	status, data := do(t, app, fiber.MethodGet, "/api/v1/games/"+unknownGameID, "")
	if status != fiber.StatusNotFound || decode[core.ErrorResponse](t, data).Code != core.ErrGameNotFound {
		t.Fatalf("unknown id: %d %s", status, data)
	}
}

func TestResetBoardLegalDelete(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app, "")
	base := "/api/v1/games/" + g.GameID

	do(t, app, fiber.MethodPost, base+"/moves", `{"row":2,"col":3}`)

	status, data := do(t, app, fiber.MethodPost, base+"/reset", "")
	reset := decode[core.GameResponse](t, data)
	if status != fiber.StatusOK || len(reset.Moves) != 0 || reset.Turn != "b" {
		t.Fatalf("reset: %d %+v", status, reset)
	}

	status, data = do(t, app, fiber.MethodGet, base+"/board", "")
	board := decode[core.BoardResponse](t, data)
	if status != fiber.StatusOK || strings.Count(board.Board, "*") != 4 {
		t.Fatalf("board: %d %+v", status, board)
	}

	status, data = do(t, app, fiber.MethodGet, base+"/legal?player=w", "")
	legal := decode[core.LegalMovesResponse](t, data)
	if status != fiber.StatusOK || legal.Player != "w" || len(legal.Moves) != 4 {
		t.Fatalf("legal: %d %+v", status, legal)
	}

	status, _ = do(t, app, fiber.MethodGet, base+"/legal?player=x", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("legal with bad player: %d", status)
	}

	status, _ = do(t, app, fiber.MethodDelete, base, "")
	if status != fiber.StatusNoContent {
		t.Fatalf("delete: %d", status)
	}
	status, _ = do(t, app, fiber.MethodDelete, base, "")
	if status != fiber.StatusNotFound {
		t.Fatalf("second delete: %d", status)
	}
}

func TestLongPoll(t *testing.T) {
	app, svc := newTestApp(t)
	g := createGame(t, app, "")
	path := "/api/v1/games/" + g.GameID + "?wait=true&version="

	// Behind the current version answers at once
	status, data := do(t, app, fiber.MethodGet, path+"-1", "")
	if status != fiber.StatusOK || decode[core.GameResponse](t, data).Version != 0 {
		t.Fatalf("stale poll: %d %s", status, data)
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		svc.ApplyMove(g.GameID, 2, 3)
	}()

	start := time.Now()
	status, data = do(t, app, fiber.MethodGet, path+"0", "")
	if status != fiber.StatusOK {
		t.Fatalf("poll status %d: %s", status, data)
	}
	if got := decode[core.GameResponse](t, data); got.Version != 1 || got.Turn != "w" {
		t.Fatalf("poll returned %+v", got)
	}
	if time.Since(start) > 10*time.Second {
		t.Fatalf("poll did not wake on move")
	}
}
