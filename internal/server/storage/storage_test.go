package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "reversi.db"), false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.InitDB(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func flush(t *testing.T, store *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestRecordGameAndMoves(t *testing.T) {
	store := openTestStore(t)
	now := time.Now().UTC()

	store.RecordNewGame(GameRecord{
		GameID:          "g1",
		InitialPosition: "8/8/8/3WB3/3BW3/8/8/8 b",
		Result:          "ongoing",
		BlackCount:      2,
		WhiteCount:      2,
		StartTimeUTC:    now,
	})
	store.RecordMove(MoveRecord{
		GameID:            "g1",
		MoveNumber:        1,
		Square:            "d3",
		Captures:          1,
		PositionAfterMove: "8/8/3B4/3BB3/3BW3/8/8/8 w",
		PlayerColor:       "b",
		MoveTimeUTC:       now,
	}, 4, 1)
	flush(t, store)

	games, err := store.QueryGames("g1", "")
	if err != nil {
		t.Fatalf("query games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	if games[0].BlackCount != 4 || games[0].WhiteCount != 1 || games[0].EndTimeUTC != nil {
		t.Fatalf("unexpected game row: %+v", games[0])
	}

	moves, err := store.QueryMoves("g1")
	if err != nil {
		t.Fatalf("query moves: %v", err)
	}
	if len(moves) != 1 || moves[0].Square != "d3" || moves[0].PlayerColor != "b" {
		t.Fatalf("unexpected moves: %+v", moves)
	}

	store.RecordResult("g1", "black wins", 5, 0, now)
	flush(t, store)

	games, err = store.QueryGames("*", "black wins")
	if err != nil {
		t.Fatalf("query by result: %v", err)
	}
	if len(games) != 1 || games[0].EndTimeUTC == nil {
		t.Fatalf("result not recorded: %+v", games)
	}

	store.RecordReset("g1", "ongoing", 2, 2)
	flush(t, store)

	moves, err = store.QueryMoves("g1")
	if err != nil {
		t.Fatalf("query moves after reset: %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("reset kept %d moves", len(moves))
	}
	if !store.IsHealthy() {
		t.Fatalf("store degraded")
	}
}

func TestFailedWriteDegradesStore(t *testing.T) {
	store := openTestStore(t)

	store.RecordNewGame(GameRecord{
		GameID:          "g2",
		InitialPosition: "8/8/8/3WB3/3BW3/8/8/8 b",
		Result:          "ongoing",
		StartTimeUTC:    time.Now().UTC(),
	})
	// Player color outside the CHECK constraint
	store.RecordMove(MoveRecord{
		GameID:            "g2",
		MoveNumber:        1,
		Square:            "d3",
		PositionAfterMove: "x",
		PlayerColor:       "x",
		MoveTimeUTC:       time.Now().UTC(),
	}, 0, 0)

	deadline := time.Now().Add(5 * time.Second)
	for store.IsHealthy() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if store.IsHealthy() {
		t.Fatalf("store still healthy after failed write")
	}
}

func TestFlushReturnsWhenDegraded(t *testing.T) {
	store := openTestStore(t)

	store.RecordMove(MoveRecord{GameID: "missing", MoveNumber: 1, PlayerColor: "x"}, 0, 0)
	// Queued behind the failing write, skipped once the store degrades
	store.RecordNewGame(GameRecord{GameID: "g3", InitialPosition: "x", Result: "ongoing"})

	result := make(chan error, 1)
	go func() { result <- store.Flush(context.Background()) }()

	select {
	case err := <-result:
		if !errors.Is(err, ErrDegraded) {
			t.Fatalf("flush error = %v, want ErrDegraded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("flush did not return on a degraded store")
	}

	// Later flushes do not block either
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Flush(ctx); !errors.Is(err, ErrDegraded) {
		t.Fatalf("second flush error = %v", err)
	}
}

func TestFlushAfterClose(t *testing.T) {
	store := openTestStore(t)
	store.Close()

	if err := store.Flush(context.Background()); err == nil {
		t.Fatalf("flush on a closed store succeeded")
	}
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.db")
	store, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.InitDB(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.DeleteDB(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	reopened, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("reopen after delete: %v", err)
	}
	defer reopened.Close()

	// A fresh file has no schema
	if _, err := reopened.QueryGames("", ""); err == nil {
		t.Fatalf("query on deleted database succeeded")
	}
}
