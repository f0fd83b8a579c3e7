// FILE: internal/server/service/game.go
package service

import (
	"fmt"

	"reversi/internal/reversi"
	"reversi/internal/server/core"
	"reversi/internal/server/game"
	"reversi/internal/server/storage"
)

// CreateGame registers a new game starting from the given position
func (s *Service) CreateGame(id string, b reversi.Board, turn reversi.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s already exists", id)
	}
	if len(s.games) >= MaxGames {
		return fmt.Errorf("%w: %d live games", ErrTooManyGames, MaxGames)
	}

	g := game.New(b, turn)
	s.games[id] = g
	s.lastSeen[id] = s.now()

	if s.store != nil {
		st := g.Status()
		s.store.RecordNewGame(storage.GameRecord{
			GameID:          id,
			InitialPosition: g.InitialPosition(),
			Result:          g.State().String(),
			BlackCount:      st.Black,
			WhiteCount:      st.White,
			StartTimeUTC:    s.now().UTC(),
		})
		// A position with no moves for either side is over on arrival
		if g.State() != core.StateOngoing {
			s.store.RecordResult(id, g.State().String(), st.Black, st.White, s.now().UTC())
		}
	}

	return nil
}

// ViewGame runs fn with read access to the game
func (s *Service) ViewGame(gameID string, fn func(g *game.Game)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	fn(g)
	return nil
}

// ApplyMove attempts a move for the side to move. A rejected attempt is
// returned as a result, not an error.
func (s *Service) ApplyMove(gameID string, row, col int) (reversi.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return reversi.MoveResult{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	s.lastSeen[gameID] = s.now()

	result := g.Attempt(row, col)
	if !result.Accepted {
		return result, nil
	}

	s.waiter.NotifyGame(gameID, g.Version())

	if s.store != nil {
		st := g.Status()
		s.store.RecordMove(storage.MoveRecord{
			GameID:            gameID,
			MoveNumber:        len(g.Moves()),
			Square:            result.Coord.String(),
			Captures:          len(result.Captures),
			PositionAfterMove: g.CurrentPosition(),
			PlayerColor:       result.Player.String(),
			MoveTimeUTC:       s.now().UTC(),
		}, st.Black, st.White)

		if g.State() != core.StateOngoing {
			s.store.RecordResult(gameID, g.State().String(), st.Black, st.White, s.now().UTC())
		}
	}

	return result, nil
}

// ResetGame restarts a game from its initial position
func (s *Service) ResetGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	s.lastSeen[gameID] = s.now()

	g.Reset()
	s.waiter.NotifyGame(gameID, g.Version())

	if s.store != nil {
		st := g.Status()
		s.store.RecordReset(gameID, g.State().String(), st.Black, st.White)
	}

	return nil
}

// DeleteGame removes a game from memory. Archived records are kept.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	delete(s.lastSeen, gameID)
	return nil
}
