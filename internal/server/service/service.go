package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"reversi/internal/server/game"
	"reversi/internal/server/storage"

	"github.com/google/uuid"
)

const (
	MaxGames           = 1000
	GameIdleTTL        = 6 * time.Hour
	CleanupJobInterval = 10 * time.Minute
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("game limit reached")
)

// Service owns every live game. All reads and writes of a game happen under
// the service lock, so each request runs its transition to completion.
type Service struct {
	games    map[string]*game.Game
	lastSeen map[string]time.Time
	mu       sync.RWMutex
	store    *storage.Store // nil if archiving disabled
	waiter   *WaitRegistry
	now      func() time.Time
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:    make(map[string]*game.Game),
		lastSeen: make(map[string]time.Time),
		store:    store,
		waiter:   NewWaitRegistry(),
		now:      time.Now,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// GameCount returns the number of live games
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// RegisterWait registers a client to wait for game state changes. The
// version check and registration share the service lock, so a change made
// after the client read its version always wakes it. The channel fires at
// once if the client is already behind or the game is gone.
func (s *Service) RegisterWait(ctx context.Context, gameID string, version int) <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notify := s.waiter.RegisterWait(ctx, gameID, version)

	g, ok := s.games[gameID]
	switch {
	case !ok:
		s.waiter.RemoveGame(gameID)
	case g.Version() != version:
		s.waiter.NotifyGame(gameID, g.Version())
	}
	return notify
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)
	s.lastSeen = make(map[string]time.Time)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob periodically drops games nobody has touched for GameIdleTTL
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.cleanupIdle(GameIdleTTL); n > 0 {
				log.Printf("cleanup: removed %d idle games", n)
			}
		}
	}
}

func (s *Service) cleanupIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			s.waiter.RemoveGame(id)
			delete(s.games, id)
			delete(s.lastSeen, id)
			removed++
		}
	}
	return removed
}
