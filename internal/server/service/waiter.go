package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second

	// WaitChannelBuffer size for notification channels
	WaitChannelBuffer = 1
)

// WaitRegistry manages long-polling clients waiting for game state changes
type WaitRegistry struct {
	mu       sync.RWMutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	shutdown chan struct{}
	wg       sync.WaitGroup
	timeout  time.Duration
}

// WaitRequest represents a single client waiting for game updates
type WaitRequest struct {
	Version int           // Last game version seen by the client
	Notify  chan struct{} // Buffered, receives exactly one wake-up
	Timer   *time.Timer   // Timeout timer
	GameID  string        // Game being watched

	done     chan struct{}
	doneOnce sync.Once
}

// NewWaitRegistry creates a new wait registry
func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		shutdown: make(chan struct{}),
		timeout:  WaitTimeout,
	}
}

// RegisterWait registers a client to wait for game state changes. The
// returned channel fires once on change, timeout, game removal or shutdown.
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, version int) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	req := &WaitRequest{
		Version: version,
		Notify:  make(chan struct{}, WaitChannelBuffer),
		GameID:  gameID,
		done:    make(chan struct{}),
	}

	req.Timer = time.AfterFunc(w.timeout, func() {
		w.wake(req)
	})

	w.waiters[gameID] = append(w.waiters[gameID], req)

	// Cleanup once the request is answered or abandoned
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
		case <-req.done:
		case <-w.shutdown:
			w.wake(req)
		}
		w.removeWaiter(gameID, req)
	}()

	return req.Notify
}

// NotifyGame wakes every client on the game that has not seen the current version
func (w *WaitRegistry) NotifyGame(gameID string, currentVersion int) {
	w.mu.RLock()
	waitList := append([]*WaitRequest(nil), w.waiters[gameID]...)
	w.mu.RUnlock()

	for _, req := range waitList {
		if req.Version != currentVersion {
			w.wake(req)
		}
	}
}

// RemoveGame wakes all waiters for a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		w.wake(req)
	}
}

// Count returns the number of clients currently waiting
func (w *WaitRegistry) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := 0
	for _, list := range w.waiters {
		n += len(list)
	}
	return n
}

// Shutdown wakes every waiter and waits for cleanup goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %s", timeout)
	}
}

// wake delivers the single notification of a request
func (w *WaitRegistry) wake(req *WaitRequest) {
	req.doneOnce.Do(func() {
		req.Notify <- struct{}{}
		close(req.done)
	})
}

// removeWaiter removes a specific waiter from the registry
func (w *WaitRegistry) removeWaiter(gameID string, req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}

	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}

	req.Timer.Stop()
}
