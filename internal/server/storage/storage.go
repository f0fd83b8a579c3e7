// FILE: internal/server/storage/storage.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize   = 1000
	writerDrainLimit = 2 * time.Second
)

// ErrDegraded is returned by Flush when earlier writes were dropped
var ErrDegraded = errors.New("storage degraded")

// writeOp is one queued write. A nil fn marks a flush point.
type writeOp struct {
	fn   func(*sql.Tx) error
	done chan struct{} // closed once the op is handled, may be nil
}

// Store archives games and moves in SQLite. Writes are queued and applied by
// a single writer goroutine; a failed write marks the store degraded and
// later writes are dropped.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan writeOp
	writerDone   chan struct{}
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
	closeErr     error
}

// NewStore opens the database and starts the async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	// Foreign keys are per connection, set them for every pooled one
	dsn := dataSourceName
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Single writer, a few readers for db query
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:         db,
		path:       dataSourceName,
		writeChan:  make(chan writeOp, writeQueueSize),
		writerDone: make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

// IsHealthy returns true if the storage is operational
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// enqueue hands a write to the writer without blocking the caller
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}

	select {
	case s.writeChan <- writeOp{fn: fn}:
	default:
		log.Printf("Storage write queue full, dropping %s", what)
	}
}

func (s *Store) writerLoop() {
	defer s.wg.Done()
	defer close(s.writerDone)

	for {
		select {
		case <-s.ctx.Done():
			deadline := time.After(writerDrainLimit)
			for {
				select {
				case op := <-s.writeChan:
					s.handle(op)
				case <-deadline:
					return
				default:
					return
				}
			}

		case op := <-s.writeChan:
			s.handle(op)
		}
	}
}

// handle applies a queued op. Writes are skipped once the store is
// degraded, but flush markers are always released.
func (s *Store) handle(op writeOp) {
	if op.fn != nil && s.healthStatus.Load() {
		s.executeWrite(op.fn)
	}
	if op.done != nil {
		close(op.done)
	}
}

func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

// Flush blocks until every write queued before the call has been handled.
// It returns ErrDegraded if the store has stopped applying writes.
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})

	select {
	case s.writeChan <- writeOp{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return fmt.Errorf("storage is closed")
	}

	select {
	case <-done:
	case <-s.writerDone:
		select {
		case <-done:
		default:
			return fmt.Errorf("storage is closed")
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	if !s.healthStatus.Load() {
		return ErrDegraded
	}
	return nil
}

// Close stops the writer, draining queued writes, and closes the database
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(writerDrainLimit):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}
