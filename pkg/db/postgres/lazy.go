package postgres

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

const connectKey = "connect"

// Lazy is a process-wide connector that establishes the database
// connection on first use. Concurrent callers share one in-flight
// attempt, a successful connection is cached for reuse, and a failed
// attempt is discarded so the next call retries from scratch.
type Lazy struct {
	dsn            string
	minConn        int
	maxConn        int
	migrationsPath string

	group singleflight.Group
	mu    sync.RWMutex
	db    *Database
}

// NewLazy builds a lazy connector. migrationsPath may be empty to skip
// migrations; otherwise it must be a migrate source URL (file://...).
func NewLazy(dsn string, minConn, maxConn int, migrationsPath string) *Lazy {
	return &Lazy{
		dsn:            dsn,
		minConn:        minConn,
		maxConn:        maxConn,
		migrationsPath: migrationsPath,
	}
}

// Acquire returns the cached connection, or connects (applying
// migrations first) when none exists yet.
func (l *Lazy) Acquire(ctx context.Context) (*Database, error) {
	l.mu.RLock()
	db := l.db
	l.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := l.group.Do(connectKey, func() (interface{}, error) {
		l.mu.RLock()
		cached := l.db
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		if l.migrationsPath != "" {
			if err := MigrateDSN(ctx, l.dsn, l.migrationsPath); err != nil {
				return nil, err
			}
		}

		fresh, err := New(ctx, l.dsn, l.minConn, l.maxConn)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.db = fresh
		l.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("acquiring database connection: %w", err)
	}

	result, ok := v.(*Database)
	if !ok {
		return nil, fmt.Errorf("acquiring database connection: unexpected result type")
	}
	return result, nil
}

// Close releases the cached connection, if any. A later Acquire will
// reconnect.
func (l *Lazy) Close(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db != nil {
		l.db.Close(ctx)
		l.db = nil
	}
}
