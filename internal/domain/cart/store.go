// internal/domain/cart/store.go
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// Store holds one in-memory cart per session. Carts are deliberately not
// persisted: a restart empties them, matching the session-only lifecycle.
// Idle carts are evicted after the configured TTL.
type Store struct {
	mu     sync.RWMutex
	carts  map[string]*Cart
	ttl    time.Duration
	sweep  time.Duration
	logger *logrus.Logger
}

// NewStore creates a new session cart store
func NewStore(cfg *config.Config, logger *logrus.Logger) *Store {
	return &Store{
		carts:  make(map[string]*Cart),
		ttl:    cfg.Cart.SessionTTL,
		sweep:  cfg.Cart.SweepInterval,
		logger: logger,
	}
}

// Get returns the cart for a session, creating an empty one on first use
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock
	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c = New(sessionID)
	s.carts[sessionID] = c
	return c
}

// Drop removes a session's cart entirely (logout, checkout)
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
}

// Len returns the number of live carts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// StartSweeper evicts idle carts until ctx is cancelled
func (s *Store) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle(time.Now().UTC())
			}
		}
	}()
}

func (s *Store) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for sessionID, c := range s.carts {
		if now.Sub(c.LastActive()) > s.ttl {
			delete(s.carts, sessionID)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.WithField("evicted", evicted).Debug("Swept idle session carts")
	}
}
