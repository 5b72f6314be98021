// internal/domain/suggest/service.go
package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// ErrSuperseded is returned when a newer query from the same session
// arrived while this one was waiting or fetching. The stale result is
// dropped, never delivered.
var ErrSuperseded = errors.New("query superseded by a newer one")

// Fetcher is the slice of the catalog client the service needs
type Fetcher interface {
	Suggest(ctx context.Context, query string, limit int) ([]catalog.Product, error)
}

// Service serves search-as-you-type suggestions. Each session's input is
// debounced: a query only reaches the catalog once it has been the
// latest for a full quiet period, and the newest query always wins over
// slower in-flight ones.
type Service struct {
	fetcher Fetcher
	quiet   time.Duration
	limit   int

	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	mu  sync.Mutex
	seq uint64
}

func (st *sessionState) next() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.seq++
	return st.seq
}

func (st *sessionState) current() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.seq
}

// NewService creates a new suggestion service
func NewService(cfg *config.Config, fetcher Fetcher) *Service {
	return &Service{
		fetcher:  fetcher,
		quiet:    cfg.Suggest.QuietPeriod,
		limit:    cfg.Suggest.Limit,
		sessions: make(map[string]*sessionState),
	}
}

// Suggest returns suggestions for the session's latest query. Callers
// whose query was superseded get ErrSuperseded and should discard the
// response. A blank query short-circuits to an empty list.
func (s *Service) Suggest(ctx context.Context, sessionID, query string) ([]catalog.Product, error) {
	if strings.TrimSpace(query) == "" {
		return []catalog.Product{}, nil
	}

	st := s.state(sessionID)
	seq := st.next()

	// Wait out the quiet period; a newer query bumps the sequence and
	// this one gives up.
	timer := time.NewTimer(s.quiet)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if st.current() != seq {
		return nil, ErrSuperseded
	}

	products, err := s.fetcher.Suggest(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}

	// The fetch may have been slow; drop the result if something newer
	// arrived meanwhile.
	if st.current() != seq {
		return nil, ErrSuperseded
	}

	return products, nil
}

// Forget drops a session's debounce state (logout, session expiry)
func (s *Service) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func (s *Service) state(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	return st
}
