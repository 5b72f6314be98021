package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// fakeFetcher records queries and serves canned suggestions
type fakeFetcher struct {
	mu      sync.Mutex
	queries []string
	result  []catalog.Product
	err     error
	block   chan struct{} // when non-nil, Suggest waits on it
}

func (f *fakeFetcher) Suggest(_ context.Context, query string, _ int) ([]catalog.Product, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.result, f.err
}

func (f *fakeFetcher) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

func newTestService(fetcher Fetcher, quiet time.Duration) *Service {
	cfg := &config.Config{}
	cfg.Suggest.QuietPeriod = quiet
	cfg.Suggest.Limit = 5
	return NewService(cfg, fetcher)
}

func Test_Service_Suggest_DeliversResult(t *testing.T) {
	fetcher := &fakeFetcher{result: []catalog.Product{{ID: 1, Title: "iPhone"}}}
	svc := newTestService(fetcher, time.Millisecond)

	products, err := svc.Suggest(context.Background(), "session", "iphone")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "iPhone", products[0].Title)
	assert.Equal(t, []string{"iphone"}, fetcher.recorded())
}

func Test_Service_Suggest_BlankQueryShortCircuits(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher, time.Millisecond)

	products, err := svc.Suggest(context.Background(), "session", "   ")

	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, fetcher.recorded(), "blank queries must not reach the catalog")
}

func Test_Service_Suggest_NewerQuerySupersedesWaiting(t *testing.T) {
	fetcher := &fakeFetcher{result: []catalog.Product{{ID: 1}}}
	svc := newTestService(fetcher, 50*time.Millisecond)

	var wg sync.WaitGroup
	var firstErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = svc.Suggest(context.Background(), "session", "ip")
	}()

	// Second query lands inside the first one's quiet period
	time.Sleep(10 * time.Millisecond)
	products, err := svc.Suggest(context.Background(), "session", "iphone")
	wg.Wait()

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.ErrorIs(t, firstErr, ErrSuperseded)
	assert.Equal(t, []string{"iphone"}, fetcher.recorded(), "suppressed query must never be fetched")
}

func Test_Service_Suggest_StaleFetchResultIsDropped(t *testing.T) {
	block := make(chan struct{})
	fetcher := &fakeFetcher{result: []catalog.Product{{ID: 1}}, block: block}
	svc := newTestService(fetcher, time.Millisecond)

	var wg sync.WaitGroup
	var slowErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = svc.Suggest(context.Background(), "session", "slow")
	}()

	// Let the slow fetch start, then issue a newer query and unblock it
	time.Sleep(20 * time.Millisecond)
	fetcher.mu.Lock()
	fetcher.block = nil
	fetcher.mu.Unlock()

	var wg2 sync.WaitGroup
	wg2.Add(1)
	go func() {
		defer wg2.Done()
		svc.Suggest(context.Background(), "session", "newer")
	}()

	time.Sleep(20 * time.Millisecond)
	close(block)
	wg.Wait()
	wg2.Wait()

	assert.ErrorIs(t, slowErr, ErrSuperseded, "slow response must lose to the newer query")
}

func Test_Service_Suggest_SessionsAreIndependent(t *testing.T) {
	fetcher := &fakeFetcher{result: []catalog.Product{{ID: 1}}}
	svc := newTestService(fetcher, 30*time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i, session := range []string{"a", "b"} {
		wg.Add(1)
		go func(i int, session string) {
			defer wg.Done()
			_, errs[i] = svc.Suggest(context.Background(), session, "query")
		}(i, session)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

func Test_Service_Suggest_FetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("catalog unavailable")
	fetcher := &fakeFetcher{err: fetchErr}
	svc := newTestService(fetcher, time.Millisecond)

	_, err := svc.Suggest(context.Background(), "session", "iphone")

	assert.ErrorIs(t, err, fetchErr)
}

func Test_Service_Suggest_ContextCancelled(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Suggest(ctx, "session", "iphone")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
