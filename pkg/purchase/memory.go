package purchase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryStore is an in-process Store used in development builds without
// real purchase capability and throughout the engine's tests. Behavior is
// configured through options; tests drive the asynchronous stream with Emit.
type MemoryStore struct {
	hub *Hub

	available bool

	mu        sync.Mutex
	connected bool
	records   []Record
	finished  []Record

	connectFailures int
	listErr         error
	listDelay       time.Duration
	requestResults  map[string]requestResult

	listCalls    atomic.Int64
	connectCalls atomic.Int64
}

type requestResult struct {
	rec *Record
	err error
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithAvailable controls whether Connect succeeds at all. False models a
// simulator or dev build: Connect returns ErrUnavailable.
func WithAvailable(available bool) MemoryOption {
	return func(ms *MemoryStore) { ms.available = available }
}

// WithConnectFailures makes the first n Connect attempts fail with a
// transient error before succeeding. Used to exercise the engine's
// retry-once initialization policy.
func WithConnectFailures(n int) MemoryOption {
	return func(ms *MemoryStore) { ms.connectFailures = n }
}

// WithRecords seeds the active purchase list.
func WithRecords(recs ...Record) MemoryOption {
	return func(ms *MemoryStore) { ms.records = append(ms.records, recs...) }
}

// WithListError makes ListActive fail, modeling a user not signed into a
// purchasing account.
func WithListError(err error) MemoryOption {
	return func(ms *MemoryStore) { ms.listErr = err }
}

// WithListDelay makes ListActive sleep before returning, so tests can
// observe overlapping reconciliation attempts.
func WithListDelay(d time.Duration) MemoryOption {
	return func(ms *MemoryStore) { ms.listDelay = d }
}

// WithRequestRecord makes Request for the given product return rec.
func WithRequestRecord(productID string, rec Record) MemoryOption {
	return func(ms *MemoryStore) { ms.requestResults[productID] = requestResult{rec: &rec} }
}

// WithRequestError makes Request for the given product fail with err
// (typically ErrCancelled).
func WithRequestError(productID string, err error) MemoryOption {
	return func(ms *MemoryStore) { ms.requestResults[productID] = requestResult{err: err} }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	ms := &MemoryStore{
		hub:            NewHub(16),
		available:      true,
		requestResults: make(map[string]requestResult),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

func (ms *MemoryStore) Connect(ctx context.Context) error {
	ms.connectCalls.Add(1)

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.available {
		return ErrUnavailable
	}
	if ms.connectFailures > 0 {
		ms.connectFailures--
		return context.DeadlineExceeded
	}
	ms.connected = true
	return nil
}

func (ms *MemoryStore) Disconnect() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.connected = false
	return ms.hub.Close()
}

func (ms *MemoryStore) ListActive(ctx context.Context) ([]Record, error) {
	ms.mu.Lock()
	if !ms.connected {
		ms.mu.Unlock()
		return nil, ErrNotReady
	}
	listErr := ms.listErr
	delay := ms.listDelay
	recs := append([]Record(nil), ms.records...)
	ms.mu.Unlock()

	ms.listCalls.Add(1)

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if listErr != nil {
		return nil, listErr
	}
	return recs, nil
}

func (ms *MemoryStore) Request(ctx context.Context, productID string) (*Record, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.connected {
		return nil, ErrNotReady
	}
	res, ok := ms.requestResults[productID]
	if !ok {
		return nil, ErrUnknownProduct
	}
	if res.err != nil {
		return nil, res.err
	}
	rec := *res.rec
	ms.records = append(ms.records, rec)
	return &rec, nil
}

func (ms *MemoryStore) Finish(ctx context.Context, rec Record) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.connected {
		return ErrNotReady
	}
	ms.finished = append(ms.finished, rec)
	return nil
}

func (ms *MemoryStore) Subscribe(ctx context.Context) Subscriber {
	return ms.hub.Subscribe(ctx)
}

// Emit publishes a purchase event on the asynchronous stream, simulating
// the platform delivering a transaction outside of any explicit call.
func (ms *MemoryStore) Emit(ev Event) {
	ms.hub.Publish(ev)
}

// Finished returns the transactions acknowledged via Finish, in order.
func (ms *MemoryStore) Finished() []Record {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]Record(nil), ms.finished...)
}

// ListCalls returns how many times ListActive has been invoked.
func (ms *MemoryStore) ListCalls() int64 {
	return ms.listCalls.Load()
}

// ConnectCalls returns how many times Connect has been attempted.
func (ms *MemoryStore) ConnectCalls() int64 {
	return ms.connectCalls.Load()
}

// SetRecords replaces the active purchase list.
func (ms *MemoryStore) SetRecords(recs ...Record) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records = append([]Record(nil), recs...)
}
