package listing

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by a load that a newer load for the same key
// replaced before it finished.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Sequencer keeps only the latest load per key. Starting a load cancels the
// one in flight for that key, and a load that is no longer the latest cannot
// publish its result.
type Sequencer struct {
	mu      sync.Mutex
	latest  map[string]uint64
	cancels map[string]context.CancelFunc
	next    uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64), cancels: make(map[string]context.CancelFunc)}
}

func (s *Sequencer) begin(ctx context.Context, key string) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[key]; ok {
		cancel()
	}
	s.next++
	ctx, cancel := context.WithCancel(ctx)
	s.latest[key] = s.next
	s.cancels[key] = cancel
	return ctx, s.next
}

// finish reports whether seq is still the latest load for key and releases
// its bookkeeping if so.
func (s *Sequencer) finish(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest[key] != seq {
		return false
	}
	if cancel, ok := s.cancels[key]; ok {
		cancel()
	}
	delete(s.latest, key)
	delete(s.cancels, key)
	return true
}

// Load runs fn as the latest load for key.
func Load[T any](s *Sequencer, ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	loadCtx, seq := s.begin(ctx, key)
	out, err := fn(loadCtx)
	if !s.finish(key, seq) {
		var zero T
		return zero, ErrSuperseded
	}
	return out, err
}
