package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/logging"
)

// Persister loads and saves AppState snapshots.
type Persister interface {
	// Load returns the last saved state, or nil if nothing was saved.
	Load(ctx context.Context) (*AppState, error)
	Save(ctx context.Context, state AppState) error
}

// Store owns the AppState. All writes go through Update, which persists
// the new state before notifying subscribers.
type Store struct {
	mu        sync.Mutex
	state     AppState
	persister Persister
	log       *logging.Logger

	subs    map[int]func(AppState)
	nextSub int
}

// Open loads persisted state (or the default state for a fresh install)
// and reconciles it with the catalog.
func Open(ctx context.Context, p Persister, catalog []content.Unit, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop()
	}

	state := DefaultState(catalog)
	saved, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if saved != nil {
		state = Reconcile(*saved, catalog)
	}

	if err := state.Validate(); err != nil {
		log.Warn("saved progress failed validation, starting fresh", "error", err)
		state = DefaultState(catalog)
	}

	return &Store{
		state:     state,
		persister: p,
		log:       log,
		subs:      make(map[int]func(AppState)),
	}, nil
}

// State returns a copy of the current state.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update applies fn to a copy of the state. If the result is valid it
// becomes the current state, is written through to the persister, and
// subscribers are notified. Persistence errors are logged, not returned.
func (s *Store) Update(ctx context.Context, fn func(*AppState)) error {
	s.mu.Lock()
	next := s.state.Clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("rejected state update: %w", err)
	}
	s.state = next

	if err := s.persister.Save(ctx, next.Clone()); err != nil {
		s.log.Error("persist progress", "error", err)
	}

	subs := make([]func(AppState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.Clone())
	}
	return nil
}

// Subscribe registers fn to be called after each committed update. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(AppState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
