package page

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type entry struct {
	root     *Root
	lastSeen time.Time
}

// Store keeps one Root per visitor and evicts idle ones.
type Store struct {
	mu      sync.Mutex
	opts    Options
	roots   map[string]*entry
	idleTTL time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// NewStore returns an empty store. Roots idle for longer than idleTTL are
// released by Sweep.
func NewStore(opts Options, idleTTL time.Duration) *Store {
	return &Store{
		opts:    opts,
		roots:   make(map[string]*entry),
		idleTTL: idleTTL,
		now:     time.Now,
		logger:  opts.Logger,
	}
}

// Get returns the root for visitorID, creating it on first use.
func (s *Store) Get(visitorID string) *Root {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.roots[visitorID]
	if !ok {
		opts := s.opts
		opts.Logger = s.logger.With().Str("visitor", visitorID).Logger()
		e = &entry{root: NewRoot(opts)}
		s.roots[visitorID] = e
	}
	e.lastSeen = s.now()
	return e.root
}

// Len returns the number of tracked visitors.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.roots)
}

// Sweep releases every root not seen within the idle TTL and returns how many
// were evicted.
func (s *Store) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var evicted []*Root
	for id, e := range s.roots {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.root)
			delete(s.roots, id)
		}
	}
	s.mu.Unlock()

	for _, r := range evicted {
		r.Modal.Release()
	}
	return len(evicted)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug().Int("evicted", n).Int("remaining", s.Len()).Msg("visitor sweep")
			}
		}
	}
}

// Close releases every root.
func (s *Store) Close() {
	s.mu.Lock()
	roots := s.roots
	s.roots = make(map[string]*entry)
	s.mu.Unlock()
	for _, e := range roots {
		e.root.Modal.Release()
	}
}
