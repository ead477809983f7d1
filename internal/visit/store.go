// Package visit keeps one waitlist controller per rendered landing page.
//
// A visit starts when the page is rendered and is identified by a UUID that
// the page echoes back on submit. Visits live in memory only; they expire
// after an idle period and the store is capped in size. Capacity eviction
// never drops a visit whose submission is in flight.
package visit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Its-donkey/contractually/internal/waitlist"
)

const (
	defaultIdleTTL   = time.Hour
	defaultMaxVisits = 10000
)

// historySize bounds the notifications kept per visit.
const historySize = 8

// History records the most recent notifications a visit's controller emitted.
// Submit handlers answer with the notification of their own call; History
// serves later status reads.
type History struct {
	mu    sync.Mutex
	items []waitlist.Notification
}

// Notify implements waitlist.Sink.
func (h *History) Notify(n waitlist.Notification) {
	h.mu.Lock()
	h.items = append(h.items, n)
	if over := len(h.items) - historySize; over > 0 {
		h.items = append([]waitlist.Notification(nil), h.items[over:]...)
	}
	h.mu.Unlock()
}

// Recent returns a copy of the kept notifications, oldest first.
func (h *History) Recent() []waitlist.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]waitlist.Notification(nil), h.items...)
}

// Visit is one page instance and its signup controller.
type Visit struct {
	ID         string
	Controller *waitlist.Controller
	History    *History

	created  time.Time
	lastSeen time.Time
}

// Created reports when the visit started.
func (v *Visit) Created() time.Time { return v.created }

// ControllerFactory builds the controller for a new visit around its sink.
type ControllerFactory func(sink waitlist.Sink) *waitlist.Controller

// Options tune a Store.
type Options struct {
	IdleTTL   time.Duration
	MaxVisits int
	// OnSizeChange is called with the number of live visits after it changes.
	OnSizeChange func(int)
}

// Store is a concurrency-safe in-memory visit registry.
type Store struct {
	factory  ControllerFactory
	idleTTL  time.Duration
	max      int
	onChange func(int)
	now      func() time.Time

	mu     sync.Mutex
	visits map[string]*Visit
}

// NewStore builds an empty Store.
func NewStore(factory ControllerFactory, opts Options) *Store {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultIdleTTL
	}
	if opts.MaxVisits <= 0 {
		opts.MaxVisits = defaultMaxVisits
	}
	return &Store{
		factory:  factory,
		idleTTL:  opts.IdleTTL,
		max:      opts.MaxVisits,
		onChange: opts.OnSizeChange,
		now:      time.Now,
		visits:   make(map[string]*Visit),
	}
}

// Start creates a fresh visit with an Idle controller.
func (s *Store) Start() *Visit {
	history := &History{}
	now := s.now()
	v := &Visit{
		ID:         uuid.NewString(),
		Controller: s.factory(history),
		History:    history,
		created:    now,
		lastSeen:   now,
	}

	s.mu.Lock()
	if len(s.visits) >= s.max {
		s.sweepLocked(now)
	}
	for len(s.visits) >= s.max && s.evictOldestLocked() {
	}
	s.visits[v.ID] = v
	size := len(s.visits)
	s.mu.Unlock()

	s.sizeChanged(size)
	return v
}

// Get returns the live visit for id and marks it as seen.
func (s *Store) Get(id string) (*Visit, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	now := s.now()

	s.mu.Lock()
	v, ok := s.visits[id]
	if ok && s.expired(v, now) {
		delete(s.visits, id)
		size := len(s.visits)
		s.mu.Unlock()
		s.sizeChanged(size)
		return nil, false
	}
	if ok {
		v.lastSeen = now
	}
	s.mu.Unlock()
	return v, ok
}

// Resume returns the visit for id, or a fresh one when id is unknown or
// expired. The boolean reports whether the visit was found.
func (s *Store) Resume(id string) (*Visit, bool) {
	if v, ok := s.Get(id); ok {
		return v, true
	}
	return s.Start(), false
}

// Len returns the number of stored visits, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visits)
}

// Sweep drops expired visits and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	removed := s.sweepLocked(s.now())
	size := len(s.visits)
	s.mu.Unlock()

	if removed > 0 {
		s.sizeChanged(size)
	}
	return removed
}

// Run sweeps on every tick until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(v *Visit, now time.Time) bool {
	return now.Sub(v.lastSeen) > s.idleTTL && v.Controller.Status() != waitlist.Submitting
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, v := range s.visits {
		if s.expired(v, now) {
			delete(s.visits, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked drops the least recently seen visit that has no
// submission in flight. It reports false when every visit is submitting.
func (s *Store) evictOldestLocked() bool {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, v := range s.visits {
		if v.Controller.Status() == waitlist.Submitting {
			continue
		}
		if oldestID == "" || v.lastSeen.Before(oldest) {
			oldestID, oldest = id, v.lastSeen
		}
	}
	if oldestID == "" {
		return false
	}
	delete(s.visits, oldestID)
	return true
}

func (s *Store) sizeChanged(size int) {
	if s.onChange != nil {
		s.onChange(size)
	}
}
