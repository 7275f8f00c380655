package service

import (
	"sync"
	"time"

	"istorepro/internal/checkout"
)

type draftEntry struct {
	mu      sync.Mutex
	draft   *checkout.Draft
	touched time.Time
}

// draftStore keeps open drafts in memory. Each draft is guarded by its own
// mutex so concurrent requests on one draft run one at a time.
type draftStore struct {
	mu     sync.Mutex
	drafts map[string]*draftEntry
}

func newDraftStore() *draftStore {
	return &draftStore{drafts: make(map[string]*draftEntry)}
}

// put registers d. It returns false when a draft with the same id is open.
func (s *draftStore) put(d *checkout.Draft, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[d.ID()]; ok {
		return false
	}
	s.drafts[d.ID()] = &draftEntry{draft: d, touched: now}
	return true
}

func (s *draftStore) get(id string) (*draftEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.drafts[id]
	return e, ok
}

func (s *draftStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// idleSince returns the ids of drafts untouched since cutoff.
func (s *draftStore) idleSince(cutoff time.Time) []string {
	s.mu.Lock()
	entries := make(map[string]*draftEntry, len(s.drafts))
	for id, e := range s.drafts {
		entries[id] = e
	}
	s.mu.Unlock()

	var out []string
	for id, e := range entries {
		e.mu.Lock()
		idle := e.touched.Before(cutoff)
		e.mu.Unlock()
		if idle {
			out = append(out, id)
		}
	}
	return out
}

func (s *draftStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
