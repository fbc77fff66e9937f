package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imamik/onboard/internal/onboarding"
)

type session struct {
	wizard   *onboarding.Wizard
	lastSeen time.Time
}

// sessions is an in-memory map of wizards keyed by uuid.
type sessions struct {
	mu  sync.Mutex
	m   map[string]*session
	now func() time.Time
}

func newSessions(now func() time.Time) *sessions {
	return &sessions{m: make(map[string]*session), now: now}
}

func (s *sessions) add(w *onboarding.Wizard) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.m[id] = &session{wizard: w, lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

// get returns the wizard for id and marks the session as used.
func (s *sessions) get(id string) (*onboarding.Wizard, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.wizard, true
}

// remove reports whether id was present.
func (s *sessions) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return false
	}
	delete(s.m, id)
	return true
}

// expire drops sessions unused for longer than ttl, except those with a
// submission in flight, and returns their ids.
func (s *sessions) expire(ttl time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	var ids []string
	for id, sess := range s.m {
		if sess.lastSeen.After(cutoff) || sess.wizard.Syncing() {
			continue
		}
		delete(s.m, id)
		ids = append(ids, id)
	}
	return ids
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
