package main

import (
	"sync"
	"time"
)

// Conversation steps. A transition is only valid from its own predecessor;
// unexpected input for the current step is ignored rather than advancing.
const (
	stepStart                = "start"
	stepAwaitingName         = "awaiting_name"
	stepAwaitingID           = "awaiting_id"
	stepAwaitingPhone        = "awaiting_phone"
	stepAwaitingDescription  = "awaiting_description"
	stepAwaitingTicketID     = "awaiting_ticket_id"
	stepBasicProcessing      = "basic_processing"
	stepBasicConfirmation    = "basic_confirmation"
	stepAdvancedProcessing   = "advanced_processing"
	stepAdvancedAskName      = "advanced_ask_name"
	stepAdvancedAskID        = "advanced_ask_id"
	stepAdvancedAskPhone     = "advanced_ask_phone"
	stepAdvancedConfirmation = "advanced_confirmation"
)

// Session is the per-reporter conversation state. Exactly one exists per
// identity at any time; created lazily on the first inbound event and
// deleted on finalize or cancel.
type Session struct {
	Identity        string
	Step            string
	Mode            int
	Name            string
	IDNumber        string
	Phone           string
	Description     string
	Service         string
	SubType         string
	PendingEvidence []PendingEvidence
	Analysis        *Classification
	IAConfidence    float64
	IADecisions     string
	LastActivity    time.Time
}

// SessionStore keys sessions by reporter identity. Mutable state is
// partitioned per identity, so the lock only guards the map itself.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (s *SessionStore) Lookup(identity string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[identity]
	return sess, ok
}

func (s *SessionStore) Create(identity string, now time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Identity: identity, LastActivity: now}
	s.sessions[identity] = sess
	return sess
}

func (s *SessionStore) Delete(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identity)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep deletes sessions idle longer than ttl and returns how many went.
func (s *SessionStore) Sweep(ttl time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for identity, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > ttl {
			delete(s.sessions, identity)
			removed++
		}
	}
	return removed
}
