package widget

import (
	"context"
	"log"
	"sync"
	"time"

	"sunlight-forecast/internal/services"

	"github.com/google/uuid"
)

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Sessions hands each browser session its own Controller and evicts
// sessions that have been idle too long.
type Sessions struct {
	fetcher Fetcher
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessions(fetcher Fetcher) *Sessions {
	return &Sessions{
		fetcher:  fetcher,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Get returns the controller for id. An unknown or empty id starts a new
// session using dates; the returned id is the one to hand back to the client.
func (s *Sessions) Get(id string, dates services.DateFormatter) (string, *Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		return id, sess.ctrl, nil
	}

	c, err := NewController(s.fetcher, dates)
	if err != nil {
		return "", nil, err
	}

	id = uuid.NewString()
	s.sessions[id] = &session{ctrl: c, lastSeen: s.now()}
	return id, c, nil
}

// Lookup returns the controller of an existing session. It never creates one.
func (s *Sessions) Lookup(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Sweep closes and removes every session idle for longer than maxIdle.
// It returns how many were evicted.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var evicted []*Controller
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			evicted = append(evicted, sess.ctrl)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}
	return len(evicted)
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 {
				log.Printf("op=sessions.Sweep evicted=%d live=%d", n, s.Len())
			}
		}
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
