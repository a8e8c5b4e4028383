// Package captcha provides the default in-process challenge store: a
// mutex-guarded map keyed by client IP, cleared on restart.
package captcha

import (
	"context"
	"sync"
	"time"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// MemoryStore keeps outstanding challenges in process memory. Access is
// serialized by one mutex so an interleaved read-modify-write can never
// double-spend a token. Each IP holds at most domain.ChallengesPerIP live
// challenges; expired ones are pruned on every touch of that IP's slot.
type MemoryStore struct {
	mu   sync.Mutex
	byIP map[string][]domain.Challenge
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byIP: make(map[string][]domain.Challenge),
		now:  time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, clientIP string, ch domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.pruneLocked(clientIP)
	live = append(live, ch)
	if len(live) > domain.ChallengesPerIP {
		live = live[len(live)-domain.ChallengesPerIP:]
	}
	s.byIP[clientIP] = live
	return nil
}

func (s *MemoryStore) Take(_ context.Context, clientIP, token string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.pruneLocked(clientIP)
	for i := range live {
		if live[i].Token == token {
			ch := live[i]
			s.byIP[clientIP] = append(live[:i], live[i+1:]...)
			return &ch, nil
		}
	}
	return nil, nil
}

// pruneLocked drops expired challenges for one IP and removes empty slots so
// the map does not grow with dead clients. Caller holds the mutex.
func (s *MemoryStore) pruneLocked(clientIP string) []domain.Challenge {
	cutoff := s.now().Add(-domain.ChallengeTTL)
	live := s.byIP[clientIP][:0]
	for _, ch := range s.byIP[clientIP] {
		if ch.IssuedAt.After(cutoff) {
			live = append(live, ch)
		}
	}
	if len(live) == 0 {
		delete(s.byIP, clientIP)
		return nil
	}
	s.byIP[clientIP] = live
	return live
}
