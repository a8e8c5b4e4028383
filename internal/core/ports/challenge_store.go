package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// ChallengeStore keeps outstanding captcha challenges keyed by client IP.
// Implementations bound each client to domain.ChallengesPerIP live entries
// and expire them after domain.ChallengeTTL.
type ChallengeStore interface {
	// Put records a freshly issued challenge, evicting the client's oldest
	// one when the cap is hit.
	Put(ctx context.Context, clientIP string, ch domain.Challenge) error
	// Take removes and returns the challenge for token, if this client
	// holds one that has not expired. A taken token can never be replayed.
	Take(ctx context.Context, clientIP, token string) (*domain.Challenge, error)
}
