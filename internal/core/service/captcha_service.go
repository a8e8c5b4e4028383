package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

// CaptchaService hands out small arithmetic questions and redeems them on
// submission. The backing store keeps at most domain.ChallengesPerIP live
// challenges per client and expires them after domain.ChallengeTTL; a token
// is consumed on its first correct redemption and can never be replayed.
type CaptchaService struct {
	store ports.ChallengeStore
}

func NewCaptchaService(store ports.ChallengeStore) *CaptchaService {
	return &CaptchaService{store: store}
}

func (s *CaptchaService) Issue(ctx context.Context, clientIP string) (*domain.Challenge, error) {
	a, b := rand.IntN(9)+1, rand.IntN(9)+1
	ch := domain.Challenge{
		Token:    uuid.NewString(),
		Question: fmt.Sprintf("What is %d + %d?", a, b),
		Answer:   a + b,
		IssuedAt: time.Now(),
	}
	if err := s.store.Put(ctx, clientIP, ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *CaptchaService) Redeem(ctx context.Context, clientIP, token, answer string) error {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return domain.ErrCaptchaFailed
	}

	ch, err := s.store.Take(ctx, clientIP, token)
	if err != nil {
		return err
	}
	if ch == nil || ch.Answer != n {
		return domain.ErrCaptchaFailed
	}
	return nil
}
