package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// ChallengeStore keeps captcha challenges in Redis, for deployments running
// more than one process. Each challenge lives at captcha:<ip>:<token> with
// the challenge TTL; a per-IP list enforces the count cap.
type ChallengeStore struct {
	client *redis.Client
}

func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

func (s *ChallengeStore) Put(ctx context.Context, clientIP string, ch domain.Challenge) error {
	if err := s.client.Set(ctx, s.key(clientIP, ch.Token), ch.Answer, domain.ChallengeTTL).Err(); err != nil {
		return fmt.Errorf("captcha put: %w", err)
	}

	// Cap outstanding challenges per IP: push the new token, trim to the
	// newest N, and drop the value keys of anything trimmed off.
	listKey := "captcha:" + clientIP
	evicted, err := s.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("captcha list: %w", err)
	}
	if err := s.client.RPush(ctx, listKey, ch.Token).Err(); err != nil {
		return fmt.Errorf("captcha push: %w", err)
	}
	if len(evicted) >= domain.ChallengesPerIP {
		drop := evicted[:len(evicted)-domain.ChallengesPerIP+1]
		for _, tok := range drop {
			_ = s.client.Del(ctx, s.key(clientIP, tok)).Err()
		}
		if err := s.client.LTrim(ctx, listKey, int64(len(drop)), -1).Err(); err != nil {
			return fmt.Errorf("captcha trim: %w", err)
		}
	}
	return s.client.Expire(ctx, listKey, domain.ChallengeTTL).Err()
}

func (s *ChallengeStore) Take(ctx context.Context, clientIP, token string) (*domain.Challenge, error) {
	// GETDEL makes redemption single-use even across processes.
	val, err := s.client.GetDel(ctx, s.key(clientIP, token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("captcha take: %w", err)
	}
	_ = s.client.LRem(ctx, "captcha:"+clientIP, 1, token).Err()

	answer, err := strconv.Atoi(val)
	if err != nil {
		return nil, nil
	}
	return &domain.Challenge{Token: token, Answer: answer}, nil
}

func (s *ChallengeStore) key(clientIP, token string) string {
	return fmt.Sprintf("captcha:%s:%s", clientIP, token)
}
