package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// stubChallengeStore is a minimal single-use store for captcha service tests.
type stubChallengeStore struct {
	challenges map[string]domain.Challenge // key: ip + token
}

func newStubChallengeStore() *stubChallengeStore {
	return &stubChallengeStore{challenges: make(map[string]domain.Challenge)}
}

func (s *stubChallengeStore) Put(_ context.Context, ip string, ch domain.Challenge) error {
	s.challenges[ip+"/"+ch.Token] = ch
	return nil
}

func (s *stubChallengeStore) Take(_ context.Context, ip, token string) (*domain.Challenge, error) {
	key := ip + "/" + token
	ch, ok := s.challenges[key]
	if !ok {
		return nil, nil
	}
	delete(s.challenges, key)
	return &ch, nil
}

func answerFor(t *testing.T, question string) string {
	t.Helper()
	// "What is A + B?"
	parts := strings.Fields(strings.TrimSuffix(question, "?"))
	a, err1 := strconv.Atoi(parts[2])
	b, err2 := strconv.Atoi(parts[4])
	if err1 != nil || err2 != nil {
		t.Fatalf("unparseable question %q", question)
	}
	return strconv.Itoa(a + b)
}

func TestCaptchaService_IssueAndRedeem(t *testing.T) {
	svc := NewCaptchaService(newStubChallengeStore())

	ch, err := svc.Issue(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ch.Token == "" || ch.Question == "" {
		t.Fatalf("incomplete challenge: %+v", ch)
	}

	if err := svc.Redeem(context.Background(), "1.2.3.4", ch.Token, answerFor(t, ch.Question)); err != nil {
		t.Fatalf("redeem: %v", err)
	}
}

func TestCaptchaService_TokenIsSingleUse(t *testing.T) {
	svc := NewCaptchaService(newStubChallengeStore())

	ch, err := svc.Issue(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	answer := answerFor(t, ch.Question)
	if err := svc.Redeem(context.Background(), "1.2.3.4", ch.Token, answer); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if err := svc.Redeem(context.Background(), "1.2.3.4", ch.Token, answer); !errors.Is(err, domain.ErrCaptchaFailed) {
		t.Fatalf("expected replay to fail, got %v", err)
	}
}

func TestCaptchaService_WrongAnswerConsumesToken(t *testing.T) {
	svc := NewCaptchaService(newStubChallengeStore())

	ch, err := svc.Issue(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Redeem(context.Background(), "1.2.3.4", ch.Token, "999"); !errors.Is(err, domain.ErrCaptchaFailed) {
		t.Fatalf("expected failure for wrong answer, got %v", err)
	}
	// The take already consumed the token; the right answer is too late now.
	if err := svc.Redeem(context.Background(), "1.2.3.4", ch.Token, answerFor(t, ch.Question)); !errors.Is(err, domain.ErrCaptchaFailed) {
		t.Fatalf("expected consumed token to stay dead, got %v", err)
	}
}

func TestCaptchaService_GarbageAnswerRejected(t *testing.T) {
	svc := NewCaptchaService(newStubChallengeStore())

	if err := svc.Redeem(context.Background(), "1.2.3.4", "nope", "not-a-number"); !errors.Is(err, domain.ErrCaptchaFailed) {
		t.Fatalf("expected ErrCaptchaFailed, got %v", err)
	}
}
