package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// EntrySubmission carries one visitor submission through the acceptance
// pipeline. Board is the already-resolved target; Image holds the raw upload
// bytes for drawbox boards.
type EntrySubmission struct {
	Board    *domain.Board
	ClientIP string

	CaptchaToken  string
	CaptchaAnswer string

	// Guestbook fields.
	Message string
	Author  string
	Website string

	// Drawbox fields.
	Creator     string
	Description string
	Image       []byte
}

// EntryService validates and persists visitor submissions.
type EntryService interface {
	Submit(ctx context.Context, in EntrySubmission) (*domain.Entry, error)
	// Delete removes an entry from the board owned by userID. Entries on
	// other users' boards are forbidden.
	Delete(ctx context.Context, userID, entryID uint) error
	// ImagePath resolves an entry id to the stored image file.
	ImagePath(ctx context.Context, entryID uint) (string, error)
}

// CaptchaService issues and redeems arithmetic challenges.
type CaptchaService interface {
	Issue(ctx context.Context, clientIP string) (*domain.Challenge, error)
	// Redeem consumes the challenge; wrong answers, unknown tokens and
	// replays all fail with domain.ErrCaptchaFailed.
	Redeem(ctx context.Context, clientIP, token, answer string) error
}
