package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// RegisterInput carries a registration request into the auth service.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	BoardType domain.BoardType
}

// AuthService implements registration, login, session identity and password
// recovery.
type AuthService interface {
	// Register creates the account and its board, returning a session token.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	// Login accepts a username or an email in the single login field.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	// Identify verifies a session token and confirms the referenced user
	// still exists. A valid signature for a deleted user is rejected.
	Identify(ctx context.Context, token string) (*domain.User, error)
	// StartRecovery queues a recovery mail for the account behind email.
	StartRecovery(ctx context.Context, email string) error
	// VerifyRecovery checks a recovery token and returns the email it was
	// issued for.
	VerifyRecovery(ctx context.Context, token string) (string, error)
	// CompleteRecovery sets a new password for the token's account.
	CompleteRecovery(ctx context.Context, token, newPassword string) error
}
