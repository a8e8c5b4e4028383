package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// UserRepository persists accounts and their boards.
type UserRepository interface {
	// CreateWithBoard inserts the user and their board as one transaction;
	// neither row exists if either insert fails.
	CreateWithBoard(ctx context.Context, user *domain.User, board *domain.Board) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}
