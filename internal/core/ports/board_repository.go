package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// BoardRepository persists tenant boards.
type BoardRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Board, error)
	FindByOwner(ctx context.Context, userID uint) (*domain.Board, error)
	FindByName(ctx context.Context, name string) (*domain.Board, error)
	FindByDomain(ctx context.Context, host string) (*domain.Board, error)
	ListOnIndex(ctx context.Context) ([]domain.Board, error)
	UpdateConfig(ctx context.Context, boardID uint, cfg domain.BoardConfig) error
	UpdateCustomCSS(ctx context.Context, boardID uint, css string) error
	IncrementViews(ctx context.Context, boardID uint) error
}
