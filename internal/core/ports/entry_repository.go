package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// EntryRepository persists visitor submissions. Create and Delete adjust the
// owning board's denormalized entry count and last-updated timestamp in the
// same transaction as the entry row, so the counter can never drift.
type EntryRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Entry, error)
	ListByBoard(ctx context.Context, boardID uint) ([]domain.Entry, error)
	Create(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, boardID, entryID uint) error
}
