package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// HostResolution is the outcome of mapping a Host header: either the apex
// (management) host or one tenant board.
type HostResolution struct {
	Apex  bool
	Board *domain.Board
}

// IndexStats is the public landing-page payload for the apex host.
type IndexStats struct {
	UserCount int64          `json:"user_count"`
	Boards    []domain.Board `json:"boards"`
}

// BoardService resolves tenants and manages per-board settings.
type BoardService interface {
	// ResolveHost maps an inbound Host header (port stripped, matched
	// case-insensitively) to the apex or a tenant board.
	ResolveHost(ctx context.Context, host string) (*HostResolution, error)
	// Board fetches one board by id, for apex-host submissions that name
	// their target explicitly.
	Board(ctx context.Context, id uint) (*domain.Board, error)
	// Page returns a tenant board's entries and counts the visit.
	Page(ctx context.Context, board *domain.Board) ([]domain.Entry, error)
	Index(ctx context.Context) (*IndexStats, error)
	OwnerBoard(ctx context.Context, userID uint) (*domain.Board, []domain.Entry, error)
	SetConfig(ctx context.Context, userID uint, cfg domain.BoardConfig) error
	SetCustomStyles(ctx context.Context, userID uint, css string) error
	CustomStyles(ctx context.Context, boardID uint) (string, error)
}
