package service

import (
	"context"
	"net"
	"strings"

	"github.com/rs/zerolog"

	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

const maxCustomStylesBytes = 5 * 1024

// BoardService resolves Host headers to tenant boards and manages per-board
// settings.
type BoardService struct {
	boards    ports.BoardRepository
	entries   ports.EntryRepository
	users     ports.UserRepository
	cleanHost string
	logger    zerolog.Logger
}

func NewBoardService(boards ports.BoardRepository, entries ports.EntryRepository, users ports.UserRepository, cleanHost string, logger zerolog.Logger) *BoardService {
	return &BoardService{
		boards:    boards,
		entries:   entries,
		users:     users,
		cleanHost: strings.ToLower(cleanHost),
		logger:    logger,
	}
}

// ResolveHost distinguishes three regimes: the bare apex host, a
// `<name>.<apex>` subdomain and any other (custom) domain. Matching is
// case-insensitive and ignores the port suffix. Unknown subdomains and
// domains resolve to domain.ErrBoardNotFound, never to the apex.
func (s *BoardService) ResolveHost(ctx context.Context, host string) (*ports.HostResolution, error) {
	h := normalizeHost(host)
	if h == "" || h == s.cleanHost {
		return &ports.HostResolution{Apex: true}, nil
	}

	if name, ok := strings.CutSuffix(h, "."+s.cleanHost); ok {
		board, err := s.boards.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return &ports.HostResolution{Board: board}, nil
	}

	board, err := s.boards.FindByDomain(ctx, h)
	if err != nil {
		return nil, err
	}
	return &ports.HostResolution{Board: board}, nil
}

func (s *BoardService) Board(ctx context.Context, id uint) (*domain.Board, error) {
	return s.boards.FindByID(ctx, id)
}

// Page lists a tenant board's entries and counts the visit. A failed view
// increment is logged but never fails the page.
func (s *BoardService) Page(ctx context.Context, board *domain.Board) ([]domain.Entry, error) {
	entries, err := s.entries.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	if err := s.boards.IncrementViews(ctx, board.ID); err != nil {
		s.logger.Warn().Err(err).Uint("board_id", board.ID).Msg("view increment failed")
	}
	return entries, nil
}

func (s *BoardService) Index(ctx context.Context) (*ports.IndexStats, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	boards, err := s.boards.ListOnIndex(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.IndexStats{UserCount: count, Boards: boards}, nil
}

func (s *BoardService) OwnerBoard(ctx context.Context, userID uint) (*domain.Board, []domain.Entry, error) {
	board, err := s.boards.FindByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.entries.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, nil, err
	}
	return board, entries, nil
}

func (s *BoardService) SetConfig(ctx context.Context, userID uint, cfg domain.BoardConfig) error {
	board, err := s.boards.FindByOwner(ctx, userID)
	if err != nil {
		return err
	}
	return s.boards.UpdateConfig(ctx, board.ID, cfg)
}

func (s *BoardService) SetCustomStyles(ctx context.Context, userID uint, css string) error {
	if len(css) > maxCustomStylesBytes {
		return domain.ErrStylesTooBig
	}
	board, err := s.boards.FindByOwner(ctx, userID)
	if err != nil {
		return err
	}
	return s.boards.UpdateCustomCSS(ctx, board.ID, css)
}

func (s *BoardService) CustomStyles(ctx context.Context, boardID uint) (string, error) {
	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		return "", err
	}
	return board.CustomCSS, nil
}

// normalizeHost lowercases the host and strips any port suffix.
func normalizeHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if stripped, _, err := net.SplitHostPort(h); err == nil {
		return stripped
	}
	return h
}
