package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

// EntryService runs the submission pipeline: captcha, field caps, per-board
// feature flags, the image pipeline for drawboxes, then one transactional
// persist that also bumps the board counter.
type EntryService struct {
	entries ports.EntryRepository
	boards  ports.BoardRepository
	captcha ports.CaptchaService
	images  ports.ImageStore
	logger  zerolog.Logger
}

func NewEntryService(entries ports.EntryRepository, boards ports.BoardRepository, captcha ports.CaptchaService, images ports.ImageStore, logger zerolog.Logger) *EntryService {
	return &EntryService{
		entries: entries,
		boards:  boards,
		captcha: captcha,
		images:  images,
		logger:  logger,
	}
}

func (s *EntryService) Submit(ctx context.Context, in ports.EntrySubmission) (*domain.Entry, error) {
	board := in.Board
	if board == nil {
		return nil, domain.ErrBoardNotFound
	}

	if board.ShowCaptcha {
		if err := s.captcha.Redeem(ctx, in.ClientIP, in.CaptchaToken, in.CaptchaAnswer); err != nil {
			return nil, err
		}
	}

	entry := &domain.Entry{BoardID: board.ID}
	switch board.Type {
	case domain.BoardGuestbook:
		if err := fillGuestbookEntry(entry, board, in); err != nil {
			return nil, err
		}
	case domain.BoardDrawbox:
		if err := s.fillDrawboxEntry(ctx, entry, board, in); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrBoardNotFound
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		// The image file was written before the row; a failed insert
		// leaves only a disposable file behind, so clean it up here.
		if entry.ImageName != "" {
			if rmErr := s.images.Remove(ctx, board.ID, entry.ImageName); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("image", entry.ImageName).Msg("orphan image cleanup failed")
			}
		}
		return nil, err
	}

	s.logger.Info().Uint("board_id", board.ID).Uint("entry_id", entry.ID).Str("board_type", string(board.Type)).Msg("entry accepted")
	return entry, nil
}

func fillGuestbookEntry(entry *domain.Entry, board *domain.Board, in ports.EntrySubmission) error {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return fmt.Errorf("%w: message", domain.ErrMissingField)
	}
	if utf8.RuneCountInString(message) > domain.MaxMessageLen {
		return fmt.Errorf("%w: message", domain.ErrFieldTooLong)
	}

	author := strings.TrimSpace(in.Author)
	if !board.ShowNames {
		author = ""
	}
	if utf8.RuneCountInString(author) > domain.MaxNameLen {
		return fmt.Errorf("%w: author", domain.ErrFieldTooLong)
	}
	if author == "" {
		author = anonymousName()
	}

	entry.Message = message
	entry.Author = author
	entry.Website = strings.TrimSpace(in.Website)
	return nil
}

func (s *EntryService) fillDrawboxEntry(ctx context.Context, entry *domain.Entry, board *domain.Board, in ports.EntrySubmission) error {
	creator := strings.TrimSpace(in.Creator)
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(creator) > domain.MaxNameLen {
		return fmt.Errorf("%w: creator", domain.ErrFieldTooLong)
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
		return fmt.Errorf("%w: description", domain.ErrFieldTooLong)
	}
	if len(in.Image) == 0 {
		return fmt.Errorf("%w: image", domain.ErrMissingField)
	}

	// Disabled fields are discarded regardless of what the client sent.
	if !board.ShowNames {
		creator = ""
	}
	if !board.ShowDescriptions {
		description = ""
	}

	filename, err := s.images.Save(ctx, board, in.Image)
	if err != nil {
		return err
	}

	entry.ImageName = filename
	entry.Creator = creator
	entry.Description = description
	return nil
}

func (s *EntryService) Delete(ctx context.Context, userID, entryID uint) error {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	board, err := s.boards.FindByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if entry.BoardID != board.ID {
		return domain.ErrForbidden
	}

	if err := s.entries.Delete(ctx, board.ID, entry.ID); err != nil {
		return err
	}
	if entry.ImageName != "" {
		if err := s.images.Remove(ctx, board.ID, entry.ImageName); err != nil {
			s.logger.Warn().Err(err).Str("image", entry.ImageName).Msg("image removal failed")
		}
	}
	s.logger.Info().Uint("board_id", board.ID).Uint("entry_id", entry.ID).Msg("entry deleted")
	return nil
}

func (s *EntryService) ImagePath(ctx context.Context, entryID uint) (string, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return "", err
	}
	if entry.ImageName == "" {
		return "", domain.ErrEntryNotFound
	}
	return s.images.Path(entry.BoardID, entry.ImageName), nil
}

// anonymousName builds the fallback author name for unsigned guestbook
// entries, e.g. "Anonymous4821".
func anonymousName() string {
	return fmt.Sprintf("Anonymous%04d", rand.IntN(10000))
}
