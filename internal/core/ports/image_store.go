package ports

import (
	"context"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// ImageStore processes and persists uploaded board images.
type ImageStore interface {
	// Save decodes raw upload bytes, resizes them to the board canvas,
	// quantizes pixels to the board's two colors and writes the result,
	// returning the stored filename.
	Save(ctx context.Context, board *domain.Board, data []byte) (string, error)
	// Path returns the filesystem path for a stored image.
	Path(boardID uint, filename string) string
	// Remove deletes a stored image. Missing files are not an error.
	Remove(ctx context.Context, boardID uint, filename string) error
}
