// Package storage persists processed board images as files under a data
// directory, one subdirectory per board.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/poyobook/poyobook/internal/core/domain"
)

// canvasSize is the fixed square size every stored image is resized to.
const canvasSize = 50

type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &ImageStore{root: root}, nil
}

// Save decodes the upload, resizes it to the canvas, quantizes pixels to the
// board's brush/background colors and writes the result as PNG, returning
// the generated filename.
func (s *ImageStore) Save(ctx context.Context, board *domain.Board, data []byte) (string, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	img := imaging.Resize(src, canvasSize, canvasSize, imaging.NearestNeighbor)
	quantize(img, board.BrushColor, board.BackgroundColor)

	dir := filepath.Join(s.root, strconv.FormatUint(uint64(board.ID), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create board dir: %w", err)
	}

	filename := uuid.NewString() + ".png"
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("encode image: %w", err)
	}
	return filename, nil
}

func (s *ImageStore) Path(boardID uint, filename string) string {
	return filepath.Join(s.root, strconv.FormatUint(uint64(boardID), 10), filepath.Base(filename))
}

func (s *ImageStore) Remove(ctx context.Context, boardID uint, filename string) error {
	err := os.Remove(s.Path(boardID, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

// quantize snaps every pixel to the nearer (squared Euclidean RGB distance)
// of the two board colors, keeping the original alpha channel.
func quantize(img *image.NRGBA, brushHex, backgroundHex string) {
	brush, errB := ParseHexColor(brushHex)
	background, errG := ParseHexColor(backgroundHex)
	if errB != nil || errG != nil {
		return
	}

	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
		if sqDist(r, g, b, brush) <= sqDist(r, g, b, background) {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = brush.R, brush.G, brush.B
		} else {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = background.R, background.G, background.B
		}
	}
}

func sqDist(r, g, b uint8, c color.NRGBA) int {
	dr := int(r) - int(c.R)
	dg := int(g) - int(c.G)
	db := int(b) - int(c.B)
	return dr*dr + dg*dg + db*db
}

// ParseHexColor parses "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	return color.NRGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xFF,
	}, nil
}
