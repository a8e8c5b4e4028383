package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/poyobook/poyobook/internal/core/domain"
)

func pngBytes(t *testing.T, w, h int, fill color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = fill.R
		img.Pix[i+1] = fill.G
		img.Pix[i+2] = fill.B
		img.Pix[i+3] = fill.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func testBoard() *domain.Board {
	return &domain.Board{
		ID:              7,
		BrushColor:      "#000000",
		BackgroundColor: "#FFFFFF",
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1A2B3C")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (color.NRGBA{R: 0x1A, G: 0x2B, B: 0x3C, A: 0xFF}) {
		t.Fatalf("unexpected color: %+v", c)
	}

	for _, bad := range []string{"", "1A2B3C", "#1A2B", "#GGGGGG"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestQuantize_SnapsToNearerColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	// Pixel 0 is dark, pixel 1 is light.
	copy(img.Pix, []uint8{0x10, 0x10, 0x10, 0xFF, 0xF0, 0xF0, 0xF0, 0x80})

	quantize(img, "#000000", "#FFFFFF")

	if img.Pix[0] != 0x00 || img.Pix[1] != 0x00 || img.Pix[2] != 0x00 {
		t.Fatalf("dark pixel not snapped to brush: %v", img.Pix[:4])
	}
	if img.Pix[4] != 0xFF || img.Pix[5] != 0xFF || img.Pix[6] != 0xFF {
		t.Fatalf("light pixel not snapped to background: %v", img.Pix[4:8])
	}
	if img.Pix[7] != 0x80 {
		t.Fatalf("alpha changed: %v", img.Pix[7])
	}
}

func TestImageStore_SaveRoundTrip(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	board := testBoard()

	// Oversized upload gets resized to the canvas.
	filename, err := store.Save(ctx, board, pngBytes(t, 200, 120, color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := os.Open(store.Path(board.ID, filename))
	if err != nil {
		t.Fatalf("open stored image: %v", err)
	}
	defer f.Close()

	stored, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode stored image: %v", err)
	}
	if b := stored.Bounds(); b.Dx() != canvasSize || b.Dy() != canvasSize {
		t.Fatalf("stored size %dx%d, want %dx%d", b.Dx(), b.Dy(), canvasSize, canvasSize)
	}

	// Dark input quantizes to the brush color everywhere.
	r, g, b, _ := stored.At(10, 10).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("pixel not quantized to brush: %d %d %d", r, g, b)
	}
}

func TestImageStore_SaveRejectsGarbage(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Save(context.Background(), testBoard(), []byte("not an image"))
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestImageStore_Remove(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	board := testBoard()

	filename, err := store.Save(ctx, board, pngBytes(t, 10, 10, color.NRGBA{A: 0xFF}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Remove(ctx, board.ID, filename); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(store.Path(board.ID, filename)); !os.IsNotExist(err) {
		t.Fatal("file still present after remove")
	}

	// Removing twice is not an error.
	if err := store.Remove(ctx, board.ID, filename); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestImageStore_PathStripsTraversal(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	p := store.Path(7, "../../etc/passwd")
	if strings.Contains(p, "..") {
		t.Fatalf("traversal not stripped: %q", p)
	}
}
