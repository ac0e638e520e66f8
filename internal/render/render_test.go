package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func squareCenter(s board.Square, size int) (int, int) {
	sq := size / 8
	return s.File()*sq + sq/2, s.Row()*sq + sq/2
}

func TestRenderStartPosition(t *testing.T) {
	const size = 256
	theme := DefaultTheme()
	img, err := Render(board.NewStartBoard(), size)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		t.Fatalf("bounds = %v, want %dx%d", b, size, size)
	}

	if got := img.RGBAAt(0, 0); got != theme.LightSquare {
		t.Errorf("a8 corner = %v, want light square %v", got, theme.LightSquare)
	}
	if got := img.RGBAAt(squareCenter(board.E4, size)); got != theme.LightSquare {
		t.Errorf("empty e4 = %v, want %v", got, theme.LightSquare)
	}
	if got := img.RGBAAt(squareCenter(board.D4, size)); got != theme.DarkSquare {
		t.Errorf("empty d4 = %v, want %v", got, theme.DarkSquare)
	}
	for _, s := range []board.Square{board.E1, board.E8, board.D1, board.A2} {
		x, y := squareCenter(s, size)
		if got := img.RGBAAt(x, y); got == theme.squareColor(s) {
			t.Errorf("%s center shows the bare square, expected a piece", s)
		}
	}
}

func TestRenderHighlightsLastMoveAndEnPassant(t *testing.T) {
	const size = 256
	theme := DefaultTheme()
	b, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}

	img, err := Render(b, size)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(squareCenter(board.E3, size)); got == theme.squareColor(board.E3) {
		t.Errorf("en passant square e3 not highlighted")
	}
	if got := img.RGBAAt(squareCenter(board.F3, size)); got != theme.squareColor(board.F3) {
		t.Errorf("f3 = %v, want plain %v", got, theme.squareColor(board.F3))
	}
}

func TestGlyphsRender(t *testing.T) {
	for _, p := range board.AllPieces {
		t.Run(p.String(), func(t *testing.T) {
			img, err := renderGlyph(p, 45)
			if err != nil {
				t.Fatal(err)
			}
			opaque := 0
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] == 0xff {
					opaque++
				}
			}
			if opaque < 100 {
				t.Errorf("glyph has only %d opaque pixels", opaque)
			}
		})
	}
}

func TestRenderRejectsTinySize(t *testing.T) {
	if _, err := Render(board.NewStartBoard(), MinSize-1); err == nil {
		t.Error("expected an error for a tiny board")
	}
}

func TestWriteAndSavePNG(t *testing.T) {
	b := board.NewStartBoard()

	var buf bytes.Buffer
	if err := WritePNG(&buf, b, 128); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("width = %d, want 128", img.Bounds().Dx())
	}

	path := filepath.Join(t.TempDir(), "board.png")
	if err := SavePNG(path, b, 128); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("PNG not written: %v", err)
	}
}
