// Package render draws positions as PNG images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// MinSize is the smallest board edge Render accepts.
const MinSize = 64

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare   color.RGBA
	DarkSquare    color.RGBA
	LastMoveColor color.RGBA
	EnPassant     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare:   color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:    color.RGBA{181, 136, 99, 255},  // Brown
		LastMoveColor: color.RGBA{180, 190, 100, 90},
		EnPassant:     color.RGBA{130, 151, 105, 200},
	}
}

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Render draws b on a size x size image with White at the bottom.
func Render(b *board.Board, size int) (*image.RGBA, error) {
	return DefaultTheme().Render(b, size)
}

// Render draws b using the theme's colors.
func (t Theme) Render(b *board.Board, size int) (*image.RGBA, error) {
	if size < MinSize {
		return nil, fmt.Errorf("render: size %d below minimum %d", size, MinSize)
	}
	sq := size / 8
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	last := b.LastMove()
	for i := 0; i < 64; i++ {
		s := board.SquareFromIndex(i)
		rect := squareRect(s, sq)
		draw.Draw(img, rect, image.NewUniform(t.squareColor(s)), image.Point{}, draw.Src)

		if !last.IsNull() && (s == last.From() || s == last.To()) {
			draw.Draw(img, rect, image.NewUniform(t.LastMoveColor), image.Point{}, draw.Over)
		}
		if s == b.EnPassant() {
			draw.Draw(img, rect, image.NewUniform(t.EnPassant), image.Point{}, draw.Over)
		}
	}

	if err := t.drawLabels(img, sq); err != nil {
		return nil, err
	}

	glyphs := make(map[board.Piece]*image.RGBA)
	for i := 0; i < 64; i++ {
		s := board.SquareFromIndex(i)
		p := b.PieceAt(s)
		if p == board.NoPiece {
			continue
		}
		g, ok := glyphs[p]
		if !ok {
			var err error
			if g, err = renderGlyph(p, sq); err != nil {
				return nil, err
			}
			glyphs[p] = g
		}
		draw.Draw(img, squareRect(s, sq), g, image.Point{}, draw.Over)
	}
	return img, nil
}

func (t Theme) squareColor(s board.Square) color.RGBA {
	if (s.File()+s.Rank())%2 == 0 {
		return t.DarkSquare
	}
	return t.LightSquare
}

// squareRect returns the pixel rectangle of s; rank 8 is the top row.
func squareRect(s board.Square, sq int) image.Rectangle {
	x, y := s.File()*sq, s.Row()*sq
	return image.Rect(x, y, x+sq, y+sq)
}

// drawLabels writes file letters along rank 1 and rank digits along the
// a-file, each in the opposite square color.
func (t Theme) drawLabels(img *image.RGBA, sq int) error {
	f, err := boldFont()
	if err != nil {
		return fmt.Errorf("render: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(sq) / 5,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("render: font face: %w", err)
	}
	defer face.Close()

	pad := sq / 16
	ascent := face.Metrics().Ascent.Ceil()
	labelColor := func(s board.Square) *image.Uniform {
		if t.squareColor(s) == t.DarkSquare {
			return image.NewUniform(t.LightSquare)
		}
		return image.NewUniform(t.DarkSquare)
	}

	for file := 0; file < 8; file++ {
		s := board.NewSquare(file, 0)
		label := string(rune('a' + file))
		r := squareRect(s, sq)
		w := font.MeasureString(face, label).Ceil()
		d := font.Drawer{
			Dst:  img,
			Src:  labelColor(s),
			Face: face,
			Dot:  fixed.P(r.Max.X-w-pad, r.Max.Y-pad),
		}
		d.DrawString(label)
	}
	for rank := 0; rank < 8; rank++ {
		s := board.NewSquare(0, rank)
		r := squareRect(s, sq)
		d := font.Drawer{
			Dst:  img,
			Src:  labelColor(s),
			Face: face,
			Dot:  fixed.P(r.Min.X+pad, r.Min.Y+pad+ascent),
		}
		d.DrawString(string(rune('1' + rank)))
	}
	return nil
}

// WritePNG encodes the rendered board to w.
func WritePNG(w io.Writer, b *board.Board, size int) error {
	img, err := Render(b, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders the board to a PNG file at path.
func SavePNG(path string, b *board.Board, size int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return WritePNG(f, b, size)
}
