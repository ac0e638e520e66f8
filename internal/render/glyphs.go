package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/hailam/chesscore/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Piece outlines on a 45x45 canvas. {detail} is replaced by a colour that
// contrasts with the fill.
var glyphShapes = [6]string{
	board.Pawn: `<circle cx="22.5" cy="13" r="4.5"/>
<circle cx="22.5" cy="22" r="6"/>
<polygon points="13,37 32,37 28,27 17,27"/>`,

	board.Knight: `<polygon points="13,37 34,37 32,22 28,11 22,8 20,12 15,16 10,24 13,27 19,23 20,27 14,33"/>
<circle cx="17" cy="17" r="1.2" fill="{detail}"/>`,

	board.Bishop: `<circle cx="22.5" cy="9" r="2.5"/>
<ellipse cx="22.5" cy="21" rx="7" ry="9"/>
<polygon points="11,37 34,37 31,31 14,31"/>`,

	board.Rook: `<polygon points="11,36 34,36 34,32 31,32 30,17 33,17 33,10 29,10 29,13 25,13 25,10 20,10 20,13 16,13 16,10 12,10 12,17 15,17 14,32 11,32"/>`,

	board.Queen: `<circle cx="6" cy="12" r="2.5"/>
<circle cx="14" cy="9" r="2.5"/>
<circle cx="22.5" cy="8" r="2.5"/>
<circle cx="31" cy="9" r="2.5"/>
<circle cx="39" cy="12" r="2.5"/>
<polygon points="9,26 6,13 14,24 14,10 20,23 22.5,9 25,23 31,10 31,24 39,13 36,26"/>
<polygon points="9,26 36,26 34,37 11,37"/>`,

	board.King: `<rect x="21" y="4" width="3" height="10"/>
<rect x="18" y="7" width="9" height="3"/>
<polygon points="10,26 14,16 22.5,20 31,16 35,26 32,37 13,37"/>`,
}

// glyphSVG returns the SVG document for p.
func glyphSVG(p board.Piece) string {
	fill, stroke, detail := "#ffffff", "#000000", "#000000"
	if p.Color() == board.Black {
		fill, detail = "#202020", "#ffffff"
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">`)
	fmt.Fprintf(&sb, `<g fill="%[1]s" stroke="%[2]s" stroke-width="1.5" stroke-linejoin="round">`, fill, stroke)
	sb.WriteString(strings.ReplaceAll(glyphShapes[p.Type()], "{detail}", detail))
	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// renderGlyph rasterises the glyph for p into a size x size image.
func renderGlyph(p board.Piece, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(glyphSVG(p)))
	if err != nil {
		return nil, fmt.Errorf("parse %s glyph: %w", p, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}
