package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/dgallion1/freebird/internal/engine"
)

// Highlight palette. The active match gets an orange fill and a red-orange
// border; every other match gets a translucent yellow fill and no border.
var (
	activeFill   = color.NRGBA{R: 255, G: 165, B: 0, A: 100}
	activeBorder = color.NRGBA{R: 255, G: 69, B: 0, A: 255}
	matchFill    = color.NRGBA{R: 255, G: 255, B: 0, A: 100}
)

const activeBorderWidth = 2

// Highlights composites search match rectangles over a rendered page.
// Rectangles are in page space and get scaled by zoom; active selects the
// rectangle drawn with the accent style (-1 for none). The source image is
// not modified.
func Highlights(page image.Image, matches []engine.Rect, active int, zoom float64) image.Image {
	if len(matches) == 0 {
		return page
	}
	out := image.NewRGBA(page.Bounds())
	draw.Draw(out, out.Bounds(), page, page.Bounds().Min, draw.Src)

	for i, r := range matches {
		box := image.Rect(
			int(r.X0*zoom),
			int(r.Y0*zoom),
			int(r.X1*zoom),
			int(r.Y1*zoom),
		)
		if i == active {
			draw.Draw(out, box, image.NewUniform(activeFill), image.Point{}, draw.Over)
			strokeRect(out, box, activeBorder, activeBorderWidth)
		} else {
			draw.Draw(out, box, image.NewUniform(matchFill), image.Point{}, draw.Over)
		}
	}
	return out
}

// strokeRect draws a w-pixel border just inside box.
func strokeRect(dst *image.RGBA, box image.Rectangle, c color.Color, w int) {
	src := image.NewUniform(c)
	top := image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+w)
	bottom := image.Rect(box.Min.X, box.Max.Y-w, box.Max.X, box.Max.Y)
	left := image.Rect(box.Min.X, box.Min.Y, box.Min.X+w, box.Max.Y)
	right := image.Rect(box.Max.X-w, box.Min.Y, box.Max.X, box.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Over)
	}
}
