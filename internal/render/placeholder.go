package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder dimensions match the original viewer's error pixmap.
const (
	placeholderW = 400
	placeholderH = 300
)

// ErrorPlaceholder builds the diagnostic bitmap shown when a page fails to
// rasterize: white background, message centered in red.
func ErrorPlaceholder(msg string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, placeholderW, placeholderH))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	w := font.MeasureString(face, msg).Ceil()
	if w > placeholderW {
		w = placeholderW
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 200, A: 255}),
		Face: face,
		Dot: fixed.P(
			(placeholderW-w)/2,
			placeholderH/2,
		),
	}
	d.DrawString(msg)
	return img
}
