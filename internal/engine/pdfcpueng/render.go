package pdfcpueng

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/dgallion1/freebird/internal/engine"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderPage rasterizes the page's text layer onto a white canvas sized
// pageSize * scale. Graphics and embedded images are not drawn; a page
// with no extractable text renders blank.
func (e *Engine) RenderPage(h engine.Handle, index int, scaleX, scaleY float64) (image.Image, error) {
	hd := h.(*handle)
	if index < 0 || index >= hd.pages {
		return nil, engine.ErrPageOutOfRange
	}
	if scaleX <= 0 || scaleY <= 0 {
		return nil, fmt.Errorf("invalid scale %vx%v", scaleX, scaleY)
	}

	f, reader, err := pdflib.Open(hd.workPath)
	if err != nil {
		return nil, fmt.Errorf("open working file: %w", err)
	}
	defer f.Close()

	page := reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", index)
	}

	pageW, pageH := pageSize(page)
	w := int(pageW*scaleX + 0.5)
	ht := int(pageH*scaleY + 0.5)
	if w < 1 {
		w = 1
	}
	if ht < 1 {
		ht = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, ht))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for _, ln := range pageLines(page) {
		for _, s := range ln.spans {
			drawer.Dot = fixed.P(
				int(s.x*scaleX+0.5),
				int((pageH-s.y)*scaleY+0.5),
			)
			drawer.DrawString(s.text)
		}
	}
	return canvas, nil
}
