// Package enginetest provides a scriptable in-memory Engine for tests.
// Pages carry plain text plus optional positioned spans; structural
// operations mirror the contract of a real codec without touching disk.
package enginetest

import (
	"fmt"
	"image"
	"image/draw"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/dgallion1/freebird/internal/engine"
)

// Span is a run of text with a bounding box, used to derive search match
// rectangles.
type Span struct {
	Text string
	Box  engine.Rect
}

// Page is one fake page.
type Page struct {
	Text   string
	Spans  []Span
	Width  float64
	Height float64
}

// TextPage builds a page holding text with one span per word, laid out on
// a single line. Convenient for search tests.
func TextPage(text string) Page {
	p := Page{Text: text, Width: 612, Height: 792}
	x := 72.0
	for _, w := range strings.Fields(text) {
		width := float64(len(w)) * 7
		p.Spans = append(p.Spans, Span{
			Text: w,
			Box:  engine.Rect{X0: x, Y0: 72, X1: x + width, Y1: 85},
		})
		x += width + 7
	}
	return p
}

type fakeDoc struct {
	id     string
	pages  []Page
	closed bool
}

func (d *fakeDoc) ID() string { return d.id }

// Fake implements engine.Engine over in-memory page lists. The zero value
// is ready to use. Failure hooks let tests force specific error paths.
type Fake struct {
	// Files maps paths accepted by Open to their page lists.
	Files map[string][]Page

	// FailOpen, FailRender, FailSave and FailSearch force errors.
	FailOpen   map[string]error
	FailRender map[int]error
	FailSave   error
	FailSearch error

	// Saved records the last Save destination and content.
	Saved map[string][]Page

	// RenderCalls counts RenderPage invocations across all handles.
	RenderCalls int

	// CloseCount counts Close calls per handle ID.
	CloseCount map[string]int

	seq atomic.Int64
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Files:      make(map[string][]Page),
		FailOpen:   make(map[string]error),
		FailRender: make(map[int]error),
		Saved:      make(map[string][]Page),
		CloseCount: make(map[string]int),
	}
}

// AddFile registers a document that Open(path) will load.
func (f *Fake) AddFile(path string, pages ...Page) {
	f.Files[path] = pages
}

func (f *Fake) newHandle(pages []Page) *fakeDoc {
	return &fakeDoc{
		id:    fmt.Sprintf("fake-%d", f.seq.Add(1)),
		pages: append([]Page(nil), pages...),
	}
}

func (f *Fake) Open(path string) (engine.Handle, error) {
	if err := f.FailOpen[path]; err != nil {
		return nil, err
	}
	pages, ok := f.Files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such document", path)
	}
	return f.newHandle(pages), nil
}

func (f *Fake) NewEmpty() (engine.Handle, error) {
	return f.newHandle(nil), nil
}

func (f *Fake) doc(h engine.Handle) (*fakeDoc, error) {
	d, ok := h.(*fakeDoc)
	if !ok || d == nil {
		return nil, fmt.Errorf("enginetest: bad handle %T", h)
	}
	if d.closed {
		return nil, fmt.Errorf("enginetest: handle %s is closed", d.id)
	}
	return d, nil
}

func (f *Fake) PageCount(h engine.Handle) (int, error) {
	d, err := f.doc(h)
	if err != nil {
		return 0, err
	}
	return len(d.pages), nil
}

func (f *Fake) RenderPage(h engine.Handle, index int, scaleX, scaleY float64) (image.Image, error) {
	d, err := f.doc(h)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.pages) {
		return nil, engine.ErrPageOutOfRange
	}
	f.RenderCalls++
	if err := f.FailRender[index]; err != nil {
		return nil, err
	}
	p := d.pages[index]
	img := image.NewRGBA(image.Rect(0, 0, int(p.Width*scaleX), int(p.Height*scaleY)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img, nil
}

func (f *Fake) SearchPage(h engine.Handle, index int, query string, opts engine.SearchOptions) ([]engine.Rect, error) {
	if f.FailSearch != nil {
		return nil, f.FailSearch
	}
	d, err := f.doc(h)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.pages) {
		return nil, engine.ErrPageOutOfRange
	}
	var out []engine.Rect
	for _, sp := range d.pages[index].Spans {
		if matches(sp.Text, query, opts) {
			out = append(out, sp.Box)
		}
	}
	return out, nil
}

func matches(text, query string, opts engine.SearchOptions) bool {
	t, q := text, query
	if !opts.CaseSensitive {
		t = strings.ToLower(t)
		q = strings.ToLower(q)
	}
	if opts.WholeWords {
		for _, w := range strings.FieldsFunc(t, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			if w == q {
				return true
			}
		}
		return false
	}
	return strings.Contains(t, q)
}

func (f *Fake) PageText(h engine.Handle, index int) (string, error) {
	d, err := f.doc(h)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(d.pages) {
		return "", engine.ErrPageOutOfRange
	}
	return d.pages[index].Text, nil
}

func (f *Fake) InsertPages(dst, src engine.Handle, from, to int) error {
	dd, err := f.doc(dst)
	if err != nil {
		return err
	}
	sd, err := f.doc(src)
	if err != nil {
		return err
	}
	if from < 0 || to >= len(sd.pages) || from > to {
		return engine.ErrPageOutOfRange
	}
	dd.pages = append(dd.pages, sd.pages[from:to+1]...)
	return nil
}

func (f *Fake) DeletePage(h engine.Handle, index int) error {
	d, err := f.doc(h)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(d.pages) {
		return engine.ErrPageOutOfRange
	}
	d.pages = append(d.pages[:index], d.pages[index+1:]...)
	return nil
}

func (f *Fake) StampText(h engine.Handle, index int, text string, x, y float64) error {
	d, err := f.doc(h)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(d.pages) {
		return engine.ErrPageOutOfRange
	}
	p := &d.pages[index]
	p.Text += "\n" + text
	p.Spans = append(p.Spans, Span{
		Text: text,
		Box:  engine.Rect{X0: x, Y0: y, X1: x + float64(len(text))*7, Y1: y + 13},
	})
	return nil
}

func (f *Fake) Save(h engine.Handle, path string, optimize bool) error {
	if f.FailSave != nil {
		return f.FailSave
	}
	d, err := f.doc(h)
	if err != nil {
		return err
	}
	saved := append([]Page(nil), d.pages...)
	f.Saved[path] = saved
	// A saved document becomes openable, so save/load round trips work.
	f.Files[path] = saved
	return nil
}

func (f *Fake) Close(h engine.Handle) error {
	d, ok := h.(*fakeDoc)
	if !ok || d == nil {
		return nil
	}
	f.CloseCount[d.id]++
	d.closed = true
	return nil
}

// PagesOf exposes the live page list behind a handle for assertions.
func (f *Fake) PagesOf(h engine.Handle) []Page {
	d, ok := h.(*fakeDoc)
	if !ok {
		return nil
	}
	return d.pages
}

var _ engine.Engine = (*Fake)(nil)
