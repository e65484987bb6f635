// Package doc implements the central document model: one open PDF with a
// page cursor, zoom state, dirty flag, render cache and search results.
// All page mutations go through here so cache invalidation, search reset
// and cursor repositioning stay consistent.
package doc

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/dgallion1/freebird/internal/engine"
	"github.com/dgallion1/freebird/internal/render"
	"github.com/dgallion1/freebird/internal/search"
)

// AssemblyPrefix marks a source path that has no on-disk origin yet.
const AssemblyPrefix = "assembly:/"

// Zoom limits and the minimum change that triggers a re-render.
const (
	MinZoom     = 0.1
	MaxZoom     = 5.0
	zoomEpsilon = 0.01
)

// thumbnailScale is the fixed scale used for reorder-strip thumbnails.
const thumbnailScale = 0.2

// Document wraps one engine document handle together with all viewer
// state. It exclusively owns the handle; Close releases it exactly once.
// Documents are not safe for concurrent use.
type Document struct {
	eng engine.Engine
	log *slog.Logger

	handle   engine.Handle
	path     string
	page     int
	pages    int
	zoom     float64
	modified bool
	assembly bool

	cache   *render.Cache
	results *search.Results

	// rendering guards against a render re-entering itself through a
	// UI-refresh callback.
	rendering  bool
	lastBitmap image.Image
}

// New returns an unloaded document. cacheSize bounds the render cache;
// pass 0 for the default.
func New(eng engine.Engine, log *slog.Logger, cacheSize int) *Document {
	if log == nil {
		log = slog.Default()
	}
	return &Document{
		eng:     eng,
		log:     log,
		zoom:    1.0,
		cache:   render.NewCache(cacheSize),
		results: search.NewResults(),
	}
}

// Load opens the PDF at path, replacing any currently open document.
// Cursor, zoom, dirty flag, cache and search state are all reset. On
// failure the document is left with no pages and an *OpenError is
// returned; the process keeps running.
func (d *Document) Load(path string) error {
	d.release()

	h, err := d.eng.Open(path)
	if err != nil {
		d.log.Error("could not open pdf", "path", path, "error", err)
		return &OpenError{Path: path, Err: err}
	}
	n, err := d.eng.PageCount(h)
	if err != nil {
		d.eng.Close(h)
		return &OpenError{Path: path, Err: err}
	}

	d.handle = h
	d.path = path
	d.pages = n
	d.assembly = false
	d.reset()
	d.log.Info("opened pdf", "path", path, "pages", n)
	return nil
}

// NewAssembly initializes the document as an empty in-memory assembly
// target named name.
func (d *Document) NewAssembly(name string) error {
	d.release()

	h, err := d.eng.NewEmpty()
	if err != nil {
		return &OpenError{Path: AssemblyPrefix + name, Err: err}
	}
	d.handle = h
	d.path = AssemblyPrefix + name
	d.pages = 0
	d.assembly = true
	d.reset()
	d.log.Info("created assembly document", "name", name)
	return nil
}

// reset restores per-document view state after a (re)load.
func (d *Document) reset() {
	d.page = 0
	d.zoom = 1.0
	d.modified = false
	d.cache.Clear()
	d.results.Reset()
	d.lastBitmap = nil
}

// Loaded reports whether an engine document is open.
func (d *Document) Loaded() bool { return d.handle != nil }

// Path returns the source path, which carries the AssemblyPrefix when the
// document has never been saved.
func (d *Document) Path() string { return d.path }

// IsAssembly reports whether this document is an assembly target.
func (d *Document) IsAssembly() bool { return d.assembly }

// Modified reports the dirty flag.
func (d *Document) Modified() bool { return d.modified }

// Zoom returns the current zoom factor.
func (d *Document) Zoom() float64 { return d.zoom }

// Results exposes the search state for status displays.
func (d *Document) Results() *search.Results { return d.results }

// PageInfo returns the current page index and total page count, clamping a
// stale cursor first. Returns (0, 0) when nothing is loaded.
func (d *Document) PageInfo() (page, total int) {
	if !d.Loaded() {
		return 0, 0
	}
	if d.pages == 0 {
		d.page = 0
	} else if d.page >= d.pages {
		d.page = d.pages - 1
	}
	return d.page, d.pages
}

// PageCount returns the cached page count.
func (d *Document) PageCount() int { return d.pages }

// GotoPage moves the cursor to index and re-renders. It is a no-op
// returning false when index is out of range or already current.
func (d *Document) GotoPage(index int) bool {
	if !d.Loaded() || index < 0 || index >= d.pages || index == d.page {
		return false
	}
	d.page = index
	d.RenderCurrentPage()
	return true
}

// NextPage advances the cursor by one page.
func (d *Document) NextPage() bool { return d.GotoPage(d.page + 1) }

// PrevPage moves the cursor back by one page.
func (d *Document) PrevPage() bool { return d.GotoPage(d.page - 1) }

// SetZoom clamps factor to [MinZoom, MaxZoom] and applies it. Changes
// smaller than the epsilon are ignored. A real change clears the cache and
// re-renders.
func (d *Document) SetZoom(factor float64) bool {
	if !d.Loaded() || factor <= 0 {
		return false
	}
	factor = math.Max(MinZoom, math.Min(factor, MaxZoom))
	if math.Abs(d.zoom-factor) <= zoomEpsilon {
		return false
	}
	d.zoom = factor
	d.cache.Clear()
	d.RenderCurrentPage()
	return true
}

// RenderCurrentPage returns the bitmap for the current page at the current
// zoom, serving from the cache when possible. Search matches on the page
// are composited in: the active match with the accent style, the rest with
// a translucent fill. This method never fails outward; render errors yield
// a diagnostic placeholder bitmap. Nested calls (a mutation triggered from
// a refresh callback) are no-ops returning the last bitmap.
func (d *Document) RenderCurrentPage() image.Image {
	if d.rendering {
		return d.lastBitmap
	}
	d.rendering = true
	defer func() { d.rendering = false }()

	if !d.Loaded() || d.pages == 0 || d.page < 0 || d.page >= d.pages {
		msg := "Document has no pages."
		if d.assembly {
			msg = "Assembly Document (add pages)"
		}
		d.lastBitmap = render.ErrorPlaceholder(msg)
		return d.lastBitmap
	}

	key := render.Key{Page: d.page, Zoom: d.zoom}
	if img := d.cache.Get(key); img != nil {
		d.lastBitmap = img
		return img
	}

	img, err := d.eng.RenderPage(d.handle, d.page, d.zoom, d.zoom)
	if err != nil {
		d.log.Error("render failed", "path", d.path, "page", d.page, "error", err)
		// Placeholders are never cached; the next call retries.
		d.lastBitmap = render.ErrorPlaceholder(fmt.Sprintf("Error rendering page %d", d.page+1))
		return d.lastBitmap
	}

	if matches := d.results.PageMatches(d.page); len(matches) > 0 {
		active := -1
		if p, m := d.results.Cursor(); p == d.page {
			active = m
		}
		img = render.Highlights(img, matches, active, d.zoom)
	}

	d.cache.Put(key, img)
	d.lastBitmap = img
	return img
}

// RenderThumbnail rasterizes one page at the fixed thumbnail scale,
// bypassing the cache. Used by the reorder strip.
func (d *Document) RenderThumbnail(index int) image.Image {
	if !d.Loaded() || index < 0 || index >= d.pages {
		return render.ErrorPlaceholder("No page")
	}
	img, err := d.eng.RenderPage(d.handle, index, thumbnailScale, thumbnailScale)
	if err != nil {
		return render.ErrorPlaceholder(fmt.Sprintf("Error rendering page %d", index+1))
	}
	return img
}

// CanDelete reports whether DeletePage is allowed: a document keeps at
// least one page once it has any.
func (d *Document) CanDelete() bool { return d.Loaded() && d.pages > 1 }

// DeletePage removes the current page. Refuses with ErrCannotDelete on a
// single-page document.
func (d *Document) DeletePage() error {
	if !d.Loaded() {
		return ErrClosed
	}
	if d.pages <= 1 {
		return ErrCannotDelete
	}
	if err := d.eng.DeletePage(d.handle, d.page); err != nil {
		return fmt.Errorf("delete page %d: %w", d.page+1, err)
	}
	d.pages--
	d.modified = true
	d.cache.Clear()
	if d.page >= d.pages && d.pages > 0 {
		d.page = d.pages - 1
	} else if d.pages == 0 {
		d.page = 0
	}
	d.log.Info("deleted page", "path", d.path, "pages", d.pages, "cursor", d.page)
	d.RenderCurrentPage()
	return nil
}

// MovePage moves the page at from to position to, reconstructing the whole
// document by page-range copy. The engine's native move primitive is not
// used; rebuilding via copy is the deliberate, reliable strategy. The
// cursor follows the moved page only when it sat on it. Returns false for
// invalid indices; from == to succeeds without doing anything.
func (d *Document) MovePage(from, to int) bool {
	if !d.Loaded() || from < 0 || from >= d.pages || to < 0 || to >= d.pages {
		return false
	}
	if from == to {
		return true
	}

	order := make([]int, 0, d.pages)
	for i := 0; i < d.pages; i++ {
		if i != from {
			order = append(order, i)
		}
	}
	order = append(order[:to], append([]int{from}, order[to:]...)...)

	if err := d.rebuild(order); err != nil {
		d.log.Error("move page failed", "from", from, "to", to, "error", err)
		return false
	}
	if d.page == from {
		d.page = to
	}
	d.modified = true
	d.cache.Clear()
	d.RenderCurrentPage()
	return true
}

// MoveUp moves the current page one position earlier.
func (d *Document) MoveUp() bool {
	if !d.Loaded() || d.page <= 0 {
		return false
	}
	return d.MovePage(d.page, d.page-1)
}

// MoveDown moves the current page one position later.
func (d *Document) MoveDown() bool {
	if !d.Loaded() || d.page >= d.pages-1 {
		return false
	}
	return d.MovePage(d.page, d.page+1)
}

// ApplyPermutation reorders the document pages so that position i holds
// the page previously at order[i]. order must be a permutation of
// [0, PageCount). The identity permutation succeeds without mutating
// anything.
func (d *Document) ApplyPermutation(order []int) error {
	if !d.Loaded() {
		return ErrClosed
	}
	if err := validatePermutation(order, d.pages); err != nil {
		return err
	}
	if isIdentity(order) {
		return nil
	}
	if err := d.rebuild(order); err != nil {
		return fmt.Errorf("reorder pages: %w", err)
	}
	if d.page >= d.pages && d.pages > 0 {
		d.page = d.pages - 1
	}
	d.modified = true
	d.cache.Clear()
	d.RenderCurrentPage()
	return nil
}

// rebuild replaces the document with a fresh one holding the original
// pages in order, releasing the old handle.
func (d *Document) rebuild(order []int) error {
	fresh, err := d.eng.NewEmpty()
	if err != nil {
		return err
	}
	for _, old := range order {
		if err := d.eng.InsertPages(fresh, d.handle, old, old); err != nil {
			d.eng.Close(fresh)
			return err
		}
	}
	n, err := d.eng.PageCount(fresh)
	if err != nil {
		d.eng.Close(fresh)
		return err
	}
	d.eng.Close(d.handle)
	d.handle = fresh
	d.pages = n
	return nil
}

// InsertPagesFrom copies the inclusive page range [from, to] of src onto
// the end of this document. Pass (0, src.PageCount()-1) for all pages.
// The cursor lands on the first inserted page and the document is marked
// modified. The empty-to-nonempty transition forces a cache clear and
// re-render, since the normal render path never observes it.
func (d *Document) InsertPagesFrom(src *Document, from, to int) error {
	if !d.Loaded() || src == nil || !src.Loaded() {
		return ErrClosed
	}
	if from < 0 || to >= src.pages || from > to {
		return fmt.Errorf("insert pages %d-%d: %w", from+1, to+1, engine.ErrPageOutOfRange)
	}

	// Appending never renumbers existing pages, so cache entries for
	// them stay valid and are kept. Only the empty-to-nonempty
	// transition below needs a refresh.
	wasEmpty := d.pages == 0
	before := d.pages

	if err := d.eng.InsertPages(d.handle, src.handle, from, to); err != nil {
		return fmt.Errorf("insert pages from %s: %w", src.path, err)
	}
	n, err := d.eng.PageCount(d.handle)
	if err != nil {
		return fmt.Errorf("insert pages from %s: %w", src.path, err)
	}
	d.pages = n

	d.GotoPage(before)
	if wasEmpty {
		d.cache.Clear()
		d.RenderCurrentPage()
	}
	d.modified = true
	d.log.Info("inserted pages", "from", src.path, "first", from, "last", to, "pages", d.pages)
	return nil
}

// Search scans every page for query and records match rectangles. With
// matches found the cursor navigates to the first one and Search returns
// true. With none it re-renders the current page so stale highlights are
// gone and returns false. An empty query or unloaded document is a no-op
// returning false.
func (d *Document) Search(query string, caseSensitive, wholeWords bool) bool {
	if !d.Loaded() || query == "" {
		return false
	}

	d.results.Reset()
	d.results.Query = query
	d.cache.Clear()

	opts := engine.SearchOptions{CaseSensitive: caseSensitive, WholeWords: wholeWords}
	for i := 0; i < d.pages; i++ {
		rects, err := d.eng.SearchPage(d.handle, i, query, opts)
		if err != nil {
			d.log.Error("search failed", "path", d.path, "page", i, "error", err)
			continue
		}
		d.results.AddMatches(i, rects)
	}

	if d.results.HasResults() {
		page, _, _ := d.results.Navigate(true)
		if page != d.page {
			d.GotoPage(page)
		} else {
			d.RenderCurrentPage()
		}
		return true
	}
	d.RenderCurrentPage()
	return false
}

// FindNext moves the active match forward or backward. Landing on a
// different page navigates there; staying on the same page forces a
// cache clear and re-render because the highlighted match changed while
// the page did not. Returns false when no search is active.
func (d *Document) FindNext(forward bool) bool {
	if !d.results.HasResults() {
		return false
	}
	page, _, ok := d.results.Navigate(forward)
	if !ok {
		return false
	}
	if page != d.page {
		d.GotoPage(page)
	} else {
		d.cache.Clear()
		d.RenderCurrentPage()
	}
	return true
}

// PageText returns the extracted plain text of one page, for text-mode
// display and clipboard use.
func (d *Document) PageText(index int) (string, error) {
	if !d.Loaded() {
		return "", ErrClosed
	}
	if index < 0 || index >= d.pages {
		return "", engine.ErrPageOutOfRange
	}
	text, err := d.eng.PageText(d.handle, index)
	if err != nil {
		return "", fmt.Errorf("extract text of page %d: %w", index+1, err)
	}
	return text, nil
}

// HasText samples up to sample pages and reports whether the document
// appears to contain extractable text, so the UI can explain empty search
// results on scanned documents.
func (d *Document) HasText(sample int) bool {
	if !d.Loaded() {
		return false
	}
	n := d.pages
	if sample > 0 && sample < n {
		n = sample
	}
	for i := 0; i < n; i++ {
		text, err := d.eng.PageText(d.handle, i)
		if err != nil {
			continue
		}
		if len(strings.TrimSpace(text)) > 20 {
			return true
		}
	}
	return false
}

// StampText draws text onto the current page at page-space position
// (x, y), marking the document modified.
func (d *Document) StampText(text string, x, y float64) error {
	if !d.Loaded() || d.pages == 0 {
		return ErrClosed
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("stamp: empty text")
	}
	if err := d.eng.StampText(d.handle, d.page, text, x, y); err != nil {
		return fmt.Errorf("stamp page %d: %w", d.page+1, err)
	}
	d.modified = true
	d.cache.Clear()
	d.RenderCurrentPage()
	return nil
}

// Save writes the document to path with the optimizing writer (object
// garbage collection and stream compression). On success the document
// takes path as its source, drops the assembly role and clears the dirty
// flag. On failure nothing changes and a *SaveError is returned.
func (d *Document) Save(path string) error {
	if !d.Loaded() {
		return ErrClosed
	}
	if err := d.eng.Save(d.handle, path, true); err != nil {
		d.log.Error("save failed", "path", path, "error", err)
		return &SaveError{Path: path, Err: err}
	}
	d.path = path
	d.assembly = false
	d.modified = false
	d.log.Info("saved document", "path", path, "pages", d.pages)
	return nil
}

// SuggestedSaveName derives a filename for the save dialog: an assembly
// gets its name plus ".pdf", a file-backed document gets a "_modified"
// suffix, anything else falls back to "document.pdf".
func (d *Document) SuggestedSaveName() string {
	switch {
	case d.assembly && strings.HasPrefix(d.path, AssemblyPrefix):
		return strings.TrimPrefix(d.path, AssemblyPrefix) + ".pdf"
	case d.path != "" && !strings.HasPrefix(d.path, AssemblyPrefix):
		base := filepath.Base(d.path)
		ext := filepath.Ext(base)
		return strings.TrimSuffix(base, ext) + "_modified" + ext
	default:
		return "document.pdf"
	}
}

// DisplayName returns a short name for tabs and prompts.
func (d *Document) DisplayName() string {
	if strings.HasPrefix(d.path, AssemblyPrefix) {
		return strings.TrimPrefix(d.path, AssemblyPrefix)
	}
	if d.path != "" {
		return filepath.Base(d.path)
	}
	return "(untitled)"
}

// Close releases the engine handle exactly once and resets the document to
// its initial state. Closing twice is harmless.
func (d *Document) Close() {
	d.release()
	d.path = ""
	d.pages = 0
	d.page = 0
	d.zoom = 1.0
	d.modified = false
	d.assembly = false
	d.cache.Clear()
	d.results.Reset()
	d.lastBitmap = nil
}

// release closes the current handle, if any.
func (d *Document) release() {
	if d.handle == nil {
		return
	}
	if err := d.eng.Close(d.handle); err != nil {
		d.log.Warn("error closing document", "path", d.path, "error", err)
	}
	d.handle = nil
}

func validatePermutation(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("permutation has %d entries, document has %d pages", len(order), n)
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n {
			return fmt.Errorf("permutation entry %d out of range [0, %d)", v, n)
		}
		if seen[v] {
			return fmt.Errorf("permutation repeats page %d", v)
		}
		seen[v] = true
	}
	return nil
}

func isIdentity(order []int) bool {
	for i, v := range order {
		if i != v {
			return false
		}
	}
	return true
}
