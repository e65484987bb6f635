// Package engine defines the contract between the document model and the
// underlying PDF codec. Implementations own parsing, rasterization, text
// extraction and low-level page surgery; everything above this interface
// (cursors, caches, search state, assembly routing) lives in the model.
package engine

import (
	"errors"
	"image"
)

// Handle identifies one open document inside an Engine. Handles are opaque
// to callers; each is owned by exactly one model document at a time.
type Handle interface {
	// ID returns a stable identifier for logging.
	ID() string
}

// Rect is an axis-aligned rectangle in page space, origin top-left,
// units are PDF points at scale 1.0.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// SearchOptions control text matching in SearchPage.
type SearchOptions struct {
	CaseSensitive bool
	WholeWords    bool
}

var (
	// ErrPageOutOfRange is returned for page indices outside [0, PageCount).
	ErrPageOutOfRange = errors.New("engine: page index out of range")
	// ErrEmptyDocument is returned for operations that need at least one page.
	ErrEmptyDocument = errors.New("engine: document has no pages")
)

// Engine is the PDF codec collaborator. All page indices are 0-based.
// Implementations are not required to be safe for concurrent use; the
// model calls them from a single goroutine.
type Engine interface {
	// Open loads an existing PDF from disk. The returned handle refers to
	// a private working copy: mutations never touch the file at path.
	Open(path string) (Handle, error)

	// NewEmpty creates a zero-page in-memory document, used as an
	// assembly target.
	NewEmpty() (Handle, error)

	// PageCount reports the live page count of the document.
	PageCount(h Handle) (int, error)

	// RenderPage rasterizes one page at the given scale. The result is an
	// opaque RGB image sized pageWidth*scaleX by pageHeight*scaleY.
	RenderPage(h Handle, index int, scaleX, scaleY float64) (image.Image, error)

	// SearchPage finds occurrences of query on one page and returns their
	// bounding rectangles in text order.
	SearchPage(h Handle, index int, query string, opts SearchOptions) ([]Rect, error)

	// PageText returns the plain extracted text of one page.
	PageText(h Handle, index int) (string, error)

	// InsertPages copies the inclusive page range [from, to] of src onto
	// the end of dst. src is not modified.
	InsertPages(dst, src Handle, from, to int) error

	// DeletePage removes one page.
	DeletePage(h Handle, index int) error

	// StampText draws a short text stamp onto one page at the given
	// page-space position.
	StampText(h Handle, index int, text string, x, y float64) error

	// Save writes the document to path. With optimize set the writer
	// garbage-collects unused objects and compresses streams.
	Save(h Handle, path string, optimize bool) error

	// Close releases the document. Closing an already-closed handle is a
	// no-op.
	Close(h Handle) error
}
