// Package search holds per-document text search state: match rectangles
// grouped by page and a cursor that walks them in a cyclic order.
package search

import (
	"fmt"
	"sort"

	"github.com/dgallion1/freebird/internal/engine"
)

// Results accumulates the matches of one search and tracks the currently
// highlighted match. The zero cursor state is (-1, -1): no active match.
type Results struct {
	Query string

	byPage map[int][]engine.Rect
	total  int

	curPage  int
	curMatch int
}

// NewResults returns an empty result set.
func NewResults() *Results {
	r := &Results{}
	r.Reset()
	return r
}

// Reset discards all matches and the cursor.
func (r *Results) Reset() {
	r.Query = ""
	r.byPage = make(map[int][]engine.Rect)
	r.total = 0
	r.curPage = -1
	r.curMatch = -1
}

// AddMatches records the matches found on one page. Rectangles must be in
// document text order. Empty slices are ignored.
func (r *Results) AddMatches(page int, rects []engine.Rect) {
	if len(rects) == 0 {
		return
	}
	r.byPage[page] = rects
	r.total += len(rects)
}

// HasResults reports whether any match was recorded.
func (r *Results) HasResults() bool { return r.total > 0 }

// Total returns the number of matches across all pages.
func (r *Results) Total() int { return r.total }

// PageMatches returns the match rectangles recorded for a page, in text
// order, or nil if the page has none.
func (r *Results) PageMatches(page int) []engine.Rect { return r.byPage[page] }

// Cursor returns the page and within-page index of the active match,
// (-1, -1) if there is none.
func (r *Results) Cursor() (page, match int) { return r.curPage, r.curMatch }

// IsCurrent reports whether (page, match) is the active match.
func (r *Results) IsCurrent(page, match int) bool {
	return page == r.curPage && match == r.curMatch
}

// pages returns the sorted page indices that hold matches. The order is
// recomputed from the map keys on every navigation call.
func (r *Results) pages() []int {
	ps := make([]int, 0, len(r.byPage))
	for p := range r.byPage {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	return ps
}

// Navigate moves the cursor one match forward or backward, wrapping across
// page boundaries and around the ends of the document. The first call after
// a search lands on the first match of the lowest page regardless of
// direction. Returns the page and rectangle of the new active match;
// ok is false when there are no results.
func (r *Results) Navigate(forward bool) (page int, rect engine.Rect, ok bool) {
	if !r.HasResults() {
		return -1, engine.Rect{}, false
	}
	ps := r.pages()

	if r.curPage < 0 || r.curMatch < 0 {
		r.curPage = ps[0]
		r.curMatch = 0
		return r.curPage, r.byPage[r.curPage][r.curMatch], true
	}

	if forward {
		if r.curMatch+1 < len(r.byPage[r.curPage]) {
			r.curMatch++
		} else if i := indexOf(ps, r.curPage); i+1 < len(ps) {
			r.curPage = ps[i+1]
			r.curMatch = 0
		} else {
			r.curPage = ps[0]
			r.curMatch = 0
		}
	} else {
		if r.curMatch > 0 {
			r.curMatch--
		} else if i := indexOf(ps, r.curPage); i > 0 {
			r.curPage = ps[i-1]
			r.curMatch = len(r.byPage[r.curPage]) - 1
		} else {
			r.curPage = ps[len(ps)-1]
			r.curMatch = len(r.byPage[r.curPage]) - 1
		}
	}
	return r.curPage, r.byPage[r.curPage][r.curMatch], true
}

// CurrentOrdinal returns the 0-based position of the active match in the
// global match order (pages ascending, text order within a page), or -1
// when no match is active.
func (r *Results) CurrentOrdinal() int {
	if !r.HasResults() || r.curPage < 0 || r.curMatch < 0 {
		return -1
	}
	n := 0
	for _, p := range r.pages() {
		if p < r.curPage {
			n += len(r.byPage[p])
		} else if p == r.curPage {
			n += r.curMatch
			break
		}
	}
	return n
}

// StatusText returns a display string like "Match 3 of 7", or "" when no
// match is active.
func (r *Results) StatusText() string {
	if ord := r.CurrentOrdinal(); ord >= 0 {
		return fmt.Sprintf("Match %d of %d", ord+1, r.total)
	}
	return ""
}

func indexOf(xs []int, x int) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
