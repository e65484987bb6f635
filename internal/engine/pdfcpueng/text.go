package pdfcpueng

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/freebird/internal/engine"
	pdflib "github.com/ledongthuc/pdf"
)

// span is one positioned text run on a page, in PDF user space
// (origin at the bottom-left corner).
type span struct {
	text     string
	x, y     float64
	width    float64
	fontSize float64
}

// line is a row of spans sharing a baseline, sorted left to right.
type line struct {
	spans []span
	text  string
	// starts[i] is the byte offset of spans[i].text within text.
	starts []int
}

func (e *Engine) PageText(h engine.Handle, index int) (string, error) {
	hd := h.(*handle)
	if index < 0 || index >= hd.pages {
		return "", engine.ErrPageOutOfRange
	}

	f, reader, err := pdflib.Open(hd.workPath)
	if err != nil {
		return "", fmt.Errorf("open working file: %w", err)
	}
	defer f.Close()

	page := reader.Page(index + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract page %d text: %w", index, err)
	}
	return text, nil
}

func (e *Engine) SearchPage(h engine.Handle, index int, query string, opts engine.SearchOptions) ([]engine.Rect, error) {
	hd := h.(*handle)
	if index < 0 || index >= hd.pages {
		return nil, engine.ErrPageOutOfRange
	}
	if query == "" {
		return nil, nil
	}

	f, reader, err := pdflib.Open(hd.workPath)
	if err != nil {
		return nil, fmt.Errorf("open working file: %w", err)
	}
	defer f.Close()

	page := reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, nil
	}
	_, pageH := pageSize(page)

	var rects []engine.Rect
	for _, ln := range pageLines(page) {
		for _, m := range matchLine(ln, query, opts) {
			rects = append(rects, lineRect(ln, m.start, m.end, pageH))
		}
	}
	return rects, nil
}

// pageSize reads the media box, falling back to US Letter.
func pageSize(page pdflib.Page) (w, h float64) {
	w, h = 612, 792
	box := page.V.Key("MediaBox")
	if box.Kind() != pdflib.Array || box.Len() != 4 {
		return w, h
	}
	llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
	urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
	if urx > llx && ury > lly {
		w, h = urx-llx, ury-lly
	}
	return w, h
}

// pageLines groups the page's text runs into baseline rows, top of the
// page first, each row sorted left to right.
func pageLines(page pdflib.Page) []line {
	content := page.Content()

	const baselineTolerance = 2.0
	var rows [][]span
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		s := span{text: t.S, x: t.X, y: t.Y, width: t.W, fontSize: t.FontSize}
		placed := false
		for i := range rows {
			if abs(rows[i][0].y-s.y) <= baselineTolerance {
				rows[i] = append(rows[i], s)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []span{s})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i][0].y > rows[j][0].y })

	lines := make([]line, 0, len(rows))
	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].x < row[j].x })
		ln := line{spans: row}
		var b strings.Builder
		for _, s := range row {
			ln.starts = append(ln.starts, b.Len())
			b.WriteString(s.text)
		}
		ln.text = b.String()
		lines = append(lines, ln)
	}
	return lines
}

type match struct {
	start, end int // byte offsets into line.text
}

func matchLine(ln line, query string, opts engine.SearchOptions) []match {
	haystack := ln.text
	needle := query
	if !opts.CaseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}

	var matches []match
	for off := 0; ; {
		i := strings.Index(haystack[off:], needle)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(needle)
		if !opts.WholeWords || isWholeWord(haystack, start, end) {
			matches = append(matches, match{start: start, end: end})
		}
		off = start + 1
	}
	return matches
}

func isWholeWord(s string, start, end int) bool {
	if start > 0 {
		r := []rune(s[:start])
		if isWordRune(r[len(r)-1]) {
			return false
		}
	}
	if end < len(s) {
		r := []rune(s[end:])
		if isWordRune(r[0]) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lineRect builds the bounding box of text[start:end] within the line,
// converted to top-left-origin page coordinates.
func lineRect(ln line, start, end int, pageH float64) engine.Rect {
	x0, x1 := 0.0, 0.0
	baseline, size := ln.spans[0].y, ln.spans[0].fontSize
	found := false
	for i, s := range ln.spans {
		sStart := ln.starts[i]
		sEnd := sStart + len(s.text)
		if sEnd <= start || sStart >= end {
			continue
		}
		left, right := spanSlice(s, sStart, start, end)
		if !found {
			x0, x1 = left, right
			baseline, size = s.y, s.fontSize
			found = true
		} else {
			if left < x0 {
				x0 = left
			}
			if right > x1 {
				x1 = right
			}
			if s.fontSize > size {
				size = s.fontSize
			}
		}
	}
	return engine.Rect{
		X0: x0,
		Y0: pageH - (baseline + size),
		X1: x1,
		Y1: pageH - baseline + size*0.25,
	}
}

// spanSlice returns the horizontal extent of the overlap between the
// span and the match range, interpolating within the span by character.
func spanSlice(s span, sStart, mStart, mEnd int) (left, right float64) {
	n := len(s.text)
	from := mStart - sStart
	if from < 0 {
		from = 0
	}
	to := mEnd - sStart
	if to > n {
		to = n
	}
	perChar := s.width / float64(n)
	return s.x + perChar*float64(from), s.x + perChar*float64(to)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
