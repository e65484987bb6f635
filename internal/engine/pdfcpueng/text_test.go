package pdfcpueng

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/freebird/internal/engine"
)

func TestPageRange(t *testing.T) {
	if got := pageRange(0, 0); got != "1" {
		t.Errorf("single page: got %q, want %q", got, "1")
	}
	if got := pageRange(2, 5); got != "3-6" {
		t.Errorf("range: got %q, want %q", got, "3-6")
	}
}

func testLine(words ...string) line {
	ln := line{}
	x := 72.0
	for _, w := range words {
		width := float64(len(w)) * 6
		ln.starts = append(ln.starts, len(ln.text))
		ln.text += w
		ln.spans = append(ln.spans, span{text: w, x: x, y: 700, width: width, fontSize: 12})
		x += width
	}
	return ln
}

func TestMatchLine(t *testing.T) {
	ln := testLine("The ", "quick ", "brown ", "fox")

	ms := matchLine(ln, "quick", engine.SearchOptions{})
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	if ln.text[ms[0].start:ms[0].end] != "quick" {
		t.Errorf("matched %q", ln.text[ms[0].start:ms[0].end])
	}

	if ms := matchLine(ln, "QUICK", engine.SearchOptions{}); len(ms) != 1 {
		t.Errorf("case-insensitive: got %d matches, want 1", len(ms))
	}
	if ms := matchLine(ln, "QUICK", engine.SearchOptions{CaseSensitive: true}); len(ms) != 0 {
		t.Errorf("case-sensitive: got %d matches, want 0", len(ms))
	}
}

func TestMatchLineWholeWords(t *testing.T) {
	ln := testLine("cat ", "catalog ", "cat")

	all := matchLine(ln, "cat", engine.SearchOptions{})
	if len(all) != 3 {
		t.Fatalf("substring: got %d matches, want 3", len(all))
	}
	whole := matchLine(ln, "cat", engine.SearchOptions{WholeWords: true})
	if len(whole) != 2 {
		t.Fatalf("whole words: got %d matches, want 2", len(whole))
	}
}

func TestMatchLineOverlapping(t *testing.T) {
	ln := testLine("aaaa")
	if ms := matchLine(ln, "aa", engine.SearchOptions{}); len(ms) != 3 {
		t.Errorf("got %d matches, want 3", len(ms))
	}
}

func TestLineRect(t *testing.T) {
	ln := testLine("quick ", "brown")
	pageH := 792.0

	ms := matchLine(ln, "brown", engine.SearchOptions{})
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	r := lineRect(ln, ms[0].start, ms[0].end, pageH)

	// "brown" is the second span, starting after "quick " (6 chars * 6pt).
	if r.X0 != 72+36 {
		t.Errorf("X0 = %v, want %v", r.X0, 72+36)
	}
	if r.X1 != 72+36+30 {
		t.Errorf("X1 = %v, want %v", r.X1, 72+36+30)
	}
	// Top-left origin: the box top sits a font-size above the baseline.
	if r.Y0 != pageH-(700+12) {
		t.Errorf("Y0 = %v, want %v", r.Y0, pageH-(700+12))
	}
	if r.Y1 <= r.Y0 {
		t.Errorf("degenerate rect: Y0=%v Y1=%v", r.Y0, r.Y1)
	}
}

func TestLineRectSpansMultipleRuns(t *testing.T) {
	ln := testLine("qui", "ck")
	ms := matchLine(ln, "quick", engine.SearchOptions{})
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	r := lineRect(ln, ms[0].start, ms[0].end, 792)
	if r.X0 != 72 {
		t.Errorf("X0 = %v, want 72", r.X0)
	}
	if r.X1 != 72+18+12 {
		t.Errorf("X1 = %v, want %v", r.X1, 72+18+12)
	}
}

func TestSpanSlice(t *testing.T) {
	s := span{text: "abcdef", x: 100, width: 60}

	// Full span.
	l, r := spanSlice(s, 0, 0, 6)
	if l != 100 || r != 160 {
		t.Errorf("full: got (%v, %v), want (100, 160)", l, r)
	}

	// Middle two characters.
	l, r = spanSlice(s, 0, 2, 4)
	if l != 120 || r != 140 {
		t.Errorf("middle: got (%v, %v), want (120, 140)", l, r)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Errorf("got %q", got)
	}

	if err := copyFile(filepath.Join(dir, "missing"), dst); err == nil {
		t.Error("expected error for missing source")
	}
}
