package search

import (
	"testing"

	"github.com/dgallion1/freebird/internal/engine"
)

func rects(n int) []engine.Rect {
	rs := make([]engine.Rect, n)
	for i := range rs {
		rs[i] = engine.Rect{X0: float64(i * 10), Y0: 0, X1: float64(i*10 + 8), Y1: 12}
	}
	return rs
}

func TestNavigate_NoResults(t *testing.T) {
	r := NewResults()
	if _, _, ok := r.Navigate(true); ok {
		t.Error("expected navigation on empty results to fail")
	}
	if r.StatusText() != "" {
		t.Errorf("expected empty status, got %q", r.StatusText())
	}
}

func TestNavigate_FirstCallLandsOnLowestPage(t *testing.T) {
	r := NewResults()
	r.AddMatches(3, rects(2))
	r.AddMatches(1, rects(2))

	page, _, ok := r.Navigate(true)
	if !ok || page != 1 {
		t.Fatalf("expected first navigation to land on page 1, got page %d ok=%v", page, ok)
	}
	if p, m := r.Cursor(); p != 1 || m != 0 {
		t.Errorf("cursor = (%d, %d), want (1, 0)", p, m)
	}
}

func TestNavigate_FirstCallBackwardAlsoLandsOnFirstMatch(t *testing.T) {
	r := NewResults()
	r.AddMatches(2, rects(3))
	page, _, _ := r.Navigate(false)
	if page != 2 {
		t.Fatalf("page = %d, want 2", page)
	}
	if p, m := r.Cursor(); p != 2 || m != 0 {
		t.Errorf("cursor = (%d, %d), want (2, 0)", p, m)
	}
}

// Scenario: pages 1 and 3 hold two matches each. After the initial landing,
// the next call reaches page 1 match 2, then page 3 match 1.
func TestNavigate_CrossPageForward(t *testing.T) {
	r := NewResults()
	r.AddMatches(1, rects(2))
	r.AddMatches(3, rects(2))

	if r.Total() != 4 {
		t.Fatalf("total = %d, want 4", r.Total())
	}

	r.Navigate(true) // initial landing: page 1, match 0
	page, _, _ := r.Navigate(true)
	if p, m := r.Cursor(); page != 1 || p != 1 || m != 1 {
		t.Fatalf("after 2nd call cursor = (%d, %d), want (1, 1)", p, m)
	}
	page, _, _ = r.Navigate(true)
	if p, m := r.Cursor(); page != 3 || p != 3 || m != 0 {
		t.Fatalf("after 3rd call cursor = (%d, %d), want (3, 0)", p, m)
	}
}

func TestNavigate_CyclicProperty(t *testing.T) {
	r := NewResults()
	r.AddMatches(0, rects(1))
	r.AddMatches(2, rects(3))
	r.AddMatches(5, rects(2))

	n := r.Total()
	firstPage, firstRect, _ := r.Navigate(true)
	for i := 0; i < n; i++ {
		r.Navigate(true)
	}
	if p, m := r.Cursor(); p != firstPage || m != 0 {
		t.Errorf("after %d forward calls cursor = (%d, %d), want (%d, 0)", n, p, m, firstPage)
	}
	_ = firstRect
}

func TestNavigate_CyclicPropertyBackward(t *testing.T) {
	r := NewResults()
	r.AddMatches(1, rects(2))
	r.AddMatches(4, rects(2))

	n := r.Total()
	r.Navigate(false) // lands on page 1 match 0
	for i := 0; i < n; i++ {
		r.Navigate(false)
	}
	if p, m := r.Cursor(); p != 1 || m != 0 {
		t.Errorf("after %d backward calls cursor = (%d, %d), want (1, 0)", n, p, m)
	}
}

func TestNavigate_BackwardWrapsToLastMatch(t *testing.T) {
	r := NewResults()
	r.AddMatches(0, rects(2))
	r.AddMatches(7, rects(3))

	r.Navigate(true)  // (0, 0)
	r.Navigate(false) // wrap to highest page, last match
	if p, m := r.Cursor(); p != 7 || m != 2 {
		t.Errorf("cursor = (%d, %d), want (7, 2)", p, m)
	}
}

func TestCurrentOrdinal(t *testing.T) {
	r := NewResults()
	r.AddMatches(1, rects(2))
	r.AddMatches(3, rects(2))

	if r.CurrentOrdinal() != -1 {
		t.Error("expected -1 before any navigation")
	}
	r.Navigate(true)
	r.Navigate(true)
	r.Navigate(true) // page 3 match 0 -> global index 2
	if got := r.CurrentOrdinal(); got != 2 {
		t.Errorf("ordinal = %d, want 2", got)
	}
	if got := r.StatusText(); got != "Match 3 of 4" {
		t.Errorf("status = %q, want %q", got, "Match 3 of 4")
	}
}

func TestAddMatches_IgnoresEmpty(t *testing.T) {
	r := NewResults()
	r.AddMatches(2, nil)
	if r.HasResults() {
		t.Error("expected no results after adding empty slice")
	}
	if r.PageMatches(2) != nil {
		t.Error("expected no recorded page entry for empty add")
	}
}

func TestReset(t *testing.T) {
	r := NewResults()
	r.Query = "foo"
	r.AddMatches(0, rects(1))
	r.Navigate(true)
	r.Reset()
	if r.HasResults() || r.Query != "" {
		t.Error("expected clean state after reset")
	}
	if p, m := r.Cursor(); p != -1 || m != -1 {
		t.Errorf("cursor = (%d, %d), want (-1, -1)", p, m)
	}
}
