// Package reorder computes page permutations for the thumbnail
// drag-and-drop flow. It owns the fiddly parts of a drop gesture:
// permutation validation, drops past the end of the strip, and drops
// that land outside every thumbnail. The validated order is handed to
// the document for the actual reconstruction.
package reorder

import (
	"fmt"
	"math"

	"github.com/dgallion1/freebird/internal/doc"
)

// Point is a position in the thumbnail strip's coordinate space.
type Point struct {
	X, Y float64
}

// Validate checks that order is a permutation of [0, pageCount).
func Validate(order []int, pageCount int) error {
	if len(order) != pageCount {
		return fmt.Errorf("order has %d entries for %d pages", len(order), pageCount)
	}
	seen := make([]bool, pageCount)
	for _, v := range order {
		if v < 0 || v >= pageCount {
			return fmt.Errorf("page index %d out of range [0, %d)", v, pageCount)
		}
		if seen[v] {
			return fmt.Errorf("page index %d appears twice", v)
		}
		seen[v] = true
	}
	return nil
}

// IsIdentity reports whether order leaves every page in place.
func IsIdentity(order []int) bool {
	for i, v := range order {
		if i != v {
			return false
		}
	}
	return true
}

// Plan builds the permutation produced by dragging the thumbnail at from
// onto position to: the page is removed and reinserted, everything between
// shifts by one.
func Plan(from, to, pageCount int) ([]int, error) {
	if from < 0 || from >= pageCount || to < 0 || to >= pageCount {
		return nil, fmt.Errorf("move %d -> %d out of range [0, %d)", from, to, pageCount)
	}
	order := make([]int, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if i != from {
			order = append(order, i)
		}
	}
	order = append(order[:to], append([]int{from}, order[to:]...)...)
	return order, nil
}

// ClampDrop resolves a drop index reported past the end of the strip to
// the last valid position. Negative indices are left for NearestDrop.
func ClampDrop(index, count int) int {
	if index >= count {
		return count - 1
	}
	return index
}

// NearestDrop resolves a drop that landed outside every thumbnail's bounds
// to the index of the nearest thumbnail center, by squared distance.
// Returns -1 for an empty strip.
func NearestDrop(centers []Point, drop Point) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range centers {
		dx := c.X - drop.X
		dy := c.Y - drop.Y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Apply validates order against d's page count and applies it. The
// identity order succeeds without touching the document.
func Apply(d *doc.Document, order []int) error {
	_, total := d.PageInfo()
	if err := Validate(order, total); err != nil {
		return err
	}
	return d.ApplyPermutation(order)
}
