// Package atomhash indexes atom spheres for fast neighbor queries,
// backed by an R-tree (github.com/dhconnelly/rtreego) instead of a bare
// uniform bucket grid. It is a soft optimization: callers that get a nil
// *AtomHash back must fall back to a linear scan over the atom slice.
package atomhash

import (
	"math"

	"github.com/dhconnelly/rtreego"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

const treeDim = 3

// rtreego branch factors recommended by its own docs for small-to-medium
// point sets; atom counts here are rarely more than a few thousand.
const minBranch, maxBranch = 25, 50

// Atom is the minimal per-atom data the index needs.
type Atom struct {
	Center v3.Vec
	Radius float64
}

// entry adapts an Atom to rtreego.Spatial: its bounding box is the
// atom's sphere inflated by margin on every side, so a point-query at p
// intersecting this box is a necessary condition for p being within
// margin of the sphere's surface.
type entry struct {
	atom   Atom
	bounds *rtreego.Rect
}

func (e *entry) Bounds() *rtreego.Rect { return e.bounds }

// AtomHash is a uniform-margin spatial index over a fixed atom set.
type AtomHash struct {
	tree   *rtreego.Rtree
	margin float64
}

// New builds an index so that Query(p) returns every atom whose sphere,
// inflated by margin, contains p — a superset of atoms within margin of
// their own surface at p. Returns nil if margin is not finite or <= 0;
// per package contract this is a normal, expected failure mode, not a
// panic or error value, so callers fall back to a linear scan.
func New(atoms []Atom, margin float64) *AtomHash {
	if !validScalar(margin) || margin <= 0 {
		return nil
	}

	tree := rtreego.NewTree(treeDim, minBranch, maxBranch)
	for _, a := range atoms {
		half := a.Radius + margin
		if !validScalar(half) || half <= 0 {
			return nil
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{a.Center.X - half, a.Center.Y - half, a.Center.Z - half},
			[]float64{2 * half, 2 * half, 2 * half},
		)
		if err != nil {
			return nil
		}
		tree.Insert(&entry{atom: a, bounds: rect})
	}
	return &AtomHash{tree: tree, margin: margin}
}

// pointEpsilon gives the query rect a non-zero (rtreego rejects
// zero-width rects) but geometrically negligible extent.
const pointEpsilon = 1e-9

// Query returns the atoms whose inflated bounding box contains p —
// candidates for an exact distance-to-surface check by the caller.
func (h *AtomHash) Query(p v3.Vec) []Atom {
	rect, err := rtreego.NewRect(
		rtreego.Point{p.X - pointEpsilon, p.Y - pointEpsilon, p.Z - pointEpsilon},
		[]float64{2 * pointEpsilon, 2 * pointEpsilon, 2 * pointEpsilon},
	)
	if err != nil {
		return nil
	}
	hits := h.tree.SearchIntersect(rect)
	out := make([]Atom, len(hits))
	for i, s := range hits {
		out[i] = s.(*entry).atom
	}
	return out
}

func validScalar(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
