// Package mc implements hash-consed marching-cubes surface extraction
// over a band-limited distance field, plus its static lookup tables.
package mc

import (
	"math"

	"github.com/sesmesh/sesmesh/grid"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

// interpEpsilon bounds the three early-exit checks in Interpolate; they
// must run in this order and precede the division, per the degenerate-edge
// numerical-safety requirement.
const interpEpsilon = 1e-5

// EdgeKey canonically names an edge of the dual grid: the edge along Axis
// that begins at lattice corner (IX,IY,IZ). Adjacent cubes sharing an
// edge compute the same EdgeKey, which is what makes hash-consing work.
type EdgeKey struct {
	Axis       uint8
	IX, IY, IZ int32
}

// Extract runs marching cubes at the given isovalue (normally 0) over the
// whole grid and returns the resulting vertex positions and triangle
// indices. Each distinct EdgeKey produces exactly one vertex.
func Extract(g *grid.Grid, iso float64) (vertices []v3.Vec, indices []uint32) {
	cache := make(map[EdgeKey]uint32)

	emit := func(key EdgeKey, p v3.Vec) uint32 {
		if idx, ok := cache[key]; ok {
			return idx
		}
		idx := uint32(len(vertices))
		vertices = append(vertices, p)
		cache[key] = idx
		return idx
	}

	nx, ny, nz := g.Nx, g.Ny, g.Nz
	for iz := 0; iz < nz-1; iz++ {
		for iy := 0; iy < ny-1; iy++ {
			for ix := 0; ix < nx-1; ix++ {
				corners := [8][3]int{
					{ix, iy, iz}, {ix + 1, iy, iz}, {ix + 1, iy + 1, iz}, {ix, iy + 1, iz},
					{ix, iy, iz + 1}, {ix + 1, iy, iz + 1}, {ix + 1, iy + 1, iz + 1}, {ix, iy + 1, iz + 1},
				}
				var values [8]float64
				for i, c := range corners {
					values[i] = g.Sample(c[0], c[1], c[2])
				}

				cubeIndex := 0
				for i := 0; i < 8; i++ {
					if values[i] < iso {
						cubeIndex |= 1 << uint(i)
					}
				}
				mask := edgeTable[cubeIndex]
				if mask == 0 {
					continue
				}

				var edgeVert [12]uint32
				for e := 0; e < 12; e++ {
					if mask&(1<<uint(e)) == 0 {
						continue
					}
					a, b := edgePair[e][0], edgePair[e][1]
					ca, cb := corners[a], corners[b]
					key := canonicalEdgeKey(ca, cb)
					p1 := g.WorldPos(ca[0], ca[1], ca[2])
					p2 := g.WorldPos(cb[0], cb[1], cb[2])
					p := Interpolate(p1, p2, values[a], values[b], iso)
					edgeVert[e] = emit(key, p)
				}

				table := triTable[cubeIndex]
				for i := 0; i+2 < len(table); i += 3 {
					e0, e1, e2 := table[i], table[i+1], table[i+2]
					if mask&(1<<uint(e0)) == 0 || mask&(1<<uint(e1)) == 0 || mask&(1<<uint(e2)) == 0 {
						// Defensive: under correct tables this never triggers.
						continue
					}
					indices = append(indices, edgeVert[e2], edgeVert[e1], edgeVert[e0])
				}
			}
		}
	}

	return vertices, indices
}

// canonicalEdgeKey derives the EdgeKey for the edge between two corners
// that differ along exactly one axis: the axis is the one that varies,
// and the lattice position is the minimum of the two endpoints along it.
func canonicalEdgeKey(a, b [3]int) EdgeKey {
	for axis := 0; axis < 3; axis++ {
		if a[axis] != b[axis] {
			ix, iy, iz := a[0], a[1], a[2]
			switch {
			case axis == 0:
				ix = minInt(a[0], b[0])
			case axis == 1:
				iy = minInt(a[1], b[1])
			default:
				iz = minInt(a[2], b[2])
			}
			return EdgeKey{Axis: uint8(axis), IX: int32(ix), IY: int32(iy), IZ: int32(iz)}
		}
	}
	// Unreachable: edgePair never names two equal corners.
	return EdgeKey{}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Interpolate finds the point along edge (p1,p2), with field values
// (v1,v2), where the field equals iso. The three early-exit checks must
// run in this order — v1, then v2, then the v1≈v2 degenerate-edge case —
// and must precede the division: swapping them changes the chosen vertex
// near doubly-degenerate corners and breaks edge-cache consistency
// between neighboring cubes.
func Interpolate(p1, p2 v3.Vec, v1, v2, iso float64) v3.Vec {
	if math.Abs(iso-v1) < interpEpsilon {
		return p1
	}
	if math.Abs(iso-v2) < interpEpsilon {
		return p2
	}
	if math.Abs(v1-v2) < interpEpsilon {
		return p1
	}
	t := (iso - v1) / (v2 - v1)
	return v3.Add(p1, v3.Scale(t, v3.Sub(p2, p1)))
}
