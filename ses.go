// Package sesmesh computes a triangulated Solvent-Accessible Surface
// (SAS) or Solvent-Excluded Surface (SES) mesh for a molecule given
// atomic centers and van der Waals radii.
//
// The pipeline: a band-limited signed-distance grid is built as a union
// of atom spheres inflated by the probe radius (the SAS); marching
// cubes extracts it at isovalue zero. For the SES, the grid is cleared
// and rebuilt as a union of probe spheres centered on every SAS vertex,
// re-extracted, filtered to drop interior cavities not anchored to any
// atom, and its normals flipped back to face outward.
package sesmesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/sesmesh/sesmesh/atomhash"
	"github.com/sesmesh/sesmesh/grid"
	"github.com/sesmesh/sesmesh/mc"
	"github.com/sesmesh/sesmesh/mesh"
	"github.com/sesmesh/sesmesh/unionfind"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

// Sentinel errors for ComputeSES's input validation, per spec §6.
var (
	ErrInvalidCenterLength = errors.New("sesmesh: centers length is not a multiple of 3")
	ErrRadiiMismatch       = errors.New("sesmesh: radii length does not match atom count")
)

// ErrGridTooLarge re-exports grid.ErrGridTooLarge so callers can use
// errors.Is against a single package without importing grid directly.
var ErrGridTooLarge = grid.ErrGridTooLarge

// Atom is an immutable atomic center and van der Waals radius, in world
// units. Atoms are never mutated after construction.
type Atom struct {
	Center v3.Vec
	Radius float64
}

// sasIndexRange is the band radius (in cells) used for both the SAS and
// SES marching-cubes grids.
const sasIndexRange = 2

// ComputeSES computes the SAS or SES mesh for a set of atoms.
//
// centers is XYZ-interleaved, length 3N; radii has length N, each > 0;
// probeRadius and resolution are > 0, world units (a typical water
// probe is 1.4; a typical resolution is 0.3-0.6). returnSAS selects the
// accessible-surface output instead of the excluded-surface one;
// smoothNormals selects area-weighted normal smoothing over the raw
// SDF gradient. N=0 returns an empty mesh.
func ComputeSES(centers, radii []float64, probeRadius, resolution float64, returnSAS, smoothNormals bool) (*mesh.Mesh, error) {
	if len(centers)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCenterLength, len(centers))
	}
	n := len(centers) / 3
	if len(radii) != n {
		return nil, fmt.Errorf("%w: %d centers, %d radii", ErrRadiiMismatch, n, len(radii))
	}
	if n == 0 {
		return &mesh.Mesh{}, nil
	}

	atoms := make([]Atom, n)
	xs, ys, zs := make([]float64, n), make([]float64, n), make([]float64, n)
	maxRadius := radii[0]
	for i := 0; i < n; i++ {
		c := v3.Vec{X: centers[3*i], Y: centers[3*i+1], Z: centers[3*i+2]}
		atoms[i] = Atom{Center: c, Radius: radii[i]}
		xs[i], ys[i], zs[i] = c.X, c.Y, c.Z
		if radii[i] > maxRadius {
			maxRadius = radii[i]
		}
	}
	// Per-axis min/max reduction via gonum/floats, rather than a
	// hand-rolled running MinElem/MaxElem over Vec triples.
	boundsMin := v3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	boundsMax := v3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}

	padding := 2*probeRadius + maxRadius + resolution
	g, err := grid.New(boundsMin, boundsMax, resolution, padding, sasIndexRange)
	if err != nil {
		return nil, err
	}

	for _, a := range atoms {
		g.AddSphere(a.Center, a.Radius+probeRadius)
	}
	sasVerts, sasIndices := mc.Extract(g, 0)
	sas := mesh.Build(g, sasVerts, sasIndices, smoothNormals)

	if returnSAS || sas.VertexCount() == 0 {
		return sas, nil
	}

	g.Clear()
	for _, v := range sasVerts {
		g.AddSphere(v, probeRadius)
	}
	sesVerts, sesIndices := mc.Extract(g, 0)
	ses := mesh.Build(g, sesVerts, sesIndices, smoothNormals)

	hashAtoms := make([]atomhash.Atom, n)
	for i, a := range atoms {
		hashAtoms[i] = atomhash.Atom{Center: a.Center, Radius: a.Radius}
	}
	hash := atomhash.New(hashAtoms, 1.5*probeRadius)

	ses = unionfind.FilterComponents(ses, hashAtoms, hash, probeRadius)
	ses.FlipNormals()

	return ses, nil
}
