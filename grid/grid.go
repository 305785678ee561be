// Package grid implements a band-limited signed-distance field sampled
// on a uniform 3D lattice, built as a union of inflated atom spheres.
package grid

import (
	"errors"
	"fmt"
	"math"

	v3 "github.com/sesmesh/sesmesh/vec/v3"
	"github.com/sesmesh/sesmesh/vec/v3i"
)

// ErrGridTooLarge is returned when the requested grid dimensions would
// overflow the address range of a dense []float32 backing array.
var ErrGridTooLarge = errors.New("grid: dimension product overflows addressable range")

// maxCells bounds nx*ny*nz so the product can't overflow an int on a
// 32-bit build and so a single run can't exhaust memory silently.
const maxCells = 1<<31 - 1

// Grid is a dense, band-clamped signed-distance field over an
// axis-aligned lattice. Index layout is ix + iy*nx + iz*nx*ny (x
// fastest), matching spec's §3 DistanceGrid.
type Grid struct {
	Resolution float64
	Min        v3.Vec
	Nx, Ny, Nz int
	MaxDist    float64
	data       []float32
}

// New builds a grid covering [boundsMin-padding, boundsMax+padding],
// with max_dist = maxIndexRange*resolution. All cells start at
// +max_dist (the default value).
func New(boundsMin, boundsMax v3.Vec, resolution, padding float64, maxIndexRange int) (*Grid, error) {
	maxDist := float64(maxIndexRange) * resolution

	min := v3.AddScalar(boundsMin, -padding)
	size := v3.AddScalar(v3.Sub(boundsMax, boundsMin), 2*padding)

	nx := cellCount(size.X, resolution)
	ny := cellCount(size.Y, resolution)
	nz := cellCount(size.Z, resolution)

	if nx < 2 || ny < 2 || nz < 2 {
		nx, ny, nz = maxInt(nx, 2), maxInt(ny, 2), maxInt(nz, 2)
	}

	total := int64(nx) * int64(ny) * int64(nz)
	if total <= 0 || total > maxCells {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrGridTooLarge, nx, ny, nz)
	}

	g := &Grid{
		Resolution: resolution,
		Min:        min,
		Nx:         nx,
		Ny:         ny,
		Nz:         nz,
		MaxDist:    maxDist,
		data:       make([]float32, total),
	}
	g.Clear()
	return g, nil
}

func cellCount(extent, resolution float64) int {
	return int(math.Ceil(extent/resolution)) + 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clear resets every cell to default_value = +max_dist.
func (g *Grid) Clear() {
	dv := float32(g.MaxDist)
	for i := range g.data {
		g.data[i] = dv
	}
}

// index returns the flat offset for (ix,iy,iz), and whether it's in range.
func (g *Grid) index(ix, iy, iz int) (int, bool) {
	if ix < 0 || iy < 0 || iz < 0 || ix >= g.Nx || iy >= g.Ny || iz >= g.Nz {
		return 0, false
	}
	return ix + iy*g.Nx + iz*g.Nx*g.Ny, true
}

// At returns the clamped signed distance at cell (ix,iy,iz). Out-of-range
// indices read default_value rather than trap, per spec §4.A.
func (g *Grid) At(ix, iy, iz int) float32 {
	idx, ok := g.index(ix, iy, iz)
	if !ok {
		return float32(g.MaxDist)
	}
	return g.data[idx]
}

// WorldPos maps a cell index to its world-space coordinate.
func (g *Grid) WorldPos(ix, iy, iz int) v3.Vec {
	return v3.Vec{
		X: g.Min.X + float64(ix)*g.Resolution,
		Y: g.Min.Y + float64(iy)*g.Resolution,
		Z: g.Min.Z + float64(iz)*g.Resolution,
	}
}

// GridIndices maps a world-space point to the (floored) cell index
// containing it. The result may lie outside [0,n), callers must clip.
func (g *Grid) GridIndices(p v3.Vec) (int, int, int) {
	ix := int(math.Floor((p.X - g.Min.X) / g.Resolution))
	iy := int(math.Floor((p.Y - g.Min.Y) / g.Resolution))
	iz := int(math.Floor((p.Z - g.Min.Z) / g.Resolution))
	return ix, iy, iz
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampIdx(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddSphere unions a sphere of radius r centered at c into the field:
// every visited cell is set to min(current, clamp(|p-c|-r, -max_dist, +max_dist)).
// Only cells within r+max_dist of c are visited; the write is monotone
// non-increasing, implementing a band-limited union-of-spheres SDF.
func (g *Grid) AddSphere(c v3.Vec, r float64) {
	margin := r + g.MaxDist

	loX, loY, loZ := g.GridIndices(v3.AddScalar(c, -margin))
	hiX, hiY, hiZ := g.GridIndices(v3.AddScalar(c, margin))

	loX, hiX = clampIdx(loX, 0, g.Nx-1), clampIdx(hiX, 0, g.Nx-1)
	loY, hiY = clampIdx(loY, 0, g.Ny-1), clampIdx(hiY, 0, g.Ny-1)
	loZ, hiZ = clampIdx(loZ, 0, g.Nz-1), clampIdx(hiZ, 0, g.Nz-1)

	for iz := loZ; iz <= hiZ; iz++ {
		for iy := loY; iy <= hiY; iy++ {
			base := iy*g.Nx + iz*g.Nx*g.Ny
			for ix := loX; ix <= hiX; ix++ {
				p := g.WorldPos(ix, iy, iz)
				d := clampF(v3.Norm(v3.Sub(p, c))-r, -g.MaxDist, g.MaxDist)
				idx := ix + base
				if float32(d) < g.data[idx] {
					g.data[idx] = float32(d)
				}
			}
		}
	}
}

// Steps returns the cell-count triple for the grid.
func (g *Grid) Steps() v3i.Vec { return v3i.Vec{X: g.Nx, Y: g.Ny, Z: g.Nz} }

// Sample returns the field value at a grid-aligned corner as float64,
// clamping to +/-max_dist (infinities can't occur here but this keeps
// the contract explicit for callers that build on Sample directly).
func (g *Grid) Sample(ix, iy, iz int) float64 {
	v := float64(g.At(ix, iy, iz))
	if math.IsInf(v, 0) {
		if v > 0 {
			return g.MaxDist
		}
		return -g.MaxDist
	}
	return v
}

// Trilinear samples the field at an arbitrary world point by trilinear
// interpolation between the 8 enclosing grid corners.
func (g *Grid) Trilinear(p v3.Vec) float64 {
	fx := (p.X - g.Min.X) / g.Resolution
	fy := (p.Y - g.Min.Y) / g.Resolution
	fz := (p.Z - g.Min.Z) / g.Resolution

	ix0, iy0, iz0 := int(math.Floor(fx)), int(math.Floor(fy)), int(math.Floor(fz))
	tx, ty, tz := fx-float64(ix0), fy-float64(iy0), fz-float64(iz0)

	c000 := g.Sample(ix0, iy0, iz0)
	c100 := g.Sample(ix0+1, iy0, iz0)
	c010 := g.Sample(ix0, iy0+1, iz0)
	c110 := g.Sample(ix0+1, iy0+1, iz0)
	c001 := g.Sample(ix0, iy0, iz0+1)
	c101 := g.Sample(ix0+1, iy0, iz0+1)
	c011 := g.Sample(ix0, iy0+1, iz0+1)
	c111 := g.Sample(ix0+1, iy0+1, iz0+1)

	c00 := lerp(c000, c100, tx)
	c10 := lerp(c010, c110, tx)
	c01 := lerp(c001, c101, tx)
	c11 := lerp(c011, c111, tx)

	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)

	return lerp(c0, c1, tz)
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }
