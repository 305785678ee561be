package mc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sesmesh/sesmesh/grid"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

func sphereGrid(t *testing.T, radius, resolution float64) *grid.Grid {
	t.Helper()
	r := radius + 1
	g, err := grid.New(v3.Vec{X: -r, Y: -r, Z: -r}, v3.Vec{X: r, Y: r, Z: r}, resolution, resolution*2, 2)
	require.NoError(t, err)
	g.AddSphere(v3.Vec{}, radius)
	return g
}

func TestExtractSingleSphereIsWatertight(t *testing.T) {
	g := sphereGrid(t, 1.5, 0.3)
	verts, indices := Extract(g, 0)

	require.NotEmpty(t, verts)
	require.True(t, len(indices)%3 == 0)

	for _, idx := range indices {
		require.Less(t, int(idx), len(verts))
	}
}

func TestExtractEdgeHashConsing(t *testing.T) {
	g := sphereGrid(t, 1.2, 0.35)
	verts, indices := Extract(g, 0)
	require.NotEmpty(t, verts)

	// Every crossed lattice edge produces exactly one vertex, however many
	// cubes share it: the vertex count equals the number of lattice edges
	// whose endpoints lie on opposite sides of the isovalue.
	crossings := 0
	for iz := 0; iz < g.Nz; iz++ {
		for iy := 0; iy < g.Ny; iy++ {
			for ix := 0; ix < g.Nx; ix++ {
				inside := g.Sample(ix, iy, iz) < 0
				for _, d := range [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
					jx, jy, jz := ix+d[0], iy+d[1], iz+d[2]
					if jx >= g.Nx || jy >= g.Ny || jz >= g.Nz {
						continue
					}
					if (g.Sample(jx, jy, jz) < 0) != inside {
						crossings++
					}
				}
			}
		}
	}
	require.Equal(t, crossings, len(verts))

	// Re-running extraction reproduces the same counts.
	verts2, indices2 := Extract(g, 0)
	require.Equal(t, len(verts), len(verts2))
	require.Equal(t, len(indices), len(indices2))
}

func TestInterpolateDegeneracyOrder(t *testing.T) {
	p1 := v3.Vec{X: 0, Y: 0, Z: 0}
	p2 := v3.Vec{X: 1, Y: 0, Z: 0}

	// iso == v1: returns p1 regardless of v2.
	require.Equal(t, p1, Interpolate(p1, p2, 0, 5, 0))
	// iso == v2, but not v1: returns p2.
	require.Equal(t, p2, Interpolate(p1, p2, 5, 0, 0))
	// v1 == v2 (degenerate edge), iso not close to either: returns p1.
	require.Equal(t, p1, Interpolate(p1, p2, 3, 3, 0))
	// Ordinary interpolation.
	mid := Interpolate(p1, p2, 0, 1, 0.5)
	require.InDelta(t, 0.5, mid.X, 1e-9)
}

func TestExtractSphereVerticesNearRadius(t *testing.T) {
	radius, res := 1.5, 0.25
	g := sphereGrid(t, radius, res)
	verts, _ := Extract(g, 0)
	require.NotEmpty(t, verts)
	for _, v := range verts {
		d := v3.Norm(v)
		require.InDelta(t, radius, d, res*2)
	}
}
