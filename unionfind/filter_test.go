package unionfind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sesmesh/sesmesh/atomhash"
	"github.com/sesmesh/sesmesh/mesh"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

// twoTriangleMesh builds two disjoint unit triangles: one anchored near
// the origin atom, one floating far away with no atom nearby.
func twoTriangleMesh() *mesh.Mesh {
	m := &mesh.Mesh{}
	verts := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 100, Y: 0, Z: 0}, {X: 101, Y: 0, Z: 0}, {X: 100, Y: 1, Z: 0},
	}
	for _, v := range verts {
		m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
		m.Normals = append(m.Normals, 0, 1, 0)
	}
	m.Indices = []uint32{0, 1, 2, 3, 4, 5}
	return m
}

func TestFilterDropsUnanchoredComponent(t *testing.T) {
	m := twoTriangleMesh()
	atoms := []atomhash.Atom{{Center: v3.Vec{X: 0, Y: 0, Z: 0}, Radius: 0.1}}

	out := FilterComponents(m, atoms, nil, 1.4)

	require.Equal(t, 3, out.VertexCount())
	require.Equal(t, 1, out.TriangleCount())
	require.Equal(t, 0.0, out.VertexAt(0).X)
}

func TestFilterKeepsBothAnchoredComponents(t *testing.T) {
	m := twoTriangleMesh()
	atoms := []atomhash.Atom{
		{Center: v3.Vec{X: 0, Y: 0, Z: 0}, Radius: 0.1},
		{Center: v3.Vec{X: 100, Y: 0, Z: 0}, Radius: 0.1},
	}

	out := FilterComponents(m, atoms, nil, 1.4)

	require.Equal(t, 6, out.VertexCount())
	require.Equal(t, 2, out.TriangleCount())
}

func TestFilterSingleComponentReturnsUnchanged(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float64{0, 1, 0, 0, 1, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2},
	}
	out := FilterComponents(m, nil, nil, 1.4)
	require.Same(t, m, out)
}
