package sesmesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sesmesh/sesmesh/unionfind"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

func TestS1_SingleAtomSAS(t *testing.T) {
	m, err := ComputeSES([]float64{0, 0, 0}, []float64{1.5}, 1.4, 0.4, true, false)
	require.NoError(t, err)
	require.Greater(t, m.VertexCount(), 200)
	require.True(t, m.TriangleCount() > 0)

	for i := 0; i < m.VertexCount(); i++ {
		d := v3.Norm(m.VertexAt(i))
		require.InDelta(t, 2.9, d, 0.4)
	}
}

func TestS2_SingleAtomSES(t *testing.T) {
	m, err := ComputeSES([]float64{0, 0, 0}, []float64{1.5}, 1.4, 0.4, false, false)
	require.NoError(t, err)
	require.Greater(t, m.VertexCount(), 0)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.VertexAt(i)
		d := v3.Norm(v)
		require.InDelta(t, 1.5, d, 0.4)

		n := m.NormalAt(i)
		require.Greater(t, v3.Dot(n, v3.Unit(v)), 0.0)
	}
}

func TestS3_TwoSeparatedAtomsSES(t *testing.T) {
	s2, err := ComputeSES([]float64{0, 0, 0}, []float64{1.5}, 1.4, 0.5, false, false)
	require.NoError(t, err)

	m, err := ComputeSES([]float64{0, 0, 0, 10, 0, 0}, []float64{1.5, 1.5}, 1.4, 0.5, false, false)
	require.NoError(t, err)

	require.InDelta(t, 2*s2.VertexCount(), m.VertexCount(), float64(s2.VertexCount())*0.25)
}

func TestS4_EmptyInput(t *testing.T) {
	m, err := ComputeSES(nil, nil, 1.4, 0.4, false, false)
	require.NoError(t, err)
	require.Empty(t, m.Vertices)
	require.Empty(t, m.Normals)
	require.Empty(t, m.Indices)
}

func TestS5_RadiiMismatch(t *testing.T) {
	_, err := ComputeSES([]float64{0, 0, 0}, []float64{1.5, 1.5}, 1.4, 0.4, false, false)
	require.ErrorIs(t, err, ErrRadiiMismatch)
}

func TestS6_FusedAtomsSingleComponent(t *testing.T) {
	m, err := ComputeSES([]float64{0, 0, 0, 2.0, 0, 0}, []float64{1.5, 1.5}, 1.4, 0.5, false, false)
	require.NoError(t, err)
	require.Greater(t, m.VertexCount(), 0)

	f := unionfind.New(m.VertexCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		f.Union(int32(m.Indices[i]), int32(m.Indices[i+1]))
		f.Union(int32(m.Indices[i+1]), int32(m.Indices[i+2]))
	}
	roots := make(map[int32]bool)
	for v := 0; v < m.VertexCount(); v++ {
		roots[f.Find(int32(v))] = true
	}
	require.Len(t, roots, 1)
}

func TestInvalidCenterLength(t *testing.T) {
	_, err := ComputeSES([]float64{0, 0}, []float64{1.5}, 1.4, 0.4, false, false)
	require.ErrorIs(t, err, ErrInvalidCenterLength)
}

// Three atoms packed into a tight triangle enclose a pocket too small for
// the probe to enter; the component filter must leave no interior shell,
// so every surviving vertex is anchored within probe reach of an atom.
func TestS9_ProbePocketRejection(t *testing.T) {
	centers := []float64{
		0, 0, 0,
		1.8, 0, 0,
		0.9, 1.55, 0,
	}
	radii := []float64{1.0, 1.0, 1.0}

	m, err := ComputeSES(centers, radii, 1.4, 0.3, false, false)
	require.NoError(t, err)
	require.Greater(t, m.VertexCount(), 0)
	require.Equal(t, 0, len(m.Indices)%3)

	atoms := [][]float64{{0, 0, 0}, {1.8, 0, 0}, {0.9, 1.55, 0}}
	tol := 1.5*1.4 + 1e-6
	for i := 0; i < m.VertexCount(); i++ {
		v := m.VertexAt(i)
		anchored := false
		for j, c := range atoms {
			d := v3.Norm(v3.Sub(v, v3.Vec{X: c[0], Y: c[1], Z: c[2]})) - radii[j]
			if d < tol {
				anchored = true
				break
			}
		}
		require.True(t, anchored, "vertex %d not anchored to any atom: interior shell survived filtering", i)
	}
}
