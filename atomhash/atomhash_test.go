package atomhash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

func TestQueryFindsNearbyAtom(t *testing.T) {
	atoms := []Atom{
		{Center: v3.Vec{X: 0, Y: 0, Z: 0}, Radius: 1.5},
		{Center: v3.Vec{X: 10, Y: 0, Z: 0}, Radius: 1.5},
	}
	h := New(atoms, 1.5*1.4)
	require.NotNil(t, h)

	hits := h.Query(v3.Vec{X: 1.4, Y: 0, Z: 0})
	require.NotEmpty(t, hits)

	found := false
	for _, a := range hits {
		if a.Center == atoms[0].Center {
			found = true
		}
	}
	require.True(t, found)
}

func TestQueryExcludesDistantAtom(t *testing.T) {
	atoms := []Atom{
		{Center: v3.Vec{X: 0, Y: 0, Z: 0}, Radius: 1.0},
		{Center: v3.Vec{X: 100, Y: 0, Z: 0}, Radius: 1.0},
	}
	h := New(atoms, 1.0)
	require.NotNil(t, h)

	hits := h.Query(v3.Vec{X: 0.5, Y: 0, Z: 0})
	for _, a := range hits {
		require.NotEqual(t, atoms[1].Center, a.Center)
	}
}

func TestNewReturnsNilOnNonFiniteMargin(t *testing.T) {
	atoms := []Atom{{Center: v3.Vec{}, Radius: 1.0}}
	require.Nil(t, New(atoms, math.Inf(1)))
	require.Nil(t, New(atoms, 0))
	require.Nil(t, New(atoms, -1))
}
