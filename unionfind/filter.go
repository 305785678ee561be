package unionfind

import (
	"github.com/sesmesh/sesmesh/atomhash"
	"github.com/sesmesh/sesmesh/mesh"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

// anchorToleranceFactor is the empirical 1.5*probe_radius multiplier used to
// decide whether a component touches the molecular surface. It must be
// used verbatim: it's tuned to accept the outer sheet while rejecting
// detached interior shells created by probe inversion.
const anchorToleranceFactor = 1.5

// FilterComponents unions triangle vertices into connected components,
// then drops every component whose representative vertex is not within
// anchorToleranceFactor*probeRadius of some atom's surface. If the mesh
// has exactly one component it is returned unchanged. atoms is the
// original atom set (not the probe-inflated one); hash may be nil, in
// which case the check falls back to a linear scan over atoms.
func FilterComponents(m *mesh.Mesh, atoms []atomhash.Atom, hash *atomhash.AtomHash, probeRadius float64) *mesh.Mesh {
	n := m.VertexCount()
	if n == 0 {
		return m
	}

	forest := New(n)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := int32(m.Indices[t]), int32(m.Indices[t+1]), int32(m.Indices[t+2])
		forest.Union(i0, i1)
		forest.Union(i1, i2)
	}

	// Assign contiguous component ids and pick one representative vertex
	// per component.
	rootToComponent := make(map[int32]int)
	representative := make([]int, 0)
	componentOf := make([]int, n)
	for v := 0; v < n; v++ {
		root := forest.Find(int32(v))
		id, ok := rootToComponent[root]
		if !ok {
			id = len(representative)
			rootToComponent[root] = id
			representative = append(representative, v)
		}
		componentOf[v] = id
	}

	if len(representative) == 1 {
		return m
	}

	valid := make([]bool, len(representative))
	tol := anchorToleranceFactor * probeRadius
	for id, v := range representative {
		valid[id] = anchorsToAtom(m.VertexAt(v), atoms, hash, tol)
	}

	return rebuild(m, componentOf, valid)
}

// anchorsToAtom reports whether some atom exists with ||v-c|| - r < tol.
func anchorsToAtom(v v3.Vec, atoms []atomhash.Atom, hash *atomhash.AtomHash, tol float64) bool {
	candidates := atoms
	if hash != nil {
		candidates = hash.Query(v)
	}
	for _, a := range candidates {
		if v3.Norm(v3.Sub(v, a.Center))-a.Radius < tol {
			return true
		}
	}
	return false
}

// rebuild drops triangles in invalid components and remaps surviving
// vertex indices to a dense range, carrying normals along.
func rebuild(m *mesh.Mesh, componentOf []int, valid []bool) *mesh.Mesh {
	remap := make([]int32, m.VertexCount())
	for i := range remap {
		remap[i] = -1
	}

	out := &mesh.Mesh{}
	keep := func(v int) int32 {
		if remap[v] >= 0 {
			return remap[v]
		}
		idx := int32(len(out.Vertices) / 3)
		p := m.VertexAt(v)
		nrm := m.NormalAt(v)
		out.Vertices = append(out.Vertices, p.X, p.Y, p.Z)
		out.Normals = append(out.Normals, nrm.X, nrm.Y, nrm.Z)
		remap[v] = idx
		return idx
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		if !valid[componentOf[i0]] {
			continue
		}
		out.Indices = append(out.Indices, uint32(keep(i0)), uint32(keep(i1)), uint32(keep(i2)))
	}
	return out
}
