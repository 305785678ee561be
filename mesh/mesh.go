// Package mesh holds the output geometry buffer and the normal engine:
// trilinear-gradient normal estimation with optional area-weighted
// smoothing.
package mesh

import (
	"runtime"
	"sync"

	"github.com/sesmesh/sesmesh/grid"
	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

// gradientEpsilon is the minimum gradient magnitude below which the
// central-difference normal falls back to a fixed up vector.
const gradientEpsilon = 1e-4

// accumEpsilon is the minimum smoothed-normal accumulator magnitude below
// which a vertex keeps its gradient-based normal instead.
const accumEpsilon = 1e-4

// fallbackNormal is used where the SDF gradient is degenerate.
var fallbackNormal = v3.Vec{X: 0, Y: 1, Z: 0}

// Mesh is the output geometry buffer: flat vertex/normal arrays and a
// triangle index array. vertices.len() == normals.len(), both multiples
// of 3; every index < vertex count.
type Mesh struct {
	Vertices []float64
	Normals  []float64
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// VertexAt returns vertex i as a Vec.
func (m *Mesh) VertexAt(i int) v3.Vec {
	return v3.Vec{X: m.Vertices[3*i], Y: m.Vertices[3*i+1], Z: m.Vertices[3*i+2]}
}

// NormalAt returns normal i as a Vec.
func (m *Mesh) NormalAt(i int) v3.Vec {
	return v3.Vec{X: m.Normals[3*i], Y: m.Normals[3*i+1], Z: m.Normals[3*i+2]}
}

// FlipNormals negates every normal component in place (used once, after
// the SES probe-inversion pass, to restore outward orientation).
func (m *Mesh) FlipNormals() {
	for i := range m.Normals {
		m.Normals[i] = -m.Normals[i]
	}
}

// normalBatchSize mirrors the teacher's evalReq batching: performance
// doesn't improve past a few hundred points per channel send.
const normalBatchSize = 100

// normalReq is one batch of gradient-normal evaluations, dispatched to
// the worker pool. Mirrors the teacher's evalReq/evalRoutines shape
// (render/march3.go): a slice of points in, a slice of results out, a
// WaitGroup to signal completion.
type normalReq struct {
	g   *grid.Grid
	p   []v3.Vec
	out []v3.Vec
	wg  *sync.WaitGroup
}

var normalProcessCh = make(chan normalReq, 100)

// startNormalWorkers ensures the pool is started exactly once per
// process, regardless of how many times Build is called.
var startNormalWorkers sync.Once

// normalRoutines starts a set of concurrent gradient-normal evaluation
// routines, one per CPU, same as the teacher's evalRoutines.
func normalRoutines() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go func() {
			for r := range normalProcessCh {
				for i, p := range r.p {
					r.out[i] = gradientNormal(r.g, p)
				}
				r.wg.Done()
			}
		}()
	}
}

// computeGradientNormals evaluates gradientNormal for every vertex,
// batching work across the worker pool. This is the embarrassingly
// parallel, read-only half of the normal engine (§2.1): each sample
// only reads the grid via Trilinear, so batches may run concurrently
// with no coordination beyond the WaitGroup.
func computeGradientNormals(g *grid.Grid, vertices []v3.Vec, normals []v3.Vec) {
	startNormalWorkers.Do(normalRoutines)

	var wg sync.WaitGroup
	req := normalReq{g: g, wg: &wg}
	req.p = make([]v3.Vec, 0, normalBatchSize)
	out := normals
	for _, p := range vertices {
		req.p = append(req.p, p)
		if len(req.p) == normalBatchSize {
			req.out = out[:normalBatchSize]
			wg.Add(1)
			normalProcessCh <- req
			out = out[normalBatchSize:]
			req.p = make([]v3.Vec, 0, normalBatchSize)
		}
	}
	if len(req.p) > 0 {
		req.out = out[:len(req.p)]
		wg.Add(1)
		normalProcessCh <- req
	}
	wg.Wait()
}

// Build assembles a Mesh from vertex positions, per-vertex gradient
// normals sampled from g, and triangle indices. If smooth is set, the
// gradient normals are refined by area-weighted face-normal smoothing.
func Build(g *grid.Grid, vertices []v3.Vec, indices []uint32, smooth bool) *Mesh {
	normals := make([]v3.Vec, len(vertices))
	computeGradientNormals(g, vertices, normals)
	if smooth {
		smoothNormals(vertices, indices, normals)
	}

	m := &Mesh{
		Vertices: make([]float64, 0, 3*len(vertices)),
		Normals:  make([]float64, 0, 3*len(vertices)),
		Indices:  indices,
	}
	for i, p := range vertices {
		m.Vertices = append(m.Vertices, p.X, p.Y, p.Z)
		n := normals[i]
		m.Normals = append(m.Normals, n.X, n.Y, n.Z)
	}
	return m
}

// gradientNormal estimates the outward surface normal at p as the
// central-difference gradient of the trilinearly sampled field, with
// step h = grid resolution. Degenerate (near-zero) gradients fall back
// to a fixed up vector.
func gradientNormal(g *grid.Grid, p v3.Vec) v3.Vec {
	h := g.Resolution
	dx := g.Trilinear(v3.Vec{X: p.X + h, Y: p.Y, Z: p.Z}) - g.Trilinear(v3.Vec{X: p.X - h, Y: p.Y, Z: p.Z})
	dy := g.Trilinear(v3.Vec{X: p.X, Y: p.Y + h, Z: p.Z}) - g.Trilinear(v3.Vec{X: p.X, Y: p.Y - h, Z: p.Z})
	dz := g.Trilinear(v3.Vec{X: p.X, Y: p.Y, Z: p.Z + h}) - g.Trilinear(v3.Vec{X: p.X, Y: p.Y, Z: p.Z - h})

	n := v3.Vec{X: dx, Y: dy, Z: dz}
	if v3.Norm(n) < gradientEpsilon {
		return fallbackNormal
	}
	return v3.Unit(n)
}

// smoothNormals replaces each vertex normal with the unit of the sum of
// unnormalized (area-weighted) face normals of its incident triangles.
// Face normals must not be renormalized before summing — that's what
// gives larger triangles more influence. Vertices whose accumulator
// stays near zero keep their gradient-based normal.
func smoothNormals(vertices []v3.Vec, indices []uint32, normals []v3.Vec) {
	accum := make([]v3.Vec, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]
		faceNormal := v3.Cross(v3.Sub(v1, v0), v3.Sub(v2, v0))
		accum[i0] = v3.Add(accum[i0], faceNormal)
		accum[i1] = v3.Add(accum[i1], faceNormal)
		accum[i2] = v3.Add(accum[i2], faceNormal)
	}
	for i, a := range accum {
		if v3.Norm(a) < accumEpsilon {
			continue
		}
		normals[i] = v3.Unit(a)
	}
}

// IsFallback reports whether n is exactly the (0,1,0) fallback normal,
// the one case §8's unit-length invariant is checked exactly rather
// than to tolerance.
func IsFallback(n v3.Vec) bool {
	return n.X == 0 && n.Y == 1 && n.Z == 0
}
