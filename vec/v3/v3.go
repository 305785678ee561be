// Package v3 provides the float64 vector and axis-aligned box types used
// throughout the grid, marching-cubes and mesh packages.
package v3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3D vector. It is gonum's r3.Vec so grid/normal math can call
// directly into gonum.org/v1/gonum/spatial/r3 without conversion.
type Vec = r3.Vec

// Add returns a + b.
func Add(a, b Vec) Vec { return r3.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Vec) Vec { return r3.Sub(a, b) }

// Scale returns f * v.
func Scale(f float64, v Vec) Vec { return r3.Scale(f, v) }

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 { return r3.Dot(a, b) }

// Cross returns the cross product of a and b.
func Cross(a, b Vec) Vec { return r3.Cross(a, b) }

// Norm returns the Euclidean length of v.
func Norm(v Vec) float64 { return r3.Norm(v) }

// Unit returns v scaled to unit length. For the zero vector every
// component of the result is NaN.
func Unit(v Vec) Vec { return r3.Unit(v) }

// MinElem returns the component-wise minimum of a and b.
func MinElem(a, b Vec) Vec {
	return Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem returns the component-wise maximum of a and b.
func MaxElem(a, b Vec) Vec {
	return Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// AddScalar returns v with s added to every component.
func AddScalar(v Vec, s float64) Vec {
	return Vec{X: v.X + s, Y: v.Y + s, Z: v.Z + s}
}

//-----------------------------------------------------------------------------

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec
}

// NewBox3 returns the box spanning two corners, normalizing min/max per axis.
func NewBox3(a, b Vec) Box3 {
	return Box3{Min: MinElem(a, b), Max: MaxElem(a, b)}
}

// Size returns the box's extent along each axis.
func (b Box3) Size() Vec { return Sub(b.Max, b.Min) }

// Center returns the box's midpoint.
func (b Box3) Center() Vec { return Scale(0.5, Add(b.Min, b.Max)) }

// Extend grows the box to include p.
func (b Box3) Extend(p Vec) Box3 {
	return Box3{Min: MinElem(b.Min, p), Max: MaxElem(b.Max, p)}
}

// Pad returns the box expanded by d on every side.
func (b Box3) Pad(d float64) Box3 {
	return Box3{Min: AddScalar(b.Min, -d), Max: AddScalar(b.Max, d)}
}
