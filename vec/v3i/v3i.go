// Package v3i provides the integer vector type used for grid cell
// indices, mirroring vec/v3's float counterpart.
package v3i

// Vec is an integer 3-tuple, used for cell counts and cell indices.
type Vec struct {
	X, Y, Z int
}

// Mul3 returns X*Y*Z, the number of cells a grid of this size spans.
func (v Vec) Mul3() int { return v.X * v.Y * v.Z }
