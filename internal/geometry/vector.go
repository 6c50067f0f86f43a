package geometry

import "math"

// Vector is a point on or tangent to the unit sphere
type Vector struct {
	X, Y, Z float64
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vector) Scale(k float64) Vector { return Vector{v.X * k, v.Y * k, v.Z * k} }

func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - o.Y*v.Z,
		Y: v.Z*o.X - o.Z*v.X,
		Z: v.X*o.Y - o.X*v.Y,
	}
}

// Norm returns the Euclidean length of the vector
func (v Vector) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector with the same direction.
// The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	norm := v.Norm()
	if norm == 0 {
		return Vector{}
	}
	return v.Scale(1 / norm)
}

// IsZero reports whether all components are exactly zero
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
