package svr

import "github.com/golang/geo/r3"

// DirectionIndex selects a component of an r3.Vector. For example,
// component(v, XDirection) returns the x-direction.
type DirectionIndex int

const (
	XDirection DirectionIndex = iota
	YDirection
	ZDirection
)

func component(v r3.Vector, i DirectionIndex) float64 {
	switch i {
	case XDirection:
		return v.X
	case YDirection:
		return v.Y
	default:
		return v.Z
	}
}

// UnitVector returns a unit-length version of the vector.
// If the vector is zero, it returns the input unchanged.
func UnitVector(v r3.Vector) r3.Vector {
	if v.Norm2() == 0 {
		return v
	}
	return v.Normalize()
}
