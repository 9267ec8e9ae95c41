package svr

import "github.com/golang/geo/r3"

// nonZeroDirection determines the first non-zero direction for a given unit
// direction, with preference order x, y, z.
func nonZeroDirection(direction r3.Vector) DirectionIndex {
	if direction.X != 0.0 {
		return XDirection
	}
	if direction.Y != 0.0 {
		return YDirection
	}
	return ZDirection
}

// inverseDirection calculates the inverse of each component of a unit
// direction. Components for a zero direction come out infinite; only the
// non-zero direction index is ever read.
func inverseDirection(direction r3.Vector) r3.Vector {
	return r3.Vector{X: 1.0 / direction.X, Y: 1.0 / direction.Y, Z: 1.0 / direction.Z}
}

// Ray is an origin with a unit direction. To avoid checking for a non-zero
// direction upon each traversal step, the inverse direction and the index of
// a non-zero direction component are precomputed on construction.
type Ray struct {
	origin       r3.Vector
	direction    r3.Vector
	invDirection r3.Vector
	nzd          DirectionIndex
}

// NewRay constructs a ray from an origin and a direction. The direction is
// normalized.
func NewRay(origin, direction r3.Vector) Ray {
	d := UnitVector(direction)
	return Ray{
		origin:       origin,
		direction:    d,
		invDirection: inverseDirection(d),
		nzd:          nonZeroDirection(d),
	}
}

// PointAt represents the function p(t) = origin + t * direction.
func (r Ray) PointAt(t float64) r3.Vector {
	return r.origin.Add(r.direction.Mul(t))
}

// timeAt returns the time of intersection for a point constructed as
// origin + direction * offset. Since the direction is unit length this
// reduces to a single multiplication against the precomputed inverse.
func (r Ray) timeAt(offset float64) float64 {
	return component(r.direction, r.nzd) * offset * component(r.invDirection, r.nzd)
}

// timeAtPoint returns the time of intersection at a point p:
// t = (p.a - origin.a) / direction.a, where a is a non-zero direction.
func (r Ray) timeAtPoint(p r3.Vector) float64 {
	return (component(p, r.nzd) - component(r.origin, r.nzd)) * component(r.invDirection, r.nzd)
}

// Origin returns the origin of the ray.
func (r Ray) Origin() r3.Vector { return r.origin }

// Direction returns the unit direction of the ray.
func (r Ray) Direction() r3.Vector { return r.direction }

// raySegment caches the portion of a ray between the current traversal time
// and the termination bound. Since the segment depends solely on time, this
// is unnecessary to recalculate for each of the two angular hit functions.
type raySegment struct {
	p2  r3.Vector
	nzd DirectionIndex
	p1  r3.Vector
	vec r3.Vector // p2 - p1
}

func newRaySegment(maxT float64, ray Ray) raySegment {
	return raySegment{p2: ray.PointAt(maxT), nzd: ray.nzd}
}

// updateAtTime updates the point P1 with the new traversal time t, and the
// segment denoted by P2 - P1.
func (s *raySegment) updateAtTime(t float64, ray Ray) {
	s.p1 = ray.PointAt(t)
	s.vec = s.p2.Sub(s.p1)
}

// intersectionTimeAt converts a 2-D segment intersection parameter back to
// a ray time. See:
// http://geomalgorithms.com/a05-_intersect-1.html#intersect2D_2Segments()
func (s *raySegment) intersectionTimeAt(intersectParameter float64, ray Ray) float64 {
	return (component(s.p1, s.nzd) + component(s.vec, s.nzd)*intersectParameter -
		component(ray.origin, s.nzd)) * component(ray.invDirection, s.nzd)
}
