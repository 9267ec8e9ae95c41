package svr

import "gonum.org/v1/gonum/floats/scalar"

// Epsilons used for floating point comparisons in Knuth's algorithm.
const (
	absEpsilon = 1e-12
	relEpsilon = 1e-8
)

// isEqual determines equality between two floating point numbers using a
// defaulted absolute and relative epsilon. The relevant equations are in
// Knuth §4.2.2, Eq. 36 and 37.
func isEqual(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, absEpsilon, relEpsilon)
}

// lessThan checks to see if a is strictly less than b.
func lessThan(a, b float64) bool {
	return a < b && !isEqual(a, b)
}
