package svr

import (
	"math"

	"github.com/golang/geo/r3"
)

// SphereBound represents a boundary for the sphere. It is used to determine
// the minimum and maximum boundaries for a sectored traversal.
type SphereBound struct {
	Radial    float64
	Polar     float64
	Azimuthal float64
}

// LineSegment represents a point of intersection between the line
// corresponding to a voxel boundary and a given radial voxel, in a single
// angular plane.
type LineSegment struct {
	P1 float64
	P2 float64
}

// TrigonometricValues holds the trigonometric values for a given radian.
type TrigonometricValues struct {
	Cosine float64
	Sine   float64
}

// initializeDeltaRadiiSquared calculates delta_radius^2 for
// numRadialVoxels + 1 entries. The radius begins at maxRadius and subtracts
// deltaRadius with each index. For example,
//
// Given: numRadialVoxels = 3, maxRadius = 6, deltaRadius = 2
// Returns: { 6*6, 4*4, 2*2, 0*0 }
func initializeDeltaRadiiSquared(numRadialVoxels int, maxRadius, deltaRadius float64) []float64 {
	deltaRadiiSquared := make([]float64, numRadialVoxels+1)
	currentDeltaRadius := maxRadius
	for i := range deltaRadiiSquared {
		deltaRadiiSquared[i] = currentDeltaRadius * currentDeltaRadius
		currentDeltaRadius -= deltaRadius
	}
	return deltaRadiiSquared
}

// initializeTrigonometricValues returns the trigonometric values for
// numVoxels + 1 boundaries, beginning at minBound and incrementing by delta.
func initializeTrigonometricValues(numVoxels int, minBound, delta float64) []TrigonometricValues {
	trigValues := make([]TrigonometricValues, numVoxels+1)
	radians := minBound
	for i := range trigValues {
		trigValues[i] = TrigonometricValues{Cosine: math.Cos(radians), Sine: math.Sin(radians)}
		radians += delta
	}
	return trigValues
}

// initializeMaxRadiusLineSegments returns the maximum radius line segments
// for the given trigonometric values:
// P1 = maxRadius * cosine + center.X
// P2 = maxRadius * sine + center2, where center2 is the in-plane second axis.
func initializeMaxRadiusLineSegments(maxRadius float64, centerX, center2 float64,
	trigValues []TrigonometricValues) []LineSegment {
	lineSegments := make([]LineSegment, len(trigValues))
	for i, tv := range trigValues {
		lineSegments[i] = LineSegment{
			P1: maxRadius*tv.Cosine + centerX,
			P2: maxRadius*tv.Sine + center2,
		}
	}
	return lineSegments
}

// initializeCenterToPolarPMaxVectors returns sphere center - {P1, P2, 0}
// for each polar boundary segment.
func initializeCenterToPolarPMaxVectors(lineSegments []LineSegment, center r3.Vector) []r3.Vector {
	vectors := make([]r3.Vector, len(lineSegments))
	for i, points := range lineSegments {
		vectors[i] = center.Sub(r3.Vector{X: points.P1, Y: points.P2, Z: 0.0})
	}
	return vectors
}

// initializeCenterToAzimuthalPMaxVectors returns sphere center - {P1, 0, P2}
// for each azimuthal boundary segment.
func initializeCenterToAzimuthalPMaxVectors(lineSegments []LineSegment, center r3.Vector) []r3.Vector {
	vectors := make([]r3.Vector, len(lineSegments))
	for i, points := range lineSegments {
		vectors[i] = center.Sub(r3.Vector{X: points.P1, Y: 0.0, Z: points.P2})
	}
	return vectors
}

// SphericalVoxelGrid represents a spherical voxel grid used for ray casting.
// The bounds of the grid are determined by minBound and maxBound. The deltas
// are then determined by (maxBound.X - minBound.X) / numXSections. To
// minimize calculation duplication, many calculations are completed once
// here and used each time a ray traverses the grid.
//
// Both polar and azimuthal sections are represented within bounds [0, 2pi].
type SphericalVoxelGrid struct {
	numRadialSections    int
	numPolarSections     int
	numAzimuthalSections int

	sphereCenter r3.Vector

	sphereMaxBoundPolar     float64
	sphereMinBoundPolar     float64
	sphereMaxBoundAzimuthal float64
	sphereMinBoundAzimuthal float64

	sphereMaxRadius   float64
	sphereMaxDiameter float64

	deltaRadius float64
	deltaTheta  float64
	deltaPhi    float64

	deltaRadiiSq []float64

	polarTrigValues     []TrigonometricValues
	azimuthalTrigValues []TrigonometricValues

	pMaxPolar     []LineSegment
	pMaxAzimuthal []LineSegment

	centerToPolarBoundVectors     []r3.Vector
	centerToAzimuthalBoundVectors []r3.Vector
}

// NewSphericalVoxelGrid precomputes the grid geometry. The grid is immutable
// after construction and may be shared between concurrent traversals.
func NewSphericalVoxelGrid(minBound, maxBound SphereBound,
	numRadialSections, numPolarSections, numAzimuthalSections int,
	sphereCenter r3.Vector) *SphericalVoxelGrid {
	g := &SphericalVoxelGrid{
		numRadialSections:       numRadialSections,
		numPolarSections:        numPolarSections,
		numAzimuthalSections:    numAzimuthalSections,
		sphereCenter:            sphereCenter,
		sphereMaxBoundPolar:     maxBound.Polar,
		sphereMinBoundPolar:     minBound.Polar,
		sphereMaxBoundAzimuthal: maxBound.Azimuthal,
		sphereMinBoundAzimuthal: minBound.Azimuthal,
		sphereMaxRadius:         maxBound.Radial,
		sphereMaxDiameter:       maxBound.Radial * 2.0,
		deltaRadius:             (maxBound.Radial - minBound.Radial) / float64(numRadialSections),
		deltaTheta:              (maxBound.Polar - minBound.Polar) / float64(numPolarSections),
		deltaPhi:                (maxBound.Azimuthal - minBound.Azimuthal) / float64(numAzimuthalSections),
	}
	g.deltaRadiiSq = initializeDeltaRadiiSquared(numRadialSections,
		maxBound.Radial-minBound.Radial, g.deltaRadius)
	g.polarTrigValues = initializeTrigonometricValues(numPolarSections, minBound.Polar, g.deltaTheta)
	g.azimuthalTrigValues = initializeTrigonometricValues(numAzimuthalSections, minBound.Azimuthal, g.deltaPhi)
	g.pMaxPolar = initializeMaxRadiusLineSegments(g.sphereMaxRadius,
		sphereCenter.X, sphereCenter.Y, g.polarTrigValues)
	g.pMaxAzimuthal = initializeMaxRadiusLineSegments(g.sphereMaxRadius,
		sphereCenter.X, sphereCenter.Z, g.azimuthalTrigValues)
	g.centerToPolarBoundVectors = initializeCenterToPolarPMaxVectors(g.pMaxPolar, sphereCenter)
	g.centerToAzimuthalBoundVectors = initializeCenterToAzimuthalPMaxVectors(g.pMaxAzimuthal, sphereCenter)

	DebugLog("Created spherical voxel grid: %d radial, %d polar, %d azimuthal sections, center %+v",
		numRadialSections, numPolarSections, numAzimuthalSections, sphereCenter)
	return g
}

func (g *SphericalVoxelGrid) NumRadialSections() int { return g.numRadialSections }

func (g *SphericalVoxelGrid) NumPolarSections() int { return g.numPolarSections }

func (g *SphericalVoxelGrid) NumAzimuthalSections() int { return g.numAzimuthalSections }

func (g *SphericalVoxelGrid) SphereMaxBoundPolar() float64 { return g.sphereMaxBoundPolar }

func (g *SphericalVoxelGrid) SphereMinBoundPolar() float64 { return g.sphereMinBoundPolar }

func (g *SphericalVoxelGrid) SphereMaxBoundAzi() float64 { return g.sphereMaxBoundAzimuthal }

func (g *SphericalVoxelGrid) SphereMinBoundAzi() float64 { return g.sphereMinBoundAzimuthal }

func (g *SphericalVoxelGrid) SphereMaxRadius() float64 { return g.sphereMaxRadius }

func (g *SphericalVoxelGrid) SphereMaxDiameter() float64 { return g.sphereMaxDiameter }

func (g *SphericalVoxelGrid) SphereCenter() r3.Vector { return g.sphereCenter }

func (g *SphericalVoxelGrid) DeltaRadius() float64 { return g.deltaRadius }

func (g *SphericalVoxelGrid) DeltaTheta() float64 { return g.deltaTheta }

func (g *SphericalVoxelGrid) DeltaPhi() float64 { return g.deltaPhi }

// DeltaRadiiSquared returns the squared radius of the i-th radial boundary,
// where index 0 is the outermost sphere and the index increases inward.
func (g *SphericalVoxelGrid) DeltaRadiiSquared(i int) float64 { return g.deltaRadiiSq[i] }

func (g *SphericalVoxelGrid) PMaxPolar(i int) LineSegment { return g.pMaxPolar[i] }

func (g *SphericalVoxelGrid) PMaxPolarAll() []LineSegment { return g.pMaxPolar }

func (g *SphericalVoxelGrid) CenterToPolarBound(i int) r3.Vector {
	return g.centerToPolarBoundVectors[i]
}

func (g *SphericalVoxelGrid) PMaxAzimuthal(i int) LineSegment { return g.pMaxAzimuthal[i] }

func (g *SphericalVoxelGrid) PMaxAzimuthalAll() []LineSegment { return g.pMaxAzimuthal }

func (g *SphericalVoxelGrid) CenterToAzimuthalBound(i int) r3.Vector {
	return g.centerToAzimuthalBoundVectors[i]
}

func (g *SphericalVoxelGrid) PolarTrigValues() []TrigonometricValues { return g.polarTrigValues }

func (g *SphericalVoxelGrid) AzimuthalTrigValues() []TrigonometricValues {
	return g.azimuthalTrigValues
}
