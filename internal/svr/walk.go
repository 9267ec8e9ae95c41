package svr

import (
	"math"

	"github.com/golang/geo/r3"
)

// SphericalVoxel is a single record of the traversal output. Radial is in
// [1, N_r] with 1 being the outermost shell; Polar and Azimuthal are in
// [0, N_theta) and [0, N_phi). EnterT and ExitT are the parametric times at
// which the ray enters and leaves the voxel, except that the last record's
// ExitT is the time the ray leaves the sphere, also when the walk stops
// earlier at maxT or at an angular bound.
type SphericalVoxel struct {
	Radial    int     `json:"radial"`
	Polar     int     `json:"polar"`
	Azimuthal int     `json:"azimuthal"`
	EnterT    float64 `json:"enterT"`
	ExitT     float64 `json:"exitT"`
}

// voxelIntersectionType is the voxel(s) with the minimum tMax value for a
// given traversal step.
type voxelIntersectionType int

const (
	radialOnly voxelIntersectionType = iota + 1
	polarOnly
	azimuthalOnly
	radialPolar
	radialAzimuthal
	polarAzimuthal
	radialPolarAzimuthal
)

// wrap reduces a possibly-negative voxel index modulo n into [0, n).
func wrap(x, n int) int {
	return ((x % n) + n) % n
}

// calculateAngularVoxelIDFromPoints locates the angular voxel containing the
// in-plane point (p1, p2). A point lies between two angular voxel boundaries
// iff the angle between it and the boundary intersection points along the
// circle of max radius is obtuse. Equality represents the case when the
// point lies on a boundary. Returns len(angularMax) + 1 when no section
// contains the point.
func calculateAngularVoxelIDFromPoints(angularMax []LineSegment, p1, p2 float64) int {
	i := 0
	for j := 1; j < len(angularMax); i, j = i+1, j+1 {
		xDiff := angularMax[i].P1 - angularMax[j].P1
		yDiff := angularMax[i].P2 - angularMax[j].P2
		xP1Diff := angularMax[i].P1 - p1
		xP2Diff := angularMax[i].P2 - p2
		yP1Diff := angularMax[j].P1 - p1
		yP2Diff := angularMax[j].P2 - p2
		d1d2 := xP1Diff*xP1Diff + xP2Diff*xP2Diff + yP1Diff*yP1Diff + yP2Diff*yP2Diff
		d3 := xDiff*xDiff + yDiff*yDiff
		if d1d2 < d3 || isEqual(d1d2, d3) {
			return i
		}
	}
	return len(angularMax) + 1
}

// initializeAngularVoxelID initializes an angular voxel ID. For polar
// initialization, the *2 arguments represent the y-plane; for azimuthal
// initialization, the z-plane. If the number of sections is 1 or the squared
// in-plane distance of the raySphere vector is zero, the ID is 0. Otherwise,
// the ray-sphere vector is projected onto the circle given by entryRadius
// and located against the boundary segment table.
func initializeAngularVoxelID(grid *SphericalVoxelGrid, numberOfSections int,
	raySphere r3.Vector, angularMax []LineSegment,
	raySphere2, gridSphere2, entryRadius float64) int {
	if numberOfSections == 1 {
		return 0
	}
	sed := raySphere.X*raySphere.X + raySphere2*raySphere2
	if sed == 0.0 {
		return 0
	}
	r := entryRadius / math.Sqrt(sed)
	p1 := grid.sphereCenter.X - raySphere.X*r
	p2 := gridSphere2 - raySphere2*r
	return calculateAngularVoxelIDFromPoints(angularMax, p1, p2)
}

// inBoundsPolar reports whether the step taken from the current polar voxel
// remains within the grid's polar bounds. A grid spanning the full circle is
// always in bounds.
func inBoundsPolar(grid *SphericalVoxelGrid, step, polVoxel int) bool {
	if !lessThan(grid.sphereMaxBoundPolar-grid.sphereMinBoundPolar, 2*math.Pi) {
		return true
	}
	radian := float64(polVoxel+1) * grid.deltaTheta
	angval := radian - math.Abs(float64(step)*grid.deltaTheta)
	return angval <= grid.sphereMaxBoundPolar && angval >= grid.sphereMinBoundPolar
}

// inBoundsAzimuthal reports whether the step taken from the current
// azimuthal voxel remains within the grid's azimuthal bounds. A grid spanning
// the full circle is always in bounds.
func inBoundsAzimuthal(grid *SphericalVoxelGrid, step, aziVoxel int) bool {
	if !lessThan(grid.sphereMaxBoundAzimuthal-grid.sphereMinBoundAzimuthal, 2*math.Pi) {
		return true
	}
	radian := float64(aziVoxel+1) * grid.deltaPhi
	angval := radian - math.Abs(float64(step)*grid.deltaPhi)
	return angval <= grid.sphereMaxBoundAzimuthal && angval >= grid.sphereMinBoundAzimuthal
}

// minimumIntersection calculates the voxel(s) with the minimal tMax for the
// next intersection. Tolerant equality is non-transitive, so the ordering
// below is significant: radial ties combine with the other axes so the
// traversal crosses a true corner instead of registering two micro-steps.
func minimumIntersection(radial, polar, azimuthal hitParameters) voxelIntersectionType {
	rpEq := isEqual(radial.tMax, polar.tMax)
	raEq := isEqual(radial.tMax, azimuthal.tMax)
	rpLt := radial.tMax < polar.tMax
	raLt := radial.tMax < azimuthal.tMax
	if rpLt && !rpEq && raLt && !raEq {
		return radialOnly
	}

	paEq := isEqual(polar.tMax, azimuthal.tMax)
	paLt := polar.tMax < azimuthal.tMax
	if !rpLt && !rpEq && paLt && !paEq {
		return polarOnly
	}
	if !paLt && !paEq && !raLt && !raEq {
		return azimuthalOnly
	}
	if rpEq && raEq {
		return radialPolarAzimuthal
	}
	if paEq {
		return polarAzimuthal
	}
	if rpEq {
		return radialPolar
	}
	return radialAzimuthal
}

// initializeVoxelBoundarySegments builds the boundary-segment tables used to
// locate the entry angular voxels. When the ray origin is outside the grid
// the max-radius tables apply directly; otherwise the segments are projected
// onto the circle at the entry radius:
// P1 = currentRadius * cosine + center.X
// P2 = currentRadius * sine + center.{Y|Z}
func initializeVoxelBoundarySegments(rayOriginIsOutsideGrid bool,
	grid *SphericalVoxelGrid, currentRadius float64) (pPolar, pAzimuthal []LineSegment) {
	if rayOriginIsOutsideGrid {
		return grid.pMaxPolar, grid.pMaxAzimuthal
	}
	pPolar = make([]LineSegment, len(grid.polarTrigValues))
	for i, tv := range grid.polarTrigValues {
		pPolar[i] = LineSegment{
			P1: currentRadius*tv.Cosine + grid.sphereCenter.X,
			P2: currentRadius*tv.Sine + grid.sphereCenter.Y,
		}
	}
	pAzimuthal = make([]LineSegment, len(grid.azimuthalTrigValues))
	for i, tv := range grid.azimuthalTrigValues {
		pAzimuthal[i] = LineSegment{
			P1: currentRadius*tv.Cosine + grid.sphereCenter.X,
			P2: currentRadius*tv.Sine + grid.sphereCenter.Z,
		}
	}
	return pPolar, pAzimuthal
}

// WalkSphericalVolume returns the voxels traversed by the ray through the
// spherical voxel grid, in order, with entry and exit times. Degenerate
// input (non-positive maxT, a miss, a ray pointing away, or an entry outside
// the grid's angular bounds) yields an empty sequence. The grid is only
// read, so concurrent walks over one grid are safe.
func WalkSphericalVolume(ray Ray, grid *SphericalVoxelGrid, maxT float64) []SphericalVoxel {
	if maxT <= 0.0 {
		return nil
	}
	rsv := grid.sphereCenter.Sub(ray.PointAt(0.0)) // Ray Sphere Vector.
	sedFromCenter := rsv.Norm2()
	radialEntranceVoxel := 0
	for sedFromCenter < grid.deltaRadiiSq[radialEntranceVoxel] {
		radialEntranceVoxel++
	}
	rayOriginIsOutsideGrid := radialEntranceVoxel == 0

	vectorIndex := radialEntranceVoxel
	if !rayOriginIsOutsideGrid {
		vectorIndex--
	}
	entryRadiusSquared := grid.deltaRadiiSq[vectorIndex]
	entryRadius := grid.deltaRadius * float64(grid.numRadialSections-vectorIndex)
	rsvd := rsv.Dot(rsv)
	v := rsv.Dot(ray.direction)
	rsvdMinusVSquared := rsvd - v*v

	if entryRadiusSquared <= rsvdMinusVSquared {
		return nil
	}
	d := math.Sqrt(entryRadiusSquared - rsvdMinusVSquared)
	tRayExit := ray.timeAt(v + d)
	if tRayExit < 0.0 {
		return nil
	}
	tRayEntrance := ray.timeAt(v - d)
	if !rayOriginIsOutsideGrid {
		// The entry sphere above is the outer sphere of the origin's shell;
		// the ray leaves the grid through the outermost sphere.
		tRayExit = ray.timeAt(v + math.Sqrt(grid.deltaRadiiSq[0]-rsvdMinusVSquared))
	}
	currentRadialVoxel := radialEntranceVoxel
	if rayOriginIsOutsideGrid {
		currentRadialVoxel++
	}

	pPolar, pAzimuthal := initializeVoxelBoundarySegments(rayOriginIsOutsideGrid, grid, entryRadius)

	var raySphere r3.Vector
	switch {
	case rayOriginIsOutsideGrid:
		raySphere = grid.sphereCenter.Sub(ray.PointAt(tRayEntrance))
	case sedFromCenter == 0.0:
		// The origin is the sphere center; shift to a nearly tangent
		// direction so the angular IDs are well defined.
		raySphere = rsv.Sub(ray.direction)
	default:
		raySphere = rsv
	}

	currentPolarVoxel := initializeAngularVoxelID(grid, grid.numPolarSections,
		raySphere, pPolar, raySphere.Y, grid.sphereCenter.Y, entryRadius)
	if currentPolarVoxel >= grid.numPolarSections {
		return nil
	}

	currentAzimuthalVoxel := initializeAngularVoxelID(grid, grid.numAzimuthalSections,
		raySphere, pAzimuthal, raySphere.Z, grid.sphereCenter.Z, entryRadius)
	if currentAzimuthalVoxel >= grid.numAzimuthalSections {
		return nil
	}

	t := 0.0
	if rayOriginIsOutsideGrid {
		t = tRayEntrance
	}
	voxels := make([]SphericalVoxel, 0,
		grid.numRadialSections+grid.numPolarSections+grid.numAzimuthalSections)
	voxels = append(voxels, SphericalVoxel{
		Radial:    currentRadialVoxel,
		Polar:     currentPolarVoxel,
		Azimuthal: currentAzimuthalVoxel,
		EnterT:    t,
	})

	unitizedRayTime := maxT*grid.sphereMaxDiameter + t
	if rayOriginIsOutsideGrid {
		maxT = math.Min(tRayExit, unitizedRayTime)
	} else {
		maxT = unitizedRayTime
	}

	// The times used when an angular boundary is collinear with the ray;
	// every boundary passes through the sphere center. Index 0 applies when
	// the hit is not collinear.
	collinearTimes := [2]float64{0.0, ray.timeAtPoint(grid.sphereCenter)}

	raySeg := newRaySegment(maxT, ray)
	radialStepHasTransitioned := false
	for {
		radial := radialHit(ray, grid, &radialStepHasTransitioned,
			currentRadialVoxel, v, rsvdMinusVSquared, t, maxT)
		raySeg.updateAtTime(t, ray)
		polar := polarHit(ray, grid, &raySeg, collinearTimes, currentPolarVoxel, t, maxT)
		azimuthal := azimuthalHit(ray, grid, &raySeg, collinearTimes, currentAzimuthalVoxel, t, maxT)

		if currentRadialVoxel+radial.tStep == 0 ||
			(radial.tMax == noHitTime && polar.tMax == noHitTime && azimuthal.tMax == noHitTime) {
			voxels[len(voxels)-1].ExitT = tRayExit
			return voxels
		}
		switch minimumIntersection(radial, polar, azimuthal) {
		case radialOnly:
			t = radial.tMax
			currentRadialVoxel += radial.tStep
		case polarOnly:
			t = polar.tMax
			if !inBoundsPolar(grid, polar.tStep, currentPolarVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			currentPolarVoxel = wrap(currentPolarVoxel+polar.tStep, grid.numPolarSections)
		case azimuthalOnly:
			if !inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = azimuthal.tMax
			currentAzimuthalVoxel = wrap(currentAzimuthalVoxel+azimuthal.tStep, grid.numAzimuthalSections)
		case radialPolar:
			t = radial.tMax
			if !inBoundsPolar(grid, polar.tStep, currentPolarVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			currentRadialVoxel += radial.tStep
			currentPolarVoxel = wrap(currentPolarVoxel+polar.tStep, grid.numPolarSections)
		case radialAzimuthal:
			t = radial.tMax
			if !inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			currentRadialVoxel += radial.tStep
			currentAzimuthalVoxel = wrap(currentAzimuthalVoxel+azimuthal.tStep, grid.numAzimuthalSections)
		case polarAzimuthal:
			t = polar.tMax
			if !inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) ||
				!inBoundsPolar(grid, polar.tStep, currentPolarVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			currentPolarVoxel = wrap(currentPolarVoxel+polar.tStep, grid.numPolarSections)
			currentAzimuthalVoxel = wrap(currentAzimuthalVoxel+azimuthal.tStep, grid.numAzimuthalSections)
		case radialPolarAzimuthal:
			t = radial.tMax
			if !inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) ||
				!inBoundsPolar(grid, polar.tStep, currentPolarVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			currentRadialVoxel += radial.tStep
			currentPolarVoxel = wrap(currentPolarVoxel+polar.tStep, grid.numPolarSections)
			currentAzimuthalVoxel = wrap(currentAzimuthalVoxel+azimuthal.tStep, grid.numAzimuthalSections)
		}
		last := len(voxels) - 1
		if voxels[last].Radial == currentRadialVoxel &&
			voxels[last].Polar == currentPolarVoxel &&
			voxels[last].Azimuthal == currentAzimuthalVoxel {
			// An exact three-plane equality produced a no-op corner step.
			continue
		}
		voxels[last].ExitT = t
		voxels = append(voxels, SphericalVoxel{
			Radial:    currentRadialVoxel,
			Polar:     currentPolarVoxel,
			Azimuthal: currentAzimuthalVoxel,
			EnterT:    t,
		})
	}
}

// WalkSphericalVolumeRaw is the raw-scalar variant of WalkSphericalVolume
// for language bindings: it constructs the Ray (normalizing the direction)
// and the grid from plain arrays. Bounds are ordered (radial, polar,
// azimuthal).
func WalkSphericalVolumeRaw(rayOrigin, rayDirection, minBound, maxBound [3]float64,
	numRadialVoxels, numPolarVoxels, numAzimuthalVoxels int,
	sphereCenter [3]float64, maxT float64) []SphericalVoxel {
	return WalkSphericalVolume(
		NewRay(
			r3.Vector{X: rayOrigin[0], Y: rayOrigin[1], Z: rayOrigin[2]},
			r3.Vector{X: rayDirection[0], Y: rayDirection[1], Z: rayDirection[2]},
		),
		NewSphericalVoxelGrid(
			SphereBound{Radial: minBound[0], Polar: minBound[1], Azimuthal: minBound[2]},
			SphereBound{Radial: maxBound[0], Polar: maxBound[1], Azimuthal: maxBound[2]},
			numRadialVoxels, numPolarVoxels, numAzimuthalVoxels,
			r3.Vector{X: sphereCenter[0], Y: sphereCenter[1], Z: sphereCenter[2]},
		),
		maxT)
}
