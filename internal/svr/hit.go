package svr

import "math"

// noHitTime is the sentinel tMax for "no intersection within (t, maxT)".
// The tie resolver relies on it comparing greater than any real time.
const noHitTime = math.MaxFloat64

// hitParameters is the result of a per-axis hit test.
type hitParameters struct {
	// The time at which a hit occurs for the ray at the next point of
	// intersection with a section.
	tMax float64

	// The voxel traversal value of a step: 0, +1, -1, or a larger signed
	// count from the angular perturbation branch. This is added to the
	// current voxel.
	tStep int
}

// radialHit determines whether a radial hit occurs for the given ray. A
// radial hit is an intersection with the ray and a radial section. Follows
// the line-sphere intersection in Graphics Gems [Heckbert 1994]. One also
// needs to determine when tStep should go from +1 to -1, since the radial
// voxels go from 1..N..1, where N is the number of radial sections; this is
// the radialStepHasTransitioned latch.
func radialHit(ray Ray, grid *SphericalVoxelGrid, radialStepHasTransitioned *bool,
	currentRadialVoxel int, v, rsvdMinusVSquared, t, maxT float64) hitParameters {
	if *radialStepHasTransitioned {
		dB := math.Sqrt(grid.deltaRadiiSq[currentRadialVoxel-1] - rsvdMinusVSquared)
		intersectionT := ray.timeAt(v + dB)
		if intersectionT < maxT {
			return hitParameters{tMax: intersectionT, tStep: -1}
		}
		return hitParameters{tMax: noHitTime, tStep: 0}
	}

	previousIdx := currentRadialVoxel
	if previousIdx > grid.numRadialSections-1 {
		previousIdx = grid.numRadialSections - 1
	}
	// If the shell just inward is out of reach, the candidate is the next
	// outer shell.
	if grid.deltaRadiiSq[previousIdx] < rsvdMinusVSquared {
		previousIdx--
	}
	rA := grid.deltaRadiiSq[previousIdx]
	dA := math.Sqrt(rA - rsvdMinusVSquared)
	tEntrance := ray.timeAt(v - dA)
	tExit := ray.timeAt(v + dA)

	tEntranceGtT := tEntrance > t
	if tEntranceGtT && tEntrance == tExit {
		// Tangential hit.
		*radialStepHasTransitioned = true
		return hitParameters{tMax: tEntrance, tStep: 0}
	}
	if tEntranceGtT && tEntrance < maxT {
		return hitParameters{tMax: tEntrance, tStep: 1}
	}
	if tExit < maxT {
		// tExit is the "further" point of intersection of the current
		// sphere. Since tEntrance is not within our time bounds, it must be
		// true that this is a radial transition.
		*radialStepHasTransitioned = true
		return hitParameters{tMax: tExit, tStep: -1}
	}
	// There does not exist an intersection time X such that t < X < maxT.
	return hitParameters{tMax: noHitTime, tStep: 0}
}

// angularHit generalizes the latter half of the polar and azimuthal hit
// tests; the only difference between those is the 2-D plane they live in.
// The calculations follow [Foley et al, 1996], [O'Rourke, 1998]. Reference:
// http://geomalgorithms.com/a05-_intersect-1.html#intersect2D_2Segments()
func angularHit(grid *SphericalVoxelGrid, ray Ray,
	perpUVMin, perpUVMax, perpUWMin, perpUWMax, perpVWMin, perpVWMax float64,
	raySeg *raySegment, collinearTimes [2]float64, t, maxT float64,
	rayDirection2, sphereCenter2 float64, pMax []LineSegment, currentVoxel int) hitParameters {
	isParallelMin := isEqual(perpUVMin, 0.0)
	isCollinearMin := isParallelMin && isEqual(perpUWMin, 0.0) && isEqual(perpVWMin, 0.0)
	isParallelMax := isEqual(perpUVMax, 0.0)
	isCollinearMax := isParallelMax && isEqual(perpUWMax, 0.0) && isEqual(perpVWMax, 0.0)

	tMin := collinearTimes[0]
	if isCollinearMin {
		tMin = collinearTimes[1]
	}
	isIntersectMin := false
	if !isParallelMin {
		invPerpUVMin := 1.0 / perpUVMin
		a := perpVWMin * invPerpUVMin
		b := perpUWMin * invPerpUVMin
		if !(lessThan(a, 0.0) || lessThan(1.0, a) || lessThan(b, 0.0) || lessThan(1.0, b)) {
			isIntersectMin = true
			tMin = raySeg.intersectionTimeAt(b, ray)
		}
	}

	tMax := collinearTimes[0]
	if isCollinearMax {
		tMax = collinearTimes[1]
	}
	isIntersectMax := false
	if !isParallelMax {
		invPerpUVMax := 1.0 / perpUVMax
		a := perpVWMax * invPerpUVMax
		b := perpUWMax * invPerpUVMax
		if !(lessThan(a, 0.0) || lessThan(1.0, a) || lessThan(b, 0.0) || lessThan(1.0, b)) {
			isIntersectMax = true
			tMax = raySeg.intersectionTimeAt(b, ray)
		}
	}

	tTMaxEq := isEqual(t, tMax)
	tMaxWithinBounds := t < tMax && !tTMaxEq && tMax < maxT
	tTMinEq := isEqual(t, tMin)
	tMinWithinBounds := t < tMin && !tTMinEq && tMin < maxT
	if !tMaxWithinBounds && !tMinWithinBounds {
		return hitParameters{tMax: noHitTime, tStep: 0}
	}
	if isIntersectMax && !isIntersectMin && !isCollinearMin && tMaxWithinBounds {
		return hitParameters{tMax: tMax, tStep: 1}
	}
	if isIntersectMin && !isIntersectMax && !isCollinearMax && tMinWithinBounds {
		return hitParameters{tMax: tMin, tStep: -1}
	}
	if (isIntersectMin && isIntersectMax) ||
		(isIntersectMin && isCollinearMax) ||
		(isIntersectMax && isCollinearMin) {
		minMaxEq := isEqual(tMin, tMax)
		if minMaxEq && tMinWithinBounds {
			// The ray exits both boundaries of the angular voxel at once
			// (it travels through an angular vertex); the step may span
			// more than one voxel. The point at the max radius from the
			// center along the in-plane ray direction is located against the
			// max-radius boundary segments; perturbedT cancels in the
			// normalization.
			const perturbedT = 0.1
			a := -ray.direction.X * perturbedT
			b := -rayDirection2 * perturbedT
			maxRadiusOverPlaneLength := grid.sphereMaxRadius / math.Sqrt(a*a+b*b)
			p1 := grid.sphereCenter.X - maxRadiusOverPlaneLength*a
			p2 := sphereCenter2 - maxRadiusOverPlaneLength*b
			nextStep := currentVoxel - calculateAngularVoxelIDFromPoints(pMax, p1, p2)
			if nextStep < 0 {
				nextStep = -nextStep
			}
			if ray.direction.X < 0.0 || rayDirection2 < 0.0 {
				return hitParameters{tMax: tMax, tStep: nextStep}
			}
			return hitParameters{tMax: tMax, tStep: -nextStep}
		}
		if tMinWithinBounds && ((tMin < tMax && !minMaxEq) || tTMaxEq) {
			return hitParameters{tMax: tMin, tStep: -1}
		}
		if tMaxWithinBounds && ((tMax < tMin && !minMaxEq) || tTMinEq) {
			return hitParameters{tMax: tMax, tStep: 1}
		}
	}
	return hitParameters{tMax: noHitTime, tStep: 0}
}

// polarHit determines whether a polar hit occurs for the given ray. The
// polar sections live in the XY plane.
func polarHit(ray Ray, grid *SphericalVoxelGrid, raySeg *raySegment,
	collinearTimes [2]float64, currentPolarVoxel int, t, maxT float64) hitParameters {
	// The voxel boundary vectors.
	pOne := grid.pMaxPolar[currentPolarVoxel]
	pTwo := grid.pMaxPolar[currentPolarVoxel+1]
	uMin := grid.centerToPolarBoundVectors[currentPolarVoxel]
	uMax := grid.centerToPolarBoundVectors[currentPolarVoxel+1]
	wMinX := pOne.P1 - raySeg.p1.X
	wMinY := pOne.P2 - raySeg.p1.Y
	wMaxX := pTwo.P1 - raySeg.p1.X
	wMaxY := pTwo.P2 - raySeg.p1.Y
	perpUVMin := uMin.X*raySeg.vec.Y - uMin.Y*raySeg.vec.X
	perpUVMax := uMax.X*raySeg.vec.Y - uMax.Y*raySeg.vec.X
	perpUWMin := uMin.X*wMinY - uMin.Y*wMinX
	perpUWMax := uMax.X*wMaxY - uMax.Y*wMaxX
	perpVWMin := raySeg.vec.X*wMinY - raySeg.vec.Y*wMinX
	perpVWMax := raySeg.vec.X*wMaxY - raySeg.vec.Y*wMaxX
	return angularHit(grid, ray, perpUVMin, perpUVMax, perpUWMin, perpUWMax,
		perpVWMin, perpVWMax, raySeg, collinearTimes, t, maxT,
		ray.direction.Y, grid.sphereCenter.Y, grid.pMaxPolar, currentPolarVoxel)
}

// azimuthalHit determines whether an azimuthal hit occurs for the given ray.
// The azimuthal sections live in the XZ plane.
func azimuthalHit(ray Ray, grid *SphericalVoxelGrid, raySeg *raySegment,
	collinearTimes [2]float64, currentAzimuthalVoxel int, t, maxT float64) hitParameters {
	// The voxel boundary vectors.
	pOne := grid.pMaxAzimuthal[currentAzimuthalVoxel]
	pTwo := grid.pMaxAzimuthal[currentAzimuthalVoxel+1]
	uMin := grid.centerToAzimuthalBoundVectors[currentAzimuthalVoxel]
	uMax := grid.centerToAzimuthalBoundVectors[currentAzimuthalVoxel+1]
	wMinX := pOne.P1 - raySeg.p1.X
	wMinZ := pOne.P2 - raySeg.p1.Z
	wMaxX := pTwo.P1 - raySeg.p1.X
	wMaxZ := pTwo.P2 - raySeg.p1.Z
	perpUVMin := uMin.X*raySeg.vec.Z - uMin.Z*raySeg.vec.X
	perpUVMax := uMax.X*raySeg.vec.Z - uMax.Z*raySeg.vec.X
	perpUWMin := uMin.X*wMinZ - uMin.Z*wMinX
	perpUWMax := uMax.X*wMaxZ - uMax.Z*wMaxX
	perpVWMin := raySeg.vec.X*wMinZ - raySeg.vec.Z*wMinX
	perpVWMax := raySeg.vec.X*wMaxZ - raySeg.vec.Z*wMaxX
	return angularHit(grid, ray, perpUVMin, perpUVMax, perpUWMin, perpUWMax,
		perpVWMin, perpVWMax, raySeg, collinearTimes, t, maxT,
		ray.direction.Z, grid.sphereCenter.Z, grid.pMaxAzimuthal, currentAzimuthalVoxel)
}
