// Package spatialmath defines the spatial mathematical operations used to
// extract kinematic parameters from joint geometry: line algebra over
// Plücker coordinates and rigid transforms as dual quaternions.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/EdsterG/autodh/utils"
)

// Tolerance used for all geometric classification and contract checks.
const defaultEpsilon = 1e-8

// Line is a line in 3D space, represented by a point on the line and a unit
// direction vector. A line is uniquely identified by its direction and moment
// regardless of which point was used to construct it.
type Line struct {
	point     r3.Vector
	direction r3.Vector
}

// NewLine constructs a Line through the given point. The direction must be
// unit length.
func NewLine(point, direction r3.Vector) (Line, error) {
	if !utils.Float64AlmostEqual(direction.Norm(), 1, defaultEpsilon) {
		return Line{}, newDirectionNotUnitError(direction)
	}
	return Line{point: point, direction: direction}, nil
}

// Point returns the point the line was constructed through.
func (l Line) Point() r3.Vector {
	return l.point
}

// Direction returns the unit direction of the line.
func (l Line) Direction() r3.Vector {
	return l.direction
}

// Moment returns the Plücker moment of the line, point × direction.
func (l Line) Moment() r3.Vector {
	return l.point.Cross(l.direction)
}

// ContainsPoint reports whether the given point lies on the line.
func (l Line) ContainsPoint(p r3.Vector) bool {
	offset := p.Sub(l.point)
	if offset.Norm() < defaultEpsilon {
		return true
	}
	return utils.Float64AlmostEqual(math.Abs(l.direction.Dot(offset.Normalize())), 1, defaultEpsilon)
}

// CommonPerpendicular classifies the relative configuration of two lines
// (skew, intersecting, parallel-distinct or identical) and returns the unit
// common perpendicular direction along with the points p1 and p2 where the
// perpendicular meets each line. The footpoints are equal when the lines
// intersect or are identical.
//
// When the lines are identical the perpendicular is not determined by
// geometry alone, and the hint vector breaks the tie; it must be non-zero and
// perpendicular to the shared direction. The hint is ignored in every other
// configuration.
//
// Whenever the footpoints differ, the returned perpendicular points from p1
// toward p2 so that chained frame construction keeps a consistent handedness.
func CommonPerpendicular(l1, l2 Line, hint r3.Vector) (cp, p1, p2 r3.Vector, err error) {
	e1, k1 := l1.direction, l1.Moment()
	e2, k2 := l2.direction, l2.Moment()

	realPart := e1.Dot(e2)
	dualPart := e1.Dot(k2) + k1.Dot(e2)

	switch {
	case !utils.Float64AlmostEqual(dualPart, 0, defaultEpsilon):
		// Non-coplanar, therefore skew.
		cp, p1, p2 = skewLines(e1, k1, e2, k2)
	case utils.Float64AlmostEqual(math.Abs(realPart), 1, defaultEpsilon):
		crossDual := e1.Cross(k2).Add(k1.Cross(e2))
		if crossDual.Norm() > defaultEpsilon {
			cp, p1, p2, err = parallelDistinctLines(l1, l2)
		} else {
			cp, p1, p2, err = identicalLines(e1, l2.point, hint)
		}
	default:
		cp, p1, p2, err = intersectingLines(e1, k1, e2, k2)
	}
	if err != nil {
		return r3.Vector{}, r3.Vector{}, r3.Vector{}, err
	}

	if sep := p2.Sub(p1); sep.Norm() > defaultEpsilon && cp.Dot(sep) < 0 {
		cp = cp.Mul(-1)
	}
	return cp, p1, p2, nil
}

// skewLines solves the common perpendicular of two skew lines given in
// direction/moment form. The footpoints follow in closed form from the
// parametric line equations projected onto the perpendicular.
func skewLines(e1, k1, e2, k2 r3.Vector) (cp, p1, p2 r3.Vector) {
	n := e1.Cross(e2)
	sinAngle := n.Norm()
	n = n.Mul(1 / sinAngle)
	cosAngle := e1.Dot(e2)

	p1 = e1.Mul((k2.Dot(n) - cosAngle*k1.Dot(n)) / sinAngle).Add(e1.Cross(k1))
	p2 = e2.Mul((-k1.Dot(n) + cosAngle*k2.Dot(n)) / sinAngle).Add(e2.Cross(k2))
	return n, p1, p2
}

// intersectingLines solves the common perpendicular and the single
// intersection point of two coplanar, non-parallel lines. When the moment
// formulation is singular, which happens when a line passes through the
// origin, the problem is re-solved in a frame shifted along the perpendicular
// where the divisor is guaranteed non-zero.
func intersectingLines(e1, k1, e2, k2 r3.Vector) (cp, p1, p2 r3.Vector, err error) {
	n := e1.Cross(e2).Normalize()

	var p r3.Vector
	denom := e1.Dot(k2)
	if k1.Norm() < defaultEpsilon || k2.Norm() < defaultEpsilon || math.Abs(denom) < defaultEpsilon {
		k1g := k1.Sub(n.Cross(e1))
		k2g := k2.Sub(n.Cross(e2))
		denomG := e1.Dot(k2g)
		if math.Abs(denomG) < defaultEpsilon {
			return cp, p1, p2, newSingularConfigurationError()
		}
		p = n.Add(k2g.Cross(k1g).Mul(1 / denomG))
	} else {
		p = k2.Cross(k1).Mul(1 / denom)
	}
	return n, p, p, nil
}

// parallelDistinctLines solves the common perpendicular of two parallel but
// non-identical lines by constructing the auxiliary line through l1's point,
// perpendicular to both l1 and the offset between the lines, and intersecting
// it with l2.
func parallelDistinctLines(l1, l2 Line) (cp, p1, p2 r3.Vector, err error) {
	c1, e1 := l1.point, l1.direction

	offNormal := l2.point.Sub(c1).Cross(e1)
	if offNormal.Norm() < defaultEpsilon {
		return cp, p1, p2, newSingularConfigurationError()
	}
	toward := e1.Cross(offNormal).Mul(1 / offNormal.Norm())

	_, _, p2, err = intersectingLines(toward, c1.Cross(toward), l2.direction, l2.Moment())
	if err != nil {
		return cp, p1, p2, err
	}
	return toward, c1, p2, nil
}

// identicalLines handles the fully degenerate case: the perpendicular comes
// from the caller-supplied hint, and both footpoints collapse to l2's point.
func identicalLines(e1, c2, hint r3.Vector) (cp, p1, p2 r3.Vector, err error) {
	if hint.Norm() < defaultEpsilon {
		return cp, p1, p2, errHintZeroVector
	}
	cp = hint.Normalize()
	if !utils.Float64AlmostEqual(e1.Dot(cp), 0, defaultEpsilon) {
		return r3.Vector{}, p1, p2, newHintNotPerpendicularError(hint)
	}
	return cp, c2, c2, nil
}
