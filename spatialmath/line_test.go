package spatialmath

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

const testEpsilon = 1e-8

func sampleUnitVector(rSeed *rand.Rand) r3.Vector {
	for {
		v := r3.Vector{X: rSeed.Float64(), Y: rSeed.Float64(), Z: rSeed.Float64()}
		if v.Norm() > 1e-4 {
			return v.Normalize()
		}
	}
}

func samplePoint(rSeed *rand.Rand) r3.Vector {
	return r3.Vector{X: rSeed.Float64(), Y: rSeed.Float64(), Z: rSeed.Float64()}
}

func checkCommonPerpendicular(t *testing.T, cp, p1, p2 r3.Vector, l1, l2 Line) {
	t.Helper()
	test.That(t, cp.Norm(), test.ShouldAlmostEqual, 1, testEpsilon)
	test.That(t, l1.Direction().Dot(cp), test.ShouldAlmostEqual, 0, testEpsilon)
	test.That(t, l2.Direction().Dot(cp), test.ShouldAlmostEqual, 0, testEpsilon)
	test.That(t, l1.ContainsPoint(p1), test.ShouldBeTrue)
	test.That(t, l2.ContainsPoint(p2), test.ShouldBeTrue)
	if sep := p2.Sub(p1); sep.Norm() > testEpsilon {
		sep = sep.Normalize()
		test.That(t, sep.X, test.ShouldAlmostEqual, cp.X, testEpsilon)
		test.That(t, sep.Y, test.ShouldAlmostEqual, cp.Y, testEpsilon)
		test.That(t, sep.Z, test.ShouldAlmostEqual, cp.Z, testEpsilon)
	}
}

func mustLine(t *testing.T, point, direction r3.Vector) Line {
	t.Helper()
	l, err := NewLine(point, direction)
	test.That(t, err, test.ShouldBeNil)
	return l
}

func TestSkewLines(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		c1 := samplePoint(rSeed)
		if i%2 == 0 {
			// a line through the origin exercises the zero-moment path downstream
			c1 = r3.Vector{}
		}
		l1 := mustLine(t, c1, sampleUnitVector(rSeed))
		l2 := mustLine(t, samplePoint(rSeed), sampleUnitVector(rSeed))

		cp, p1, p2 := skewLines(l1.Direction(), l1.Moment(), l2.Direction(), l2.Moment())
		if cp.Dot(p2.Sub(p1)) < 0 {
			cp = cp.Mul(-1)
		}
		checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	}
}

func TestIntersectingLines(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(2))
	for i := 0; i < 10; i++ {
		c1 := samplePoint(rSeed)
		if i%2 == 0 {
			c1 = r3.Vector{}
		}
		e1 := sampleUnitVector(rSeed)
		e2 := sampleUnitVector(rSeed)
		meeting := c1.Add(e1.Mul(rSeed.Float64()*2 - 1))
		c2 := meeting.Add(e2.Mul(rSeed.Float64()*2 - 1))
		l1 := mustLine(t, c1, e1)
		l2 := mustLine(t, c2, e2)

		cp, p1, p2, err := intersectingLines(l1.Direction(), l1.Moment(), l2.Direction(), l2.Moment())
		test.That(t, err, test.ShouldBeNil)
		checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
		test.That(t, p1.Sub(p2).Norm(), test.ShouldAlmostEqual, 0, testEpsilon)
	}
}

func TestIntersectingLinesEdgeCases(t *testing.T) {
	// both lines pass through the same off-origin point while one moment is zero
	l1 := mustLine(t, r3.Vector{X: 1, Z: 1}, r3.Vector{X: 1})
	l2 := mustLine(t, r3.Vector{X: 1, Z: 1}, r3.Vector{Z: 1})
	cp, p1, p2, err := intersectingLines(l1.Direction(), l1.Moment(), l2.Direction(), l2.Moment())
	test.That(t, err, test.ShouldBeNil)
	checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	test.That(t, p1.Sub(p2).Norm(), test.ShouldAlmostEqual, 0, testEpsilon)

	// the intersection point lies in the plane spanned by the two directions,
	// so the plain moment quotient is singular even though no moment is zero
	l1 = mustLine(t, r3.Vector{X: 1, Y: 1}, r3.Vector{X: 1})
	l2 = mustLine(t, r3.Vector{X: 1, Y: 1}, r3.Vector{Y: 1})
	cp, p1, p2, err = intersectingLines(l1.Direction(), l1.Moment(), l2.Direction(), l2.Moment())
	test.That(t, err, test.ShouldBeNil)
	checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	test.That(t, p1.X, test.ShouldAlmostEqual, 1, testEpsilon)
	test.That(t, p1.Y, test.ShouldAlmostEqual, 1, testEpsilon)
	test.That(t, p1.Z, test.ShouldAlmostEqual, 0, testEpsilon)
}

func TestParallelDistinctLines(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		e1 := sampleUnitVector(rSeed)
		e2 := e1
		if i%2 == 0 {
			e2 = e1.Mul(-1)
		}
		c1 := samplePoint(rSeed)
		c2 := samplePoint(rSeed)
		l1 := mustLine(t, c1, e1)
		l2 := mustLine(t, c2, e2)

		cp, p1, p2, err := parallelDistinctLines(l1, l2)
		test.That(t, err, test.ShouldBeNil)
		checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	}
}

func TestIdenticalLines(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(4))
	for i := 0; i < 10; i++ {
		e1 := sampleUnitVector(rSeed)
		c1 := samplePoint(rSeed)
		c2 := c1.Add(e1.Mul(rSeed.Float64()*2 - 1))
		l1 := mustLine(t, c1, e1)
		l2 := mustLine(t, c2, e1)

		hint := e1.Cross(sampleUnitVector(rSeed))
		cp, p1, p2, err := CommonPerpendicular(l1, l2, hint)
		test.That(t, err, test.ShouldBeNil)
		checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
		test.That(t, p1.Sub(p2).Norm(), test.ShouldAlmostEqual, 0)
		test.That(t, p2.Sub(c2).Norm(), test.ShouldAlmostEqual, 0)
	}
}

func TestCommonPerpendicularDispatch(t *testing.T) {
	// skew pair
	l1 := mustLine(t, r3.Vector{}, r3.Vector{X: 1})
	l2 := mustLine(t, r3.Vector{Z: 2}, r3.Vector{Y: 1})
	cp, p1, p2, err := CommonPerpendicular(l1, l2, r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	// oriented from p1 toward p2
	test.That(t, cp.Dot(p2.Sub(p1)), test.ShouldAlmostEqual, 2, testEpsilon)
	test.That(t, cp.Z, test.ShouldAlmostEqual, 1, testEpsilon)

	// intersecting pair
	l2 = mustLine(t, r3.Vector{X: 1}, r3.Vector{Y: 1})
	cp, p1, p2, err = CommonPerpendicular(l1, l2, r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	test.That(t, p1.Sub(p2).Norm(), test.ShouldAlmostEqual, 0, testEpsilon)

	// parallel distinct pair, hint ignored
	l2 = mustLine(t, r3.Vector{Y: 3}, r3.Vector{X: -1})
	cp, p1, p2, err = CommonPerpendicular(l1, l2, r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	checkCommonPerpendicular(t, cp, p1, p2, l1, l2)
	test.That(t, cp.Y, test.ShouldAlmostEqual, 1, testEpsilon)
}

func TestLineContractErrors(t *testing.T) {
	_, err := NewLine(r3.Vector{}, r3.Vector{X: 2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not normalized")

	l1 := mustLine(t, r3.Vector{}, r3.Vector{Z: 1})
	l2 := mustLine(t, r3.Vector{Z: 5}, r3.Vector{Z: 1})

	_, _, _, err = CommonPerpendicular(l1, l2, r3.Vector{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "zero vector")

	_, _, _, err = CommonPerpendicular(l1, l2, r3.Vector{X: 1, Z: 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not perpendicular")

	// a valid hint is normalized before use
	cp, p1, p2, err := CommonPerpendicular(l1, l2, r3.Vector{X: 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cp.X, test.ShouldAlmostEqual, 1)
	test.That(t, p1.Sub(p2).Norm(), test.ShouldAlmostEqual, 0)
}

func TestContainsPoint(t *testing.T) {
	l := mustLine(t, r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{Y: 1})
	test.That(t, l.ContainsPoint(r3.Vector{X: 1, Y: -7, Z: 3}), test.ShouldBeTrue)
	test.That(t, l.ContainsPoint(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldBeTrue)
	test.That(t, l.ContainsPoint(r3.Vector{X: 1.1, Y: 2, Z: 3}), test.ShouldBeFalse)
}
