package dh

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBuildFramesInvariants(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(20))
	for _, convention := range []Convention{Standard, Modified} {
		for i := 0; i < 10; i++ {
			joints := []Joint{mustJoint(t, r3.Vector{Z: 1}, r3.Vector{}, Revolute)}
			for n := 0; n < 3; n++ {
				joints = append(joints, mustJoint(t, sampleUnitVector(rSeed), samplePoint(rSeed), Revolute))
			}
			base := sampleRigidTransform(rSeed)
			ee := sampleRigidTransform(rSeed)

			frames, err := buildFrames(joints, base, ee, convention)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, len(frames), test.ShouldEqual, len(joints)+3)

			for _, f := range frames {
				test.That(t, f.xKnown, test.ShouldBeTrue)
				test.That(t, f.x.Norm(), test.ShouldAlmostEqual, 1, testEpsilon)
				test.That(t, f.z.Norm(), test.ShouldAlmostEqual, 1, testEpsilon)
				test.That(t, f.x.Dot(f.z), test.ShouldAlmostEqual, 0, testEpsilon)
			}
		}
	}
}

func TestBuildFramesCoaxialContinuity(t *testing.T) {
	// collinear axes leave the perpendicular underdetermined; the hint must carry the
	// previous x-axis forward instead of picking an arbitrary direction
	joints := []Joint{
		mustJoint(t, r3.Vector{Z: 1}, r3.Vector{}, Revolute),
		mustJoint(t, r3.Vector{Z: 1}, r3.Vector{Z: 1}, Revolute),
		mustJoint(t, r3.Vector{Z: 1}, r3.Vector{Z: 2}, Revolute),
	}
	frames, err := buildFrames(joints, mgl64.Ident4(), mgl64.Translate3D(0, 0, 3), Standard)
	test.That(t, err, test.ShouldBeNil)
	for _, f := range frames {
		test.That(t, f.x.X, test.ShouldAlmostEqual, 1)
		test.That(t, f.x.Y, test.ShouldAlmostEqual, 0)
		test.That(t, f.x.Z, test.ShouldAlmostEqual, 0)
	}
}
