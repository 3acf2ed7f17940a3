package dh

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/EdsterG/autodh/spatialmath"
	"github.com/EdsterG/autodh/utils"
)

// frame is one coordinate frame along the joint chain. Joint frames enter the builder with only
// origin and z-axis set; the x-axis is resolved exactly once, left to right.
type frame struct {
	origin    r3.Vector
	x         r3.Vector
	xKnown    bool
	z         r3.Vector
	jointType JointType
}

func (f frame) axisLine() (spatialmath.Line, error) {
	return spatialmath.NewLine(f.origin, f.z)
}

// partialFrames lays out the frame arena for the chain. Both conventions carry one helper frame
// beyond base, joints and end effector; it sits before the end effector for the standard convention
// and after the base for the modified one, mirroring which neighbor each convention's (a, alpha)
// pair is measured against.
func partialFrames(joints []Joint, base, ee mgl64.Mat4, convention Convention) []frame {
	frames := make([]frame, 0, len(joints)+3)
	frames = append(frames, frame{
		origin:    spatialmath.Mat4Translation(base),
		x:         spatialmath.Mat4AxisX(base),
		xKnown:    true,
		z:         spatialmath.Mat4AxisZ(base),
		jointType: Fixed,
	})
	if convention == Modified {
		frames = append(frames, frame{
			origin:    spatialmath.Mat4Translation(base),
			z:         spatialmath.Mat4AxisZ(base),
			jointType: Fixed,
		})
	}
	for _, j := range joints {
		frames = append(frames, frame{origin: j.anchor, z: j.axis, jointType: j.jointType})
	}
	if convention == Standard {
		frames = append(frames, frame{
			origin:    spatialmath.Mat4Translation(ee),
			z:         spatialmath.Mat4AxisZ(ee),
			jointType: Fixed,
		})
	}
	frames = append(frames, frame{
		origin:    spatialmath.Mat4Translation(ee),
		x:         spatialmath.Mat4AxisX(ee),
		xKnown:    true,
		z:         spatialmath.Mat4AxisZ(ee),
		jointType: Fixed,
	})
	return frames
}

// buildFrames resolves the x-axis and origin of every partial frame. The standard convention drops
// each frame onto the common perpendicular between the previous and current joint axes; the
// modified convention uses the current and next axes instead. The previously resolved x-axis breaks
// the tie whenever adjacent axes are collinear, keeping the chain's handedness continuous.
func buildFrames(joints []Joint, base, ee mgl64.Mat4, convention Convention) ([]frame, error) {
	partial := partialFrames(joints, base, ee, convention)

	frames := make([]frame, len(partial))
	frames[0] = partial[0]
	for i := 1; i < len(partial)-1; i++ {
		cur := partial[i]

		var first, second frame
		if convention == Modified {
			first, second = cur, partial[i+1]
		} else {
			first, second = frames[i-1], cur
		}
		l1, err := first.axisLine()
		if err != nil {
			return nil, err
		}
		l2, err := second.axisLine()
		if err != nil {
			return nil, err
		}

		cp, p1, p2, err := spatialmath.CommonPerpendicular(l1, l2, frames[i-1].x)
		if err != nil {
			return nil, err
		}
		// both perpendicular directions are geometrically valid; stay aligned with the
		// previous frame to avoid spurious 180 degree jumps in theta
		if utils.Float64AlmostEqual(frames[i-1].x.Dot(cp), -1, defaultEpsilon) {
			cp = cp.Mul(-1)
		}
		origin := p2
		if convention == Modified {
			origin = p1
		}
		frames[i] = frame{origin: origin, x: cp, xKnown: true, z: cur.z, jointType: cur.jointType}
	}
	frames[len(partial)-1] = partial[len(partial)-1]
	return frames, nil
}
