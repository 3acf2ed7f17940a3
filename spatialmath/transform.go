package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"github.com/EdsterG/autodh/utils"
)

// Mat4AxisX returns the x-axis of the frame described by a homogeneous transform.
func Mat4AxisX(m mgl64.Mat4) r3.Vector {
	return r3.Vector{X: m.At(0, 0), Y: m.At(1, 0), Z: m.At(2, 0)}
}

// Mat4AxisZ returns the z-axis of the frame described by a homogeneous transform.
func Mat4AxisZ(m mgl64.Mat4) r3.Vector {
	return r3.Vector{X: m.At(0, 2), Y: m.At(1, 2), Z: m.At(2, 2)}
}

// Mat4Translation returns the origin of the frame described by a homogeneous transform.
func Mat4Translation(m mgl64.Mat4) r3.Vector {
	return r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
}

// ValidateRigidTransform checks that a 4x4 matrix is a rigid transform: the upper-left 3x3 block must
// be a right-handed orthonormal rotation and the last row must be [0 0 0 1]. All failed checks are
// reported, not just the first.
func ValidateRigidTransform(m mgl64.Mat4) error {
	var err error

	cols := [3]r3.Vector{}
	for i := range cols {
		cols[i] = r3.Vector{X: m.At(0, i), Y: m.At(1, i), Z: m.At(2, i)}
		if !utils.Float64AlmostEqual(cols[i].Norm(), 1, defaultEpsilon) {
			err = multierr.Append(err, newNotRigidTransformError("rotation column is not unit length"))
		}
	}
	for i := 0; i < 3; i++ {
		if !utils.Float64AlmostEqual(cols[i].Dot(cols[(i+1)%3]), 0, defaultEpsilon) {
			err = multierr.Append(err, newNotRigidTransformError("rotation columns are not orthogonal"))
		}
	}
	if det := cols[0].Cross(cols[1]).Dot(cols[2]); !utils.Float64AlmostEqual(det, 1, defaultEpsilon) && err == nil {
		err = multierr.Append(err, newNotRigidTransformError("rotation is not right-handed"))
	}
	for i, want := range []float64{0, 0, 0, 1} {
		if math.Abs(m.At(3, i)-want) > defaultEpsilon {
			err = multierr.Append(err, newNotRigidTransformError("last row is not [0 0 0 1]"))
			break
		}
	}
	return err
}
