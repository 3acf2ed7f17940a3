package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// DualQuaternion defines functions to perform rigid transformations in 3D.
type DualQuaternion struct {
	Quat dualquat.Number
}

// NewDualQuaternion returns a pointer to a new DualQuaternion object whose quaternion is an identity quaternion.
// Since the real part of a dual quaternion should be a unit quaternion, not all zeroes, this should be used
// instead of &DualQuaternion{}.
func NewDualQuaternion() *DualQuaternion {
	return &DualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewDualQuaternionFromMat4 returns a pointer to a new DualQuaternion created from the rotation and
// translation of the given homogeneous transform matrix.
func NewDualQuaternionFromMat4(m mgl64.Mat4) *DualQuaternion {
	qRot := mgl64.Mat4ToQuat(m)
	q := NewDualQuaternion()
	q.Quat.Real = quat.Number{Real: qRot.W, Imag: qRot.X(), Jmag: qRot.Y(), Kmag: qRot.Z()}
	q.SetTranslation(m.At(0, 3), m.At(1, 3), m.At(2, 3))
	return q
}

// NewDualQuaternionFromDH returns a pointer to a new DualQuaternion created from one standard-convention
// DH row: a rotation of theta about and translation of d along the previous z-axis, followed by a
// translation of a along and rotation of alpha about the resulting x-axis.
func NewDualQuaternionFromDH(d, theta, a, alpha float64) *DualQuaternion {
	screwZ := dualquat.Mul(rotationZ(theta), translation(0, 0, d))
	return &DualQuaternion{dualquat.Mul(dualquat.Mul(screwZ, translation(a, 0, 0)), rotationX(alpha))}
}

// NewDualQuaternionFromModifiedDH returns a pointer to a new DualQuaternion created from one
// modified-convention DH row: a rotation of alpha about and translation of a along the previous x-axis,
// followed by a rotation of theta about and translation of d along the resulting z-axis.
func NewDualQuaternionFromModifiedDH(d, theta, a, alpha float64) *DualQuaternion {
	screwX := dualquat.Mul(rotationX(alpha), translation(a, 0, 0))
	return &DualQuaternion{dualquat.Mul(screwX, dualquat.Mul(rotationZ(theta), translation(0, 0, d)))}
}

// Clone returns a DualQuaternion object identical to this one.
func (q *DualQuaternion) Clone() *DualQuaternion {
	// No need for a deep copy here, dualquats are primitives all the way down
	return &DualQuaternion{q.Quat}
}

// Rotation returns the rotation quaternion.
func (q *DualQuaternion) Rotation() quat.Number {
	return q.Quat.Real
}

// Translation returns the translation of the transform as a vector quaternion.
func (q *DualQuaternion) Translation() quat.Number {
	return dualquat.Mul(q.Quat, dualquat.Conj(q.Quat)).Dual
}

// SetTranslation correctly sets the translation quaternion against the rotation.
func (q *DualQuaternion) SetTranslation(x, y, z float64) {
	q.Quat.Dual = quat.Number{Real: 0, Imag: x / 2, Jmag: y / 2, Kmag: z / 2}
	q.rotate()
}

// rotate multiplies the dual part of the quaternion by the real part to give the correct rotation.
func (q *DualQuaternion) rotate() {
	q.Quat.Dual = quat.Mul(q.Quat.Dual, q.Quat.Real)
}

// Transformation multiplies the dual quat contained in this DualQuaternion by another dual quat.
func (q *DualQuaternion) Transformation(by dualquat.Number) dualquat.Number {
	// Ensure we are multiplying by a unit dual quaternion
	if vecLen := quat.Abs(by.Real); vecLen != 1 {
		by.Real = quat.Scale(1/vecLen, by.Real)
	}
	return dualquat.Mul(q.Quat, by)
}

// Mat4 returns the homogeneous transform matrix equivalent of this dual quaternion.
func (q *DualQuaternion) Mat4() mgl64.Mat4 {
	rot := q.Quat.Real
	m := mgl64.Quat{W: rot.Real, V: mgl64.Vec3{rot.Imag, rot.Jmag, rot.Kmag}}.Mat4()
	t := q.Translation()
	m.SetCol(3, mgl64.Vec4{t.Imag, t.Jmag, t.Kmag, 1})
	return m
}

func rotationZ(theta float64) dualquat.Number {
	return dualquat.Number{
		Real: quat.Number{Real: math.Cos(theta / 2), Kmag: math.Sin(theta / 2)},
	}
}

func rotationX(alpha float64) dualquat.Number {
	return dualquat.Number{
		Real: quat.Number{Real: math.Cos(alpha / 2), Imag: math.Sin(alpha / 2)},
	}
}

func translation(x, y, z float64) dualquat.Number {
	return dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{Imag: x / 2, Jmag: y / 2, Kmag: z / 2},
	}
}
