package dh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/multierr"

	"github.com/EdsterG/autodh/spatialmath"
	"github.com/EdsterG/autodh/utils"
)

// Tolerance used for zero-row elision and axis continuity checks.
const defaultEpsilon = 1e-8

// Convention selects which of the two Denavit-Hartenberg algebraic conventions a table follows.
type Convention int

const (
	// Standard measures each row's (a, alpha) along the x-axis of the following frame.
	Standard Convention = iota
	// Modified measures each row's (a, alpha) along the x-axis of the preceding frame.
	Modified
)

// String returns the convention name.
func (c Convention) String() string {
	if c == Modified {
		return "Modified"
	}
	return "Standard"
}

// Row is one row of a DH table: the four parameters plus the type of the joint the row was
// derived from.
type Row struct {
	D         float64
	Theta     float64
	A         float64
	Alpha     float64
	JointType JointType
}

// transform returns the rigid transform of the row with a live joint offset applied to its
// variable parameter.
func (r Row) transform(convention Convention, offset float64) *spatialmath.DualQuaternion {
	d, theta := r.D, r.Theta
	switch r.JointType {
	case Revolute:
		theta += offset
	case Prismatic:
		d += offset
	case Fixed:
	}
	if convention == Modified {
		return spatialmath.NewDualQuaternionFromModifiedDH(d, theta, r.A, r.Alpha)
	}
	return spatialmath.NewDualQuaternionFromDH(d, theta, r.A, r.Alpha)
}

func (r Row) isZero() bool {
	for _, v := range []float64{r.D, r.Theta, r.A, r.Alpha} {
		if !utils.Float64AlmostEqual(v, 0, defaultEpsilon) {
			return false
		}
	}
	return true
}

// rowFromFrames computes the four DH parameters relating two adjacent fully specified frames.
// The atan2 forms are stable over the whole rotation range, unlike an acos formulation.
func rowFromFrames(f1, f2 frame, convention Convention) Row {
	off := f2.origin.Sub(f1.origin)
	if convention == Modified {
		return Row{
			D:         off.Dot(f2.z),
			Theta:     math.Atan2(f1.x.Cross(f2.x).Dot(f2.z), f1.x.Dot(f2.x)),
			A:         off.Dot(f1.x),
			Alpha:     math.Atan2(f1.z.Cross(f2.z).Dot(f1.x), f1.z.Dot(f2.z)),
			JointType: f2.jointType,
		}
	}
	return Row{
		D:         off.Dot(f1.z),
		Theta:     math.Atan2(f1.x.Cross(f2.x).Dot(f1.z), f1.x.Dot(f2.x)),
		A:         off.Dot(f2.x),
		Alpha:     math.Atan2(f1.z.Cross(f2.z).Dot(f2.x), f1.z.Dot(f2.z)),
		JointType: f1.jointType,
	}
}

// Table is an ordered, immutable Denavit-Hartenberg table. It is safe to share across concurrent
// Forward evaluations since it is never mutated after construction.
type Table struct {
	rows       []Row
	convention Convention
	numDoF     int
}

// New extracts a standard-convention DH table from a joint chain and its base and end-effector
// frames. Both frames must be rigid transforms.
func New(joints []Joint, base, ee mgl64.Mat4) (*Table, error) {
	return NewWithConvention(joints, base, ee, Standard)
}

// NewWithConvention extracts a DH table following the given convention. Replaying the table with
// Forward at the zero configuration reproduces inverse(base) * ee.
func NewWithConvention(joints []Joint, base, ee mgl64.Mat4, convention Convention) (*Table, error) {
	if err := multierr.Combine(
		spatialmath.ValidateRigidTransform(base),
		spatialmath.ValidateRigidTransform(ee),
	); err != nil {
		return nil, err
	}

	frames, err := buildFrames(joints, base, ee, convention)
	if err != nil {
		return nil, err
	}

	t := &Table{convention: convention}
	for i := 0; i+1 < len(frames); i++ {
		row := rowFromFrames(frames[i], frames[i+1], convention)
		// an all-zero fixed row is a static identity segment and carries no information;
		// only the local row values matter, never its cumulative effect on the chain
		if row.JointType == Fixed && row.isZero() {
			continue
		}
		t.rows = append(t.rows, row)
		if row.JointType != Fixed {
			t.numDoF++
		}
	}
	return t, nil
}

// Rows returns a copy of the table rows in order.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumDoF returns the number of degrees of freedom, i.e. the number of revolute or prismatic rows.
func (t *Table) NumDoF() int {
	return t.numDoF
}

// Convention returns the convention the table was extracted with.
func (t *Table) Convention() Convention {
	return t.convention
}

// Parameters returns the table contents as parallel slices (d, theta, a, alpha, joint types).
func (t *Table) Parameters() (d, theta, a, alpha []float64, jointTypes []JointType) {
	d = make([]float64, len(t.rows))
	theta = make([]float64, len(t.rows))
	a = make([]float64, len(t.rows))
	alpha = make([]float64, len(t.rows))
	jointTypes = make([]JointType, len(t.rows))
	for i, row := range t.rows {
		d[i], theta[i], a[i], alpha[i], jointTypes[i] = row.D, row.Theta, row.A, row.Alpha, row.JointType
	}
	return d, theta, a, alpha, jointTypes
}

// Forward computes the base-to-end-effector transform for the given joint configuration. The
// values are consumed strictly in row order: revolute rows add the next value to theta, prismatic
// rows add it to d, fixed rows consume nothing. Exactly NumDoF values must be supplied.
func (t *Table) Forward(dofValues []float64) (mgl64.Mat4, error) {
	if len(dofValues) != t.numDoF {
		return mgl64.Mat4{}, NewIncorrectDoFError(len(dofValues), t.numDoF)
	}
	running := spatialmath.NewDualQuaternion()
	next := 0
	for _, row := range t.rows {
		var offset float64
		if row.JointType != Fixed {
			offset = dofValues[next]
			next++
		}
		running.Quat = running.Transformation(row.transform(t.convention, offset).Quat)
	}
	return running.Mat4(), nil
}

// Render returns a tabular rendering of the table for diagnostics, with d and a multiplied by
// scale and theta and alpha in degrees.
func (t *Table) Render(scale float64) string {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"d", "theta", "a", "alpha", "type"})
	for _, r := range t.rows {
		w.AppendRow(table.Row{
			fmt.Sprintf("%8.2f", r.D*scale),
			fmt.Sprintf("%8.2f", utils.RadToDeg(r.Theta)),
			fmt.Sprintf("%8.2f", r.A*scale),
			fmt.Sprintf("%8.2f", utils.RadToDeg(r.Alpha)),
			r.JointType.String(),
		})
	}
	return w.Render()
}

// String renders the table with linear parameters unscaled.
func (t *Table) String() string {
	return t.Render(1)
}
