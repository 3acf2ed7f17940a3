// Package dh extracts Denavit-Hartenberg parameter tables from the geometry of a serial joint
// chain and replays them as forward kinematics.
package dh

import (
	"github.com/golang/geo/r3"

	"github.com/EdsterG/autodh/spatialmath"
)

// JointType labels how a joint moves along or about its axis.
type JointType int

const (
	// Fixed is a rigid connection with no degree of freedom.
	Fixed JointType = iota
	// Revolute rotates about its axis.
	Revolute
	// Prismatic translates along its axis.
	Prismatic
)

// String returns a human readable joint type label.
func (jt JointType) String() string {
	switch jt {
	case Revolute:
		return "Revolute"
	case Prismatic:
		return "Prismatic"
	default:
		return "Fixed"
	}
}

// Joint describes one joint of a serial chain: the unit direction of its axis, a point the axis
// passes through, and how the joint moves. Joints are immutable value objects.
type Joint struct {
	axis      r3.Vector
	anchor    r3.Vector
	jointType JointType
}

// NewJoint creates a Joint. The axis must be unit length.
func NewJoint(axis, anchor r3.Vector, jointType JointType) (Joint, error) {
	// the axis line constructor enforces the unit-direction contract
	if _, err := spatialmath.NewLine(anchor, axis); err != nil {
		return Joint{}, err
	}
	return Joint{axis: axis, anchor: anchor, jointType: jointType}, nil
}

// Axis returns the unit direction of the joint axis.
func (j Joint) Axis() r3.Vector {
	return j.axis
}

// Anchor returns a point the joint axis passes through.
func (j Joint) Anchor() r3.Vector {
	return j.anchor
}

// Type returns the joint type.
func (j Joint) Type() JointType {
	return j.jointType
}

// Line returns the joint axis as a spatial line.
func (j Joint) Line() spatialmath.Line {
	l, _ := spatialmath.NewLine(j.anchor, j.axis)
	return l
}
