package dh

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/EdsterG/autodh/spatialmath"
)

// RobotConfigJSON represents all supported fields in a robot description JSON file. Transforms are
// 16 row-major floats; an omitted base defaults to the identity.
type RobotConfigJSON struct {
	Name        string            `json:"name"`
	Convention  string            `json:"convention,omitempty"`
	Base        []float64         `json:"base,omitempty"`
	EndEffector []float64         `json:"endEffector"`
	Joints      []JointConfigJSON `json:"joints"`
}

// JointConfigJSON describes one joint of the chain in a robot description file.
type JointConfigJSON struct {
	Type   string    `json:"type"`
	Axis   []float64 `json:"axis"`
	Anchor []float64 `json:"anchor"`
}

// Description is a fully parsed robot description: everything a DH extraction needs.
type Description struct {
	Name        string
	Joints      []Joint
	Base        mgl64.Mat4
	EndEffector mgl64.Mat4
	Convention  Convention
}

// Table extracts the DH table for the described robot.
func (d *Description) Table() (*Table, error) {
	return NewWithConvention(d.Joints, d.Base, d.EndEffector, d.Convention)
}

// UnmarshalRobotJSON parses the given JSON data into a robot description.
func UnmarshalRobotJSON(jsonData []byte) (*Description, error) {
	cfg := &RobotConfigJSON{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return cfg.ParseConfig()
}

// ParseRobotJSONFile reads a robot description from the given path.
func ParseRobotJSONFile(filename string) (*Description, error) {
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalRobotJSON(jsonData)
}

// ParseConfig validates the raw configuration and converts it into a Description. All validation
// failures are reported, not just the first.
func (cfg *RobotConfigJSON) ParseConfig() (*Description, error) {
	var err error

	convention := Standard
	switch strings.ToLower(cfg.Convention) {
	case "", "standard":
	case "modified":
		convention = Modified
	default:
		err = multierr.Append(err, newUnsupportedConventionError(cfg.Convention))
	}

	base := mgl64.Ident4()
	if len(cfg.Base) != 0 {
		base, err = appendMat4(err, "base", cfg.Base)
		if len(cfg.Base) == 16 {
			err = multierr.Append(err, errors.Wrap(spatialmath.ValidateRigidTransform(base), "base"))
		}
	}
	ee, err := appendMat4(err, "endEffector", cfg.EndEffector)
	if len(cfg.EndEffector) == 16 {
		err = multierr.Append(err, errors.Wrap(spatialmath.ValidateRigidTransform(ee), "endEffector"))
	}

	joints := make([]Joint, 0, len(cfg.Joints))
	for i, jc := range cfg.Joints {
		var jointType JointType
		switch strings.ToLower(jc.Type) {
		case "fixed":
			jointType = Fixed
		case "revolute":
			jointType = Revolute
		case "prismatic":
			jointType = Prismatic
		default:
			err = multierr.Append(err, newUnsupportedJointTypeError(jc.Type))
			continue
		}
		axis, axisErr := vec3Field("axis", jc.Axis)
		anchor, anchorErr := vec3Field("anchor", jc.Anchor)
		if fieldErr := multierr.Combine(axisErr, anchorErr); fieldErr != nil {
			err = multierr.Append(err, errors.Wrapf(fieldErr, "joint %d", i))
			continue
		}
		joint, jointErr := NewJoint(axis, anchor, jointType)
		if jointErr != nil {
			err = multierr.Append(err, errors.Wrapf(jointErr, "joint %d", i))
			continue
		}
		joints = append(joints, joint)
	}

	if err != nil {
		return nil, err
	}
	return &Description{
		Name:        cfg.Name,
		Joints:      joints,
		Base:        base,
		EndEffector: ee,
		Convention:  convention,
	}, nil
}

func appendMat4(err error, field string, values []float64) (mgl64.Mat4, error) {
	if len(values) != 16 {
		return mgl64.Ident4(), multierr.Append(err, newBadFieldLengthError(field, len(values), 16))
	}
	var m mgl64.Mat4
	for i, v := range values {
		m.Set(i/4, i%4, v)
	}
	return m, err
}

func vec3Field(field string, values []float64) (r3.Vector, error) {
	if len(values) != 3 {
		return r3.Vector{}, newBadFieldLengthError(field, len(values), 3)
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}
