package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// errHintZeroVector is returned when identical lines require a tie-breaking
// hint but the caller supplied the zero vector.
var errHintZeroVector = errors.New("hint is the zero vector")

// returns an error indicating a line was constructed with a non-unit direction
func newDirectionNotUnitError(direction r3.Vector) error {
	return errors.Errorf("direction vector is not normalized: %v has norm %f", direction, direction.Norm())
}

// returns an error indicating the tie-breaking hint does not lie in the plane
// perpendicular to the shared line direction
func newHintNotPerpendicularError(hint r3.Vector) error {
	return errors.Errorf("hint %v is not perpendicular to the line", hint)
}

// returns an error indicating the line pair landed on a configuration the
// case classification should have excluded
func newSingularConfigurationError() error {
	return errors.New("lines are in a singular configuration that cannot be solved")
}

// returns an error indicating a 4x4 matrix is not a rigid transform
func newNotRigidTransformError(reason string) error {
	return errors.Errorf("matrix is not a rigid transform: %s", reason)
}
