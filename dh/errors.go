package dh

import "github.com/pkg/errors"

// NewIncorrectDoFError returns an error for a Forward call whose value count does not match the
// table's degrees of freedom.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of joint values (%d) does not match table degrees of freedom (%d)", actual, expected)
}

// returns an error indicating a robot description used an unknown joint type
func newUnsupportedJointTypeError(jointType string) error {
	return errors.Errorf("unsupported joint type: %s, supported types are fixed, revolute and prismatic", jointType)
}

// returns an error indicating a robot description used an unknown convention
func newUnsupportedConventionError(convention string) error {
	return errors.Errorf("unsupported convention: %s, supported conventions are standard and modified", convention)
}

// returns an error indicating a description field does not have the required number of elements
func newBadFieldLengthError(field string, actual, expected int) error {
	return errors.Errorf("field %q must have %d elements, got %d", field, expected, actual)
}
