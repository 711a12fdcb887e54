package tamp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Configuration is a joint-space assignment: an ordered list of joint handles
// paired one-to-one with scalar positions. Immutable after construction.
type Configuration struct {
	joints    []Joint
	positions []float64
}

// NewConfiguration pairs joints with positions. A count mismatch is a
// contract breach and fails immediately.
func NewConfiguration(joints []Joint, positions []float64) (*Configuration, error) {
	if len(joints) != len(positions) {
		return nil, errors.Errorf("configuration requires one position per joint: %d joints, %d positions",
			len(joints), len(positions))
	}
	c := &Configuration{
		joints:    make([]Joint, len(joints)),
		positions: make([]float64, len(positions)),
	}
	copy(c.joints, joints)
	copy(c.positions, positions)
	return c, nil
}

// Joints returns the joint handles. Callers must not modify the returned slice.
func (c *Configuration) Joints() []Joint {
	return c.joints
}

// Positions returns the joint positions. Callers must not modify the returned
// slice.
func (c *Configuration) Positions() []float64 {
	return c.positions
}

// Bodies returns the set of each joint's child body.
func (c *Configuration) Bodies() BodySet {
	set := make(BodySet, len(c.joints))
	for _, joint := range c.joints {
		set[joint.Child] = struct{}{}
	}
	return set
}

// Assign writes each joint's position into the given state.
func (c *Configuration) Assign(state State) error {
	for i, joint := range c.joints {
		if err := state.SetJointPosition(joint, c.positions[i]); err != nil {
			return errors.Wrapf(err, "assigning joint %q of %q", joint.Name, joint.Model)
		}
	}
	return nil
}

func (c *Configuration) String() string {
	return fmt.Sprintf("Configuration(%d)", len(c.joints))
}
