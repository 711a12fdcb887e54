package tamp

import (
	"fmt"

	"github.com/pkg/errors"

	spatial "go.viam.com/tamp/spatialmath"
)

// Pose is a rigid transform of a child model relative to a parent frame, e.g.
// an object relative to the world or relative to a gripper. The transform is
// stored relative to the parent, never in world coordinates: Assign composes
// the parent's current world transform with the stored transform, so a Pose
// stays valid even if the parent frame has moved since creation.
type Pose struct {
	scene     Scene
	parent    string
	child     string
	transform spatial.Pose
}

// NewPose creates a Pose of the named child model relative to the named
// parent frame. Immutable after construction.
func NewPose(scene Scene, parent, child string, transform spatial.Pose) *Pose {
	return &Pose{scene: scene, parent: parent, child: child, transform: transform}
}

// Parent returns the name of the parent frame.
func (p *Pose) Parent() string {
	return p.parent
}

// Child returns the name of the child model.
func (p *Pose) Child() string {
	return p.child
}

// Transform returns the stored transform of the child relative to the parent.
func (p *Pose) Transform() spatial.Pose {
	return p.transform
}

// Bodies returns the set of rigid bodies belonging to the child model,
// derived from the scene on every call.
func (p *Pose) Bodies() BodySet {
	return NewBodySet(p.scene.ModelBodies(p.child)...)
}

// Assign recomputes the child's world placement from the parent's current
// world transform and writes it into the given state.
func (p *Pose) Assign(state State) error {
	parentPose, err := state.RelativeTransform(p.parent)
	if err != nil {
		return errors.Wrapf(err, "assigning pose of %q", p.child)
	}
	return state.SetWorldPose(p.child, spatial.Compose(parentPose, p.transform))
}

func (p *Pose) String() string {
	return fmt.Sprintf("Pose(%s->%s)", p.child, p.parent)
}
