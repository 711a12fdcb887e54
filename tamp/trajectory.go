package tamp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Trajectory is an ordered sequence of Configurations over a shared joint
// set, plus optional attachments: Poses that must be re-applied at every step
// to keep rigidly-carried objects consistent with the moving frame. Immutable
// after construction.
type Trajectory struct {
	path []*Configuration
	// attachments are applied in list order at each step, not in dependency
	// order; nested attachments must be listed parent-first.
	attachments []*Pose
}

// NewTrajectory builds a Trajectory from a non-empty path. The first
// configuration's joint set is authoritative; every configuration must have
// the same number of joints.
func NewTrajectory(path []*Configuration, attachments ...*Pose) (*Trajectory, error) {
	if len(path) == 0 {
		return nil, errors.New("trajectory requires at least one configuration")
	}
	numJoints := len(path[0].Joints())
	for i, conf := range path[1:] {
		if len(conf.Joints()) != numJoints {
			return nil, errors.Errorf("trajectory configuration %d has %d joints, expected %d",
				i+1, len(conf.Joints()), numJoints)
		}
	}
	t := &Trajectory{path: make([]*Configuration, len(path))}
	copy(t.path, path)
	if len(attachments) != 0 {
		t.attachments = make([]*Pose, len(attachments))
		copy(t.attachments, attachments)
	}
	return t, nil
}

// Path returns the configurations of the trajectory. Callers must not modify
// the returned slice.
func (t *Trajectory) Path() []*Configuration {
	return t.path
}

// Joints returns the shared joint set of the trajectory.
func (t *Trajectory) Joints() []Joint {
	return t.path[0].Joints()
}

// Attachments returns the carried poses. Callers must not modify the returned
// slice.
func (t *Trajectory) Attachments() []*Pose {
	return t.attachments
}

// Bodies returns the union of the joint child bodies and all attachment
// bodies.
func (t *Trajectory) Bodies() BodySet {
	set := BodySet{}
	for _, joint := range t.Joints() {
		set[joint.Child] = struct{}{}
	}
	for _, attachment := range t.attachments {
		set.AddSet(attachment.Bodies())
	}
	return set
}

// Steps returns a single-pass stepper over the trajectory. Each call to Next
// assigns the next configuration after the first, then reassigns every
// attachment, so attachment state is never stale relative to the
// configuration at that step. A path of length N yields N-1 steps. The
// stepper is not restartable; call Steps again to iterate from the beginning.
func (t *Trajectory) Steps(state State) *TrajectoryStepper {
	return &TrajectoryStepper{traj: t, state: state, next: 1}
}

func (t *Trajectory) String() string {
	return fmt.Sprintf("Trajectory(%d,%d)", len(t.Joints()), len(t.path))
}

// TrajectoryStepper is a single-pass iterator over a Trajectory's steps.
type TrajectoryStepper struct {
	traj  *Trajectory
	state State
	next  int
	err   error
}

// Next advances the trajectory by one step, returning false when the
// trajectory is exhausted or an assignment failed.
func (s *TrajectoryStepper) Next() bool {
	if s.err != nil || s.next >= len(s.traj.path) {
		return false
	}
	if err := s.traj.path[s.next].Assign(s.state); err != nil {
		s.err = errors.Wrapf(err, "trajectory step %d", s.next)
		return false
	}
	for _, attachment := range s.traj.attachments {
		if err := attachment.Assign(s.state); err != nil {
			s.err = errors.Wrapf(err, "trajectory step %d attachment %s", s.next, attachment)
			return false
		}
	}
	s.next++
	return true
}

// Err returns the first assignment error encountered, if any.
func (s *TrajectoryStepper) Err() error {
	return s.err
}
