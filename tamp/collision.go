package tamp

import (
	"context"

	"github.com/pkg/errors"
)

// TrajectoryCollides reports whether the given trajectory would ever collide
// with the named object were it placed at the candidate pose. It
// short-circuits to false when collision checking is disabled or when the
// moving and obstacle body sets admit no candidate pairs; otherwise it
// assigns the pose once and steps the trajectory, querying the checker at
// every step and returning on the first detected collision.
func (t *Task) TrajectoryCollides(
	ctx context.Context,
	state State,
	traj *Trajectory,
	object string,
	pose *Pose,
) (bool, error) {
	if !t.collisions {
		return false, nil
	}
	moving := bodiesFromModels(t.scene, t.robot, t.gripper)
	moving.AddSet(traj.Bodies())
	obstacles := pose.Bodies()
	obstacles.SubtractSet(moving)
	pairs := pairProduct(moving, obstacles)
	if len(pairs) == 0 {
		return false, nil
	}
	if err := pose.Assign(state); err != nil {
		return false, errors.Wrapf(err, "placing %q for collision test", object)
	}
	steps := traj.Steps(state)
	for steps.Next() {
		colliding, err := t.collision.CollidingPairExists(ctx, state, pairs)
		if err != nil {
			return false, err
		}
		if colliding {
			return true, nil
		}
	}
	return false, steps.Err()
}
