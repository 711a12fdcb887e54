package tamp

import (
	"context"

	"github.com/pkg/errors"

	spatial "go.viam.com/tamp/spatialmath"
)

// PlanPick synthesizes an approach motion that brings the gripper to the
// given grasp of an object at the given placement. It returns the final
// configuration of the approach together with the full trajectory.
//
// The retry loop uses a fatigue policy: it aborts only once the number of
// attempts since the last success reaches Options.MaxFailures, so arbitrarily
// many total attempts are allowed as long as successes are not too sparse.
// Exhaustion returns ErrNoSolution.
func (t *Task) PlanPick(
	ctx context.Context,
	state State,
	robot, object string,
	pose, grasp *Pose,
) (*Configuration, *Trajectory, error) {
	joints := t.scene.MovableJoints(robot)
	if len(joints) == 0 {
		return nil, nil, errors.Errorf("robot model %q has no movable joints", robot)
	}
	frame, err := t.gripperFrame()
	if err != nil {
		return nil, nil, err
	}
	moving := bodiesFromModels(t.scene, robot, t.gripper)
	pairs := pairProduct(moving, t.fixedBodies())
	collides := t.collisionPredicate(ctx, state, joints, pairs, nil)

	// target world pose of the gripper frame at the grasp
	graspPose := spatial.Compose(pose.Transform(), spatial.PoseInverse(grasp.Transform()))
	approach := t.opts.ApproachVector.Mul(t.opts.ApproachDistance)
	gripperPath := interpolateTranslation(graspPose, approach, t.opts.ApproachStep)

	attempts := 0
	lastSuccess := 0
	for attempts-lastSuccess < t.opts.MaxFailures {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		attempts++
		waypoints, err := t.workspace.SolveWorkspace(ctx, state, joints, frame, gripperPath, nil, collides)
		if err != nil {
			t.logger.Debugf("pick attempt %d: workspace solve failed: %s", attempts, err)
			continue
		}
		path, err := t.waypoints.PlanThroughWaypoints(ctx, joints, waypoints, collides)
		if err != nil {
			t.logger.Debugf("pick attempt %d: waypoint planning failed: %s", attempts, err)
			continue
		}
		traj, err := newJointTrajectory(joints, path)
		if err != nil {
			return nil, nil, err
		}
		t.logger.Debugf("pick solved after %d attempts", attempts-lastSuccess)
		return traj.Path()[len(traj.Path())-1], traj, nil
	}
	return nil, nil, ErrNoSolution
}

// newJointTrajectory wraps a raw joint path over a fixed joint set as a
// Trajectory.
func newJointTrajectory(joints []Joint, path [][]float64, attachments ...*Pose) (*Trajectory, error) {
	confs := make([]*Configuration, 0, len(path))
	for _, positions := range path {
		conf, err := NewConfiguration(joints, positions)
		if err != nil {
			return nil, err
		}
		confs = append(confs, conf)
	}
	return NewTrajectory(confs, attachments...)
}
