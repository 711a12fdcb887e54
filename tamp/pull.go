package tamp

import (
	"context"

	"github.com/pkg/errors"

	spatial "go.viam.com/tamp/spatialmath"
)

// PlanPull synthesizes a motion that pulls an articulated, door-like body
// between two of its joint configurations by grasping its handle. It returns
// the robot's boundary configurations and a combined trajectory over the
// robot and articulated joints.
//
// The articulated sweep is discretized without collision filtering, a known
// simplification carried from the reference behavior. The workspace solve
// runs over the reversed gripper path so the solver is anchored at the final
// pull position, then the result is reversed back. The retry budget is a flat
// Options.PullMaxAttempts with no fatigue carry-over; exhaustion returns
// ErrNoSolution. A missing handle geometry of the expected shape is a fatal
// error.
func (t *Task) PlanPull(
	ctx context.Context,
	state State,
	robot, door string,
	dq1, dq2 *Configuration,
) (*Configuration, *Configuration, *Trajectory, error) {
	robotJoints := t.scene.MovableJoints(robot)
	if len(robotJoints) == 0 {
		return nil, nil, nil, errors.Errorf("robot model %q has no movable joints", robot)
	}
	frame, err := t.gripperFrame()
	if err != nil {
		return nil, nil, nil, err
	}
	doorBody, ok := t.scene.BodyByName(door)
	if !ok {
		return nil, nil, nil, errors.Errorf("no body named %q", door)
	}
	moving := bodiesFromModels(t.scene, robot, t.gripper)
	pairs := pairProduct(moving, t.fixedBodies())
	collides := t.collisionPredicate(ctx, state, robotJoints, pairs, nil)

	// Discretize the articulated sweep and record the body pose at each step.
	doorJoints := dq1.Joints()
	resolutions := make([]float64, len(doorJoints))
	for i := range resolutions {
		resolutions[i] = t.opts.PullStepSize
	}
	extension, err := ExtendJointPath(dq1.Positions(), dq2.Positions(), resolutions)
	if err != nil {
		return nil, nil, nil, err
	}
	doorPath := append([][]float64{dq1.Positions()}, extension...)
	doorCartesianPath := make([]spatial.Pose, 0, len(doorPath))
	for _, positions := range doorPath {
		conf, err := NewConfiguration(doorJoints, positions)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := conf.Assign(state); err != nil {
			return nil, nil, nil, err
		}
		doorPose, err := state.BodyPose(doorBody)
		if err != nil {
			return nil, nil, nil, err
		}
		doorCartesianPath = append(doorCartesianPath, doorPose)
	}

	// Find the handle geometry and fix a single grasp on it.
	var handle BoxGeometry
	found := false
	for visual := 0; visual < t.opts.HandleVisualScan; visual++ {
		geom, err := t.geometry.BoundingBox(doorBody.Model, door, visual)
		if err != nil {
			continue
		}
		if geom.Shape == t.opts.HandleShape {
			handle = geom
			found = true
			break
		}
	}
	if !found {
		return nil, nil, nil, errors.Errorf("no %q geometry found on %q", t.opts.HandleShape, door)
	}
	handleGrasps := t.opts.GraspSampler(handle.Box, GraspGeometry{
		PitchMin:     t.opts.HandlePitch,
		PitchMax:     t.opts.HandlePitch,
		Orientations: []int{t.opts.HandleOrientation},
		GraspLength:  t.opts.HandleGraspLength,
	})
	if len(handleGrasps) != 1 {
		return nil, nil, nil, errors.Errorf("expected exactly one handle grasp, got %d", len(handleGrasps))
	}
	gripperFromDoor := spatial.Compose(handleGrasps[0], spatial.PoseInverse(handle.LocalOffset))

	pullPath := make([]spatial.Pose, 0, len(doorCartesianPath))
	for _, doorPose := range doorCartesianPath {
		pullPath = append(pullPath, spatial.Compose(doorPose, spatial.PoseInverse(gripperFromDoor)))
	}
	reversedPull := reversePoses(pullPath)

	for attempt := 0; attempt < t.opts.PullMaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		// Solve end-to-start so the solver is anchored at the final pull
		// position, then restore the original order.
		waypoints, err := t.workspace.SolveWorkspace(ctx, state, robotJoints, frame, reversedPull, nil, collides)
		if err != nil {
			t.logger.Debugf("pull attempt %d: workspace solve failed: %s", attempt+1, err)
			continue
		}
		if len(waypoints) != len(doorPath) {
			t.logger.Debugf("pull attempt %d: got %d waypoints for %d door steps", attempt+1, len(waypoints), len(doorPath))
			continue
		}
		waypoints = reverseWaypoints(waypoints)

		rq1, err := NewConfiguration(robotJoints, waypoints[0])
		if err != nil {
			return nil, nil, nil, err
		}
		rq2, err := NewConfiguration(robotJoints, waypoints[len(waypoints)-1])
		if err != nil {
			return nil, nil, nil, err
		}

		combinedJoints := make([]Joint, 0, len(robotJoints)+len(doorJoints))
		combinedJoints = append(combinedJoints, robotJoints...)
		combinedJoints = append(combinedJoints, doorJoints...)
		combinedWaypoints := make([][]float64, 0, len(waypoints))
		for i, rq := range waypoints {
			combined := make([]float64, 0, len(combinedJoints))
			combined = append(combined, rq...)
			combined = append(combined, doorPath[i]...)
			combinedWaypoints = append(combinedWaypoints, combined)
		}
		// Collision is already bounded by the per-segment workspace solve.
		path, err := t.waypoints.PlanThroughWaypoints(ctx, combinedJoints, combinedWaypoints, func([]float64) bool { return false })
		if err != nil {
			t.logger.Debugf("pull attempt %d: combined waypoint planning failed: %s", attempt+1, err)
			continue
		}
		traj, err := newJointTrajectory(combinedJoints, path)
		if err != nil {
			return nil, nil, nil, err
		}
		return rq1, rq2, traj, nil
	}
	return nil, nil, nil, ErrNoSolution
}

func reversePoses(path []spatial.Pose) []spatial.Pose {
	reversed := make([]spatial.Pose, len(path))
	for i, pose := range path {
		reversed[len(path)-1-i] = pose
	}
	return reversed
}

func reverseWaypoints(waypoints [][]float64) [][]float64 {
	reversed := make([][]float64, len(waypoints))
	for i, waypoint := range waypoints {
		reversed[len(waypoints)-1-i] = waypoint
	}
	return reversed
}
