package tamp

import (
	"context"

	"github.com/pkg/errors"
)

// PlanFreeMotion synthesizes a collision-free joint motion of the robot from
// one configuration to another, scoping the moving and obstacle body sets
// from the given fluents: atconf and atpose facts are applied to state and
// their bodies become obstacles; atgrasp facts become attachments whose
// bodies travel with the gripper. A body can never be in both sets.
//
// An unrecognized fluent predicate is a fatal error. Planner failure returns
// ErrNoSolution.
func (t *Task) PlanFreeMotion(
	ctx context.Context,
	state State,
	robot string,
	q1, q2 *Configuration,
	fluents []Fluent,
) (*Trajectory, error) {
	joints := t.scene.MovableJoints(robot)
	if len(joints) == 0 {
		return nil, errors.Errorf("robot model %q has no movable joints", robot)
	}

	moving := bodiesFromModels(t.scene, robot, t.gripper)
	obstacles := t.fixed.Clone()
	var attachments []*Pose
	for _, fact := range fluents {
		switch fact.Predicate {
		case AtConf:
			if fact.Conf == nil {
				return nil, errors.Errorf("atconf fluent for %q has no configuration", fact.Name)
			}
			if err := fact.Conf.Assign(state); err != nil {
				return nil, errors.Wrapf(err, "applying atconf fluent for %q", fact.Name)
			}
			obstacles.AddSet(fact.Conf.Bodies())
		case AtPose:
			if fact.Pose == nil {
				return nil, errors.Errorf("atpose fluent for %q has no pose", fact.Name)
			}
			if err := fact.Pose.Assign(state); err != nil {
				return nil, errors.Wrapf(err, "applying atpose fluent for %q", fact.Name)
			}
			obstacles.AddSet(fact.Pose.Bodies())
		case AtGrasp:
			if fact.Pose == nil {
				return nil, errors.Errorf("atgrasp fluent for %q has no grasp", fact.Name)
			}
			attachments = append(attachments, fact.Pose)
			moving.AddSet(fact.Pose.Bodies())
		default:
			return nil, errors.Errorf("unrecognized fluent predicate %q", fact.Predicate)
		}
	}
	obstacles.SubtractSet(moving)

	var pairs []BodyPair
	if t.collisions {
		pairs = pairProduct(moving, obstacles)
	}
	collides := t.collisionPredicate(ctx, state, joints, pairs, attachments)

	if open := t.scene.GripperOpenConfiguration(t.gripper); open != nil {
		if err := open.Assign(state); err != nil {
			return nil, errors.Wrap(err, "opening gripper")
		}
	}
	if err := q1.Assign(state); err != nil {
		return nil, errors.Wrap(err, "assigning start configuration")
	}

	path, err := t.planner.PlanJointMotion(ctx, joints, q1.Positions(), q2.Positions(), collides, t.opts.Planner)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.logger.Debugf("free motion planning failed: %s", err)
		return nil, ErrNoSolution
	}
	return newJointTrajectory(joints, path, attachments...)
}
