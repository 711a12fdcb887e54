package tamp

import (
	"context"
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// TaskConfig wires a Task to its external collaborators and names the actors
// of the planning problem.
type TaskConfig struct {
	Scene     Scene
	Geometry  GeometryIndex
	Collision CollisionChecker
	Workspace WorkspaceSolver
	Waypoints WaypointPlanner
	Planner   MotionPlanner

	// Robot and Gripper name the mover and end effector model instances.
	Robot   string
	Gripper string
	// Fixed lists the static bodies treated as obstacles everywhere.
	Fixed []Body
	// Collisions is the master collision-checking toggle.
	Collisions bool

	Logger golog.Logger
	// Seed is the randomness source for sampling. Defaults to a fixed seed.
	Seed *rand.Rand
	// Options overrides tuning constants; nil uses DefaultOptions.
	Options *Options
}

// Task is an immutable per-problem planning context. All generators and
// synthesizers hang off a Task; the mutable simulation State is passed into
// each call instead.
type Task struct {
	scene     Scene
	geometry  GeometryIndex
	collision CollisionChecker
	workspace WorkspaceSolver
	waypoints WaypointPlanner
	planner   MotionPlanner

	robot      string
	gripper    string
	fixed      BodySet
	collisions bool

	logger golog.Logger
	random *rand.Rand
	opts   Options
}

// NewTask validates the wiring and returns an immutable Task.
func NewTask(cfg TaskConfig) (*Task, error) {
	var err error
	if cfg.Scene == nil {
		err = multierr.Append(err, errors.New("scene is required"))
	}
	if cfg.Geometry == nil {
		err = multierr.Append(err, errors.New("geometry index is required"))
	}
	if cfg.Collisions && cfg.Collision == nil {
		err = multierr.Append(err, errors.New("collision checker is required when collisions are enabled"))
	}
	if cfg.Workspace == nil {
		err = multierr.Append(err, errors.New("workspace solver is required"))
	}
	if cfg.Waypoints == nil {
		err = multierr.Append(err, errors.New("waypoint planner is required"))
	}
	if cfg.Planner == nil {
		err = multierr.Append(err, errors.New("motion planner is required"))
	}
	if cfg.Logger == nil {
		err = multierr.Append(err, errors.New("logger is required"))
	}
	if err != nil {
		return nil, err
	}
	if len(cfg.Scene.ModelBodies(cfg.Robot)) == 0 {
		return nil, errors.Errorf("robot model %q has no bodies", cfg.Robot)
	}
	if len(cfg.Scene.ModelBodies(cfg.Gripper)) == 0 {
		return nil, errors.Errorf("gripper model %q has no bodies", cfg.Gripper)
	}

	opts := DefaultOptions()
	if cfg.Options != nil {
		opts = cfg.Options
	}
	random := cfg.Seed
	if random == nil {
		random = rand.New(rand.NewSource(1))
	}
	return &Task{
		scene:      cfg.Scene,
		geometry:   cfg.Geometry,
		collision:  cfg.Collision,
		workspace:  cfg.Workspace,
		waypoints:  cfg.Waypoints,
		planner:    cfg.Planner,
		robot:      cfg.Robot,
		gripper:    cfg.Gripper,
		fixed:      NewBodySet(cfg.Fixed...),
		collisions: cfg.Collisions,
		logger:     cfg.Logger,
		random:     random,
		opts:       *opts,
	}, nil
}

// Robot returns the name of the mover model.
func (t *Task) Robot() string {
	return t.robot
}

// Gripper returns the name of the end effector model.
func (t *Task) Gripper() string {
	return t.gripper
}

// Options returns the task's tuning constants.
func (t *Task) Options() Options {
	return t.opts
}

// fixedBodies returns the static obstacle set, empty when collision checking
// is disabled.
func (t *Task) fixedBodies() BodySet {
	if !t.collisions {
		return BodySet{}
	}
	return t.fixed
}

// gripperFrame returns the name of the gripper's base body frame.
func (t *Task) gripperFrame() (string, error) {
	base, ok := t.scene.BaseBody(t.gripper)
	if !ok {
		return "", errors.Errorf("gripper model %q has no base body", t.gripper)
	}
	return base.Name, nil
}

// collisionPredicate builds the live CollisionFn handed to solvers: it
// assigns the candidate joint positions and any attachments into state, then
// queries the checker over the given pairs. With no pairs it never reports a
// collision.
func (t *Task) collisionPredicate(
	ctx context.Context,
	state State,
	joints []Joint,
	pairs []BodyPair,
	attachments []*Pose,
) CollisionFn {
	if len(pairs) == 0 {
		return func([]float64) bool { return false }
	}
	return func(positions []float64) bool {
		if len(positions) != len(joints) {
			return true
		}
		for i, joint := range joints {
			if err := state.SetJointPosition(joint, positions[i]); err != nil {
				return true
			}
		}
		for _, attachment := range attachments {
			if err := attachment.Assign(state); err != nil {
				return true
			}
		}
		colliding, err := t.collision.CollidingPairExists(ctx, state, pairs)
		return err != nil || colliding
	}
}
