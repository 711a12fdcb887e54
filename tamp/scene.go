package tamp

import (
	"context"
	"math/rand"

	spatial "go.viam.com/tamp/spatialmath"
)

// WorldFrame is the name of the root frame against which world poses are
// expressed. Body frames are named by their body.
const WorldFrame = "world"

// Body is a handle to a rigid body within a model instance.
type Body struct {
	Model string
	Name  string
}

// Joint is a handle to a movable joint: its owning model, its name, and the
// body it moves.
type Joint struct {
	Model string
	Name  string
	Child Body
}

// State is the mutable simulation context owned by the caller. Every Assign
// and collision query writes into or reads from a State; assignments are
// destructive, and callers sharing one State across planning branches must
// serialize access externally.
type State interface {
	// RelativeTransform returns the current world transform of the named frame.
	RelativeTransform(frame string) (spatial.Pose, error)
	// SetWorldPose writes the world pose of the named model's base.
	SetWorldPose(model string, pose spatial.Pose) error
	// SetJointPosition writes a single joint position.
	SetJointPosition(joint Joint, position float64) error
	// BodyPose returns the current world pose of the given body.
	BodyPose(body Body) (spatial.Pose, error)
}

// Scene describes the static topology of the world: which bodies and joints
// belong to which model. Lookups on unknown names return zero values.
type Scene interface {
	// ModelBodies returns the rigid bodies of the named model, nil if unknown.
	ModelBodies(model string) []Body
	// MovableJoints returns the movable joints of the named model in
	// kinematic order.
	MovableJoints(model string) []Joint
	// BaseBody returns the base (reference) body of the named model.
	BaseBody(model string) (Body, bool)
	// BodyByName returns the body with the given name.
	BodyByName(name string) (Body, bool)
	// GripperOpenConfiguration returns the canonical open configuration for a
	// gripper model, nil if the model has none.
	GripperOpenConfiguration(model string) *Configuration
}

// BoxGeometry is the bounding geometry of one visual of a body: an
// axis-aligned box in its own frame, the offset of that frame relative to the
// body, and a shape tag.
type BoxGeometry struct {
	Box         spatial.AxisAlignedBox
	LocalOffset spatial.Pose
	Shape       string
}

// GeometryIndex resolves bounding geometry per (model, body, visual index).
type GeometryIndex interface {
	BoundingBox(model, body string, visual int) (BoxGeometry, error)
}

// BodyPair names an unordered pair of bodies to be checked for collision.
type BodyPair struct {
	First, Second Body
}

// CollisionChecker answers pairwise collision queries against a State.
type CollisionChecker interface {
	// CollidingPairExists reports whether any of the given pairs collide in
	// the given state.
	CollidingPairExists(ctx context.Context, state State, pairs []BodyPair) (bool, error)
}

// CollisionFn reports whether a joint configuration is in collision. Solvers
// call it at every candidate configuration they consider.
type CollisionFn func(positions []float64) bool

// WorkspaceSolver solves per-waypoint Cartesian IK: one joint waypoint per
// pose along the path, or an error when any waypoint is unreachable or in
// collision. A non-nil seed biases the first waypoint's solve.
type WorkspaceSolver interface {
	SolveWorkspace(
		ctx context.Context,
		state State,
		joints []Joint,
		frame string,
		path []spatial.Pose,
		seed []float64,
		collides CollisionFn,
	) ([][]float64, error)
}

// WaypointPlanner connects joint waypoints into a single continuous
// collision-free joint path visiting them in order.
type WaypointPlanner interface {
	PlanThroughWaypoints(
		ctx context.Context,
		joints []Joint,
		waypoints [][]float64,
		collides CollisionFn,
	) ([][]float64, error)
}

// PlannerOptions tunes the sampling-based joint planner.
type PlannerOptions struct {
	Restarts   int `json:"restarts"`
	Iterations int `json:"iterations"`
	SmoothIter int `json:"smooth_iter"`
}

// MotionPlanner is a sampling-based joint-space planner with restarts and
// smoothing. Implementations must call collides on every candidate
// configuration, including intermediate interpolated ones.
type MotionPlanner interface {
	PlanJointMotion(
		ctx context.Context,
		joints []Joint,
		start, goal []float64,
		collides CollisionFn,
		opts PlannerOptions,
	) ([][]float64, error)
}

// PlacementSampler draws one random stable placement of the object box within
// the surface box footprint, as a transform of the object box frame relative
// to the surface box frame.
type PlacementSampler func(object, surface spatial.AxisAlignedBox, r *rand.Rand) spatial.Pose

// GraspGeometry constrains the grasps produced by a GraspSampler.
type GraspGeometry struct {
	// PitchMin and PitchMax bound the approach pitch band in radians. Equal
	// values fix the pitch.
	PitchMin float64
	PitchMax float64
	// Orientations selects which quarter-turn yaw indices (0-3) to produce.
	// Nil produces all four.
	Orientations []int
	// GraspLength is the standoff between the gripper frame and the box
	// surface it approaches.
	GraspLength float64
}

// GraspSampler produces candidate gripper transforms relative to a bounding
// box. Candidates are purely geometric; feasibility is deferred to the IK and
// motion stages.
type GraspSampler func(box spatial.AxisAlignedBox, geom GraspGeometry) []spatial.Pose
