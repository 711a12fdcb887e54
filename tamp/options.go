package tamp

import (
	"math"

	"github.com/golang/geo/r3"
)

// default values for synthesis options.
const (
	// Abort a pick solve after this many consecutive failed attempts. Total
	// attempts are unbounded as long as successes are not too sparse.
	defaultMaxFailures = 5

	// Length of the straight-line gripper approach to a grasp.
	defaultApproachDistance = 0.1

	// Cartesian spacing between interpolated approach waypoints.
	defaultApproachStep = 0.035

	// Pitch for sampled box grasps. Both band ends equal fixes the approach
	// angle.
	defaultGraspPitch = 2 * math.Pi / 5

	// Flat retry budget for pull solves, with no fatigue carry-over.
	defaultPullMaxAttempts = 25

	// Angular resolution for discretizing an articulated joint sweep.
	defaultPullStepSize = math.Pi / 16

	// Pitch for handle grasps.
	defaultHandlePitch = math.Pi / 2

	// Standoff between the gripper frame and the handle surface.
	defaultHandleGraspLength = 0.02

	// Shape tag expected of the graspable handle geometry.
	defaultHandleShape = "cylinder"

	// Grasp orientation index corresponding to a +y handle approach.
	defaultHandleOrientation = 1

	// Number of visual geometries scanned when looking for the handle shape.
	defaultHandleVisualScan = 2

	// Joint planner tuning.
	defaultPlannerRestarts   = 7
	defaultPlannerIterations = 75
	defaultPlannerSmoothIter = 100
)

// defaultApproachVector is the unit direction of the gripper approach,
// expressed in the target gripper frame.
var defaultApproachVector = r3.Vector{X: 0, Y: -1, Z: 0}

// Options are the tuning constants for generators and synthesizers. Zero
// values are not usable defaults; start from DefaultOptions.
type Options struct {
	// MaxFailures is the fatigue threshold of the pick retry loop.
	MaxFailures int `json:"max_failures"`
	// ApproachVector is the approach direction in the target gripper frame,
	// scaled by ApproachDistance.
	ApproachVector r3.Vector `json:"approach_vector"`
	// ApproachDistance is the length of the Cartesian approach segment.
	ApproachDistance float64 `json:"approach_distance"`
	// ApproachStep is the spacing between approach waypoints.
	ApproachStep float64 `json:"approach_step"`
	// GraspPitchMin and GraspPitchMax bound the grasp approach pitch band.
	GraspPitchMin float64 `json:"grasp_pitch_min"`
	GraspPitchMax float64 `json:"grasp_pitch_max"`
	// PullMaxAttempts is the flat retry budget of the pull loop.
	PullMaxAttempts int `json:"pull_max_attempts"`
	// PullStepSize is the angular resolution of the articulated sweep.
	PullStepSize float64 `json:"pull_step_size"`
	// HandlePitch is the fixed pitch of the handle grasp.
	HandlePitch float64 `json:"handle_pitch"`
	// HandleGraspLength is the handle grasp standoff.
	HandleGraspLength float64 `json:"handle_grasp_length"`
	// HandleShape is the shape tag identifying the graspable handle geometry.
	HandleShape string `json:"handle_shape"`
	// HandleOrientation is the grasp orientation index used for handles.
	HandleOrientation int `json:"handle_orientation"`
	// HandleVisualScan is how many visual indices to scan for HandleShape.
	HandleVisualScan int `json:"handle_visual_scan"`
	// Planner tunes the sampling-based joint planner.
	Planner PlannerOptions `json:"planner"`

	// PlacementSampler draws candidate stable placements.
	PlacementSampler PlacementSampler `json:"-"`
	// GraspSampler produces candidate grasp transforms.
	GraspSampler GraspSampler `json:"-"`
}

// DefaultOptions returns the standard tuning constants with the reference
// samplers wired in.
func DefaultOptions() *Options {
	return &Options{
		MaxFailures:       defaultMaxFailures,
		ApproachVector:    defaultApproachVector,
		ApproachDistance:  defaultApproachDistance,
		ApproachStep:      defaultApproachStep,
		GraspPitchMin:     defaultGraspPitch,
		GraspPitchMax:     defaultGraspPitch,
		PullMaxAttempts:   defaultPullMaxAttempts,
		PullStepSize:      defaultPullStepSize,
		HandlePitch:       defaultHandlePitch,
		HandleGraspLength: defaultHandleGraspLength,
		HandleShape:       defaultHandleShape,
		HandleOrientation: defaultHandleOrientation,
		HandleVisualScan:  defaultHandleVisualScan,
		Planner: PlannerOptions{
			Restarts:   defaultPlannerRestarts,
			Iterations: defaultPlannerIterations,
			SmoothIter: defaultPlannerSmoothIter,
		},
		PlacementSampler: SampleBoxPlacement,
		GraspSampler:     SampleBoxGrasps,
	}
}
