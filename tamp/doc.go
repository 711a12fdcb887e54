// Package tamp bridges a symbolic task planner and continuous motion solvers.
// It produces lazy streams of candidate placements and grasps, synthesizes
// collision-free approach and pull trajectories under bounded-retry policies,
// and scopes collision checking per call from symbolic world-state fluents.
//
// The package owns orchestration and the continuous data model only. Forward
// kinematics, collision geometry, numerical IK, and sampling-based joint-space
// planning are consumed through the narrow interfaces in scene.go.
package tamp
