package tamp

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	spatial "go.viam.com/tamp/spatialmath"
)

func TestPoseAssignComposesParent(t *testing.T) {
	w := newTestWorld()

	// blockA held 0.1 in front of the gripper body
	rel := spatial.NewPoseFromPoint(r3.Vector{X: 0, Y: 0.1, Z: 0})
	grasp := NewPose(w, "gripper_body", "blockA", rel)
	test.That(t, grasp.Parent(), test.ShouldEqual, "gripper_body")
	test.That(t, grasp.Child(), test.ShouldEqual, "blockA")

	w.worldPoses["gripper"] = spatial.NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, grasp.Assign(w), test.ShouldBeNil)
	got := w.worldPoses["blockA"]
	test.That(t, got.Point().X, test.ShouldAlmostEqual, 1)
	test.That(t, got.Point().Y, test.ShouldAlmostEqual, 2.1)
	test.That(t, got.Point().Z, test.ShouldAlmostEqual, 3)

	// the parent moved: reassignment recomputes from the current parent pose
	w.worldPoses["gripper"] = spatial.NewPoseFromPoint(r3.Vector{X: -1, Y: 0, Z: 0})
	test.That(t, grasp.Assign(w), test.ShouldBeNil)
	got = w.worldPoses["blockA"]
	test.That(t, got.Point().X, test.ShouldAlmostEqual, -1)
	test.That(t, got.Point().Y, test.ShouldAlmostEqual, 0.1)
	test.That(t, got.Point().Z, test.ShouldAlmostEqual, 0)
}

func TestPoseAssignIdempotent(t *testing.T) {
	w := newTestWorld()
	pose := NewPose(w, WorldFrame, "blockA", spatial.NewPoseFromPoint(r3.Vector{X: 0.2, Y: 0.3, Z: 0.075}))

	test.That(t, pose.Assign(w), test.ShouldBeNil)
	first := w.worldPoses["blockA"]
	test.That(t, pose.Assign(w), test.ShouldBeNil)
	second := w.worldPoses["blockA"]
	test.That(t, spatial.PoseAlmostCoincident(first, second), test.ShouldBeTrue)
}

func TestPoseBodies(t *testing.T) {
	w := newTestWorld()
	pose := NewPose(w, WorldFrame, "r1", spatial.NewZeroPose())
	bodies := pose.Bodies()
	test.That(t, len(bodies), test.ShouldEqual, 3)
	test.That(t, bodies.Contains(Body{Model: "r1", Name: "r1_link2"}), test.ShouldBeTrue)
	test.That(t, bodies.Contains(Body{Model: "blockA", Name: "blockA_body"}), test.ShouldBeFalse)
}

func TestPoseAssignUnknownParent(t *testing.T) {
	w := newTestWorld()
	pose := NewPose(w, "nosuchframe", "blockA", spatial.NewZeroPose())
	test.That(t, pose.Assign(w), test.ShouldNotBeNil)
}
