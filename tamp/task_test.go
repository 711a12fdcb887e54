package tamp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	spatial "go.viam.com/tamp/spatialmath"
)

func mustNewConfiguration(joints []Joint, positions []float64) *Configuration {
	conf, err := NewConfiguration(joints, positions)
	if err != nil {
		panic(err)
	}
	return conf
}

func mustBox(dims r3.Vector) spatial.AxisAlignedBox {
	box, err := spatial.NewAxisAlignedBoxFromDims(dims)
	if err != nil {
		panic(err)
	}
	return box
}

// newTestWorld builds the standard fixture: a two-joint robot "r1" with a
// one-joint gripper, a block "blockA" and a table "table1" at the origin.
func newTestWorld() *fakeWorld {
	w := newFakeWorld()

	link1 := Body{Model: "r1", Name: "r1_link1"}
	link2 := Body{Model: "r1", Name: "r1_link2"}
	w.addModel("r1", Body{Model: "r1", Name: "r1_base"}, link1, link2)
	w.addJoints("r1", Joint{Model: "r1", Name: "q0", Child: link1}, Joint{Model: "r1", Name: "q1", Child: link2})

	gripperBody := Body{Model: "gripper", Name: "gripper_body"}
	w.addModel("gripper", gripperBody)
	fingerJoint := Joint{Model: "gripper", Name: "finger", Child: gripperBody}
	w.addJoints("gripper", fingerJoint)
	w.open["gripper"] = mustNewConfiguration([]Joint{fingerJoint}, []float64{0.05})

	tableBody := Body{Model: "table1", Name: "table1_body"}
	w.addModel("table1", tableBody)
	w.addBox("table1", "table1_body", 0, BoxGeometry{
		Box:         mustBox(r3.Vector{X: 1, Y: 1, Z: 0.1}),
		LocalOffset: spatial.NewZeroPose(),
		Shape:       "box",
	})
	w.extents[tableBody] = r3.Vector{X: 0.5, Y: 0.5, Z: 0.04}

	blockBody := Body{Model: "blockA", Name: "blockA_body"}
	w.addModel("blockA", blockBody)
	w.addBox("blockA", "blockA_body", 0, BoxGeometry{
		Box:         mustBox(r3.Vector{X: 0.05, Y: 0.05, Z: 0.05}),
		LocalOffset: spatial.NewZeroPose(),
		Shape:       "box",
	})
	w.extents[blockBody] = r3.Vector{X: 0.025, Y: 0.025, Z: 0.025}

	return w
}

func newTestTask(t *testing.T, w *fakeWorld, mutate func(cfg *TaskConfig)) *Task {
	t.Helper()
	cfg := TaskConfig{
		Scene:      w,
		Geometry:   w,
		Collision:  w,
		Workspace:  &stubWorkspace{},
		Waypoints:  &stubWaypointPlanner{},
		Planner:    &stubMotionPlanner{},
		Robot:      "r1",
		Gripper:    "gripper",
		Fixed:      []Body{{Model: "table1", Name: "table1_body"}},
		Collisions: true,
		Logger:     golog.NewTestLogger(t),
		Seed:       rand.New(rand.NewSource(42)),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	task, err := NewTask(cfg)
	test.That(t, err, test.ShouldBeNil)
	return task
}

func TestNewTaskValidation(t *testing.T) {
	w := newTestWorld()

	_, err := NewTask(TaskConfig{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "scene is required")
	test.That(t, err.Error(), test.ShouldContainSubstring, "workspace solver is required")
	test.That(t, err.Error(), test.ShouldContainSubstring, "logger is required")

	_, err = NewTask(TaskConfig{
		Scene:     w,
		Geometry:  w,
		Workspace: &stubWorkspace{},
		Waypoints: &stubWaypointPlanner{},
		Planner:   &stubMotionPlanner{},
		Robot:     "nosuch",
		Gripper:   "gripper",
		Logger:    golog.NewTestLogger(t),
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `robot model "nosuch"`)

	// collision checker only required when collisions are on
	_, err = NewTask(TaskConfig{
		Scene:      w,
		Geometry:   w,
		Workspace:  &stubWorkspace{},
		Waypoints:  &stubWaypointPlanner{},
		Planner:    &stubMotionPlanner{},
		Robot:      "r1",
		Gripper:    "gripper",
		Collisions: false,
		Logger:     golog.NewTestLogger(t),
	})
	test.That(t, err, test.ShouldBeNil)
}

func TestTaskDefaults(t *testing.T) {
	task := newTestTask(t, newTestWorld(), nil)
	opts := task.Options()
	test.That(t, opts.MaxFailures, test.ShouldEqual, 5)
	test.That(t, opts.ApproachDistance, test.ShouldAlmostEqual, 0.1)
	test.That(t, opts.ApproachStep, test.ShouldAlmostEqual, 0.035)
	test.That(t, opts.GraspPitchMin, test.ShouldAlmostEqual, 2*math.Pi/5)
	test.That(t, opts.PullMaxAttempts, test.ShouldEqual, 25)
	test.That(t, opts.PullStepSize, test.ShouldAlmostEqual, math.Pi/16)
	test.That(t, opts.HandleShape, test.ShouldEqual, "cylinder")
	test.That(t, opts.Planner.Restarts, test.ShouldEqual, 7)
	test.That(t, opts.Planner.Iterations, test.ShouldEqual, 75)
	test.That(t, opts.Planner.SmoothIter, test.ShouldEqual, 100)
	test.That(t, opts.PlacementSampler, test.ShouldNotBeNil)
	test.That(t, opts.GraspSampler, test.ShouldNotBeNil)
	test.That(t, task.Robot(), test.ShouldEqual, "r1")
	test.That(t, task.Gripper(), test.ShouldEqual, "gripper")
}
