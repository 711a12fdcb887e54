package tamp

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	spatial "go.viam.com/tamp/spatialmath"
)

// fakeWorld is an in-memory implementation of State, Scene, GeometryIndex and
// CollisionChecker. Bodies ride their model's base pose and collide when
// their axis-aligned extents overlap.
type fakeWorld struct {
	models map[string][]Body
	joints map[string][]Joint
	bases  map[string]Body
	open   map[string]*Configuration
	geoms  map[geomKey]BoxGeometry

	worldPoses map[string]spatial.Pose
	jointVals  map[Joint]float64

	extents    map[Body]r3.Vector
	bodyPoseFn map[Body]func(w *fakeWorld) spatial.Pose

	checks    int
	lastPairs []BodyPair
	log       []string
}

type geomKey struct {
	model, body string
	visual      int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		models:     map[string][]Body{},
		joints:     map[string][]Joint{},
		bases:      map[string]Body{},
		open:       map[string]*Configuration{},
		geoms:      map[geomKey]BoxGeometry{},
		worldPoses: map[string]spatial.Pose{},
		jointVals:  map[Joint]float64{},
		extents:    map[Body]r3.Vector{},
		bodyPoseFn: map[Body]func(w *fakeWorld) spatial.Pose{},
	}
}

// addModel registers a model whose first body is its base.
func (w *fakeWorld) addModel(name string, bodies ...Body) {
	w.models[name] = bodies
	w.bases[name] = bodies[0]
	w.worldPoses[name] = spatial.NewZeroPose()
}

func (w *fakeWorld) addJoints(model string, joints ...Joint) {
	w.joints[model] = joints
}

func (w *fakeWorld) addBox(model, body string, visual int, geom BoxGeometry) {
	w.geoms[geomKey{model, body, visual}] = geom
}

func (w *fakeWorld) findBody(name string) (Body, bool) {
	for _, bodies := range w.models {
		for _, b := range bodies {
			if b.Name == name {
				return b, true
			}
		}
	}
	return Body{}, false
}

// State implementation.

func (w *fakeWorld) RelativeTransform(frame string) (spatial.Pose, error) {
	if frame == WorldFrame {
		return spatial.NewZeroPose(), nil
	}
	if body, ok := w.findBody(frame); ok {
		return w.BodyPose(body)
	}
	return spatial.Pose{}, errors.Errorf("unknown frame %q", frame)
}

func (w *fakeWorld) SetWorldPose(model string, pose spatial.Pose) error {
	if _, ok := w.models[model]; !ok {
		return errors.Errorf("unknown model %q", model)
	}
	w.worldPoses[model] = pose
	w.log = append(w.log, "pose "+model)
	return nil
}

func (w *fakeWorld) SetJointPosition(joint Joint, position float64) error {
	w.jointVals[joint] = position
	w.log = append(w.log, fmt.Sprintf("joint %s=%g", joint.Name, position))
	return nil
}

func (w *fakeWorld) BodyPose(body Body) (spatial.Pose, error) {
	if fn, ok := w.bodyPoseFn[body]; ok {
		return fn(w), nil
	}
	if pose, ok := w.worldPoses[body.Model]; ok {
		return pose, nil
	}
	return spatial.Pose{}, errors.Errorf("unknown body %q", body.Name)
}

// Scene implementation.

func (w *fakeWorld) ModelBodies(model string) []Body {
	return w.models[model]
}

func (w *fakeWorld) MovableJoints(model string) []Joint {
	return w.joints[model]
}

func (w *fakeWorld) BaseBody(model string) (Body, bool) {
	base, ok := w.bases[model]
	return base, ok
}

func (w *fakeWorld) BodyByName(name string) (Body, bool) {
	return w.findBody(name)
}

func (w *fakeWorld) GripperOpenConfiguration(model string) *Configuration {
	return w.open[model]
}

// GeometryIndex implementation.

func (w *fakeWorld) BoundingBox(model, body string, visual int) (BoxGeometry, error) {
	geom, ok := w.geoms[geomKey{model, body, visual}]
	if !ok {
		return BoxGeometry{}, errors.Errorf("no bounding box for %s/%s visual %d", model, body, visual)
	}
	return geom, nil
}

// CollisionChecker implementation.

func (w *fakeWorld) CollidingPairExists(ctx context.Context, state State, pairs []BodyPair) (bool, error) {
	w.checks++
	w.lastPairs = pairs
	for _, pair := range pairs {
		e1, ok1 := w.extents[pair.First]
		e2, ok2 := w.extents[pair.Second]
		if !ok1 || !ok2 {
			continue
		}
		p1, err := state.BodyPose(pair.First)
		if err != nil {
			return false, err
		}
		p2, err := state.BodyPose(pair.Second)
		if err != nil {
			return false, err
		}
		if extentsOverlap(p1.Point(), e1, p2.Point(), e2) {
			return true, nil
		}
	}
	return false, nil
}

func extentsOverlap(c1, e1, c2, e2 r3.Vector) bool {
	return math.Abs(c1.X-c2.X) < e1.X+e2.X &&
		math.Abs(c1.Y-c2.Y) < e1.Y+e2.Y &&
		math.Abs(c1.Z-c2.Z) < e1.Z+e2.Z
}

// Stub solvers.

type stubWorkspace struct {
	calls    int
	lastPath []spatial.Pose
	fn       func(call int, joints []Joint, path []spatial.Pose) ([][]float64, error)
}

func (s *stubWorkspace) SolveWorkspace(
	ctx context.Context,
	state State,
	joints []Joint,
	frame string,
	path []spatial.Pose,
	seed []float64,
	collides CollisionFn,
) ([][]float64, error) {
	s.calls++
	s.lastPath = path
	if s.fn != nil {
		return s.fn(s.calls, joints, path)
	}
	waypoints := make([][]float64, len(path))
	for i := range waypoints {
		waypoints[i] = make([]float64, len(joints))
	}
	return waypoints, nil
}

type stubWaypointPlanner struct {
	calls        int
	fail         bool
	lastJoints   []Joint
	lastCollides CollisionFn
}

func (s *stubWaypointPlanner) PlanThroughWaypoints(
	ctx context.Context,
	joints []Joint,
	waypoints [][]float64,
	collides CollisionFn,
) ([][]float64, error) {
	s.calls++
	s.lastJoints = joints
	s.lastCollides = collides
	if s.fail {
		return nil, errors.New("no joint path through waypoints")
	}
	return waypoints, nil
}

type stubMotionPlanner struct {
	calls  int
	fail   bool
	onPlan func(start, goal []float64, collides CollisionFn)
}

func (s *stubMotionPlanner) PlanJointMotion(
	ctx context.Context,
	joints []Joint,
	start, goal []float64,
	collides CollisionFn,
	opts PlannerOptions,
) ([][]float64, error) {
	s.calls++
	if s.onPlan != nil {
		s.onPlan(start, goal, collides)
	}
	if s.fail {
		return nil, errors.New("motion planner failed to find path")
	}
	return [][]float64{start, goal}, nil
}
