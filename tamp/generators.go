package tamp

import (
	"context"

	"github.com/pkg/errors"

	spatial "go.viam.com/tamp/spatialmath"
)

// SurfaceRef identifies a support surface: a body of a model plus the visual
// geometry index carrying its bounding box.
type SurfaceRef struct {
	Model  string
	Body   string
	Visual int
}

// PlacementStream lazily yields collision-checked stable placements of an
// object on a surface. It never exhausts on its own; the caller bounds the
// number of pulls. Create a new stream to restart.
type PlacementStream struct {
	task         *Task
	state        State
	object       string
	objectBox    spatial.AxisAlignedBox
	objectLocal  spatial.Pose
	surfaceBox   spatial.AxisAlignedBox
	surfaceLocal spatial.Pose
	surfacePose  spatial.Pose
	pairs        []BodyPair
}

// StablePlacements starts a stream of stable placements of the named object
// on the given surface. The surface's world pose is captured from state at
// stream creation.
func (t *Task) StablePlacements(state State, object string, surface SurfaceRef) (*PlacementStream, error) {
	objectBodies := t.scene.ModelBodies(object)
	if len(objectBodies) == 0 {
		return nil, errors.Errorf("unknown object model %q", object)
	}
	base, ok := t.scene.BaseBody(object)
	if !ok {
		return nil, errors.Errorf("object model %q has no base body", object)
	}
	objectGeom, err := t.geometry.BoundingBox(object, base.Name, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "object %q bounding box", object)
	}
	surfaceGeom, err := t.geometry.BoundingBox(surface.Model, surface.Body, surface.Visual)
	if err != nil {
		return nil, errors.Wrapf(err, "surface %q bounding box", surface.Body)
	}
	surfacePose, err := state.BodyPose(Body{Model: surface.Model, Name: surface.Body})
	if err != nil {
		return nil, errors.Wrapf(err, "surface %q pose", surface.Body)
	}
	return &PlacementStream{
		task:         t,
		state:        state,
		object:       object,
		objectBox:    objectGeom.Box,
		objectLocal:  objectGeom.LocalOffset,
		surfaceBox:   surfaceGeom.Box,
		surfaceLocal: surfaceGeom.LocalOffset,
		surfacePose:  surfacePose,
		pairs:        pairProduct(NewBodySet(objectBodies...), t.fixedBodies()),
	}, nil
}

// Next samples placements until one passes collision filtering against the
// fixed bodies, assigns it into the stream's state, and returns it. Rejected
// samples are skipped silently; the context bounds the search.
func (ps *PlacementStream) Next(ctx context.Context) (*Pose, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		surfaceFromObject := ps.task.opts.PlacementSampler(ps.objectBox, ps.surfaceBox, ps.task.random)
		worldPose := spatial.Compose(ps.surfacePose,
			spatial.Compose(ps.surfaceLocal,
				spatial.Compose(surfaceFromObject, spatial.PoseInverse(ps.objectLocal))))
		pose := NewPose(ps.task.scene, WorldFrame, ps.object, worldPose)
		if err := pose.Assign(ps.state); err != nil {
			return nil, err
		}
		if len(ps.pairs) == 0 {
			return pose, nil
		}
		colliding, err := ps.task.collision.CollidingPairExists(ctx, ps.state, ps.pairs)
		if err != nil {
			return nil, err
		}
		if !colliding {
			return pose, nil
		}
	}
}

// GraspStream lazily yields candidate grasps of an object: poses of the
// gripper frame relative to the object's model frame within the configured
// pitch band. No collision filtering is applied; feasibility is deferred to
// the IK and motion stages.
type GraspStream struct {
	task        *Task
	object      string
	frame       string
	objectLocal spatial.Pose
	candidates  []spatial.Pose
	next        int
}

// Grasps starts a stream of candidate grasps of the named object.
func (t *Task) Grasps(object string) (*GraspStream, error) {
	if len(t.scene.ModelBodies(object)) == 0 {
		return nil, errors.Errorf("unknown object model %q", object)
	}
	base, ok := t.scene.BaseBody(object)
	if !ok {
		return nil, errors.Errorf("object model %q has no base body", object)
	}
	objectGeom, err := t.geometry.BoundingBox(object, base.Name, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "object %q bounding box", object)
	}
	frame, err := t.gripperFrame()
	if err != nil {
		return nil, err
	}
	candidates := t.opts.GraspSampler(objectGeom.Box, GraspGeometry{
		PitchMin: t.opts.GraspPitchMin,
		PitchMax: t.opts.GraspPitchMax,
	})
	return &GraspStream{
		task:        t,
		object:      object,
		frame:       frame,
		objectLocal: objectGeom.LocalOffset,
		candidates:  candidates,
		next:        0,
	}, nil
}

// Next returns the next candidate grasp, composing the sampler's
// gripper-from-box transform with the inverse of the object's local box
// offset. It returns false when the candidates are exhausted.
func (gs *GraspStream) Next() (*Pose, bool) {
	if gs.next >= len(gs.candidates) {
		return nil, false
	}
	gripperFromBox := gs.candidates[gs.next]
	gs.next++
	gripperFromObject := spatial.Compose(gripperFromBox, spatial.PoseInverse(gs.objectLocal))
	return NewPose(gs.task.scene, gs.frame, gs.object, gripperFromObject), true
}
