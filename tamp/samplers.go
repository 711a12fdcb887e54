package tamp

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	spatial "go.viam.com/tamp/spatialmath"
	"go.viam.com/tamp/utils"
)

// SampleBoxPlacement is the reference PlacementSampler: it draws a uniform
// planar offset and yaw that keep the rotated object box footprint inside the
// surface box footprint, resting the object bottom on the surface top. The
// returned transform maps the object box frame into the surface box frame.
func SampleBoxPlacement(object, surface spatial.AxisAlignedBox, r *rand.Rand) spatial.Pose {
	objDims := object.Dims()
	surfDims := surface.Dims()

	yaw := utils.SampleRandomFloatRange(-math.Pi, math.Pi, r)
	cos, sin := math.Abs(math.Cos(yaw)), math.Abs(math.Sin(yaw))
	// footprint of the yawed object box
	footX := cos*objDims.X + sin*objDims.Y
	footY := sin*objDims.X + cos*objDims.Y

	halfX := math.Max(0, (surfDims.X-footX)/2)
	halfY := math.Max(0, (surfDims.Y-footY)/2)
	target := surface.Center().Add(r3.Vector{
		X: utils.SampleRandomFloatRange(-halfX, halfX, r),
		Y: utils.SampleRandomFloatRange(-halfY, halfY, r),
		Z: surfDims.Z/2 + objDims.Z/2,
	})

	rotate := spatial.NewPoseFromOrientation(spatial.R4AA{Theta: yaw, RZ: 1})
	recenter := spatial.NewPoseFromPoint(object.Center().Mul(-1))
	return spatial.Compose(spatial.NewPoseFromPoint(target), spatial.Compose(rotate, recenter))
}

// SampleBoxGrasps is the reference GraspSampler: one grasp per selected
// quarter-turn yaw of the box, pitched at the middle of the pitch band, with
// the gripper frame stood off GraspLength outside the face it approaches
// along its -y axis. Orientation index 1 corresponds to a +y approach.
func SampleBoxGrasps(box spatial.AxisAlignedBox, geom GraspGeometry) []spatial.Pose {
	orientations := geom.Orientations
	if orientations == nil {
		orientations = []int{0, 1, 2, 3}
	}
	pitch := (geom.PitchMin + geom.PitchMax) / 2
	center := spatial.NewPoseFromPoint(box.Center())

	grasps := make([]spatial.Pose, 0, len(orientations))
	for _, index := range orientations {
		yawRot := spatial.NewPoseFromOrientation(spatial.R4AA{Theta: float64(index) * math.Pi / 2, RZ: 1})
		pitchRot := spatial.NewPoseFromOrientation(spatial.R4AA{Theta: pitch, RX: 1})
		standoff := spatial.NewPoseFromPoint(r3.Vector{Y: -(box.Dims().Y/2 + geom.GraspLength)})
		grasps = append(grasps, spatial.Compose(center, spatial.Compose(yawRot, spatial.Compose(pitchRot, standoff))))
	}
	return grasps
}

// interpolateTranslation builds a straight-line Cartesian path ending exactly
// at target, starting the full vector away and stepping at most stepSize per
// waypoint. The vector is expressed in the target's local frame.
func interpolateTranslation(target spatial.Pose, vector r3.Vector, stepSize float64) []spatial.Pose {
	steps := int(math.Ceil(vector.Norm() / stepSize))
	if steps < 1 {
		steps = 1
	}
	path := make([]spatial.Pose, 0, steps+1)
	for i := steps; i >= 0; i-- {
		offset := spatial.NewPoseFromPoint(vector.Mul(float64(i) / float64(steps)))
		path = append(path, spatial.Compose(target, offset))
	}
	return path
}

// ExtendJointPath discretizes the straight joint-space segment between two
// position vectors at the given per-joint resolutions. It yields every
// intermediate step and the endpoint; the start is omitted. No collision
// filtering is applied.
func ExtendJointPath(from, to, resolutions []float64) ([][]float64, error) {
	if len(from) != len(to) || len(from) != len(resolutions) {
		return nil, errors.Errorf("mismatched lengths extending joint path: %d from, %d to, %d resolutions",
			len(from), len(to), len(resolutions))
	}
	steps := 1
	for i := range from {
		if resolutions[i] <= 0 {
			return nil, errors.Errorf("joint path resolution %d must be positive", i)
		}
		if n := int(math.Ceil(math.Abs(to[i]-from[i]) / resolutions[i])); n > steps {
			steps = n
		}
	}
	diff := make([]float64, len(from))
	floats.SubTo(diff, to, from)

	path := make([][]float64, 0, steps)
	for i := 1; i <= steps; i++ {
		q := make([]float64, len(from))
		floats.AddScaledTo(q, from, float64(i)/float64(steps), diff)
		path = append(path, q)
	}
	return path, nil
}
