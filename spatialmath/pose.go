// Package spatialmath defines spatial mathematical operations: rigid transforms
// represented as dual quaternions, axis angles, and axis-aligned boxes.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Distance in mm below which two translations are considered coincident.
const defaultDistanceEpsilon = 1e-8

// Pose represents a rigid transform: a translation paired with an orientation.
// The zero value of this struct is not a valid transform; use NewZeroPose for
// the identity.
type Pose struct {
	dq dualquat.Number
}

// NewZeroPose returns the identity transform.
func NewZeroPose() Pose {
	return Pose{dualquat.Number{Real: quat.Number{Real: 1}}}
}

// NewPoseFromPoint takes a cartesian (x,y,z) and stores it as a Pose with an
// identity orientation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return newPose(pt, quat.Number{Real: 1})
}

// NewPose takes a position and an axis-angle orientation and returns the Pose
// combining the two.
func NewPose(pt r3.Vector, aa R4AA) Pose {
	return newPose(pt, aa.ToQuat())
}

// NewPoseFromOrientation returns a Pose with the given orientation and a zero
// translation.
func NewPoseFromOrientation(aa R4AA) Pose {
	return newPose(r3.Vector{}, aa.ToQuat())
}

func newPose(pt r3.Vector, rot quat.Number) Pose {
	tq := quat.Number{Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}
	return Pose{dualquat.Number{
		Real: rot,
		Dual: quat.Scale(0.5, quat.Mul(tq, rot)),
	}}
}

// Point returns the translation component of the transform.
func (p Pose) Point() r3.Vector {
	tq := quat.Scale(2, quat.Mul(p.dq.Dual, quat.Conj(p.dq.Real)))
	return r3.Vector{X: tq.Imag, Y: tq.Jmag, Z: tq.Kmag}
}

// Orientation returns the rotation component of the transform in axis-angle
// representation.
func (p Pose) Orientation() R4AA {
	return QuatToR4AA(p.dq.Real)
}

func (p Pose) String() string {
	pt := p.Point()
	aa := p.Orientation()
	return fmt.Sprintf("Pose(pt: (%.2f, %.2f, %.2f), th: %.2f about (%.2f, %.2f, %.2f))",
		pt.X, pt.Y, pt.Z, aa.Theta, aa.RX, aa.RY, aa.RZ)
}

// Compose treats Poses as transformations and multiplies them together, left
// to right.
func Compose(a, b Pose) Pose {
	result := Pose{dualquat.Mul(a.dq, b.dq)}

	// Normalization against accumulated floating point error
	if vecLen := quat.Abs(result.dq.Real); vecLen != 1 {
		result.dq.Real = quat.Scale(1/vecLen, result.dq.Real)
	}
	return result
}

// PoseInverse returns the inverse of the given transform. Composing a Pose
// with its inverse in either order yields the identity.
func PoseInverse(p Pose) Pose {
	return Pose{dualquat.Conj(p.dq)}
}

// PoseBetween returns the pose of b relative to a, i.e. the transform x for
// which Compose(a, x) == b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// Interpolate returns a pose the given fraction of the way from p1 to p2,
// interpolating translation linearly and orientation along the shortest
// rotation arc.
func Interpolate(p1, p2 Pose, by float64) Pose {
	pt := p1.Point().Mul(1 - by).Add(p2.Point().Mul(by))

	q1 := p1.dq.Real
	q2 := p2.dq.Real
	// q and -q are the same rotation; flip q2 to stay on the shorter arc.
	if quat.Mul(quat.Conj(q1), q2).Real < 0 {
		q2 = quat.Scale(-1, q2)
	}
	rot := quat.Mul(q1, quat.Exp(quat.Scale(by, quat.Log(quat.Mul(quat.Conj(q1), q2)))))
	return newPose(pt, rot)
}

// PoseAlmostCoincident checks whether two poses are within a small epsilon of
// each other in both translation and orientation.
func PoseAlmostCoincident(a, b Pose) bool {
	return PoseAlmostCoincidentEps(a, b, defaultDistanceEpsilon)
}

// PoseAlmostCoincidentEps checks whether two poses are within the given
// epsilon of each other in translation, and almost equal in orientation.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	return a.Point().Sub(b.Point()).Norm2() < epsilon && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// OrientationAlmostEqual checks whether two orientations represent nearly the
// same rotation.
func OrientationAlmostEqual(a, b R4AA) bool {
	qa, qb := a.ToQuat(), b.ToQuat()
	dot := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	return math.Abs(dot) > 1-1e-8
}
