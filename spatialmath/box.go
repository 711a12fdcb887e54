package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// AxisAlignedBox is an axis-aligned box in some fixed local frame, described
// by its lower and upper corners. It carries no pose of its own; a separate
// offset transform positions it relative to its owning body.
type AxisAlignedBox struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewAxisAlignedBox constructs an AxisAlignedBox from its corners, checking
// that the upper corner dominates the lower corner on every axis.
func NewAxisAlignedBox(min, max r3.Vector) (AxisAlignedBox, error) {
	if max.X < min.X || max.Y < min.Y || max.Z < min.Z {
		return AxisAlignedBox{}, errors.Errorf("axis aligned box max %v must dominate min %v", max, min)
	}
	return AxisAlignedBox{Min: min, Max: max}, nil
}

// NewAxisAlignedBoxFromDims constructs an AxisAlignedBox centered at the local
// origin with the given full dimensions.
func NewAxisAlignedBoxFromDims(dims r3.Vector) (AxisAlignedBox, error) {
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return AxisAlignedBox{}, errors.Errorf("axis aligned box dims %v must be non-negative", dims)
	}
	half := dims.Mul(0.5)
	return AxisAlignedBox{Min: half.Mul(-1), Max: half}, nil
}

// Center returns the center point of the box in its local frame.
func (b AxisAlignedBox) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Dims returns the full (not half) dimensions of the box.
func (b AxisAlignedBox) Dims() r3.Vector {
	return b.Max.Sub(b.Min)
}
