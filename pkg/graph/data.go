package graph

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geomesh/pkg/shape"
)

// ---------------------------------------------------------------------------
// Volume
// ---------------------------------------------------------------------------

// VolumeData is a logical volume: the solid it occupies and what it is
// made of. Material is advisory and only used for display.
type VolumeData struct {
	Shape    shape.Shape `json:"shape"`
	Material string      `json:"material,omitempty"`
}

func (VolumeData) nodeData() {}

// ---------------------------------------------------------------------------
// Placement
// ---------------------------------------------------------------------------

// PlacementData positions its single child in the parent frame.
// Created by the (place ...) form.
type PlacementData struct {
	Translation *v3.Vec `json:"translation,omitempty"`
	Rotation    *v3.Vec `json:"rotation,omitempty"` // Euler angles in degrees
}

func (PlacementData) nodeData() {}

// Matrix returns the child-to-parent transform: rotate about X, then Y,
// then Z, then translate.
func (p PlacementData) Matrix() sdf.M44 {
	m := sdf.Identity3d()
	if r := p.Rotation; r != nil {
		m = sdf.RotateZ(deg(r.Z)).Mul(sdf.RotateY(deg(r.Y))).Mul(sdf.RotateX(deg(r.X)))
	}
	if t := p.Translation; t != nil {
		m = sdf.Translate3d(*t).Mul(m)
	}
	return m
}

func deg(a float64) float64 { return a * math.Pi / 180 }

// ---------------------------------------------------------------------------
// Assembly
// ---------------------------------------------------------------------------

// AssemblyData groups placed volumes (a ROOT mother volume without a
// visible shape of its own). Created by the (assembly ...) form.
type AssemblyData struct {
	Description string `json:"description,omitempty"`
}

func (AssemblyData) nodeData() {}
