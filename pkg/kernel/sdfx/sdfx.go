// Package sdfx builds signed distance fields for shape descriptors with the
// github.com/deadsy/sdfx SDF library. The fields are an independent
// reference for tessellated meshes: every vertex of a faithful mesh lies on
// the zero set of its shape's field, and marching cubes over the field
// yields a coarse comparison mesh.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/shape"
)

// ErrNoSolid is returned for descriptors without a reference field.
var ErrNoSolid = errors.New("sdfx: no reference solid")

// DefaultMeshCells controls marching cubes resolution along the longest
// bounding box axis.
const DefaultMeshCells = 64

// Solid returns the field of s with lengths multiplied by scale. Only
// closed kinds with an exact field are covered: Box, full Tube, full Sphere
// and full Torus. Hollow kinds need a positive inner radius, since the
// tessellation collapses a zero inner surface onto interior points.
func Solid(s shape.Shape, scale float64) (sdf.SDF3, error) {
	switch v := s.(type) {
	case shape.Box:
		return sdf.Box3D(v3.Vec{X: 2 * v.DX * scale, Y: 2 * v.DY * scale, Z: 2 * v.DZ * scale}, 0)
	case shape.Tube:
		if v.Rmin <= 0 {
			break
		}
		h := 2 * v.Dz * scale
		outer, err := sdf.Cylinder3D(h, v.Rmax*scale, 0)
		if err != nil {
			return nil, fmt.Errorf("sdfx: tube outer: %w", err)
		}
		// The bore is taller than the tube so the end faces come from
		// the outer cylinder alone.
		bore, err := sdf.Cylinder3D(h+2, v.Rmin*scale, 0)
		if err != nil {
			return nil, fmt.Errorf("sdfx: tube bore: %w", err)
		}
		return sdf.Difference3D(outer, bore), nil
	case shape.Sphere:
		if v.Rmin <= 0 || v.Theta1 != 0 || v.Theta2 != 180 || v.Dphi() < 360 {
			break
		}
		return &shell{r: v.Rmax * scale, hole: v.Rmin * scale}, nil
	case shape.Torus:
		if v.Rmin <= 0 || v.Dphi < 360 {
			break
		}
		return &torus{ring: v.R * scale, tube: v.Rmax * scale, hole: v.Rmin * scale}, nil
	}
	if s == nil {
		return nil, ErrNoSolid
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSolid, s.TypeName())
}

// shell is a hollow ball centred on the origin.
type shell struct {
	r, hole float64
}

func (s *shell) Evaluate(p v3.Vec) float64 {
	d := p.Length()
	return math.Max(d-s.r, s.hole-d)
}

func (s *shell) BoundingBox() sdf.Box3 {
	return sdf.Box3{Min: v3.Vec{X: -s.r, Y: -s.r, Z: -s.r}, Max: v3.Vec{X: s.r, Y: s.r, Z: s.r}}
}

// torus is a ring of radius ring around Z whose tube spans radii hole to
// tube.
type torus struct {
	ring, tube, hole float64
}

func (t *torus) Evaluate(p v3.Vec) float64 {
	q := math.Hypot(math.Hypot(p.X, p.Y)-t.ring, p.Z)
	return math.Max(q-t.tube, t.hole-q)
}

func (t *torus) BoundingBox() sdf.Box3 {
	r := t.ring + t.tube
	return sdf.Box3{Min: v3.Vec{X: -r, Y: -r, Z: -t.tube}, Max: v3.Vec{X: r, Y: r, Z: t.tube}}
}

// Deviation returns the largest distance from a vertex of m to the zero set
// of s. An empty mesh deviates by zero.
func Deviation(m *kernel.Mesh, s sdf.SDF3) float64 {
	var worst float64
	for _, v := range m.Vertices {
		worst = math.Max(worst, math.Abs(s.Evaluate(v)))
	}
	return worst
}

// ToMesh converts a field to a welded triangle mesh using marching cubes
// with cells cells along the longest axis. A non-positive cells selects
// DefaultMeshCells.
func ToMesh(s sdf.SDF3, cells int) *kernel.Mesh {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	m := kernel.NewMesh(len(triangles)*3, len(triangles))
	for _, tri := range triangles {
		m.AddTriangle(tri[0], tri[1], tri[2])
	}
	m.Weld(kernel.DefaultWeldPrecision)
	m.ComputeNormals()
	return m
}
