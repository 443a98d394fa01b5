package tessellate

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/kernel/manifold"
	"github.com/chazu/geomesh/pkg/shape"
)

// onHalfPlane reports whether v lies on the half plane bounded by the Z
// axis at azimuth deg.
func onHalfPlane(v v3.Vec, deg float64) bool {
	a := radians(deg)
	dir := v3.Vec{X: math.Cos(a), Y: math.Sin(a)}
	normal := v3.Vec{X: -math.Sin(a), Y: math.Cos(a)}
	return math.Abs(v.Dot(normal)) < 1e-9 && v.Dot(dir) > -1e-9
}

// withoutCaps returns a copy of m without the faces lying wholly on either
// sweep boundary, and the number of faces removed.
func withoutCaps(m *kernel.Mesh, phi1, phi2 float64) (*kernel.Mesh, int) {
	out := &kernel.Mesh{Vertices: m.Vertices}
	on := func(f kernel.Face, deg float64) bool {
		return onHalfPlane(m.Vertices[f[0]], deg) &&
			onHalfPlane(m.Vertices[f[1]], deg) &&
			onHalfPlane(m.Vertices[f[2]], deg)
	}
	removed := 0
	for _, f := range m.Faces {
		if on(f, phi1) || on(f, phi2) {
			removed++
			continue
		}
		out.Faces = append(out.Faces, f)
	}
	return out, removed
}

// boundaryOnCaps reports whether every edge used by a single face has both
// ends on a sweep boundary.
func boundaryOnCaps(m *kernel.Mesh, phi1, phi2 float64) bool {
	type edge struct{ a, b int }
	uses := make(map[edge]int)
	for _, f := range m.Faces {
		for i := range 3 {
			a, b := f[i], f[(i+1)%3]
			uses[edge{min(a, b), max(a, b)}]++
		}
	}
	for e, n := range uses {
		if n != 1 {
			continue
		}
		for _, i := range []int{e.a, e.b} {
			v := m.Vertices[i]
			if !onHalfPlane(v, phi1) && !onHalfPlane(v, phi2) {
				return false
			}
		}
	}
	return true
}

func TestPartialSweepBoundaryIsExactlyTheCaps(t *testing.T) {
	rows := 32 // default sphere resolution
	tests := []struct {
		name       string
		full, part shape.Shape
		phi1, phi2 float64
		capFaces   int // per cap
		outline    int // boundary edges per removed cap
	}{
		{
			name:     "tube",
			full:     mustShape(shape.NewTube(5, 10, 4)),
			part:     mustShape(shape.NewTubeSeg(5, 10, 4, 0, 90)),
			phi1:     0,
			phi2:     90,
			capFaces: 2,
			outline:  4,
		},
		{
			name:     "cone",
			full:     mustShape(shape.NewCone(5, 2, 4, 1, 3)),
			part:     mustShape(shape.NewConeSeg(5, 2, 4, 1, 3, 0, 270)),
			phi1:     0,
			phi2:     270,
			capFaces: 2,
			outline:  4,
		},
		{
			name:     "sphere",
			full:     mustShape(shape.NewSphere(5, 10, 30, 120, 0, 360)),
			part:     mustShape(shape.NewSphere(5, 10, 30, 120, 0, 90)),
			phi1:     0,
			phi2:     90,
			capFaces: 2 * rows,
			outline:  2*rows + 2,
		},
	}
	d := NewDispatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := d.CreateGeometry(tt.full)
			part := d.CreateGeometry(tt.part)
			require.NotNil(t, full)
			require.NotNil(t, part)

			assert.Zero(t, manifold.Check(full).BoundaryEdges)
			assert.Zero(t, manifold.Check(part).BoundaryEdges)

			open, removed := withoutCaps(part, tt.phi1, tt.phi2)
			assert.Equal(t, 2*tt.capFaces, removed)
			r := manifold.Check(open)
			assert.Equal(t, 2*tt.outline, r.BoundaryEdges, r.String())
			assert.True(t, boundaryOnCaps(open, tt.phi1, tt.phi2), "open edges off the sweep boundary")

			// Nothing of the full sweep lies in a cap plane.
			_, none := withoutCaps(full, tt.phi1, tt.phi2)
			assert.Zero(t, none)
		})
	}
}

func mustShape(s shape.Shape, err error) shape.Shape {
	if err != nil {
		panic(err)
	}
	return s
}
