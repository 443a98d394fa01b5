// Package manifold inspects the topology of triangle meshes: whether every
// edge is shared by exactly two faces traversing it in opposite
// directions, and what volume and area the surface encloses.
package manifold

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/geomesh/pkg/kernel"
)

// Report summarizes a mesh's topology and extent.
type Report struct {
	Vertices int
	Faces    int

	// BoundaryEdges are used by exactly one face.
	BoundaryEdges int
	// NonManifoldEdges are used by more than two faces.
	NonManifoldEdges int
	// InconsistentEdges are shared by two faces that traverse them in the
	// same direction.
	InconsistentEdges int
	// DegenerateFaces repeat a vertex index or have zero area.
	DegenerateFaces int

	// Volume is the signed enclosed volume, positive for outward winding.
	Volume float64
	Area   float64
	Bounds r3.Box
}

// Closed reports whether every edge is shared by exactly two faces.
func (r Report) Closed() bool {
	return r.Faces > 0 && r.BoundaryEdges == 0 && r.NonManifoldEdges == 0
}

// Oriented reports whether every shared edge is traversed once in each
// direction.
func (r Report) Oriented() bool {
	return r.InconsistentEdges == 0
}

// Manifold reports a closed, consistently oriented mesh with no degenerate
// faces.
func (r Report) Manifold() bool {
	return r.Closed() && r.Oriented() && r.DegenerateFaces == 0
}

func (r Report) String() string {
	return fmt.Sprintf("%d vertices, %d faces, %d boundary, %d non-manifold, %d inconsistent, %d degenerate, volume %g",
		r.Vertices, r.Faces, r.BoundaryEdges, r.NonManifoldEdges, r.InconsistentEdges, r.DegenerateFaces, r.Volume)
}

type edge struct{ a, b int }

func vec(m *kernel.Mesh, i int) r3.Vec {
	v := m.Vertices[i]
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Check builds a Report for m.
func Check(m *kernel.Mesh) Report {
	rep := Report{Vertices: len(m.Vertices), Faces: len(m.Faces)}

	// Count directed uses per undirected edge: forward when a < b.
	type use struct{ forward, backward int }
	edges := make(map[edge]*use, len(m.Faces)*3/2)

	for _, f := range m.Faces {
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			rep.DegenerateFaces++
			continue
		}
		p0, p1, p2 := vec(m, f[0]), vec(m, f[1]), vec(m, f[2])
		area := r3.Norm(r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))) / 2
		if area == 0 {
			rep.DegenerateFaces++
		}
		rep.Area += area
		rep.Volume += r3.Dot(p0, r3.Cross(p1, p2)) / 6

		for i := range 3 {
			a, b := f[i], f[(i+1)%3]
			k, fwd := edge{a, b}, true
			if a > b {
				k, fwd = edge{b, a}, false
			}
			u := edges[k]
			if u == nil {
				u = &use{}
				edges[k] = u
			}
			if fwd {
				u.forward++
			} else {
				u.backward++
			}
		}
	}

	for _, u := range edges {
		switch n := u.forward + u.backward; {
		case n == 1:
			rep.BoundaryEdges++
		case n > 2:
			rep.NonManifoldEdges++
		case u.forward != 1:
			rep.InconsistentEdges++
		}
	}

	rep.Bounds = bounds(m)
	return rep
}

// SignedVolume returns the volume enclosed by m, positive when its faces
// wind counter clockwise seen from outside. It is only meaningful for a
// closed mesh.
func SignedVolume(m *kernel.Mesh) float64 {
	var vol float64
	for _, f := range m.Faces {
		vol += r3.Dot(vec(m, f[0]), r3.Cross(vec(m, f[1]), vec(m, f[2]))) / 6
	}
	return vol
}

// Centroid returns the mean of the vertices.
func Centroid(m *kernel.Mesh) r3.Vec {
	var c r3.Vec
	if len(m.Vertices) == 0 {
		return c
	}
	for i := range m.Vertices {
		c = r3.Add(c, vec(m, i))
	}
	return r3.Scale(1/float64(len(m.Vertices)), c)
}

func bounds(m *kernel.Mesh) r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	b := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for i := range m.Vertices {
		p := vec(m, i)
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return b
}
