package manifold

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/geomesh/pkg/kernel"
)

// tetra returns a unit right tetrahedron with outward faces.
func tetra() *kernel.Mesh {
	m := &kernel.Mesh{Vertices: []v3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}}
	m.AddFace(0, 2, 1)
	m.AddFace(0, 1, 3)
	m.AddFace(0, 3, 2)
	m.AddFace(1, 2, 3)
	return m
}

func TestClosedTetrahedron(t *testing.T) {
	r := Check(tetra())
	if !r.Manifold() {
		t.Fatalf("expected a manifold, got %s", r)
	}
	if math.Abs(r.Volume-1.0/6) > 1e-12 {
		t.Errorf("Volume = %g, want 1/6", r.Volume)
	}
	if r.Bounds.Max.X != 1 || r.Bounds.Min.Z != 0 {
		t.Errorf("Bounds = %+v", r.Bounds)
	}
}

func TestFlippedTetrahedronHasNegativeVolume(t *testing.T) {
	m := tetra()
	m.Flip()
	if v := SignedVolume(m); v >= 0 {
		t.Fatalf("SignedVolume = %g, want negative", v)
	}
	if !Check(m).Oriented() {
		t.Fatal("a uniformly flipped mesh is still consistently oriented")
	}
}

func TestOpenMeshHasBoundary(t *testing.T) {
	m := tetra()
	m.Faces = m.Faces[:3]
	r := Check(m)
	if r.Closed() {
		t.Fatal("expected an open mesh")
	}
	if r.BoundaryEdges != 3 {
		t.Errorf("BoundaryEdges = %d, want 3", r.BoundaryEdges)
	}
}

func TestInconsistentWinding(t *testing.T) {
	m := tetra()
	f := m.Faces[3]
	m.Faces[3] = kernel.Face{f[0], f[2], f[1]}
	r := Check(m)
	if r.Oriented() {
		t.Fatal("expected inconsistent orientation")
	}
	if r.InconsistentEdges != 3 {
		t.Errorf("InconsistentEdges = %d, want 3", r.InconsistentEdges)
	}
}

func TestNonManifoldAndDegenerate(t *testing.T) {
	m := tetra()
	m.AddVertex(v3.Vec{X: 1, Y: 1, Z: 1})
	m.AddFace(1, 2, 4)
	m.AddFace(0, 0, 1)
	r := Check(m)
	if r.NonManifoldEdges != 1 {
		t.Errorf("NonManifoldEdges = %d, want 1", r.NonManifoldEdges)
	}
	if r.DegenerateFaces != 1 {
		t.Errorf("DegenerateFaces = %d, want 1", r.DegenerateFaces)
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid(tetra())
	if c.X != 0.25 || c.Y != 0.25 || c.Z != 0.25 {
		t.Errorf("Centroid = %+v", c)
	}
	if (Centroid(&kernel.Mesh{}) != r3.Vec{}) {
		t.Error("empty mesh centroid should be the origin")
	}
}
