package tessellate

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geomesh/pkg/kernel"
)

// stitchRows joins two parallel rows of equal length with a strip of
// triangles. For each column i it emits (a[i], a[i+1], b[i]) and
// (b[i], a[i+1], b[i+1]); when closed the last column joins column 0.
// The strip faces the side from which a runs left to right below b, so
// swapping a and b turns it over.
func stitchRows(a, b []v3.Vec, closed bool) *kernel.Mesh {
	n := min(len(a), len(b))
	cells := n - 1
	if closed {
		cells = n
	}
	m := kernel.NewMesh(6*max(cells, 0), 2*max(cells, 0))
	for i := 0; i < cells; i++ {
		j := (i + 1) % n
		m.AddTriangle(a[i], a[j], b[i])
		m.AddTriangle(b[i], a[j], b[j])
	}
	m.Weld(kernel.DefaultWeldPrecision)
	m.ComputeNormals()
	return m
}

// merge folds parts into one mesh without sharing vertices between them.
func merge(parts ...*kernel.Mesh) *kernel.Mesh {
	m := &kernel.Mesh{}
	for _, p := range parts {
		m.Merge(p, sdf.Identity3d())
	}
	return m
}
