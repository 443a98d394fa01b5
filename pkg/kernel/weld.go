package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultWeldPrecision is the grid spacing used to decide that two
// vertices coincide.
const DefaultWeldPrecision = 1e-6

type weldKey struct {
	x, y, z int64
}

func quantize(v v3.Vec, precision float64) weldKey {
	return weldKey{
		x: int64(math.Round(v.X / precision)),
		y: int64(math.Round(v.Y / precision)),
		z: int64(math.Round(v.Z / precision)),
	}
}

// Weld merges vertices that round to the same grid cell of size precision,
// keeping the first occurrence of each, and drops faces that collapse onto
// a repeated vertex or onto a line along with vertices no face uses any
// more. Vertex
// order follows first occurrence. It returns the number of vertices
// removed. A non-positive precision selects DefaultWeldPrecision.
func (m *Mesh) Weld(precision float64) int {
	if precision <= 0 {
		precision = DefaultWeldPrecision
	}
	before := len(m.Vertices)
	index := make(map[weldKey]int, before)
	remap := make([]int, before)
	verts := make([]v3.Vec, 0, before)
	for i, v := range m.Vertices {
		k := quantize(v, precision)
		j, ok := index[k]
		if !ok {
			j = len(verts)
			index[k] = j
			verts = append(verts, v)
		}
		remap[i] = j
	}

	faces := m.Faces[:0]
	used := make([]bool, len(verts))
	for _, f := range m.Faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a == b || b == c || a == c || zeroArea(verts[a], verts[b], verts[c]) {
			continue
		}
		used[a], used[b], used[c] = true, true, true
		faces = append(faces, Face{a, b, c})
	}
	m.Faces = faces
	m.Vertices = compact(verts, used, faces)
	if m.Normals != nil {
		m.ComputeNormals()
	}
	return before - len(m.Vertices)
}

func zeroArea(a, b, c v3.Vec) bool {
	return b.Sub(a).Cross(c.Sub(a)) == (v3.Vec{})
}

// compact removes unused vertices and renumbers faces in place.
func compact(verts []v3.Vec, used []bool, faces []Face) []v3.Vec {
	next := make([]int, len(verts))
	out := verts[:0]
	for i, v := range verts {
		if used[i] {
			next[i] = len(out)
			out = append(out, v)
		}
	}
	if len(out) == len(verts) {
		return out
	}
	for i, f := range faces {
		faces[i] = Face{next[f[0]], next[f[1]], next[f[2]]}
	}
	return out
}
