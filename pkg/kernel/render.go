package kernel

import (
	"github.com/chewxy/math32"
)

// RenderMesh is a triangle mesh laid out for a renderer.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type RenderMesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which volume this came from
}

// VertexCount returns the number of vertices.
func (r *RenderMesh) VertexCount() int {
	return len(r.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (r *RenderMesh) TriangleCount() int {
	return len(r.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (r *RenderMesh) IsEmpty() bool {
	return len(r.Vertices) == 0
}

// Render flattens m for upload. Vertices are shared, so each vertex normal
// is the area-weighted sum of the normals of the faces around it,
// renormalized in float32.
func (m *Mesh) Render() *RenderMesh {
	r := &RenderMesh{
		Vertices: make([]float32, 0, len(m.Vertices)*3),
		Normals:  make([]float32, len(m.Vertices)*3),
		Indices:  make([]uint32, 0, len(m.Faces)*3),
		PartName: m.Name,
	}
	for _, v := range m.Vertices {
		r.Vertices = append(r.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for i, f := range m.Faces {
		t := m.Triangle(i)
		// Unnormalized cross product weights by twice the face area.
		n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
		for _, vi := range f {
			r.Normals[vi*3] += float32(n.X)
			r.Normals[vi*3+1] += float32(n.Y)
			r.Normals[vi*3+2] += float32(n.Z)
			r.Indices = append(r.Indices, uint32(vi))
		}
	}
	for i := 0; i < len(r.Normals); i += 3 {
		x, y, z := r.Normals[i], r.Normals[i+1], r.Normals[i+2]
		l := math32.Sqrt(x*x + y*y + z*z)
		if l == 0 {
			continue
		}
		r.Normals[i], r.Normals[i+1], r.Normals[i+2] = x/l, y/l, z/l
	}
	return r
}
