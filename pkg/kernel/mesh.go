package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is a triangle given as three indices into Mesh.Vertices, counter
// clockwise when seen from outside the solid.
type Face [3]int

// Mesh is an indexed triangle mesh. Normals holds one unit normal per face
// once ComputeNormals has run.
type Mesh struct {
	Name     string
	Vertices []v3.Vec
	Faces    []Face
	Normals  []v3.Vec
}

// NewMesh returns an empty mesh with room for the given number of vertices
// and faces.
func NewMesh(vertices, faces int) *Mesh {
	return &Mesh{
		Vertices: make([]v3.Vec, 0, vertices),
		Faces:    make([]Face, 0, faces),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v v3.Vec) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face over existing vertices.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

// AddTriangle appends three fresh vertices and the face joining them.
func (m *Mesh) AddTriangle(a, b, c v3.Vec) {
	i := m.AddVertex(a)
	m.AddVertex(b)
	m.AddVertex(c)
	m.AddFace(i, i+1, i+2)
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) sdf.Triangle3 {
	f := m.Faces[i]
	return sdf.Triangle3{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:     m.Name,
		Vertices: append([]v3.Vec(nil), m.Vertices...),
		Faces:    append([]Face(nil), m.Faces...),
	}
	if m.Normals != nil {
		c.Normals = append([]v3.Vec(nil), m.Normals...)
	}
	return c
}

// Transform applies an affine matrix to every vertex in place and
// recomputes normals. A matrix with negative determinant mirrors the mesh,
// so faces are flipped to keep them facing outward.
func (m *Mesh) Transform(t sdf.M44) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.MulPosition(v)
	}
	if determinant3(t) < 0 {
		m.flipFaces()
	}
	if m.Normals != nil {
		m.ComputeNormals()
	}
}

// Merge appends a copy of o, transformed by t, to m. Face normals are
// dropped; call ComputeNormals once the mesh is complete.
func (m *Mesh) Merge(o *Mesh, t sdf.M44) {
	if o == nil {
		return
	}
	base := len(m.Vertices)
	for _, v := range o.Vertices {
		m.Vertices = append(m.Vertices, t.MulPosition(v))
	}
	mirror := determinant3(t) < 0
	for _, f := range o.Faces {
		if mirror {
			f[1], f[2] = f[2], f[1]
		}
		m.Faces = append(m.Faces, Face{f[0] + base, f[1] + base, f[2] + base})
	}
	m.Normals = nil
}

// Flip reverses the winding of every face.
func (m *Mesh) Flip() {
	m.flipFaces()
	for i, n := range m.Normals {
		m.Normals[i] = n.Neg()
	}
}

func (m *Mesh) flipFaces() {
	for i, f := range m.Faces {
		m.Faces[i] = Face{f[0], f[2], f[1]}
	}
}

// ComputeNormals sets one unit normal per face. Zero-area faces get a zero
// normal.
func (m *Mesh) ComputeNormals() {
	if cap(m.Normals) >= len(m.Faces) {
		m.Normals = m.Normals[:len(m.Faces)]
	} else {
		m.Normals = make([]v3.Vec, len(m.Faces))
	}
	for i := range m.Faces {
		t := m.Triangle(i)
		e := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
		if e.Length() == 0 {
			m.Normals[i] = v3.Vec{}
			continue
		}
		m.Normals[i] = t.Normal()
	}
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty
// mesh returns a zero box.
func (m *Mesh) Bounds() sdf.Box3 {
	if len(m.Vertices) == 0 {
		return sdf.Box3{}
	}
	lo := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// determinant3 returns the determinant of the linear part of an affine
// matrix. The bottom row of an affine M44 is (0 0 0 1), so the full
// determinant equals it.
func determinant3(t sdf.M44) float64 {
	return t.Determinant()
}
