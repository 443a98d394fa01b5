package tessellate

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/kernel/manifold"
	"github.com/chazu/geomesh/pkg/shape"
)

// hexaFaces triangulates an eight-corner solid whose corners 0-3 lie on
// the bottom face and 4-7 on the top, both clockwise seen from +Z, with
// corner i+4 above corner i.
var hexaFaces = [12]kernel.Face{
	{0, 1, 2}, {0, 2, 3}, // bottom
	{4, 7, 6}, {4, 6, 5}, // top
	{0, 4, 5}, {0, 5, 1},
	{1, 5, 6}, {1, 6, 2},
	{2, 6, 7}, {2, 7, 3},
	{3, 7, 4}, {3, 4, 0},
}

// hexahedron builds the mesh of an eight-corner solid. Corners given in
// the mirrored order are detected by the sign of the enclosed volume and
// the winding is reversed. Coincident corners (a Trd1 closing to an edge,
// a degenerate Arb8) collapse in the weld.
func (b *builder) hexahedron(c [8][3]float64) *kernel.Mesh {
	m := kernel.NewMesh(8, 12)
	for _, p := range c {
		m.AddVertex(v3.Vec{X: p[0] * Scale, Y: p[1] * Scale, Z: p[2] * Scale})
	}
	m.Faces = append(m.Faces, hexaFaces[:]...)
	if manifold.SignedVolume(m) < 0 {
		m.Flip()
	}
	return b.finish(m)
}

func boxCorners(s shape.Box) [8][3]float64 {
	x, y, z := s.DX, s.DY, s.DZ
	return [8][3]float64{
		{-x, -y, -z}, {-x, y, -z}, {x, y, -z}, {x, -y, -z},
		{-x, -y, z}, {-x, y, z}, {x, y, z}, {x, -y, z},
	}
}
