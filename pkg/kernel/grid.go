package kernel

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Grid is a row-major lattice of surface samples. Rows run along the
// profile of the surface, columns around its axis. When Closed is set the
// last column connects back to column 0; otherwise the first and last
// columns are the two sweep boundaries.
type Grid struct {
	Rows   int
	Cols   int
	Closed bool
	Points []v3.Vec
}

// NewGrid allocates a rows x cols grid of zero points.
func NewGrid(rows, cols int, closed bool) *Grid {
	return &Grid{
		Rows:   rows,
		Cols:   cols,
		Closed: closed,
		Points: make([]v3.Vec, rows*cols),
	}
}

// At returns the sample at row r, column c.
func (g *Grid) At(r, c int) v3.Vec {
	return g.Points[r*g.Cols+c]
}

// Set stores the sample at row r, column c.
func (g *Grid) Set(r, c int, p v3.Vec) {
	g.Points[r*g.Cols+c] = p
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) []v3.Vec {
	return append([]v3.Vec(nil), g.Points[r*g.Cols:(r+1)*g.Cols]...)
}

// Column returns a copy of column c, ordered by row.
func (g *Grid) Column(c int) []v3.Vec {
	col := make([]v3.Vec, g.Rows)
	for r := range g.Rows {
		col[r] = g.At(r, c)
	}
	return col
}

// Transform applies t to every sample in place.
func (g *Grid) Transform(t sdf.M44) {
	for i, p := range g.Points {
		g.Points[i] = t.MulPosition(p)
	}
}

// Surface triangulates the grid. Each cell between rows r and r+1 and
// columns c and c+1 becomes two triangles, counter clockwise when the rows
// increase along the profile and the columns increase along the sweep, as
// seen from the side the surface faces. flip reverses the winding, which
// turns an outer shell into an inner one.
func (g *Grid) Surface(flip bool) *Mesh {
	cells := g.Cols - 1
	if g.Closed {
		cells = g.Cols
	}
	m := NewMesh(len(g.Points), 2*cells*max(g.Rows-1, 0))
	m.Vertices = append(m.Vertices, g.Points...)
	for r := 0; r+1 < g.Rows; r++ {
		for c := range cells {
			cn := (c + 1) % g.Cols
			a0, a1 := r*g.Cols+c, r*g.Cols+cn
			b0, b1 := (r+1)*g.Cols+c, (r+1)*g.Cols+cn
			if flip {
				m.AddFace(a0, b0, a1)
				m.AddFace(b0, b1, a1)
				continue
			}
			m.AddFace(a0, a1, b0)
			m.AddFace(b0, a1, b1)
		}
	}
	return m
}
