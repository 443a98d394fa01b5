package tessellate

import "github.com/chazu/geomesh/pkg/kernel"

// shell returns the outer grid's surface together with the inner grid's
// surface turned to face the axis.
func shell(outer, inner *kernel.Grid) []*kernel.Mesh {
	return []*kernel.Mesh{outer.Surface(false), inner.Surface(true)}
}

// ringWall closes the gap between the same row of the outer and inner
// grids: the top of a tube, the polar cone of a sphere sector or the end
// disk of a stack. top selects the side facing increasing row index.
func ringWall(outer, inner *kernel.Grid, row int, top bool) *kernel.Mesh {
	o, in := outer.Row(row), inner.Row(row)
	if top {
		return stitchRows(o, in, outer.Closed)
	}
	return stitchRows(in, o, outer.Closed)
}

// azimuthalCap closes a sweep boundary by stitching column col of the
// outer grid to the same column of the inner grid. end selects the cap at
// the last column, which faces the opposite way.
func azimuthalCap(outer, inner *kernel.Grid, col int, end bool) *kernel.Mesh {
	o, in := outer.Column(col), inner.Column(col)
	if end {
		return stitchRows(in, o, false)
	}
	return stitchRows(o, in, false)
}

// azimuthalCaps returns both sweep-boundary caps, or nothing for a full
// revolution.
func azimuthalCaps(outer, inner *kernel.Grid) []*kernel.Mesh {
	if outer.Closed {
		return nil
	}
	return []*kernel.Mesh{
		azimuthalCap(outer, inner, 0, false),
		azimuthalCap(outer, inner, outer.Cols-1, true),
	}
}
