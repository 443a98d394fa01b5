package tessellate

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/shape"
)

// polycone stacks one frustum shell per section of p. Only the first
// section gets a bottom disk and only the last a top disk. Each section is
// welded on its own and the stack is not: neighbouring sections keep
// separate copies of their shared plane rims, so the seam between them is
// not watertight.
func (b *builder) polycone(p shape.Pcon, segments int) *kernel.Mesh {
	frags := make([]*kernel.Mesh, p.Sections())
	for n := range frags {
		frags[n] = b.section(p, n, segments)
	}
	m := merge(frags...)
	m.ComputeNormals()
	return m
}

// section builds the fragment between planes n and n+1.
func (b *builder) section(p shape.Pcon, n, segments int) *kernel.Mesh {
	z0, z1 := p.Z[n]*Scale, p.Z[n+1]*Scale
	cp := kernel.CylinderParams{
		RadiusBottom: p.Rmax[n] * Scale,
		RadiusTop:    p.Rmax[n+1] * Scale,
		Height:       z1 - z0,
		ThetaStart:   radians(p.Phi1),
		ThetaLength:  radians(p.Dphi),
		Segments:     segments,
	}
	outer := b.k.Cylinder(cp)
	cp.RadiusBottom = b.inner(p.Rmin[n])
	cp.RadiusTop = b.inner(p.Rmin[n+1])
	inner := b.k.Cylinder(cp)

	centre := sdf.Translate3d(v3.Vec{Z: (z0 + z1) / 2})
	outer.Transform(centre)
	inner.Transform(centre)

	parts := shell(outer, inner)
	if n == 0 {
		parts = append(parts, ringWall(outer, inner, 0, false))
	}
	if n == p.Sections()-1 {
		parts = append(parts, ringWall(outer, inner, 1, true))
	}
	parts = append(parts, azimuthalCaps(outer, inner)...)

	frag := merge(parts...)
	frag.Weld(b.weld)
	return frag
}
