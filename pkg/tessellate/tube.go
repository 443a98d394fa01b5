package tessellate

import (
	"github.com/chazu/geomesh/pkg/kernel"
)

// cone builds the tube and cone family: a shell between two frusta of
// half-length dz, closed by top and bottom rings and, for a partial sweep,
// by two azimuthal caps. Radii with suffix 1 apply at -dz, suffix 2 at
// +dz; angles are degrees.
func (b *builder) cone(dz, rmin1, rmax1, rmin2, rmax2, phi1, dphi float64) *kernel.Mesh {
	p := kernel.CylinderParams{
		RadiusBottom: rmax1 * Scale,
		RadiusTop:    rmax2 * Scale,
		Height:       2 * dz * Scale,
		ThetaStart:   radians(phi1),
		ThetaLength:  radians(dphi),
		Segments:     b.res.TubeSegments,
	}
	outer := b.k.Cylinder(p)
	p.RadiusBottom = b.inner(rmin1)
	p.RadiusTop = b.inner(rmin2)
	inner := b.k.Cylinder(p)

	parts := shell(outer, inner)
	parts = append(parts,
		ringWall(outer, inner, 1, true),
		ringWall(outer, inner, 0, false),
	)
	parts = append(parts, azimuthalCaps(outer, inner)...)
	return b.finish(merge(parts...))
}
