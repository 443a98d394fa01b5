package tessellate

import (
	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/shape"
)

// sphere builds a spherical shell sector: outer and inner patches over
// [Theta1, Theta2] x [Phi1, Phi2], the conical walls at both polar limits
// and, for a partial azimuth, the two meridian caps. Polar walls at a pole
// collapse to nothing in the weld.
func (b *builder) sphere(s shape.Sphere) *kernel.Mesh {
	n := b.res.SphereSegments
	p := kernel.SphereParams{
		Radius:         s.Rmax * Scale,
		PhiStart:       radians(s.Phi1),
		PhiLength:      radians(s.Dphi()),
		ThetaStart:     radians(s.Theta1),
		ThetaLength:    radians(s.Theta2 - s.Theta1),
		WidthSegments:  n,
		HeightSegments: n,
	}
	outer := b.k.Sphere(p)
	p.Radius = b.inner(s.Rmin)
	inner := b.k.Sphere(p)

	parts := shell(outer, inner)
	parts = append(parts,
		ringWall(outer, inner, outer.Rows-1, true), // Theta1
		ringWall(outer, inner, 0, false),           // Theta2
	)
	parts = append(parts, azimuthalCaps(outer, inner)...)
	return b.finish(merge(parts...))
}
