package tessellate

import (
	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/shape"
)

// torus builds a toroidal shell sector. The ring sweeps from Phi1 over
// Dphi; a full sweep needs no walls since both tube surfaces close on
// themselves, a partial one gets an annular cap at each end.
func (b *builder) torus(s shape.Torus) *kernel.Mesh {
	p := kernel.TorusParams{
		Radius:          s.R * Scale,
		Tube:            s.Rmax * Scale,
		ArcStart:        radians(s.Phi1),
		Arc:             radians(s.Dphi),
		RadialSegments:  b.res.TorusRadial,
		TubularSegments: b.res.TorusTubular,
	}
	outer := b.k.Torus(p)
	p.Tube = b.inner(s.Rmin)
	if p.Tube < b.weld {
		// Thinner than the weld grid: sample the centre line so every
		// ring of the inner surface welds to a single point.
		p.Tube = 0
	}
	inner := b.k.Torus(p)

	parts := shell(outer, inner)
	parts = append(parts, azimuthalCaps(outer, inner)...)
	return b.finish(merge(parts...))
}
