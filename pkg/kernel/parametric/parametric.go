// Package parametric implements kernel.Kernel by sampling the closed-form
// parametrizations of cylinders, spheres and tori.
package parametric

import (
	"math"

	"github.com/chazu/geomesh/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel samples surfaces with no state of its own.
type Kernel struct{}

// New returns a parametric Kernel.
func New() *Kernel {
	return &Kernel{}
}

// azimuths returns the sample angles for a sweep: one per column.
func azimuths(start, length float64, segments int) (angles []float64, closed bool) {
	if segments < 1 {
		segments = 1
	}
	cols, closed := kernel.Columns(segments, length)
	angles = make([]float64, cols)
	for i := range angles {
		angles[i] = start + float64(i)/float64(segments)*length
	}
	return angles, closed
}

// Cylinder samples the side of a frustum. Row 0 is the bottom ring at
// z = -Height/2, row 1 the top ring.
func (k *Kernel) Cylinder(p kernel.CylinderParams) *kernel.Grid {
	phis, closed := azimuths(p.ThetaStart, p.ThetaLength, p.Segments)
	g := kernel.NewGrid(2, len(phis), closed)
	half := p.Height / 2
	for c, phi := range phis {
		cos, sin := math.Cos(phi), math.Sin(phi)
		g.Set(0, c, v3.Vec{X: p.RadiusBottom * cos, Y: p.RadiusBottom * sin, Z: -half})
		g.Set(1, c, v3.Vec{X: p.RadiusTop * cos, Y: p.RadiusTop * sin, Z: half})
	}
	return g
}

// Sphere samples a spherical patch. Row 0 lies at the largest polar angle
// so that rows climb in z.
func (k *Kernel) Sphere(p kernel.SphereParams) *kernel.Grid {
	phis, closed := azimuths(p.PhiStart, p.PhiLength, p.WidthSegments)
	hs := max(p.HeightSegments, 1)
	g := kernel.NewGrid(hs+1, len(phis), closed)
	for r := 0; r <= hs; r++ {
		theta := p.ThetaStart + p.ThetaLength*float64(hs-r)/float64(hs)
		st, ct := math.Sin(theta), math.Cos(theta)
		for c, phi := range phis {
			g.Set(r, c, v3.Vec{
				X: p.Radius * st * math.Cos(phi),
				Y: p.Radius * st * math.Sin(phi),
				Z: p.Radius * ct,
			})
		}
	}
	return g
}

// Torus samples a toroidal patch. Columns follow the ring azimuth; rows
// walk once around the tube starting at the outer equator, the last row
// repeating the first.
func (k *Kernel) Torus(p kernel.TorusParams) *kernel.Grid {
	us, closed := azimuths(p.ArcStart, p.Arc, p.TubularSegments)
	rs := max(p.RadialSegments, 1)
	g := kernel.NewGrid(rs+1, len(us), closed)
	for r := 0; r <= rs; r++ {
		v := 2 * math.Pi * float64(r%rs) / float64(rs)
		ring := p.Radius + p.Tube*math.Cos(v)
		z := p.Tube * math.Sin(v)
		for c, u := range us {
			g.Set(r, c, v3.Vec{X: ring * math.Cos(u), Y: ring * math.Sin(u), Z: z})
		}
	}
	return g
}
