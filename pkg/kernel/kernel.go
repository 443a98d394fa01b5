// Package kernel defines the mesh types shared by the tessellator and the
// abstract surface sampler that produces vertex grids for curved solids.
// Implementations (parametric) provide cylindrical, spherical and toroidal
// grids behind this interface so builders never depend on a concrete
// sampler.
package kernel

import "math"

// CylinderParams describes a conical frustum side surface around Z.
// Angles are radians.
type CylinderParams struct {
	RadiusBottom float64 // radius at z = -Height/2
	RadiusTop    float64 // radius at z = +Height/2
	Height       float64
	ThetaStart   float64 // azimuth of the first column
	ThetaLength  float64 // azimuthal sweep
	Segments     int     // azimuthal subdivisions
}

// SphereParams describes a spherical patch. Theta is the polar angle from
// +Z and phi the azimuth, both in radians.
type SphereParams struct {
	Radius         float64
	PhiStart       float64
	PhiLength      float64
	ThetaStart     float64
	ThetaLength    float64
	WidthSegments  int // azimuthal subdivisions
	HeightSegments int // polar subdivisions
}

// TorusParams describes a toroidal patch swept around Z. Angles are
// radians.
type TorusParams struct {
	Radius          float64 // ring radius
	Tube            float64 // tube radius
	ArcStart        float64 // azimuth of the first column
	Arc             float64 // azimuthal sweep
	RadialSegments  int     // subdivisions around the tube
	TubularSegments int     // subdivisions along the ring
}

// Kernel samples parametric surfaces into grids. Columns of every grid run
// in the direction of increasing azimuth and rows from low to high Z, so a
// non-flipped Grid.Surface faces away from the axis.
type Kernel interface {
	// Cylinder returns a 2-row grid: the bottom ring then the top ring.
	Cylinder(p CylinderParams) *Grid
	// Sphere returns HeightSegments+1 rows from ThetaStart+ThetaLength up
	// to ThetaStart.
	Sphere(p SphereParams) *Grid
	// Torus returns RadialSegments+1 rows around the tube, the last equal
	// to the first.
	Torus(p TorusParams) *Grid
}

// FullTurn reports whether an azimuthal sweep in radians closes on itself.
func FullTurn(length float64) bool {
	return length >= 2*math.Pi-1e-9
}

// Columns returns the column count for an azimuthal sweep of the given
// number of segments: one column per segment for a full turn, one more
// for a partial one.
func Columns(segments int, length float64) (cols int, closed bool) {
	if FullTurn(length) {
		return segments, true
	}
	return segments + 1, false
}
