package shape

import "math"

// ---------------------------------------------------------------------------
// Box
// ---------------------------------------------------------------------------

// Box is an axis-aligned box given by its half-lengths (TGeoBBox).
type Box struct {
	DX float64 `json:"fDX"`
	DY float64 `json:"fDY"`
	DZ float64 `json:"fDZ"`
}

// NewBox returns a validated Box.
func NewBox(dx, dy, dz float64) (Box, error) {
	b := Box{DX: dx, DY: dy, DZ: dz}
	return b, b.Validate()
}

func (Box) Kind() Kind       { return KindBox }
func (Box) TypeName() string { return KindBox.String() }
func (Box) shape()           {}

func (b Box) Validate() error {
	if err := checkPositive(KindBox, "DX", b.DX); err != nil {
		return err
	}
	if err := checkPositive(KindBox, "DY", b.DY); err != nil {
		return err
	}
	return checkPositive(KindBox, "DZ", b.DZ)
}

// ---------------------------------------------------------------------------
// Para
// ---------------------------------------------------------------------------

// Para is a parallelepiped (TGeoPara): a box of half-lengths X, Y, Z whose
// faces are sheared by the tangents Txy, Txz and Tyz.
type Para struct {
	X   float64 `json:"fX"`
	Y   float64 `json:"fY"`
	Z   float64 `json:"fZ"`
	Txy float64 `json:"fTxy"`
	Txz float64 `json:"fTxz"`
	Tyz float64 `json:"fTyz"`
}

// NewPara builds a Para from ROOT's angle parameters in degrees: alpha is
// the angle between the Y axis and the centre line at y=+Y; theta and phi
// give the polar and azimuthal angle of the line joining the centres of the
// -Z and +Z faces.
func NewPara(x, y, z, alpha, theta, phi float64) (Para, error) {
	ta := math.Tan(alpha * math.Pi / 180)
	tt := math.Tan(theta * math.Pi / 180)
	ph := phi * math.Pi / 180
	p := Para{
		X:   x,
		Y:   y,
		Z:   z,
		Txy: ta,
		Txz: tt * math.Cos(ph),
		Tyz: tt * math.Sin(ph),
	}
	return p, p.Validate()
}

func (Para) Kind() Kind       { return KindPara }
func (Para) TypeName() string { return KindPara.String() }
func (Para) shape()           {}

func (p Para) Validate() error {
	if err := checkPositive(KindPara, "X", p.X); err != nil {
		return err
	}
	if err := checkPositive(KindPara, "Y", p.Y); err != nil {
		return err
	}
	if err := checkPositive(KindPara, "Z", p.Z); err != nil {
		return err
	}
	if err := checkFinite(KindPara, "Txy", p.Txy); err != nil {
		return err
	}
	if err := checkFinite(KindPara, "Txz", p.Txz); err != nil {
		return err
	}
	return checkFinite(KindPara, "Tyz", p.Tyz)
}

// Corners returns the eight vertices, the first four on the -Z face and the
// last four on the +Z face, each face clockwise when seen from +Z.
func (p Para) Corners() [8][3]float64 {
	x, y, z := p.X, p.Y, p.Z
	return [8][3]float64{
		{-z*p.Txz - p.Txy*y - x, -y - z*p.Tyz, -z},
		{-z*p.Txz + p.Txy*y - x, +y - z*p.Tyz, -z},
		{-z*p.Txz + p.Txy*y + x, +y - z*p.Tyz, -z},
		{-z*p.Txz - p.Txy*y + x, -y - z*p.Tyz, -z},
		{+z*p.Txz - p.Txy*y - x, -y + z*p.Tyz, +z},
		{+z*p.Txz + p.Txy*y - x, +y + z*p.Tyz, +z},
		{+z*p.Txz + p.Txy*y + x, +y + z*p.Tyz, +z},
		{+z*p.Txz - p.Txy*y + x, -y + z*p.Tyz, +z},
	}
}

// ---------------------------------------------------------------------------
// Arb8
// ---------------------------------------------------------------------------

// Arb8 is an arbitrary eight-vertex solid (TGeoArb8). XY[0:4] lie on the
// -DZ plane and XY[4:8] on the +DZ plane.
type Arb8 struct {
	DZ float64       `json:"fDZ"`
	XY [8][2]float64 `json:"fXY"`
}

// NewArb8 returns a validated Arb8.
func NewArb8(dz float64, xy [8][2]float64) (Arb8, error) {
	a := Arb8{DZ: dz, XY: xy}
	return a, a.Validate()
}

func (Arb8) Kind() Kind       { return KindArb8 }
func (Arb8) TypeName() string { return KindArb8.String() }
func (Arb8) shape()           {}

func (a Arb8) Validate() error {
	return validateVertices(KindArb8, a.DZ, a.XY)
}

// Corners returns the eight vertices in descriptor order.
func (a Arb8) Corners() [8][3]float64 {
	return cornersFromXY(a.DZ, a.XY)
}

func validateVertices(k Kind, dz float64, xy [8][2]float64) error {
	if err := checkPositive(k, "DZ", dz); err != nil {
		return err
	}
	for i, v := range xy {
		if err := checkFinite(k, "XY", v[0]); err != nil {
			return paramErr(k, "XY", "vertex %d x is not finite", i)
		}
		if err := checkFinite(k, "XY", v[1]); err != nil {
			return paramErr(k, "XY", "vertex %d y is not finite", i)
		}
	}
	return nil
}

func cornersFromXY(dz float64, xy [8][2]float64) [8][3]float64 {
	var c [8][3]float64
	for i, v := range xy {
		z := -dz
		if i >= 4 {
			z = dz
		}
		c[i] = [3]float64{v[0], v[1], z}
	}
	return c
}

// ---------------------------------------------------------------------------
// Trd1 / Trd2
// ---------------------------------------------------------------------------

// Trd1 is a trapezoid whose X half-length varies linearly from Dx1 at -Dz
// to Dx2 at +Dz (TGeoTrd1).
type Trd1 struct {
	Dx1 float64 `json:"fDx1"`
	Dx2 float64 `json:"fDx2"`
	Dy  float64 `json:"fDy"`
	Dz  float64 `json:"fDz"`
}

// NewTrd1 returns a validated Trd1.
func NewTrd1(dx1, dx2, dy, dz float64) (Trd1, error) {
	t := Trd1{Dx1: dx1, Dx2: dx2, Dy: dy, Dz: dz}
	return t, t.Validate()
}

func (Trd1) Kind() Kind       { return KindTrd1 }
func (Trd1) TypeName() string { return KindTrd1.String() }
func (Trd1) shape()           {}

func (t Trd1) Validate() error {
	if err := checkNonNegative(KindTrd1, "Dx1", t.Dx1); err != nil {
		return err
	}
	if err := checkNonNegative(KindTrd1, "Dx2", t.Dx2); err != nil {
		return err
	}
	if t.Dx1 == 0 && t.Dx2 == 0 {
		return paramErr(KindTrd1, "Dx1", "and Dx2 are both zero")
	}
	if err := checkPositive(KindTrd1, "Dy", t.Dy); err != nil {
		return err
	}
	return checkPositive(KindTrd1, "Dz", t.Dz)
}

// Corners returns the eight vertices, each face clockwise seen from +Z.
func (t Trd1) Corners() [8][3]float64 {
	return [8][3]float64{
		{-t.Dx1, t.Dy, -t.Dz},
		{t.Dx1, t.Dy, -t.Dz},
		{t.Dx1, -t.Dy, -t.Dz},
		{-t.Dx1, -t.Dy, -t.Dz},
		{-t.Dx2, t.Dy, t.Dz},
		{t.Dx2, t.Dy, t.Dz},
		{t.Dx2, -t.Dy, t.Dz},
		{-t.Dx2, -t.Dy, t.Dz},
	}
}

// Trd2 is a trapezoid whose X and Y half-lengths both vary along Z
// (TGeoTrd2).
type Trd2 struct {
	Dx1 float64 `json:"fDx1"`
	Dx2 float64 `json:"fDx2"`
	Dy1 float64 `json:"fDy1"`
	Dy2 float64 `json:"fDy2"`
	Dz  float64 `json:"fDz"`
}

// NewTrd2 returns a validated Trd2.
func NewTrd2(dx1, dx2, dy1, dy2, dz float64) (Trd2, error) {
	t := Trd2{Dx1: dx1, Dx2: dx2, Dy1: dy1, Dy2: dy2, Dz: dz}
	return t, t.Validate()
}

func (Trd2) Kind() Kind       { return KindTrd2 }
func (Trd2) TypeName() string { return KindTrd2.String() }
func (Trd2) shape()           {}

func (t Trd2) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"Dx1", t.Dx1}, {"Dx2", t.Dx2}, {"Dy1", t.Dy1}, {"Dy2", t.Dy2}}
	for _, f := range fields {
		if err := checkNonNegative(KindTrd2, f.name, f.v); err != nil {
			return err
		}
	}
	if t.Dx1 == 0 && t.Dx2 == 0 {
		return paramErr(KindTrd2, "Dx1", "and Dx2 are both zero")
	}
	if t.Dy1 == 0 && t.Dy2 == 0 {
		return paramErr(KindTrd2, "Dy1", "and Dy2 are both zero")
	}
	return checkPositive(KindTrd2, "Dz", t.Dz)
}

// Corners returns the eight vertices, each face clockwise seen from +Z.
func (t Trd2) Corners() [8][3]float64 {
	return [8][3]float64{
		{-t.Dx1, t.Dy1, -t.Dz},
		{t.Dx1, t.Dy1, -t.Dz},
		{t.Dx1, -t.Dy1, -t.Dz},
		{-t.Dx1, -t.Dy1, -t.Dz},
		{-t.Dx2, t.Dy2, t.Dz},
		{t.Dx2, t.Dy2, t.Dz},
		{t.Dx2, -t.Dy2, t.Dz},
		{-t.Dx2, -t.Dy2, t.Dz},
	}
}

// ---------------------------------------------------------------------------
// Trap
// ---------------------------------------------------------------------------

// Trap is a general trapezoid (TGeoTrap). Its vertices are derived from the
// ROOT parameters; angles are in degrees.
type Trap struct {
	DZ     float64 `json:"fDZ"`
	Theta  float64 `json:"fTheta"`
	Phi    float64 `json:"fPhi"`
	H1     float64 `json:"fH1"`
	Bl1    float64 `json:"fBl1"`
	Tl1    float64 `json:"fTl1"`
	Alpha1 float64 `json:"fAlpha1"`
	H2     float64 `json:"fH2"`
	Bl2    float64 `json:"fBl2"`
	Tl2    float64 `json:"fTl2"`
	Alpha2 float64 `json:"fAlpha2"`
}

// NewTrap returns a validated Trap.
func NewTrap(dz, theta, phi, h1, bl1, tl1, alpha1, h2, bl2, tl2, alpha2 float64) (Trap, error) {
	t := Trap{
		DZ: dz, Theta: theta, Phi: phi,
		H1: h1, Bl1: bl1, Tl1: tl1, Alpha1: alpha1,
		H2: h2, Bl2: bl2, Tl2: tl2, Alpha2: alpha2,
	}
	return t, t.Validate()
}

func (Trap) Kind() Kind       { return KindTrap }
func (Trap) TypeName() string { return KindTrap.String() }
func (Trap) shape()           {}

func (t Trap) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"H1", t.H1}, {"Bl1", t.Bl1}, {"Tl1", t.Tl1}, {"H2", t.H2}, {"Bl2", t.Bl2}, {"Tl2", t.Tl2}}
	for _, f := range fields {
		if err := checkNonNegative(KindTrap, f.name, f.v); err != nil {
			return err
		}
	}
	for _, a := range []struct {
		name string
		v    float64
	}{{"Theta", t.Theta}, {"Phi", t.Phi}, {"Alpha1", t.Alpha1}, {"Alpha2", t.Alpha2}} {
		if err := checkFinite(KindTrap, a.name, a.v); err != nil {
			return err
		}
	}
	if math.Abs(t.Theta) >= 90 {
		return paramErr(KindTrap, "Theta", "is %g, must be within (-90, 90)", t.Theta)
	}
	return validateVertices(KindTrap, t.DZ, t.XY())
}

// XY returns the eight vertex XY pairs the way TGeoTrap computes them.
func (t Trap) XY() [8][2]float64 {
	rad := math.Pi / 180
	tt := math.Tan(t.Theta * rad)
	tx := tt * math.Cos(t.Phi*rad)
	ty := tt * math.Sin(t.Phi*rad)
	ta1 := math.Tan(t.Alpha1 * rad)
	ta2 := math.Tan(t.Alpha2 * rad)
	dz := t.DZ
	return [8][2]float64{
		{-dz*tx - t.H1*ta1 - t.Bl1, -dz*ty - t.H1},
		{-dz*tx + t.H1*ta1 - t.Tl1, -dz*ty + t.H1},
		{-dz*tx + t.H1*ta1 + t.Tl1, -dz*ty + t.H1},
		{-dz*tx - t.H1*ta1 + t.Bl1, -dz*ty - t.H1},
		{dz*tx - t.H2*ta2 - t.Bl2, dz*ty - t.H2},
		{dz*tx + t.H2*ta2 - t.Tl2, dz*ty + t.H2},
		{dz*tx + t.H2*ta2 + t.Tl2, dz*ty + t.H2},
		{dz*tx - t.H2*ta2 + t.Bl2, dz*ty - t.H2},
	}
}

// Corners returns the eight vertices in TGeoArb8 order.
func (t Trap) Corners() [8][3]float64 {
	return cornersFromXY(t.DZ, t.XY())
}
