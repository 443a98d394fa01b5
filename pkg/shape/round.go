package shape

// ---------------------------------------------------------------------------
// Sphere
// ---------------------------------------------------------------------------

// Sphere is a spherical shell sector (TGeoSphere). Theta is the polar angle
// measured from +Z, phi the azimuth; both in degrees.
type Sphere struct {
	Rmin   float64 `json:"fRmin"`
	Rmax   float64 `json:"fRmax"`
	Theta1 float64 `json:"fTheta1"`
	Theta2 float64 `json:"fTheta2"`
	Phi1   float64 `json:"fPhi1"`
	Phi2   float64 `json:"fPhi2"`
}

// NewSphere returns a validated Sphere.
func NewSphere(rmin, rmax, theta1, theta2, phi1, phi2 float64) (Sphere, error) {
	s := Sphere{Rmin: rmin, Rmax: rmax, Theta1: theta1, Theta2: theta2, Phi1: phi1, Phi2: phi2}
	return s, s.Validate()
}

func (Sphere) Kind() Kind       { return KindSphere }
func (Sphere) TypeName() string { return KindSphere.String() }
func (Sphere) shape()           {}

func (s Sphere) Validate() error {
	if err := checkPositive(KindSphere, "Rmax", s.Rmax); err != nil {
		return err
	}
	if err := checkRadii(KindSphere, "Rmin", "Rmax", s.Rmin, s.Rmax); err != nil {
		return err
	}
	if err := checkFinite(KindSphere, "Theta1", s.Theta1); err != nil {
		return err
	}
	if err := checkFinite(KindSphere, "Theta2", s.Theta2); err != nil {
		return err
	}
	if s.Theta1 < 0 || s.Theta2 > 180 || s.Theta1 >= s.Theta2 {
		return paramErr(KindSphere, "Theta1", "range [%g, %g] is not within [0, 180]", s.Theta1, s.Theta2)
	}
	return checkSweep(KindSphere, "Phi1", "Phi2-Phi1", s.Phi1, s.Phi2-s.Phi1)
}

// Dphi returns the azimuthal opening in degrees.
func (s Sphere) Dphi() float64 { return s.Phi2 - s.Phi1 }

// ---------------------------------------------------------------------------
// Tube / TubeSeg
// ---------------------------------------------------------------------------

// Tube is a cylindrical shell of half-length Dz (TGeoTube).
type Tube struct {
	Rmin float64 `json:"fRmin"`
	Rmax float64 `json:"fRmax"`
	Dz   float64 `json:"fDz"`
}

// NewTube returns a validated Tube.
func NewTube(rmin, rmax, dz float64) (Tube, error) {
	t := Tube{Rmin: rmin, Rmax: rmax, Dz: dz}
	return t, t.Validate()
}

func (Tube) Kind() Kind       { return KindTube }
func (Tube) TypeName() string { return KindTube.String() }
func (Tube) shape()           {}

func (t Tube) Validate() error {
	return validateTube(KindTube, t)
}

func validateTube(k Kind, t Tube) error {
	if err := checkPositive(k, "Rmax", t.Rmax); err != nil {
		return err
	}
	if err := checkRadii(k, "Rmin", "Rmax", t.Rmin, t.Rmax); err != nil {
		return err
	}
	return checkPositive(k, "Dz", t.Dz)
}

// TubeSeg is a Tube restricted to the azimuthal range [Phi1, Phi2] degrees
// (TGeoTubeSeg).
type TubeSeg struct {
	Tube
	Phi1 float64 `json:"fPhi1"`
	Phi2 float64 `json:"fPhi2"`
}

// NewTubeSeg returns a validated TubeSeg.
func NewTubeSeg(rmin, rmax, dz, phi1, phi2 float64) (TubeSeg, error) {
	t := TubeSeg{Tube: Tube{Rmin: rmin, Rmax: rmax, Dz: dz}, Phi1: phi1, Phi2: phi2}
	return t, t.Validate()
}

func (TubeSeg) Kind() Kind       { return KindTubeSeg }
func (TubeSeg) TypeName() string { return KindTubeSeg.String() }
func (TubeSeg) shape()           {}

func (t TubeSeg) Validate() error {
	if err := validateTube(KindTubeSeg, t.Tube); err != nil {
		return err
	}
	return checkSweep(KindTubeSeg, "Phi1", "Phi2-Phi1", t.Phi1, t.Phi2-t.Phi1)
}

// ---------------------------------------------------------------------------
// Cone / ConeSeg
// ---------------------------------------------------------------------------

// Cone is a conical shell of half-length Dz whose radii are (Rmin1, Rmax1)
// at -Dz and (Rmin2, Rmax2) at +Dz (TGeoCone).
type Cone struct {
	Dz    float64 `json:"fDz"`
	Rmin1 float64 `json:"fRmin1"`
	Rmax1 float64 `json:"fRmax1"`
	Rmin2 float64 `json:"fRmin2"`
	Rmax2 float64 `json:"fRmax2"`
}

// NewCone returns a validated Cone.
func NewCone(dz, rmin1, rmax1, rmin2, rmax2 float64) (Cone, error) {
	c := Cone{Dz: dz, Rmin1: rmin1, Rmax1: rmax1, Rmin2: rmin2, Rmax2: rmax2}
	return c, c.Validate()
}

func (Cone) Kind() Kind       { return KindCone }
func (Cone) TypeName() string { return KindCone.String() }
func (Cone) shape()           {}

func (c Cone) Validate() error {
	return validateCone(KindCone, c)
}

func validateCone(k Kind, c Cone) error {
	if err := checkPositive(k, "Dz", c.Dz); err != nil {
		return err
	}
	if err := checkRadii(k, "Rmin1", "Rmax1", c.Rmin1, c.Rmax1); err != nil {
		return err
	}
	if err := checkRadii(k, "Rmin2", "Rmax2", c.Rmin2, c.Rmax2); err != nil {
		return err
	}
	if c.Rmax1 == 0 && c.Rmax2 == 0 {
		return paramErr(k, "Rmax1", "and Rmax2 are both zero")
	}
	return nil
}

// ConeSeg is a Cone restricted to the azimuthal range [Phi1, Phi2] degrees
// (TGeoConeSeg).
type ConeSeg struct {
	Cone
	Phi1 float64 `json:"fPhi1"`
	Phi2 float64 `json:"fPhi2"`
}

// NewConeSeg returns a validated ConeSeg.
func NewConeSeg(dz, rmin1, rmax1, rmin2, rmax2, phi1, phi2 float64) (ConeSeg, error) {
	c := ConeSeg{
		Cone: Cone{Dz: dz, Rmin1: rmin1, Rmax1: rmax1, Rmin2: rmin2, Rmax2: rmax2},
		Phi1: phi1,
		Phi2: phi2,
	}
	return c, c.Validate()
}

func (ConeSeg) Kind() Kind       { return KindConeSeg }
func (ConeSeg) TypeName() string { return KindConeSeg.String() }
func (ConeSeg) shape()           {}

func (c ConeSeg) Validate() error {
	if err := validateCone(KindConeSeg, c.Cone); err != nil {
		return err
	}
	return checkSweep(KindConeSeg, "Phi1", "Phi2-Phi1", c.Phi1, c.Phi2-c.Phi1)
}

// ---------------------------------------------------------------------------
// Torus
// ---------------------------------------------------------------------------

// Torus is a toroidal shell sector (TGeoTorus): ring radius R, tube radii
// Rmin and Rmax, azimuth from Phi1 over Dphi degrees.
type Torus struct {
	R    float64 `json:"fR"`
	Rmin float64 `json:"fRmin"`
	Rmax float64 `json:"fRmax"`
	Phi1 float64 `json:"fPhi1"`
	Dphi float64 `json:"fDphi"`
}

// NewTorus returns a validated Torus.
func NewTorus(r, rmin, rmax, phi1, dphi float64) (Torus, error) {
	t := Torus{R: r, Rmin: rmin, Rmax: rmax, Phi1: phi1, Dphi: dphi}
	return t, t.Validate()
}

func (Torus) Kind() Kind       { return KindTorus }
func (Torus) TypeName() string { return KindTorus.String() }
func (Torus) shape()           {}

func (t Torus) Validate() error {
	if err := checkPositive(KindTorus, "R", t.R); err != nil {
		return err
	}
	if err := checkPositive(KindTorus, "Rmax", t.Rmax); err != nil {
		return err
	}
	if err := checkRadii(KindTorus, "Rmin", "Rmax", t.Rmin, t.Rmax); err != nil {
		return err
	}
	if t.Rmax > t.R {
		return paramErr(KindTorus, "Rmax", "is %g, exceeds ring radius %g", t.Rmax, t.R)
	}
	return checkSweep(KindTorus, "Phi1", "Dphi", t.Phi1, t.Dphi)
}
