package shape

// Pcon is a polycone (TGeoPcon): a stack of conical sections between
// consecutive Z planes, swept from Phi1 over Dphi degrees. Z, Rmin and
// Rmax have one entry per plane.
type Pcon struct {
	Phi1 float64   `json:"fPhi1"`
	Dphi float64   `json:"fDphi"`
	Z    []float64 `json:"fZ"`
	Rmin []float64 `json:"fRmin"`
	Rmax []float64 `json:"fRmax"`
}

// NewPcon returns a validated Pcon. The plane slices are copied.
func NewPcon(phi1, dphi float64, z, rmin, rmax []float64) (Pcon, error) {
	p := Pcon{
		Phi1: phi1,
		Dphi: dphi,
		Z:    append([]float64(nil), z...),
		Rmin: append([]float64(nil), rmin...),
		Rmax: append([]float64(nil), rmax...),
	}
	return p, p.Validate()
}

func (Pcon) Kind() Kind       { return KindPcon }
func (Pcon) TypeName() string { return KindPcon.String() }
func (Pcon) shape()           {}

func (p Pcon) Validate() error {
	return validatePlanes(KindPcon, p)
}

// NumZ returns the number of Z planes.
func (p Pcon) NumZ() int { return len(p.Z) }

// Sections returns the number of conical sections, one fewer than the
// number of planes.
func (p Pcon) Sections() int {
	if len(p.Z) < 2 {
		return 0
	}
	return len(p.Z) - 1
}

func validatePlanes(k Kind, p Pcon) error {
	if err := checkSweep(k, "Phi1", "Dphi", p.Phi1, p.Dphi); err != nil {
		return err
	}
	n := len(p.Z)
	if n < 2 {
		return paramErr(k, "Z", "has %d planes, need at least 2", n)
	}
	if len(p.Rmin) != n || len(p.Rmax) != n {
		return paramErr(k, "Rmin", "and Rmax lengths (%d, %d) differ from Z (%d)", len(p.Rmin), len(p.Rmax), n)
	}
	for i := range n {
		if err := checkFinite(k, "Z", p.Z[i]); err != nil {
			return err
		}
		if err := checkRadii(k, "Rmin", "Rmax", p.Rmin[i], p.Rmax[i]); err != nil {
			return err
		}
		if i > 0 && p.Z[i] < p.Z[i-1] {
			return paramErr(k, "Z", "plane %d at %g lies below plane %d at %g", i, p.Z[i], i-1, p.Z[i-1])
		}
	}
	return nil
}

// Pgon is a polygon-sided polycone (TGeoPgon): like Pcon but each section
// is faceted into NEdges flat sides over the sweep.
type Pgon struct {
	Pcon
	NEdges int `json:"fNedges"`
}

// NewPgon returns a validated Pgon. The plane slices are copied.
func NewPgon(phi1, dphi float64, nedges int, z, rmin, rmax []float64) (Pgon, error) {
	p := Pgon{
		Pcon: Pcon{
			Phi1: phi1,
			Dphi: dphi,
			Z:    append([]float64(nil), z...),
			Rmin: append([]float64(nil), rmin...),
			Rmax: append([]float64(nil), rmax...),
		},
		NEdges: nedges,
	}
	return p, p.Validate()
}

func (Pgon) Kind() Kind       { return KindPgon }
func (Pgon) TypeName() string { return KindPgon.String() }
func (Pgon) shape()           {}

func (p Pgon) Validate() error {
	if p.NEdges < 1 {
		return paramErr(KindPgon, "NEdges", "is %d, must be at least 1", p.NEdges)
	}
	return validatePlanes(KindPgon, p.Pcon)
}
