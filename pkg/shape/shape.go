// Package shape defines the solid descriptors of a detector geometry.
// Each supported ROOT shape class has its own value type with mandatory,
// validated fields; Shape is a sealed interface over those types so that
// consumers can switch on them exhaustively.
package shape

import (
	"errors"
	"fmt"
	"math"
)

// Kind enumerates the shape classes known to this package.
type Kind int

const (
	KindUnsupported Kind = iota // any class the tessellator does not handle
	KindBox                     // TGeoBBox
	KindPara                    // TGeoPara
	KindArb8                    // TGeoArb8
	KindTrd1                    // TGeoTrd1
	KindTrd2                    // TGeoTrd2
	KindTrap                    // TGeoTrap
	KindSphere                  // TGeoSphere
	KindCone                    // TGeoCone
	KindConeSeg                 // TGeoConeSeg
	KindTube                    // TGeoTube
	KindTubeSeg                 // TGeoTubeSeg
	KindTorus                   // TGeoTorus
	KindPcon                    // TGeoPcon
	KindPgon                    // TGeoPgon
)

var kindNames = map[Kind]string{
	KindBox:     "TGeoBBox",
	KindPara:    "TGeoPara",
	KindArb8:    "TGeoArb8",
	KindTrd1:    "TGeoTrd1",
	KindTrd2:    "TGeoTrd2",
	KindTrap:    "TGeoTrap",
	KindSphere:  "TGeoSphere",
	KindCone:    "TGeoCone",
	KindConeSeg: "TGeoConeSeg",
	KindTube:    "TGeoTube",
	KindTubeSeg: "TGeoTubeSeg",
	KindTorus:   "TGeoTorus",
	KindPcon:    "TGeoPcon",
	KindPgon:    "TGeoPgon",
}

// String returns the ROOT class name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unsupported"
}

// Supported reports whether the kind belongs to the tessellated set.
func (k Kind) Supported() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a ROOT class name to its Kind. Unknown names map to
// KindUnsupported.
func ParseKind(typeName string) Kind {
	for k, name := range kindNames {
		if name == typeName {
			return k
		}
	}
	return KindUnsupported
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindBox; k <= KindPgon; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Shape is implemented by every descriptor type in this package.
type Shape interface {
	// Kind returns the shape class.
	Kind() Kind
	// TypeName returns the ROOT class name, including for unsupported shapes.
	TypeName() string
	// Validate checks that all mandatory parameters are present and sane.
	Validate() error

	shape() // marker method restricting implementations to this package
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// ErrInvalidParam is wrapped by every ParamError.
var ErrInvalidParam = errors.New("invalid shape parameter")

// ParamError reports a missing or out-of-range descriptor field.
type ParamError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParam
}

func paramErr(k Kind, field, format string, args ...any) error {
	return &ParamError{Kind: k, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func checkFinite(k Kind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return paramErr(k, field, "is not finite")
	}
	return nil
}

func checkPositive(k Kind, field string, v float64) error {
	if err := checkFinite(k, field, v); err != nil {
		return err
	}
	if v <= 0 {
		return paramErr(k, field, "is %g, must be positive", v)
	}
	return nil
}

func checkNonNegative(k Kind, field string, v float64) error {
	if err := checkFinite(k, field, v); err != nil {
		return err
	}
	if v < 0 {
		return paramErr(k, field, "is %g, must not be negative", v)
	}
	return nil
}

// checkRadii validates an inner/outer radius pair. A negative or zero
// inner radius is allowed: the tessellator clamps it.
func checkRadii(k Kind, innerField, outerField string, rmin, rmax float64) error {
	if err := checkFinite(k, innerField, rmin); err != nil {
		return err
	}
	if err := checkNonNegative(k, outerField, rmax); err != nil {
		return err
	}
	if rmin > rmax {
		return paramErr(k, innerField, "is %g, exceeds %s %g", rmin, outerField, rmax)
	}
	return nil
}

// checkSweep validates an azimuthal range given as start and length in degrees.
func checkSweep(k Kind, startField, lengthField string, start, length float64) error {
	if err := checkFinite(k, startField, start); err != nil {
		return err
	}
	return checkPositive(k, lengthField, length)
}

// ---------------------------------------------------------------------------
// Unsupported
// ---------------------------------------------------------------------------

// Unsupported stands in for a shape class the tessellator does not handle
// (TGeoCtub, TGeoXtru, composite shapes, ...). It carries only the class name.
type Unsupported struct {
	Name string `json:"_typename"`
}

// NewUnsupported returns a descriptor for the named class. Names of
// supported classes are rejected so that the two never alias.
func NewUnsupported(typeName string) (Unsupported, error) {
	u := Unsupported{Name: typeName}
	return u, u.Validate()
}

func (Unsupported) Kind() Kind         { return KindUnsupported }
func (u Unsupported) TypeName() string { return u.Name }
func (Unsupported) shape()             {}

func (u Unsupported) Validate() error {
	if u.Name == "" {
		return paramErr(KindUnsupported, "type name", "is empty")
	}
	if ParseKind(u.Name).Supported() {
		return paramErr(KindUnsupported, "type name", "%q names a supported kind", u.Name)
	}
	return nil
}
