package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/geomesh/pkg/graph"
	"github.com/chazu/geomesh/pkg/shape"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms descriptor source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: tube-seg -> tube_seg
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a shape descriptor so it can be returned from a shape
// form and consumed by `volume`.
type sexpShape struct {
	s shape.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %s)", s.s.TypeName())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a v3.Vec.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (*sexpNodeRef, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref, nil
	}
	return nil, fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a v3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a descriptor from a sexpShape.
func toShape(s zygo.Sexp) (shape.Shape, error) {
	if v, ok := s.(*sexpShape); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFloats converts a list or array of numbers.
func toFloats(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		if out[i], err = toFloat64(item); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

// fields reads the keyword arguments of one shape form and keeps the
// first error, so a constructor call can take its parameters inline.
type fields struct {
	form string
	pa   kwArgs
	err  error
}

func (f *fields) fail(key string, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("%s: %s: %w", f.form, key, err)
	}
}

// num reads a required number.
func (f *fields) num(key string) float64 {
	v, ok := f.pa.kw[key]
	if !ok {
		if f.err == nil {
			f.err = fmt.Errorf("%s: missing :%s", f.form, key)
		}
		return 0
	}
	x, err := toFloat64(v)
	if err != nil {
		f.fail(key, err)
	}
	return x
}

// numOr reads an optional number.
func (f *fields) numOr(key string, def float64) float64 {
	if _, ok := f.pa.kw[key]; !ok {
		return def
	}
	return f.num(key)
}

// nums reads a required list of numbers.
func (f *fields) nums(key string) []float64 {
	v, ok := f.pa.kw[key]
	if !ok {
		if f.err == nil {
			f.err = fmt.Errorf("%s: missing :%s", f.form, key)
		}
		return nil
	}
	xs, err := toFloats(v)
	if err != nil {
		f.fail(key, err)
	}
	return xs
}

// result wraps a constructor's return for the interpreter.
func (f *fields) result(s shape.Shape, err error) (zygo.Sexp, error) {
	if f.err != nil {
		return zygo.SexpNull, f.err
	}
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", f.form, err)
	}
	return &sexpShape{s: s}, nil
}

// ---------------------------------------------------------------------------
// Shape forms
// ---------------------------------------------------------------------------

// shapeForms maps each DSL shape form to its descriptor constructor.
// Parameter names follow the ROOT class members; angles are in degrees.
var shapeForms = map[string]func(f *fields) (zygo.Sexp, error){
	// (box :dx 10 :dy 20 :dz 30)
	"box": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewBox(f.num("dx"), f.num("dy"), f.num("dz")))
	},
	// (para :dx 10 :dy 20 :dz 30 :alpha 15 :theta 20 :phi 30)
	"para": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewPara(f.num("dx"), f.num("dy"), f.num("dz"),
			f.numOr("alpha", 0), f.numOr("theta", 0), f.numOr("phi", 0)))
	},
	// (arb8 :dz 10 :vertices [x0 y0 x1 y1 ... x7 y7])
	"arb8": func(f *fields) (zygo.Sexp, error) {
		dz, flat := f.num("dz"), f.nums("vertices")
		var xy [8][2]float64
		if f.err == nil && len(flat) != 16 {
			f.fail("vertices", fmt.Errorf("got %d numbers, want 16", len(flat)))
		}
		if f.err == nil {
			for i := range xy {
				xy[i] = [2]float64{flat[2*i], flat[2*i+1]}
			}
		}
		return f.result(shape.NewArb8(dz, xy))
	},
	// (trd1 :dx1 10 :dx2 20 :dy 30 :dz 40)
	"trd1": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewTrd1(f.num("dx1"), f.num("dx2"), f.num("dy"), f.num("dz")))
	},
	// (trd2 :dx1 10 :dx2 20 :dy1 30 :dy2 40 :dz 50)
	"trd2": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewTrd2(f.num("dx1"), f.num("dx2"), f.num("dy1"), f.num("dy2"), f.num("dz")))
	},
	// (trap :dz 5 :theta 10 :phi 20 :h1 3 :bl1 2 :tl1 1.5 :alpha1 5 :h2 3 :bl2 2 :tl2 1.5 :alpha2 5)
	"trap": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewTrap(f.num("dz"), f.numOr("theta", 0), f.numOr("phi", 0),
			f.num("h1"), f.num("bl1"), f.num("tl1"), f.numOr("alpha1", 0),
			f.num("h2"), f.num("bl2"), f.num("tl2"), f.numOr("alpha2", 0)))
	},
	// (sphere :rmin 5 :rmax 10 :theta1 0 :theta2 180 :phi1 0 :phi2 360)
	"sphere": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewSphere(f.numOr("rmin", 0), f.num("rmax"),
			f.numOr("theta1", 0), f.numOr("theta2", 180), f.numOr("phi1", 0), f.numOr("phi2", 360)))
	},
	// (cone :dz 5 :rmin1 2 :rmax1 4 :rmin2 1 :rmax2 3)
	"cone": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewCone(f.num("dz"), f.numOr("rmin1", 0), f.num("rmax1"), f.numOr("rmin2", 0), f.num("rmax2")))
	},
	// (cone-seg :dz 5 :rmin1 2 :rmax1 4 :rmin2 1 :rmax2 3 :phi1 0 :phi2 270)
	"cone-seg": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewConeSeg(f.num("dz"), f.numOr("rmin1", 0), f.num("rmax1"), f.numOr("rmin2", 0), f.num("rmax2"),
			f.num("phi1"), f.num("phi2")))
	},
	// (tube :rmin 5 :rmax 10 :dz 4)
	"tube": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewTube(f.numOr("rmin", 0), f.num("rmax"), f.num("dz")))
	},
	// (tube-seg :rmin 5 :rmax 10 :dz 4 :phi1 0 :phi2 90)
	"tube-seg": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewTubeSeg(f.numOr("rmin", 0), f.num("rmax"), f.num("dz"), f.num("phi1"), f.num("phi2")))
	},
	// (torus :r 20 :rmin 2 :rmax 5 :phi1 0 :dphi 360)
	"torus": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewTorus(f.num("r"), f.numOr("rmin", 0), f.num("rmax"), f.numOr("phi1", 0), f.numOr("dphi", 360)))
	},
	// (pcon :phi1 0 :dphi 360 :z [-10 0 10] :rmin [1 2 1] :rmax [5 8 5])
	"pcon": func(f *fields) (zygo.Sexp, error) {
		return f.result(shape.NewPcon(f.numOr("phi1", 0), f.numOr("dphi", 360), f.nums("z"), f.nums("rmin"), f.nums("rmax")))
	},
	// (pgon :nedges 6 :phi1 0 :dphi 360 :z [-10 10] :rmin [2 2] :rmax [6 6])
	"pgon": func(f *fields) (zygo.Sexp, error) {
		n := f.num("nedges")
		if f.err == nil && n != float64(int(n)) {
			f.fail("nedges", fmt.Errorf("%g is not an integer", n))
		}
		return f.result(shape.NewPgon(f.numOr("phi1", 0), f.numOr("dphi", 360), int(n), f.nums("z"), f.nums("rmin"), f.nums("rmax")))
	},
}

// ---------------------------------------------------------------------------
// Scene state
// ---------------------------------------------------------------------------

// scene is the per-evaluation state shared by the builtins. Nodes that no
// placement or assembly consumes become roots, in creation order.
type scene struct {
	g        *graph.Graph
	order    []graph.NodeID
	consumed map[graph.NodeID]bool
	anon     int
}

func newScene() *scene {
	return &scene{g: graph.New(), consumed: make(map[graph.NodeID]bool)}
}

func (s *scene) add(n *graph.Node) {
	s.g.AddNode(n)
	s.order = append(s.order, n.ID)
}

// claim rejects a name that already labels a node.
func (s *scene) claim(form, name string) error {
	if name == "" {
		return fmt.Errorf("%s: name must not be empty", form)
	}
	if s.g.Lookup(name) != nil {
		return fmt.Errorf("%s: name %q already defined", form, name)
	}
	return nil
}

// nextSuffix provides unique suffixes for unnamed nodes. It counts per
// evaluation, so the same source always yields the same IDs.
func (s *scene) nextSuffix() string {
	s.anon++
	return fmt.Sprintf("_%d", s.anon)
}

func (s *scene) finish() *graph.Graph {
	for _, id := range s.order {
		if !s.consumed[id] {
			s.g.AddRoot(id)
		}
	}
	return s.g
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all DSL builtins into a zygomys environment.
// The builtins populate the scene's graph during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene) {
	for form, build := range shapeForms {
		// zygomys does not support hyphens in identifiers; the preprocessor
		// rewrites cone-seg to cone_seg in the source.
		env.AddFunction(strings.ReplaceAll(form, "-", "_"), func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			return build(&fields{form: form, pa: parseArgs(args)})
		})
	}

	// -----------------------------------------------------------------------
	// (shape "TGeoCtub")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires exactly one class name")
		}
		typeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: %w", err)
		}
		u, err := shape.NewUnsupported(typeName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: %w", err)
		}
		return &sexpShape{s: u}, nil
	})

	// -----------------------------------------------------------------------
	// (volume "crystal" (box ...) :material "PbWO4")
	// -----------------------------------------------------------------------
	env.AddFunction("volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("volume requires a name and a shape expression")
		}

		volName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("volume: name: %w", err)
		}
		if err := sc.claim("volume", volName); err != nil {
			return zygo.SexpNull, err
		}
		s, err := toShape(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("volume: %w", err)
		}
		vd := graph.VolumeData{Shape: s}
		if v, ok := pa.kw["material"]; ok {
			if vd.Material, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("volume: material: %w", err)
			}
		}

		id := graph.NewNodeID("volume/" + volName)
		sc.add(&graph.Node{
			ID:   id,
			Kind: graph.NodeVolume,
			Name: volName,
			Data: vd,
		})

		return &sexpNodeRef{id: id, name: volName}, nil
	})

	// -----------------------------------------------------------------------
	// (ref "crystal")
	// -----------------------------------------------------------------------
	env.AddFunction("ref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("ref requires a name argument")
		}

		refName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ref: name: %w", err)
		}

		n := sc.g.Lookup(refName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("ref: no volume or assembly named %q", refName)
		}

		return &sexpNodeRef{id: n.ID, name: refName}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}

		return &sexpVec3{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (place crystal :at (vec3 0 0 19) :rotate (vec3 0 0 90))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a volume or assembly reference as first argument")
		}

		child, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		pd := graph.PlacementData{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			pd.Translation = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			pd.Rotation = &vec
		}

		label := child.name
		if label == "" {
			label = child.id.Short()
		}
		id := graph.NewNodeID("place/" + label + "/" + sc.nextSuffix())
		sc.consumed[child.id] = true
		sc.add(&graph.Node{
			ID:       id,
			Kind:     graph.NodePlacement,
			Children: []graph.NodeID{child.id},
			Data:     pd,
		})

		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (assembly "name" (place ...) (place ...) ... :description "...")
	// -----------------------------------------------------------------------
	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("assembly requires a name argument")
		}

		asmName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: name: %w", err)
		}
		if err := sc.claim("assembly", asmName); err != nil {
			return zygo.SexpNull, err
		}
		ad := graph.AssemblyData{}
		if v, ok := pa.kw["description"]; ok {
			if ad.Description, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("assembly: description: %w", err)
			}
		}

		var children []graph.NodeID
		for i, arg := range pa.positional[1:] {
			ref, err := toNodeRef(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("assembly: child %d: %w", i+1, err)
			}
			children = append(children, ref.id)
		}
		for _, c := range children {
			sc.consumed[c] = true
		}

		id := graph.NewNodeID("assembly/" + asmName)
		sc.add(&graph.Node{
			ID:       id,
			Kind:     graph.NodeAssembly,
			Name:     asmName,
			Children: children,
			Data:     ad,
		})

		return &sexpNodeRef{id: id, name: asmName}, nil
	})
}
