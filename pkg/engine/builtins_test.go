package engine

import (
	"errors"
	"strings"
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/geomesh/pkg/graph"
	"github.com/chazu/geomesh/pkg/shape"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(volume "v" s :material "Fe")`,
			expect: `(volume "v" s "__kw_material" "Fe")`,
		},
		{
			name:   "multiple keywords",
			input:  `(box :dx 400 :dy 200)`,
			expect: `(box "__kw_dx" 400 "__kw_dy" 200)`,
		},
		{
			name:   "keyword with digits",
			input:  `(trd1 :dx1 1 :dx2 2)`,
			expect: `(trd1 "__kw_dx1" 1 "__kw_dx2" 2)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(tube-seg :rmax 1)`,
			expect: `(tube_seg "__kw_rmax" 1)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `[-10 0 10]`,
			expect: `[-10 0 10]`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:part-a`,
			expect: `"__kw_part-a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// evaluate runs source and fails the test on any error.
func evaluate(t *testing.T, source string) *graph.Graph {
	t.Helper()
	g, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if g == nil {
		t.Fatal("expected non-nil graph")
	}
	return g
}

// evalError runs source and returns the joined evaluation error messages.
func evalError(t *testing.T, source string) string {
	t.Helper()
	g, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if g != nil || len(evalErrs) == 0 {
		t.Fatalf("expected eval errors for %s", source)
	}
	msgs := make([]string, len(evalErrs))
	for i, e := range evalErrs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

func volumeShape(t *testing.T, g *graph.Graph, name string) shape.Shape {
	t.Helper()
	n := g.Lookup(name)
	if n == nil {
		t.Fatalf("expected node named %q", name)
	}
	if n.Kind != graph.NodeVolume {
		t.Fatalf("%s: expected NodeVolume, got %s", name, n.Kind)
	}
	vd, ok := n.Data.(graph.VolumeData)
	if !ok {
		t.Fatalf("%s: expected VolumeData, got %T", name, n.Data)
	}
	return vd.Shape
}

// ---------------------------------------------------------------------------
// Shape forms
// ---------------------------------------------------------------------------

func TestSimpleVolume(t *testing.T) {
	g := evaluate(t, `
(volume "crystal" (box :dx 1 :dy 2 :dz 10) :material "PbWO4")
`)
	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	b, ok := volumeShape(t, g, "crystal").(shape.Box)
	if !ok {
		t.Fatalf("expected shape.Box")
	}
	if b != (shape.Box{DX: 1, DY: 2, DZ: 10}) {
		t.Errorf("box = %+v", b)
	}
	if m := g.Lookup("crystal").Data.(graph.VolumeData).Material; m != "PbWO4" {
		t.Errorf("material = %q", m)
	}
	// An unplaced volume is a root of its own.
	if len(g.Roots) != 1 || g.Roots[0] != g.Lookup("crystal").ID {
		t.Errorf("roots = %v", g.Roots)
	}
}

func TestEveryShapeForm(t *testing.T) {
	source := `
(volume "box" (box :dx 1 :dy 2 :dz 3))
(volume "para" (para :dx 2 :dy 3 :dz 4 :alpha 15 :theta 20 :phi 30))
(volume "arb8" (arb8 :dz 2 :vertices [-2 -2 -2 2 2 2 2 -2 -1 -1 -1 1 1 1 1 -1]))
(volume "trd1" (trd1 :dx1 2 :dx2 1 :dy 3 :dz 4))
(volume "trd2" (trd2 :dx1 2 :dx2 1 :dy1 3 :dy2 2 :dz 4))
(volume "trap" (trap :dz 5 :theta 10 :phi 20 :h1 3 :bl1 2 :tl1 1.5 :alpha1 5 :h2 3 :bl2 2 :tl2 1.5 :alpha2 5))
(volume "sphere" (sphere :rmin 5 :rmax 10 :theta1 30 :theta2 120))
(volume "cone" (cone :dz 5 :rmin1 2 :rmax1 4 :rmin2 1 :rmax2 3))
(volume "cone-seg" (cone-seg :dz 5 :rmax1 4 :rmax2 3 :phi1 0 :phi2 270))
(volume "tube" (tube :rmin 5 :rmax 10 :dz 4))
(volume "tube-seg" (tube-seg :rmax 10 :dz 4 :phi1 10 :phi2 100))
(volume "torus" (torus :r 20 :rmin 2 :rmax 5))
(volume "pcon" (pcon :z [-10 0 10] :rmin [1 2 1] :rmax [5 8 5]))
(volume "pgon" (pgon :nedges 6 :dphi 180 :z (list -10 10) :rmin [2 2] :rmax [6 6]))
(volume "ctub" (shape "TGeoCtub"))
`
	g := evaluate(t, source)

	want := map[string]shape.Kind{
		"box": shape.KindBox, "para": shape.KindPara, "arb8": shape.KindArb8,
		"trd1": shape.KindTrd1, "trd2": shape.KindTrd2, "trap": shape.KindTrap,
		"sphere": shape.KindSphere, "cone": shape.KindCone, "cone-seg": shape.KindConeSeg,
		"tube": shape.KindTube, "tube-seg": shape.KindTubeSeg, "torus": shape.KindTorus,
		"pcon": shape.KindPcon, "pgon": shape.KindPgon, "ctub": shape.KindUnsupported,
	}
	for name, kind := range want {
		if got := volumeShape(t, g, name).Kind(); got != kind {
			t.Errorf("%s: kind %s, want %s", name, got, kind)
		}
	}

	// Defaults for omitted angles and radii.
	sp := volumeShape(t, g, "sphere").(shape.Sphere)
	if sp.Phi1 != 0 || sp.Phi2 != 360 {
		t.Errorf("sphere phi range = [%g, %g], want [0, 360]", sp.Phi1, sp.Phi2)
	}
	tor := volumeShape(t, g, "torus").(shape.Torus)
	if tor.Dphi != 360 {
		t.Errorf("torus dphi = %g, want 360", tor.Dphi)
	}
	ts := volumeShape(t, g, "tube-seg").(shape.TubeSeg)
	if ts.Rmin != 0 || ts.Phi2 != 100 {
		t.Errorf("tube-seg = %+v", ts)
	}
	pg := volumeShape(t, g, "pgon").(shape.Pgon)
	if pg.NEdges != 6 || pg.NumZ() != 2 || pg.Dphi != 180 {
		t.Errorf("pgon = %+v", pg)
	}
	arb := volumeShape(t, g, "arb8").(shape.Arb8)
	if arb.XY[4] != [2]float64{-1, -1} {
		t.Errorf("arb8 vertex 4 = %v", arb.XY[4])
	}
	if ctub := volumeShape(t, g, "ctub"); ctub.TypeName() != "TGeoCtub" {
		t.Errorf("ctub type name = %q", ctub.TypeName())
	}
}

func TestVariableReference(t *testing.T) {
	g := evaluate(t, `
(def r 19)
(volume "pipe" (tube :rmin (- r 2) :rmax r :dz 100))
`)
	tb := volumeShape(t, g, "pipe").(shape.Tube)
	if tb.Rmin != 17 || tb.Rmax != 19 {
		t.Errorf("tube radii = %g / %g, want 17 / 19", tb.Rmin, tb.Rmax)
	}
}

func TestShapeFormErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"missing field", `(box :dx 1 :dy 2)`, "box: missing :dz"},
		{"not a number", `(box :dx "wide" :dy 2 :dz 3)`, "box: dx: expected number"},
		{"invalid value", `(box :dx -1 :dy 2 :dz 3)`, "box: TGeoBBox: DX"},
		{"arb8 vertex count", `(arb8 :dz 1 :vertices [1 2 3])`, "want 16"},
		{"pgon fractional edges", `(pgon :nedges 2.5 :z [0 1] :rmin [0 0] :rmax [1 1])`, "not an integer"},
		{"pcon plane mismatch", `(pcon :z [0 1] :rmin [0] :rmax [1 1])`, "pcon:"},
		{"supported class as shape", `(shape "TGeoBBox")`, "names a supported kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := evalError(t, tt.source); !strings.Contains(msg, tt.want) {
				t.Errorf("error %q does not contain %q", msg, tt.want)
			}
		})
	}
}

func TestFieldsKeepFirstError(t *testing.T) {
	f := &fields{form: "box", pa: parseArgs(nil)}
	_, err := f.result(shape.NewBox(f.num("dx"), f.num("dy"), f.num("dz")))
	if err == nil || !strings.Contains(err.Error(), ":dx") {
		t.Fatalf("err = %v, want the first missing field", err)
	}
	if errors.Is(err, shape.ErrInvalidParam) {
		t.Error("a missing field should not be reported as a constructor error")
	}

	f = &fields{form: "box", pa: parseArgs([]zygo.Sexp{
		&zygo.SexpStr{S: kwPrefix + "dx"}, &zygo.SexpInt{Val: -1},
		&zygo.SexpStr{S: kwPrefix + "dy"}, &zygo.SexpInt{Val: 1},
		&zygo.SexpStr{S: kwPrefix + "dz"}, &zygo.SexpFloat{Val: 1},
	})}
	_, err = f.result(shape.NewBox(f.num("dx"), f.num("dy"), f.num("dz")))
	if !errors.Is(err, shape.ErrInvalidParam) {
		t.Fatalf("err = %v, want a wrapped ParamError", err)
	}
}

// ---------------------------------------------------------------------------
// Hierarchy forms
// ---------------------------------------------------------------------------

func TestAssemblyWithPlacement(t *testing.T) {
	g := evaluate(t, `
(def crystal (volume "crystal" (box :dx 1 :dy 1 :dz 10) :material "PbWO4"))
(def ring (volume "ring" (tube :rmin 20 :rmax 30 :dz 4)))

(assembly "calorimeter"
  (place crystal :at (vec3 40 0 0))
  (place crystal :at (vec3 0 40 0) :rotate (vec3 0 0 90))
  ring
  :description "two crystals and a ring")
`)

	// 2 volumes + 2 placements + 1 assembly = 5 nodes
	if g.NodeCount() != 5 {
		t.Fatalf("expected 5 nodes, got %d", g.NodeCount())
	}

	calo := g.Lookup("calorimeter")
	if calo == nil {
		t.Fatal("expected node named 'calorimeter'")
	}
	if calo.Kind != graph.NodeAssembly {
		t.Errorf("calorimeter: expected NodeAssembly, got %s", calo.Kind)
	}
	if len(calo.Children) != 3 {
		t.Errorf("calorimeter: expected 3 children, got %d", len(calo.Children))
	}
	if d := calo.Data.(graph.AssemblyData).Description; d != "two crystals and a ring" {
		t.Errorf("description = %q", d)
	}

	// Everything hangs off the assembly.
	if len(g.Roots) != 1 || g.Roots[0] != calo.ID {
		t.Errorf("expected the assembly as the only root, got %d roots", len(g.Roots))
	}

	placements := 0
	for _, n := range g.Nodes {
		if n.Kind != graph.NodePlacement {
			continue
		}
		placements++
		pd, ok := n.Data.(graph.PlacementData)
		if !ok {
			t.Fatalf("placement node: expected PlacementData, got %T", n.Data)
		}
		if pd.Translation == nil {
			t.Error("placement node: expected non-nil translation")
		}
		if pd.Rotation != nil && pd.Rotation.Z != 90 {
			t.Errorf("rotation = %v", *pd.Rotation)
		}
	}
	if placements != 2 {
		t.Errorf("expected 2 placement nodes, got %d", placements)
	}

	res := graph.ValidateAll(g)
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("validation = %+v", res)
	}
}

func TestNestedAssemblies(t *testing.T) {
	g := evaluate(t, `
(def cell (volume "cell" (box :dx 1 :dy 1 :dz 1)))
(def row (assembly "row" (place cell :at (vec3 0 0 0)) (place cell :at (vec3 2 0 0))))
(assembly "layer" (place row :at (vec3 0 0 0)) (place row :at (vec3 0 2 0)))
`)
	if len(g.Roots) != 1 || g.Roots[0] != g.Lookup("layer").ID {
		t.Fatalf("expected layer as the only root, got %d roots", len(g.Roots))
	}
	if errs := graph.Validate(g); len(errs) != 0 {
		t.Errorf("validation errors: %v", errs)
	}
}

func TestRefLookup(t *testing.T) {
	g := evaluate(t, `
(volume "cell" (box :dx 1 :dy 1 :dz 1))
(assembly "row" (place (ref "cell") :at (vec3 2 0 0)))
`)
	if len(g.Roots) != 1 || g.Roots[0] != g.Lookup("row").ID {
		t.Fatalf("expected row as the only root, got %d roots", len(g.Roots))
	}
	if msg := evalError(t, `(ref "nothing")`); !strings.Contains(msg, `no volume or assembly named "nothing"`) {
		t.Errorf("error = %q", msg)
	}
}

func TestDuplicateName(t *testing.T) {
	msg := evalError(t, `
(volume "a" (box :dx 1 :dy 1 :dz 1))
(volume "a" (box :dx 2 :dy 2 :dz 2))
`)
	if !strings.Contains(msg, `name "a" already defined`) {
		t.Errorf("error = %q", msg)
	}
}

func TestHierarchyFormErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"volume without shape", `(volume "v")`, "volume requires"},
		{"volume with number", `(volume "v" 3)`, "expected shape"},
		{"place a number", `(place 3)`, "expected node reference"},
		{"place bad at", `(place (volume "v" (box :dx 1 :dy 1 :dz 1)) :at 3)`, "place: at: expected vec3"},
		{"assembly bad child", `(assembly "a" 3)`, "assembly: child 1"},
		{"vec3 arity", `(vec3 1 2)`, "exactly 3 arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := evalError(t, tt.source); !strings.Contains(msg, tt.want) {
				t.Errorf("error %q does not contain %q", msg, tt.want)
			}
		})
	}
}

func TestNodeIDsAreStable(t *testing.T) {
	source := `
(def c (volume "c" (box :dx 1 :dy 1 :dz 1)))
(assembly "a" (place c :at (vec3 1 0 0)) (place c :at (vec3 2 0 0)))
`
	g1 := evaluate(t, source)
	g2 := evaluate(t, source)
	if g1.NodeCount() != g2.NodeCount() {
		t.Fatalf("node counts differ: %d vs %d", g1.NodeCount(), g2.NodeCount())
	}
	for id := range g1.Nodes {
		if g2.Get(id) == nil {
			t.Errorf("node %s missing from the second evaluation", id.Short())
		}
	}
}

// ---------------------------------------------------------------------------
// Regressions
// ---------------------------------------------------------------------------

func TestEmptySourceStillWorks(t *testing.T) {
	if g := evaluate(t, ""); g.NodeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	evaluate(t, "(+ 1 2)")
}
