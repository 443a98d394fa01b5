package graph

import (
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geomesh/pkg/shape"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildValidDetector creates a small detector: one crystal volume placed
// twice inside an assembly root.
func buildValidDetector(t *testing.T) *Graph {
	t.Helper()
	g := New()

	volID := NewNodeID("volume/crystal")
	p0 := NewNodeID("place/crystal/0")
	p1 := NewNodeID("place/crystal/1")
	asmID := NewNodeID("assembly/calorimeter")

	g.AddNode(&Node{
		ID: volID, Kind: NodeVolume, Name: "crystal",
		Data: VolumeData{Shape: mustBox(t, 1, 1, 10), Material: "PbWO4"},
	})
	g.AddNode(&Node{ID: p0, Kind: NodePlacement, Children: []NodeID{volID}, Data: PlacementData{}})
	g.AddNode(&Node{ID: p1, Kind: NodePlacement, Children: []NodeID{volID}, Data: PlacementData{}})
	g.AddNode(&Node{
		ID:       asmID,
		Kind:     NodeAssembly,
		Name:     "calorimeter",
		Children: []NodeID{p0, p1},
		Data:     AssemblyData{Description: "two crystals"},
	})
	g.AddRoot(asmID)

	return g
}

// hasError returns true if errs contains at least one error-severity finding
// whose message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// hasWarning returns true if errs contains at least one warning-severity
// finding whose message contains substr.
func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func logAll(t *testing.T, errs []ValidationError) {
	for _, e := range errs {
		t.Logf("  %s", e)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestValidate_ValidGraph(t *testing.T) {
	g := buildValidDetector(t)
	for _, e := range Validate(g) {
		t.Errorf("unexpected validation error: %s", e)
	}
	res := ValidateAll(g)
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("ValidateAll = %+v, want clean", res)
	}
}

func TestValidate_EmptyGraph(t *testing.T) {
	for _, e := range Validate(New()) {
		t.Errorf("unexpected validation error on empty graph: %s", e)
	}
}

func TestValidate_CycleDetection(t *testing.T) {
	g := New()

	aID := NewNodeID("a")
	bID := NewNodeID("b")
	cID := NewNodeID("c")

	// a -> b -> c -> a
	g.AddNode(&Node{ID: aID, Kind: NodeAssembly, Name: "a", Children: []NodeID{bID}, Data: AssemblyData{}})
	g.AddNode(&Node{ID: bID, Kind: NodeAssembly, Name: "b", Children: []NodeID{cID}, Data: AssemblyData{}})
	g.AddNode(&Node{ID: cID, Kind: NodeAssembly, Name: "c", Children: []NodeID{aID}, Data: AssemblyData{}})
	g.AddRoot(aID)

	errs := Validate(g)
	if !hasError(errs, "cycle") {
		t.Error("expected cycle detection error, got none")
		logAll(t, errs)
	}
}

func TestValidate_DanglingReference(t *testing.T) {
	g := New()
	parentID := NewNodeID("parent")
	g.AddNode(&Node{
		ID: parentID, Kind: NodeAssembly, Name: "parent",
		Children: []NodeID{NewNodeID("missing-child")},
		Data:     AssemblyData{},
	})
	g.AddRoot(parentID)

	errs := Validate(g)
	if !hasError(errs, "does not exist") {
		t.Error("expected dangling reference error, got none")
		logAll(t, errs)
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	g := buildValidDetector(t)
	dup := NewNodeID("assembly/crystal")
	g.Nodes[dup] = &Node{ID: dup, Kind: NodeAssembly, Name: "crystal", Data: AssemblyData{}}
	g.AddRoot(dup)

	if errs := Validate(g); !hasError(errs, "duplicate name") {
		t.Error("expected duplicate name error")
		logAll(t, errs)
	}
}

func TestValidate_OrphanNode(t *testing.T) {
	g := buildValidDetector(t)
	orphan := NewNodeID("volume/orphan")
	g.AddNode(&Node{ID: orphan, Kind: NodeVolume, Name: "orphan", Data: VolumeData{Shape: mustBox(t, 1, 1, 1)}})

	errs := Validate(g)
	if !hasWarning(errs, "orphan") {
		t.Error("expected orphan warning")
		logAll(t, errs)
	}
	if res := ValidateAll(g); len(res.Errors) != 0 || len(res.Warnings) != 1 {
		t.Errorf("ValidateAll = %d errors / %d warnings, want 0 / 1", len(res.Errors), len(res.Warnings))
	}
}

func TestValidate_NameIndexPointsToMissingNode(t *testing.T) {
	g := New()
	g.NameIndex["ghost"] = NewNodeID("ghost")
	if errs := Validate(g); !hasError(errs, "non-existent node") {
		t.Error("expected name index error")
		logAll(t, errs)
	}
}

func TestValidate_RootReferencesNonExistentNode(t *testing.T) {
	g := New()
	g.AddRoot(NewNodeID("nowhere"))
	if errs := Validate(g); !hasError(errs, "root reference") {
		t.Error("expected root reference error")
		logAll(t, errs)
	}
}

func TestValidate_Arity(t *testing.T) {
	g := buildValidDetector(t)
	vol := g.Lookup("crystal")

	empty := NewNodeID("place/empty")
	g.AddNode(&Node{ID: empty, Kind: NodePlacement, Data: PlacementData{}})
	leaf := NewNodeID("volume/parent")
	g.AddNode(&Node{ID: leaf, Kind: NodeVolume, Name: "parent", Children: []NodeID{vol.ID}, Data: VolumeData{Shape: mustBox(t, 1, 1, 1)}})
	wrong := NewNodeID("assembly/wrong")
	g.AddNode(&Node{ID: wrong, Kind: NodeAssembly, Name: "wrong", Data: PlacementData{}})
	g.Roots = append(g.Roots, empty, leaf, wrong)

	errs := Validate(g)
	for _, want := range []string{"want exactly one", "want none", "carries graph.PlacementData"} {
		if !hasError(errs, want) {
			t.Errorf("expected error containing %q", want)
		}
	}
	if t.Failed() {
		logAll(t, errs)
	}
}

func TestValidate_Hierarchy(t *testing.T) {
	g := buildValidDetector(t)
	vol := g.Lookup("crystal")

	// Drawing the calorimeter's crystal as a root of its own as well.
	g.AddRoot(vol.ID)

	inf := v3.Vec{X: math.Inf(1)}
	nan := v3.Vec{Z: math.NaN()}
	bad := NewNodeID("place/crystal/bad")
	g.AddNode(&Node{ID: bad, Kind: NodePlacement, Children: []NodeID{vol.ID}, Data: PlacementData{Translation: &inf, Rotation: &nan}})
	g.AddRoot(bad)

	empty := NewNodeID("assembly/empty")
	g.AddNode(&Node{ID: empty, Kind: NodeAssembly, Name: "empty", Data: AssemblyData{}})
	g.AddRoot(empty)

	errs := Validate(g)
	for _, want := range []string{"placement translation", "placement rotation"} {
		if !hasError(errs, want) {
			t.Errorf("expected error containing %q", want)
		}
	}
	if !hasWarning(errs, `assembly "empty" places nothing`) {
		t.Error("expected empty assembly warning")
	}
	if !hasWarning(errs, "drawn twice") {
		t.Error("expected warning for a root placed under another root")
	}
	if t.Failed() {
		logAll(t, errs)
	}
}

func TestValidate_SharedVolumeIsNotDrawnTwice(t *testing.T) {
	g := buildValidDetector(t)
	other := NewNodeID("place/crystal/2")
	g.AddNode(&Node{ID: other, Kind: NodePlacement, Children: []NodeID{g.Lookup("crystal").ID}, Data: PlacementData{}})
	g.AddRoot(other)

	// Two roots sharing a child volume is reuse, not duplication.
	if errs := Validate(g); len(errs) != 0 {
		t.Errorf("unexpected findings: %v", errs)
	}
}

func TestValidateAll_Shapes(t *testing.T) {
	g := buildValidDetector(t)
	add := func(name string, s shape.Shape) {
		id := NewNodeID("volume/" + name)
		g.AddNode(&Node{ID: id, Kind: NodeVolume, Name: name, Data: VolumeData{Shape: s}})
		g.AddRoot(id)
	}
	add("hollow", nil)
	add("broken", shape.Box{DX: -1, DY: 1, DZ: 1})
	add("ctub", shape.Unsupported{Name: "TGeoCtub"})

	res := ValidateAll(g)
	if len(res.Errors) != 2 {
		t.Errorf("errors = %v, want 2", res.Errors)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "TGeoCtub") {
		t.Errorf("warnings = %v, want one naming TGeoCtub", res.Warnings)
	}
	// Shape checks are not structural.
	if errs := Validate(g); len(errs) != 0 {
		t.Errorf("Validate reported shape problems: %v", errs)
	}
}

func TestValidationError_String(t *testing.T) {
	e1 := ValidationError{Message: "test graph error", Severity: SeverityError}
	if !strings.Contains(e1.Error(), "error") || !strings.Contains(e1.Error(), "test graph error") {
		t.Errorf("graph-level error string = %q", e1.Error())
	}

	e2 := ValidationError{NodeID: NewNodeID("test"), Message: "test node warning", Severity: SeverityWarning}
	if !strings.Contains(e2.Error(), "warning") || !strings.Contains(e2.Error(), "node") {
		t.Errorf("node-level warning string = %q", e2.Error())
	}
	if SeverityWarning.String() != "warning" || ValidationSeverity(7).String() != "ValidationSeverity(7)" {
		t.Error("severity stringer")
	}
}
