// Package app ties the pipeline together for a viewer: DSL source is
// evaluated into a geometry graph, validated, tessellated and returned as
// JSON-ready render meshes.
package app

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/chazu/geomesh/pkg/config"
	"github.com/chazu/geomesh/pkg/engine"
	"github.com/chazu/geomesh/pkg/graph"
	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/logging"
	"github.com/chazu/geomesh/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to volumes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App evaluates sources for a viewer. Warnings about unsupported shape
// kinds are reported once per App, like the Dispatcher's log output.
type App struct {
	engine     *engine.Engine
	dispatcher *tessellate.Dispatcher
	logger     *log.Logger
}

// MeshData is the JSON-serializable mesh format sent to the viewer.
type MeshData struct {
	*kernel.RenderMesh
	Material string `json:"material,omitempty"`
	Color    string `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the viewer.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// New creates an App from settings. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		engine:     engine.NewEngine(engine.WithLogger(logger)),
		dispatcher: tessellate.NewDispatcher(tessellate.WithConfig(cfg), tessellate.WithLogger(logger)),
		logger:     logger,
	}
}

// Evaluate takes DSL source and returns mesh data, errors and warnings.
func (a *App) Evaluate(source string) EvalResult {
	return a.EvaluateContext(context.Background(), source)
}

// EvaluateContext is Evaluate with cancellation of the tessellation step.
func (a *App) EvaluateContext(ctx context.Context, source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a geometry graph.
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.); the engine has logged it.
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the viewer format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Validate. Unsupported shape kinds come back as warnings.
	v := graph.ValidateAll(g)
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}
	if len(v.Errors) > 0 {
		for _, e := range v.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
		}
		return result
	}

	// Step 4: Tessellate the graph into placed triangle meshes.
	meshes, err := tessellate.Tessellate(ctx, g, a.dispatcher)
	if err != nil {
		a.logger.Error("tessellation failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 5: Convert kernel meshes to the viewer format.
	materials := make(map[string]string)
	for _, n := range g.Volumes() {
		materials[n.Name] = n.Data.(graph.VolumeData).Material
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			RenderMesh: m.Render(),
			Material:   materials[m.Name],
			Color:      colorPalette[i%len(colorPalette)],
		})
	}

	return result
}
