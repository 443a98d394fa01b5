// Package tessellate turns shape descriptors into closed triangle meshes.
// A Dispatcher selects the builder for each descriptor kind; builders
// sample surfaces through a kernel.Kernel, stitch the walls of hollow and
// truncated solids and weld the pieces into one mesh. Tessellate walks a
// geometry graph and produces one placed mesh per volume.
package tessellate

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/geomesh/pkg/config"
	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/kernel/parametric"
	"github.com/chazu/geomesh/pkg/logging"
	"github.com/chazu/geomesh/pkg/shape"
)

// Scale converts descriptor lengths to output coordinates.
const Scale = 0.5

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// builder holds what every shape builder reads. It is never mutated after
// construction, so builders may run concurrently.
type builder struct {
	k    kernel.Kernel
	res  config.Resolution
	eps  float64
	weld float64
}

// inner returns the scaled inner radius, replacing a non-positive value
// with the configured epsilon.
func (b *builder) inner(r float64) float64 {
	if r <= 0 {
		r = b.eps
	}
	return r * Scale
}

func (b *builder) finish(m *kernel.Mesh) *kernel.Mesh {
	m.Weld(b.weld)
	m.ComputeNormals()
	return m
}

// Dispatcher maps descriptors to meshes. It remembers which unsupported
// type names it has already warned about; the zero value is not usable,
// construct one with NewDispatcher.
type Dispatcher struct {
	cfg    config.Config
	logger *log.Logger
	b      builder

	mu     sync.Mutex
	warned map[string]struct{}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConfig replaces the default settings.
func WithConfig(cfg config.Config) Option {
	return func(d *Dispatcher) { d.cfg = cfg }
}

// WithLogger sets the logger receiving unsupported-kind warnings.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithKernel replaces the surface sampler.
func WithKernel(k kernel.Kernel) Option {
	return func(d *Dispatcher) { d.b.k = k }
}

// NewDispatcher returns a Dispatcher using config.Default, a discarding
// logger and the parametric kernel unless overridden.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    config.Default(),
		logger: logging.Discard(),
		warned: make(map[string]struct{}),
	}
	d.b.k = parametric.New()
	for _, opt := range opts {
		opt(d)
	}
	d.b.res = d.cfg.Resolution
	d.b.eps = d.cfg.Epsilon
	d.b.weld = d.cfg.WeldPrecision
	return d
}

// IsSupported reports whether s has a builder. The first time an
// unsupported type name is seen a single warning is logged. A nil shape
// is unsupported and logs nothing.
func (d *Dispatcher) IsSupported(s shape.Shape) bool {
	if s == nil {
		return false
	}
	if s.Kind().Supported() {
		return true
	}
	d.warnOnce(s.TypeName())
	return false
}

func (d *Dispatcher) warnOnce(typeName string) {
	d.mu.Lock()
	_, seen := d.warned[typeName]
	if !seen {
		d.warned[typeName] = struct{}{}
	}
	d.mu.Unlock()
	if !seen {
		d.logger.Warn("shape kind not supported, skipping", "kind", typeName)
	}
}

// Warned returns the unsupported type names warned about so far, sorted.
func (d *Dispatcher) Warned() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.warned))
	for name := range d.warned {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reset forgets every warning so that each unsupported kind warns again.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	clear(d.warned)
	d.mu.Unlock()
}

// CreateGeometry tessellates s. It returns nil for an unsupported, nil or
// invalid shape and never a partial mesh. Descriptors built as literals
// rather than through the shape constructors are validated here.
func (d *Dispatcher) CreateGeometry(s shape.Shape) *kernel.Mesh {
	if !d.IsSupported(s) {
		return nil
	}
	if err := s.Validate(); err != nil {
		d.logger.Error("invalid shape, skipping", "kind", s.TypeName(), "err", err)
		return nil
	}
	start := time.Now()
	b := &d.b

	var m *kernel.Mesh
	switch v := s.(type) {
	case shape.Box:
		m = b.hexahedron(boxCorners(v))
	case shape.Para:
		m = b.hexahedron(v.Corners())
	case shape.Arb8:
		m = b.hexahedron(v.Corners())
	case shape.Trd1:
		m = b.hexahedron(v.Corners())
	case shape.Trd2:
		m = b.hexahedron(v.Corners())
	case shape.Trap:
		m = b.hexahedron(v.Corners())
	case shape.Sphere:
		m = b.sphere(v)
	case shape.Tube:
		m = b.cone(v.Dz, v.Rmin, v.Rmax, v.Rmin, v.Rmax, 0, 360)
	case shape.TubeSeg:
		m = b.cone(v.Dz, v.Rmin, v.Rmax, v.Rmin, v.Rmax, v.Phi1, v.Phi2-v.Phi1)
	case shape.Cone:
		m = b.cone(v.Dz, v.Rmin1, v.Rmax1, v.Rmin2, v.Rmax2, 0, 360)
	case shape.ConeSeg:
		m = b.cone(v.Dz, v.Rmin1, v.Rmax1, v.Rmin2, v.Rmax2, v.Phi1, v.Phi2-v.Phi1)
	case shape.Torus:
		m = b.torus(v)
	case shape.Pcon:
		m = b.polycone(v, b.res.TubeSegments)
	case shape.Pgon:
		m = b.polycone(v.Pcon, v.NEdges)
	default:
		d.logger.Error("no builder for shape value", "kind", s.TypeName(), "type", fmt.Sprintf("%T", s))
		return nil
	}

	m.Name = s.TypeName()
	d.logger.Debug("tessellated",
		"kind", s.TypeName(),
		"vertices", m.VertexCount(),
		"triangles", m.TriangleCount(),
		"elapsed", time.Since(start),
	)
	return m
}

// CreateAll tessellates every shape concurrently, bounded by the
// configured worker count. Entry i of the result belongs to shapes[i] and
// is nil when that shape is unsupported. The only error is the context's.
func (d *Dispatcher) CreateAll(ctx context.Context, shapes []shape.Shape) ([]*kernel.Mesh, error) {
	out := make([]*kernel.Mesh, len(shapes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.WorkerCount())
	for i, s := range shapes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = d.CreateGeometry(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	return out, nil
}
