package tessellate

import (
	"context"
	"fmt"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/geomesh/pkg/graph"
	"github.com/chazu/geomesh/pkg/kernel"
	"github.com/chazu/geomesh/pkg/shape"
)

// instance is one placed occurrence of a volume.
type instance struct {
	node *graph.Node
	m    sdf.M44
}

// walker collects volume instances. The matrix stack holds the product of
// every placement from the root down, so nested placements compose.
type walker struct {
	g      *graph.Graph
	stack  []sdf.M44
	onPath map[graph.NodeID]bool
	out    []instance
}

func (w *walker) top() sdf.M44 {
	return w.stack[len(w.stack)-1]
}

// Tessellate walks the geometry graph and produces one placed triangle
// mesh per volume occurrence. Each distinct volume is tessellated once and
// cloned for every placement. Volumes of unsupported kinds are skipped
// (the Dispatcher warns about them). The graph is never mutated.
func Tessellate(ctx context.Context, g *graph.Graph, d *Dispatcher) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	w := &walker{
		g:      g,
		stack:  []sdf.M44{sdf.Identity3d()},
		onPath: make(map[graph.NodeID]bool),
	}
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		if err := w.walkNode(root); err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
	}

	// Tessellate each distinct volume once, in first-seen order.
	index := make(map[graph.NodeID]int)
	var nodes []*graph.Node
	for _, in := range w.out {
		if _, ok := index[in.node.ID]; !ok {
			index[in.node.ID] = len(nodes)
			nodes = append(nodes, in.node)
		}
	}
	shapes := make([]shape.Shape, len(nodes))
	for i, n := range nodes {
		shapes[i] = n.Data.(graph.VolumeData).Shape
	}
	protos, err := d.CreateAll(ctx, shapes)
	if err != nil {
		d.logger.Error("graph tessellation aborted", "volumes", len(nodes), "err", err)
		return nil, err
	}

	meshes := make([]*kernel.Mesh, 0, len(w.out))
	for _, in := range w.out {
		proto := protos[index[in.node.ID]]
		if proto == nil {
			continue
		}
		m := proto.Clone()
		m.Transform(in.m)
		m.Name = volumeName(in.node)
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func volumeName(n *graph.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}

// walkNode recursively traverses a node and its children, collecting
// volume instances.
func (w *walker) walkNode(n *graph.Node) error {
	if w.onPath[n.ID] {
		return fmt.Errorf("cycle through node %s", n.ID.Short())
	}
	w.onPath[n.ID] = true
	defer delete(w.onPath, n.ID)

	switch n.Kind {
	case graph.NodeVolume:
		return w.handleVolume(n)

	case graph.NodePlacement:
		return w.handlePlacement(n)

	case graph.NodeAssembly:
		return w.handleChildren(n)

	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// handleVolume records the volume at the current placement.
func (w *walker) handleVolume(n *graph.Node) error {
	vd, ok := n.Data.(graph.VolumeData)
	if !ok {
		return fmt.Errorf("volume node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	if vd.Shape == nil {
		return fmt.Errorf("volume %q has no shape", volumeName(n))
	}
	w.out = append(w.out, instance{node: n, m: w.top()})
	return nil
}

// handlePlacement pushes the placement, recurses into children, then pops.
func (w *walker) handlePlacement(n *graph.Node) error {
	pd, ok := n.Data.(graph.PlacementData)
	if !ok {
		return fmt.Errorf("placement node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	w.stack = append(w.stack, w.top().Mul(pd.Matrix()))
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()

	return w.handleChildren(n)
}

// handleChildren recurses into children transparently.
func (w *walker) handleChildren(n *graph.Node) error {
	for _, child := range w.g.Children(n) {
		if err := w.walkNode(child); err != nil {
			return err
		}
	}
	return nil
}
