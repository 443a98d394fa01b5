package graph

// NodeKind enumerates the types of nodes in the geometry graph.
type NodeKind int

const (
	NodeVolume    NodeKind = iota // logical volume: shape plus material
	NodePlacement                 // positions one child (place)
	NodeAssembly                  // groups placed children
)

func (k NodeKind) String() string {
	switch k {
	case NodeVolume:
		return "volume"
	case NodePlacement:
		return "placement"
	case NodeAssembly:
		return "assembly"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the geometry graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
