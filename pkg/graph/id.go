package graph

import "github.com/google/uuid"

// NodeID is a content-addressed identifier: the SHA-1 name UUID of the
// path that created the node, so re-evaluating the same source yields the
// same IDs.
type NodeID uuid.UUID

// ZeroID is the unset NodeID.
var ZeroID NodeID

// NewNodeID derives the ID for a creation path such as "volume/crystal".
func NewNodeID(path string) NodeID {
	return NodeID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(path)))
}

func (id NodeID) IsZero() bool { return id == ZeroID }

func (id NodeID) String() string { return uuid.UUID(id).String() }

// Short returns the first eight hex digits, for messages.
func (id NodeID) Short() string { return id.String()[:8] }

// MarshalText lets NodeID serve as a JSON map key.
func (id NodeID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *NodeID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
