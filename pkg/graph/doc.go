// Package graph defines the geometry hierarchy: logical volumes carrying a
// shape descriptor, placements that position a child in its parent frame,
// and assemblies that group placed children. A graph is produced by one
// evaluation and is not mutated afterwards.
package graph
