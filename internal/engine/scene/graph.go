// Package scene holds a minimal transform hierarchy. Nodes live in one slice
// and refer to each other by Handle.
package scene

import (
	"fmt"

	"github.com/Faultbox/linegl/pkg/math"
)

// Handle identifies a node in a Graph.
type Handle int

// NoParent marks a root node.
const NoParent Handle = -1

// Node is one frame in the hierarchy. Local is relative to the parent.
type Node struct {
	Name     string
	Local    math.Pose
	Parent   Handle
	Children []Handle
}

// Graph is an arena of nodes. The zero value is an empty graph.
type Graph struct {
	nodes []Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Add appends a node under parent (NoParent for a root) and returns its handle.
func (g *Graph) Add(parent Handle, name string, local math.Pose) (Handle, error) {
	if parent != NoParent && !g.valid(parent) {
		return NoParent, fmt.Errorf("add %q: invalid parent %d", name, parent)
	}
	h := Handle(len(g.nodes))
	g.nodes = append(g.nodes, Node{Name: name, Local: local, Parent: parent})
	if parent != NoParent {
		g.nodes[parent].Children = append(g.nodes[parent].Children, h)
	}
	return h, nil
}

// Node returns a copy of the node at h.
func (g *Graph) Node(h Handle) (Node, bool) {
	if !g.valid(h) {
		return Node{}, false
	}
	return g.nodes[h], true
}

// SetLocal replaces the local pose of h.
func (g *Graph) SetLocal(h Handle, local math.Pose) error {
	if !g.valid(h) {
		return fmt.Errorf("set local: invalid handle %d", h)
	}
	g.nodes[h].Local = local
	return nil
}

// Reparent moves h under parent, keeping its local pose. Moving a node under
// itself or one of its descendants is rejected.
func (g *Graph) Reparent(h, parent Handle) error {
	if !g.valid(h) {
		return fmt.Errorf("reparent: invalid handle %d", h)
	}
	if parent != NoParent {
		if !g.valid(parent) {
			return fmt.Errorf("reparent %d: invalid parent %d", h, parent)
		}
		for p := parent; p != NoParent; p = g.nodes[p].Parent {
			if p == h {
				return fmt.Errorf("reparent %d under %d: would create a cycle", h, parent)
			}
		}
	}

	if old := g.nodes[h].Parent; old != NoParent {
		children := g.nodes[old].Children
		for i, c := range children {
			if c == h {
				g.nodes[old].Children = append(children[:i], children[i+1:]...)
				break
			}
		}
	}
	g.nodes[h].Parent = parent
	if parent != NoParent {
		g.nodes[parent].Children = append(g.nodes[parent].Children, h)
	}
	return nil
}

// WorldPose composes the local poses from the root down to h.
func (g *Graph) WorldPose(h Handle) (math.Pose, error) {
	if !g.valid(h) {
		return math.Pose{}, fmt.Errorf("world pose: invalid handle %d", h)
	}
	pose := g.nodes[h].Local
	for p := g.nodes[h].Parent; p != NoParent; p = g.nodes[p].Parent {
		pose = g.nodes[p].Local.Compose(pose)
	}
	return pose, nil
}

// Walk visits every node depth-first from the roots, parents before
// children, passing the node's world pose.
func (g *Graph) Walk(fn func(h Handle, n Node, world math.Pose)) {
	var visit func(h Handle, parentWorld math.Pose)
	visit = func(h Handle, parentWorld math.Pose) {
		n := g.nodes[h]
		world := parentWorld.Compose(n.Local)
		fn(h, n, world)
		for _, c := range n.Children {
			visit(c, world)
		}
	}
	for h := range g.nodes {
		if g.nodes[h].Parent == NoParent {
			visit(Handle(h), math.IdentityPose())
		}
	}
}

func (g *Graph) valid(h Handle) bool {
	return h >= 0 && int(h) < len(g.nodes)
}
