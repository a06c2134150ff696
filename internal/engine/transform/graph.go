package transform

import "github.com/Faultbox/midgard-rig/pkg/math"

// GraphNode is a node with its world position.
type GraphNode struct {
	Node     *Node
	Position math.Vec3
}

// GraphEdge connects a parent to a child.
type GraphEdge struct {
	From   math.Vec3
	To     math.Vec3
	Parent *Node
	Child  *Node
}

// Graph is a flattened view of a hierarchy for debug drawing.
type Graph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// HierarchyGraph walks root depth-first. The root's own parent edge is
// included when it has one.
func HierarchyGraph(root *Node) Graph {
	var g Graph
	if root == nil {
		return g
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		pos := n.WorldPosition()
		g.Nodes = append(g.Nodes, GraphNode{Node: n, Position: pos})
		if n.parent != nil {
			g.Edges = append(g.Edges, GraphEdge{
				From:   n.parent.WorldPosition(),
				To:     pos,
				Parent: n.parent,
				Child:  n,
			})
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return g
}
