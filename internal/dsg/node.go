package dsg

import "sort"

// Node is a scene graph vertex. Ownership (parent/child) links cross layers;
// sibling links stay within a layer.
type Node struct {
	ID         NodeSymbol
	Layer      LayerID
	Attributes Attributes

	parent    NodeSymbol
	hasParent bool
	children  []NodeSymbol
	siblings  []NodeSymbol
}

// Children returns the nodes this node owns, in ascending symbol order.
func (n *Node) Children() []NodeSymbol {
	return n.children
}

// Siblings returns the nodes related to this one in the same layer, in
// ascending symbol order.
func (n *Node) Siblings() []NodeSymbol {
	return n.siblings
}

// Parent returns the owning node, if any.
func (n *Node) Parent() (NodeSymbol, bool) {
	return n.parent, n.hasParent
}

func insertSymbol(list []NodeSymbol, s NodeSymbol) []NodeSymbol {
	i := sort.Search(len(list), func(i int) bool { return list[i] >= s })
	if i < len(list) && list[i] == s {
		return list
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}
