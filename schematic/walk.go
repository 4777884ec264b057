package schematic

// Walk visits every node in the forest in pre-order.
func Walk(items []*Node, fn func(n *Node)) {
	for _, n := range items {
		walkNode(n, fn)
	}
}

func walkNode(n *Node, fn func(n *Node)) {
	fn(n)
	for _, c := range n.Children {
		walkNode(c, fn)
	}
}

// Find returns the node with the given id, or nil.
func Find(items []*Node, id string) *Node {
	for _, n := range items {
		if found := findNode(n, id); found != nil {
			return found
		}
	}
	return nil
}

func findNode(n *Node, id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := findNode(c, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParent locates the owner of the node with the given id. A nil
// parent with ok=true means the node is a page-level root; ok=false
// means the id is not in the forest.
func FindParent(items []*Node, id string) (parent *Node, ok bool) {
	for _, n := range items {
		if n.ID == id {
			return nil, true
		}
		if p := findParentIn(n, id); p != nil {
			return p, true
		}
	}
	return nil, false
}

func findParentIn(n *Node, id string) *Node {
	for _, c := range n.Children {
		if c.ID == id {
			return n
		}
		if p := findParentIn(c, id); p != nil {
			return p
		}
	}
	return nil
}

// IsDescendant reports whether id names the root itself or any node in
// its subtree.
func IsDescendant(root *Node, id string) bool {
	return findNode(root, id) != nil
}

// CollectIDs returns the set of every node id in the forest.
func CollectIDs(items []*Node) map[string]bool {
	ids := make(map[string]bool)
	Walk(items, func(n *Node) { ids[n.ID] = true })
	return ids
}

// CountNodes returns the number of nodes in the forest.
func CountNodes(items []*Node) int {
	count := 0
	Walk(items, func(*Node) { count++ })
	return count
}
