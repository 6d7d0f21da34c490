// Package evolution models a species evolution chain as a tree and answers
// whether one species evolves directly into another.
package evolution

// ChainLink mirrors one stage of an evolution-chain payload: the species at
// this stage and the stages it evolves into.
type ChainLink struct {
	Species struct {
		Name string `json:"name"`
	} `json:"species"`
	EvolvesTo []ChainLink `json:"evolves_to"`
}

// Tree is one species node with its ordered direct evolutions.
type Tree struct {
	Name     string  `json:"name"`
	Children []*Tree `json:"evolvesTo"`
}

// FromChain builds a tree from a chain payload rooted at the base form.
// Stages without a species name are dropped along with their subtree.
func FromChain(link ChainLink) *Tree {
	if link.Species.Name == "" {
		return nil
	}
	node := &Tree{Name: link.Species.Name, Children: []*Tree{}}
	for _, next := range link.EvolvesTo {
		if child := FromChain(next); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// find returns the first node named name in breadth-first order.
func (t *Tree) find(name string) *Tree {
	if t == nil {
		return nil
	}
	queue := []*Tree{t}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.Name == name {
			return node
		}
		queue = append(queue, node.Children...)
	}
	return nil
}

// IsDirectEvolution reports whether to is an immediate child of the first
// breadth-first occurrence of from. Names are compared exactly; callers pass
// lower-cased species names.
func IsDirectEvolution(tree *Tree, from, to string) bool {
	node := tree.find(from)
	if node == nil {
		return false
	}
	for _, child := range node.Children {
		if child.Name == to {
			return true
		}
	}
	return false
}

// NextStages returns the names of the direct evolutions of the first
// breadth-first occurrence of name, or nil when name is not in the tree.
func (t *Tree) NextStages(name string) []string {
	node := t.find(name)
	if node == nil {
		return nil
	}
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

// Names lists every species in the tree in breadth-first order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	var names []string
	queue := []*Tree{t}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		names = append(names, node.Name)
		queue = append(queue, node.Children...)
	}
	return names
}
