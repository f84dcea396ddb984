package routing

// Containment answers "which page list holds this node?" questions over a fixed set of containers.
// Containers are addressed by their index in the input slice; when several containers claim the
// same child, the one that comes first wins.
type Containment struct {
	containers []PageListContainer

	// child ID -> index of the first container listing it
	parentOf map[string]int
	// container ID -> index of the first container with that ID
	indexOf map[string]int
}

func NewContainment(containers []PageListContainer) *Containment {
	c := &Containment{
		containers: containers,
		parentOf:   make(map[string]int),
		indexOf:    make(map[string]int),
	}

	for i, container := range containers {
		if _, ok := c.indexOf[container.ID]; !ok {
			c.indexOf[container.ID] = i
		}
		for _, child := range container.Children {
			if _, ok := c.parentOf[child.ID]; !ok {
				c.parentOf[child.ID] = i
			}
		}
	}

	return c
}

// IsContained reports whether any container lists nodeID among its children.
func (c *Containment) IsContained(nodeID string) bool {
	_, ok := c.parentOf[nodeID]
	return ok
}

// AncestorChain returns the containers enclosing nodeID, outermost first.  A root-level node has
// an empty chain.
//
// The walk stops as soon as it reaches a node it has already passed through, so cyclic
// containment terminates with a truncated chain.  For A containing B containing A, the chain of A
// is [A, B]: the revisit is only noticed once A's parent would be looked up a second time.
func (c *Containment) AncestorChain(nodeID string) []Ancestor {
	reversed := []Ancestor{}
	visited := make([]bool, len(c.containers))

	current := nodeID
	for step := 0; ; step++ {
		if step > 0 && current == nodeID {
			break
		}
		if idx, ok := c.indexOf[current]; ok {
			if visited[idx] {
				break
			}
			visited[idx] = true
		}

		parentIdx, ok := c.parentOf[current]
		if !ok {
			break
		}
		parent := c.containers[parentIdx]

		reversed = append(reversed, Ancestor{
			ID:    parent.ID,
			Slug:  parent.Slug,
			Title: titleOrSlug(parent.ContentNode),
		})
		current = parent.ID
	}

	chain := make([]Ancestor, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		chain = append(chain, reversed[i])
	}
	return chain
}
