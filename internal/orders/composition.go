// Package orders manages an order draft: which products belong to it, its
// payment rows, and the commit protocol against the warehouse service.
package orders

// MemberState is the membership of one product id inside an open draft.
type MemberState int

const (
	// Available products are not part of the draft.
	Available MemberState = iota
	// Selected products are part of the draft.
	Selected
	// PendingRemoval products stay visible in the draft but are dropped from
	// the component list on commit. Only products of the original persisted
	// order can reach this state; newly added ones are deselected outright.
	PendingRemoval
)

// Composition tracks selected and pending-removal product ids for one draft.
// Selection order is preserved so commits are stable.
type Composition struct {
	original map[int]bool
	state    map[int]MemberState
	order    []int
}

// NewComposition opens a draft over the product ids of the original persisted
// order (empty for a brand-new order). All original ids start Selected.
func NewComposition(original []int) *Composition {
	c := &Composition{
		original: make(map[int]bool, len(original)),
		state:    make(map[int]MemberState, len(original)),
	}
	for _, id := range original {
		if c.original[id] {
			continue
		}
		c.original[id] = true
		c.state[id] = Selected
		c.order = append(c.order, id)
	}
	return c
}

// Add selects a product. It also clears a pending-removal mark, which makes
// Add double as Restore.
func (c *Composition) Add(id int) {
	if _, ok := c.state[id]; !ok {
		c.order = append(c.order, id)
	}
	c.state[id] = Selected
}

// Restore returns a pending-removal product to Selected.
func (c *Composition) Restore(id int) { c.Add(id) }

// Remove takes a product out of the draft. Original members are only marked
// pending so the row stays visible until commit; new members disappear.
func (c *Composition) Remove(id int) {
	if _, ok := c.state[id]; !ok {
		return
	}
	if c.original[id] {
		c.state[id] = PendingRemoval
		return
	}
	delete(c.state, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// State reports the membership of a product id.
func (c *Composition) State(id int) MemberState {
	if s, ok := c.state[id]; ok {
		return s
	}
	return Available
}

// Selected returns every member, pending removals included, in selection order.
func (c *Composition) Selected() []int {
	out := make([]int, 0, len(c.order))
	for _, id := range c.order {
		if _, ok := c.state[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Effective returns the ids that will be persisted on commit: selected minus
// pending removal.
func (c *Composition) Effective() []int {
	var out []int
	for _, id := range c.order {
		if c.state[id] == Selected {
			out = append(out, id)
		}
	}
	return out
}

// Pending returns the ids marked for removal.
func (c *Composition) Pending() []int {
	var out []int
	for _, id := range c.order {
		if c.state[id] == PendingRemoval {
			out = append(out, id)
		}
	}
	return out
}
