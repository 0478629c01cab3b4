package promptbuild

import "sort"

// Registry is an append-only list of components plus the counter that
// hands out default orders. The zero value is ready to use.
type Registry struct {
	components []*Component
	nextOrder  int
}

// Add appends c as is. It does not assign a default order.
func (r *Registry) Add(c *Component) {
	if c == nil {
		return
	}
	r.components = append(r.components, c)
}

// AddAll appends every component in order.
func (r *Registry) AddAll(components []*Component) {
	for _, c := range components {
		r.Add(c)
	}
}

// Components returns a copy of the registered components in insertion order.
func (r *Registry) Components() []*Component {
	out := make([]*Component, len(r.components))
	copy(out, r.components)
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}

// NextOrder consumes and returns the next default order.
func (r *Registry) NextOrder() int {
	n := r.nextOrder
	r.nextOrder++
	return n
}

// Clear drops every component and restarts default orders at zero.
func (r *Registry) Clear() {
	r.components = nil
	r.nextOrder = 0
}

// SortComponents returns components stably sorted by ascending order.
// Components without an order keep their relative position after all
// ordered ones.
func SortComponents(components []*Component) []*Component {
	out := make([]*Component, len(components))
	copy(out, components)
	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := out[i].Order()
		oj, jok := out[j].Order()
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}
