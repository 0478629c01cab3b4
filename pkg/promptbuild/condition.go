package promptbuild

import "fmt"

// Predicate decides a condition from the build parameters.
type Predicate func(p Params) (bool, error)

// Condition swaps the component carrying it for Then when If holds and for
// Else otherwise. Either branch may hold zero or more components.
type Condition struct {
	If   Predicate
	Then []*Component
	Else []*Component
}

// NewCondition creates a condition selecting then when pred holds.
func NewCondition(pred Predicate, then ...*Component) *Condition {
	return &Condition{If: pred, Then: then}
}

// Otherwise sets the components used when the predicate does not hold.
func (c *Condition) Otherwise(els ...*Component) *Condition {
	c.Else = els
	return c
}

// EvaluateCondition returns the components the condition selects for params.
// A nil predicate never holds. Predicate errors are returned unchanged.
func EvaluateCondition(cond *Condition, params Params) ([]*Component, error) {
	if cond == nil {
		return nil, nil
	}
	ok := false
	if cond.If != nil {
		var err error
		ok, err = cond.If(params)
		if err != nil {
			return nil, err
		}
	}
	branch := cond.Else
	if ok {
		branch = cond.Then
	}
	out := make([]*Component, 0, len(branch))
	for _, c := range branch {
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// FilterComponentsByCondition replaces every conditional component with the
// components its condition selects, keeping relative positions. Selected
// components that carry their own condition are evaluated in turn, so
// conditions nest. Components without a condition pass through unchanged.
func FilterComponentsByCondition(components []*Component, params Params) ([]*Component, error) {
	return filterByCondition(components, params, 0)
}

func filterByCondition(components []*Component, params Params, depth int) ([]*Component, error) {
	if depth > maxResolveDepth {
		return nil, fmt.Errorf("%w (limit %d)", ErrNestingTooDeep, maxResolveDepth)
	}
	out := make([]*Component, 0, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		if c.Condition == nil {
			out = append(out, c)
			continue
		}
		selected, err := EvaluateCondition(c.Condition, params)
		if err != nil {
			return nil, err
		}
		selected, err = filterByCondition(selected, params, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, selected...)
	}
	return out, nil
}
