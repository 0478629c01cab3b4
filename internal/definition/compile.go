package definition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kayz/promptkit/pkg/promptbuild"
)

// NewBuilder compiles def onto a fresh builder.
func NewBuilder(def *Definition) (*promptbuild.Builder, error) {
	b := promptbuild.NewBuilder()
	if err := Apply(def, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply adds the components of def to b in file order. Top-level components
// without an order get the builder's next default order. Branch components
// without an order take the order of the component they replace.
func Apply(def *Definition, b *promptbuild.Builder) error {
	for i := range def.Components {
		if err := applyComponent(&def.Components[i], b, fmt.Sprintf("components[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func applyComponent(c *ComponentDef, b *promptbuild.Builder, path string) error {
	kind, err := promptbuild.ParseKind(c.Kind)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	opts := baseOptions(c)

	var cond *promptbuild.Condition
	if c.When != nil {
		pred, err := compilePredicate(c.When)
		if err != nil {
			return fmt.Errorf("%s.when: %w", path, err)
		}
		cond = &promptbuild.Condition{If: pred}
		opts = append(opts, promptbuild.WithCondition(cond))
	}

	if len(c.Fields) > 0 {
		b.InputFields(c.Fields, opts...)
	} else {
		b.Add(kind, content(c), opts...)
	}

	if cond == nil {
		return nil
	}
	added := b.Components()
	hostOrder, _ := added[len(added)-1].Order()
	if cond.Then, err = branch(c.Then, hostOrder, path+".then"); err != nil {
		return err
	}
	if cond.Else, err = branch(c.Else, hostOrder, path+".else"); err != nil {
		return err
	}
	return nil
}

func branch(defs []ComponentDef, hostOrder int, path string) ([]*promptbuild.Component, error) {
	out := make([]*promptbuild.Component, 0, len(defs))
	for i := range defs {
		c, err := compileComponent(&defs[i], hostOrder, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// compileComponent builds a standalone component for a condition branch.
func compileComponent(c *ComponentDef, defaultOrder int, path string) (*promptbuild.Component, error) {
	kind, err := promptbuild.ParseKind(c.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	opts := baseOptions(c)
	if c.Order == nil {
		opts = append(opts, promptbuild.WithOrder(defaultOrder))
	}
	order := defaultOrder
	if c.Order != nil {
		order = *c.Order
	}

	body := content(c)
	if len(c.Fields) > 0 {
		body = promptbuild.RecordContent(c.Fields)
	}
	if c.When == nil {
		return promptbuild.New(kind, body, opts...), nil
	}

	pred, err := compilePredicate(c.When)
	if err != nil {
		return nil, fmt.Errorf("%s.when: %w", path, err)
	}
	then, err := branch(c.Then, order, path+".then")
	if err != nil {
		return nil, err
	}
	els, err := branch(c.Else, order, path+".else")
	if err != nil {
		return nil, err
	}
	cond := promptbuild.NewCondition(pred, then...).Otherwise(els...)
	return promptbuild.New(kind, body, append(opts, promptbuild.WithCondition(cond))...), nil
}

func baseOptions(c *ComponentDef) []promptbuild.Option {
	var opts []promptbuild.Option
	if c.Label != "" {
		opts = append(opts, promptbuild.WithLabel(c.Label))
	}
	if c.Order != nil {
		opts = append(opts, promptbuild.WithOrder(*c.Order))
	}
	return opts
}

func content(c *ComponentDef) promptbuild.Content {
	switch {
	case c.Content != nil:
		return promptbuild.Text(*c.Content)
	case len(c.Items) > 0:
		return templateList(c.Items)
	default:
		return promptbuild.Content{}
	}
}

// templateList substitutes placeholders in each item at build time. Items
// that come out empty are dropped by the list formatter.
func templateList(items []string) promptbuild.Content {
	items = append([]string(nil), items...)
	return promptbuild.ListFunc(func(p promptbuild.Params) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = promptbuild.Substitute(item, p)
		}
		return out
	})
}

func compilePredicate(w *ConditionDef) (promptbuild.Predicate, error) {
	name := strings.TrimSpace(w.Param)
	switch w.Op {
	case "", "truthy":
		return promptbuild.ParamTruthy(name), nil
	case "falsy":
		return promptbuild.Not(promptbuild.ParamTruthy(name)), nil
	case "present":
		return promptbuild.ParamPresent(name), nil
	case "missing":
		return promptbuild.Not(promptbuild.ParamPresent(name)), nil
	case "eq":
		return promptbuild.ParamEquals(name, w.Value), nil
	case "ne":
		return promptbuild.Not(promptbuild.ParamEquals(name, w.Value)), nil
	}

	limit, ok := number(w.Value)
	if !ok {
		return nil, fmt.Errorf("op %s requires a numeric value, got %v", w.Op, w.Value)
	}
	switch w.Op {
	case "gt":
		return promptbuild.ParamGreaterThan(name, limit), nil
	case "gte":
		return promptbuild.ParamAtLeast(name, limit), nil
	case "lt":
		return promptbuild.ParamLessThan(name, limit), nil
	case "lte":
		return promptbuild.ParamAtMost(name, limit), nil
	}
	return nil, fmt.Errorf("unsupported op %q", w.Op)
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
