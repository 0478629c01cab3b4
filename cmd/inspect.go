package cmd

import (
	"fmt"
	"strings"

	"github.com/kayz/promptkit/internal/definition"
	"github.com/kayz/promptkit/pkg/promptbuild"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

func init() {
	rootCmd.AddCommand(newInspectCommand())
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <definition>",
		Short: "Show a definition's components, orders and condition branches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			b, err := definition.NewBuilder(def)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), inspectTree(def, b.Components()))
			return err
		},
	}
}

// inspectTree pairs each definition entry with the component compiled from
// it, so the tree shows effective orders next to the declared conditions.
func inspectTree(def *definition.Definition, components []*promptbuild.Component) string {
	tree := treeprint.NewWithRoot(def.Name)
	addComponents(tree, def.Components, components)
	return tree.String()
}

func addComponents(tree treeprint.Tree, defs []definition.ComponentDef, components []*promptbuild.Component) {
	for i := range defs {
		if i >= len(components) {
			return
		}
		d, c := &defs[i], components[i]
		if d.When == nil {
			tree.AddNode(describeComponent(d, c))
			continue
		}
		node := tree.AddBranch(describeComponent(d, c) + " when " + describeCondition(d.When))
		if c.Condition == nil {
			continue
		}
		if len(d.Then) > 0 {
			addComponents(node.AddBranch("then"), d.Then, c.Condition.Then)
		}
		if len(d.Else) > 0 {
			addComponents(node.AddBranch("else"), d.Else, c.Condition.Else)
		}
	}
}

// describeComponent shows the kind, effective order, label and body shape.
// The shape comes from the definition since compiled items are functions.
func describeComponent(d *definition.ComponentDef, c *promptbuild.Component) string {
	var sb strings.Builder
	sb.WriteString(c.Kind().String())
	if order, ok := c.Order(); ok {
		fmt.Fprintf(&sb, " #%d", order)
	}
	if c.Label != "" {
		fmt.Fprintf(&sb, " %q", c.Label)
	}
	switch {
	case d.When != nil:
		sb.WriteString(" (replaced)")
	case d.Content != nil:
		sb.WriteString(" (text)")
	case len(d.Items) > 0:
		sb.WriteString(" (list)")
	case len(d.Fields) > 0:
		sb.WriteString(" (fields)")
	}
	return sb.String()
}

func describeCondition(w *definition.ConditionDef) string {
	op := w.Op
	if op == "" {
		op = "truthy"
	}
	if w.Value == nil {
		return w.Param + " " + op
	}
	return fmt.Sprintf("%s %s %v", w.Param, op, w.Value)
}
