package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kayz/promptkit/pkg/promptbuild"
)

// Definition is a declarative prompt: an ordered list of components that
// compiles onto a promptbuild.Builder.
type Definition struct {
	Version     string         `yaml:"version,omitempty" validate:"omitempty,oneof=v1"`
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Components  []ComponentDef `yaml:"components" validate:"required,min=1,dive"`
}

// ComponentDef describes one component. At most one of Content, Items and
// Fields is set; Fields is only valid for input components.
type ComponentDef struct {
	Kind    string         `yaml:"kind" validate:"required,promptkind"`
	Content *string        `yaml:"content,omitempty"`
	Items   []string       `yaml:"items,omitempty"`
	Fields  FieldList      `yaml:"fields,omitempty"`
	Label   string         `yaml:"label,omitempty"`
	Order   *int           `yaml:"order,omitempty"`
	When    *ConditionDef  `yaml:"when,omitempty"`
	Then    []ComponentDef `yaml:"then,omitempty" validate:"dive"`
	Else    []ComponentDef `yaml:"else,omitempty" validate:"dive"`
}

// ConditionDef is a declarative predicate over one parameter.
type ConditionDef struct {
	Param string `yaml:"param" validate:"required"`
	Op    string `yaml:"op,omitempty" validate:"omitempty,oneof=truthy falsy present missing eq ne gt gte lt lte"`
	Value any    `yaml:"value,omitempty"`
}

// FieldList is an input record that keeps the key order of the YAML mapping.
type FieldList []promptbuild.Field

func (f *FieldList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}
	out := make(FieldList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("line %d: decode field key: %w", node.Content[i].Line, err)
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: decode field %s: %w", node.Content[i+1].Line, key, err)
		}
		out = append(out, promptbuild.Field{Key: key, Value: value})
	}
	*f = out
	return nil
}
