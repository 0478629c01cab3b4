package promptbuild

import (
	"sort"
	"strings"

	"github.com/kayz/promptkit/internal/logger"
)

// Builder composes a prompt from components through a fluent API.
//
// A Builder is not safe for concurrent mutation. Concurrent Build calls are
// fine as long as nothing adds components or clears the builder meanwhile.
type Builder struct {
	registry Registry
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(kind Kind, content Content, opts []Option) *Builder {
	c := New(kind, content, opts...)
	if !c.hasOrder {
		c.order = b.registry.NextOrder()
		c.hasOrder = true
	}
	b.registry.Add(c)
	return b
}

// Role adds the role the model should play.
func (b *Builder) Role(content Content, opts ...Option) *Builder {
	return b.add(KindRole, content, opts)
}

// Goal adds what the prompt should achieve.
func (b *Builder) Goal(content Content, opts ...Option) *Builder {
	return b.add(KindGoal, content, opts)
}

// Input adds the input to work on. See InputFields for structured records.
func (b *Builder) Input(content Content, opts ...Option) *Builder {
	return b.add(KindInput, content, opts)
}

// Field is one entry of a structured input record.
type Field struct {
	Key   string
	Value any
}

// InputFields adds an input component listing fields as "- key: value"
// lines in the given order. Non-string values are written as JSON. The text
// is fixed now, so placeholders inside values are still substituted at build
// time.
func (b *Builder) InputFields(fields []Field, opts ...Option) *Builder {
	return b.add(KindInput, RecordContent(fields), opts)
}

// RecordContent renders fields as "- key: value" lines, writing non-string
// values as JSON, and returns them as template text.
func RecordContent(fields []Field) Content {
	return Text(formatRecord(fields))
}

// InputRecord is InputFields for a map, with keys in sorted order.
func (b *Builder) InputRecord(record map[string]any, opts ...Option) *Builder {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: record[k]})
	}
	return b.InputFields(fields, opts...)
}

// Output adds the expected output format.
func (b *Builder) Output(content Content, opts ...Option) *Builder {
	return b.add(KindOutput, content, opts)
}

// Context adds background information.
func (b *Builder) Context(content Content, opts ...Option) *Builder {
	return b.add(KindContext, content, opts)
}

// Persona adds the persona to adopt.
func (b *Builder) Persona(content Content, opts ...Option) *Builder {
	return b.add(KindPersona, content, opts)
}

// Tone adds the tone to write in.
func (b *Builder) Tone(content Content, opts ...Option) *Builder {
	return b.add(KindTone, content, opts)
}

// FewShots adds examples. List content renders as "Example N:" blocks.
func (b *Builder) FewShots(content Content, opts ...Option) *Builder {
	return b.add(KindFewShots, content, opts)
}

// Guardrails adds guardrails. List content renders as "- " bullets.
func (b *Builder) Guardrails(content Content, opts ...Option) *Builder {
	return b.add(KindGuardrails, content, opts)
}

// Constraints adds constraints. List content renders as "- " bullets.
func (b *Builder) Constraints(content Content, opts ...Option) *Builder {
	return b.add(KindConstraints, content, opts)
}

// Tasks adds tasks. List content renders as "1. ", "2. " lines.
func (b *Builder) Tasks(content Content, opts ...Option) *Builder {
	return b.add(KindTasks, content, opts)
}

// Steps adds steps. List content renders as "Step 1: ", "Step 2: " lines.
func (b *Builder) Steps(content Content, opts ...Option) *Builder {
	return b.add(KindSteps, content, opts)
}

// Add adds a component of any kind through the same path as the fluent
// methods, assigning a default order when none is set.
func (b *Builder) Add(kind Kind, content Content, opts ...Option) *Builder {
	return b.add(kind, content, opts)
}

// AddComponent appends c unchanged. Without an explicit order it sorts
// after every ordered component.
func (b *Builder) AddComponent(c *Component) *Builder {
	b.registry.Add(c)
	return b
}

// AddComponents appends every component unchanged.
func (b *Builder) AddComponents(components []*Component) *Builder {
	b.registry.AddAll(components)
	return b
}

// Components returns a copy of the added components in insertion order.
func (b *Builder) Components() []*Component {
	return b.registry.Components()
}

// Clear removes every component and restarts default orders at zero.
func (b *Builder) Clear() *Builder {
	b.registry.Clear()
	return b
}

// Build resolves conditions, sorts by order, renders each component with its
// explicit label if any, joins sections with a blank line and cleans up the
// whitespace. Missing parameters leave their placeholders in the output.
// Errors from content functions and predicates are returned unchanged.
func (b *Builder) Build(params Params) (string, error) {
	if params == nil {
		params = Params{}
	}
	active, err := FilterComponentsByCondition(b.registry.components, params)
	if err != nil {
		return "", err
	}
	logger.Debug("promptbuild: %d of %d components active after conditions", len(active), b.registry.Len())
	return RenderComponents(SortComponents(active), params,
		WithSeparator("\n\n"),
		WithLabelFormatter(ExplicitLabel),
	)
}

func formatRecord(fields []Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		value, ok := f.Value.(string)
		if !ok {
			value = jsonText(f.Value)
		}
		lines = append(lines, "- "+f.Key+": "+value)
	}
	return strings.Join(lines, "\n")
}
