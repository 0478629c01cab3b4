package promptbuild

import (
	"strings"

	"github.com/kayz/promptkit/internal/logger"
)

// LabelFormatter returns the header for a component. An empty header means
// the content is rendered without one.
type LabelFormatter func(c *Component) string

type renderOptions struct {
	separator      string
	includeLabels  bool
	labelFormatter LabelFormatter
	skipEmpty      bool
}

// RenderOption customizes RenderComponent and RenderComponents.
type RenderOption func(*renderOptions)

// WithSeparator sets the text placed between rendered sections.
func WithSeparator(sep string) RenderOption {
	return func(o *renderOptions) {
		o.separator = sep
	}
}

// WithLabels toggles section headers.
func WithLabels(include bool) RenderOption {
	return func(o *renderOptions) {
		o.includeLabels = include
	}
}

// WithLabelFormatter replaces DefaultLabel as the header source.
func WithLabelFormatter(fn LabelFormatter) RenderOption {
	return func(o *renderOptions) {
		if fn != nil {
			o.labelFormatter = fn
		}
	}
}

// WithSkipEmpty toggles dropping components whose content is blank.
func WithSkipEmpty(skip bool) RenderOption {
	return func(o *renderOptions) {
		o.skipEmpty = skip
	}
}

func newRenderOptions(opts []RenderOption) renderOptions {
	o := renderOptions{
		separator:      "\n\n",
		includeLabels:  true,
		labelFormatter: DefaultLabel,
		skipEmpty:      true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// DefaultLabel returns the component's label, or a readable name for its
// kind when none is set.
func DefaultLabel(c *Component) string {
	if c.Label != "" {
		return c.Label
	}
	if label, ok := defaultLabels[c.Kind()]; ok {
		return label
	}
	return strings.ToUpper(string(c.Kind()))
}

// ExplicitLabel returns only a label set on the component.
func ExplicitLabel(c *Component) string {
	return c.Label
}

// RenderComponent resolves a single component and prefixes its header.
// With the defaults, blank content renders as "" and every component gets a
// header, synthesized from its kind when no label is set.
func RenderComponent(c *Component, params Params, opts ...RenderOption) (string, error) {
	return renderComponent(c, params, newRenderOptions(opts))
}

func renderComponent(c *Component, params Params, o renderOptions) (string, error) {
	content, err := ResolveComponentContent(c.Content, params, c.Kind())
	if err != nil {
		return "", err
	}
	if o.skipEmpty && strings.TrimSpace(content) == "" {
		logger.Debug("promptbuild: skipping empty %s section", c.Kind())
		return "", nil
	}
	if o.includeLabels {
		if label := o.labelFormatter(c); label != "" {
			return label + "\n" + content, nil
		}
	}
	return content, nil
}

// RenderComponents renders components in the given order, joins the
// non-empty sections with the separator and cleans up the result.
// Conditions and orders are not applied; see Builder.Build for that.
func RenderComponents(components []*Component, params Params, opts ...RenderOption) (string, error) {
	o := newRenderOptions(opts)
	sections := make([]string, 0, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		section, err := renderComponent(c, params, o)
		if err != nil {
			return "", err
		}
		if section != "" {
			sections = append(sections, section)
		}
	}
	return CleanupOutput(strings.Join(sections, o.separator)), nil
}
