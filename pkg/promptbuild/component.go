package promptbuild

// Component is one named section of a prompt.
type Component struct {
	kind Kind

	Content   Content
	Label     string
	Condition *Condition

	order    int
	hasOrder bool
}

// Option configures a component.
type Option func(*Component)

// WithOrder sets an explicit sort position. Lower orders render first.
func WithOrder(order int) Option {
	return func(c *Component) {
		c.order = order
		c.hasOrder = true
	}
}

// WithLabel sets the header printed above the component's content.
func WithLabel(label string) Option {
	return func(c *Component) {
		c.Label = label
	}
}

// WithCondition replaces the component at build time with the branch the
// condition selects.
func WithCondition(cond *Condition) Option {
	return func(c *Component) {
		c.Condition = cond
	}
}

// New creates a component of the given kind. Components created directly
// have no order unless WithOrder is passed; the Builder's fluent methods
// assign one.
func New(kind Kind, content Content, opts ...Option) *Component {
	c := &Component{kind: kind, Content: content}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Kind returns the component's kind.
func (c *Component) Kind() Kind {
	return c.kind
}

// Order returns the component's sort position and whether one is set.
func (c *Component) Order() (int, bool) {
	return c.order, c.hasOrder
}

// Clone returns a copy of c with opts applied on top of its current settings.
func (c *Component) Clone(opts ...Option) *Component {
	cp := *c
	for _, opt := range opts {
		if opt != nil {
			opt(&cp)
		}
	}
	return &cp
}
