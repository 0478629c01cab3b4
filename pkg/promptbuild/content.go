package promptbuild

// ContentType discriminates the shapes a component's content can take.
type ContentType uint8

const (
	ContentNone ContentType = iota
	ContentText
	ContentList
	ContentFn
	ContentRef
)

func (t ContentType) String() string {
	switch t {
	case ContentText:
		return "text"
	case ContentList:
		return "list"
	case ContentFn:
		return "func"
	case ContentRef:
		return "ref"
	default:
		return "none"
	}
}

// ContentFunc computes content from the build parameters. Text it returns is
// used verbatim; placeholders are only substituted in literal text.
type ContentFunc func(p Params) (Content, error)

// Content is the body of a component: literal or template text, a list of
// items, a function of the parameters, or a reference to another component.
// The zero value is empty content and resolves to "".
type Content struct {
	typ   ContentType
	text  string
	items []string
	fn    ContentFunc
	ref   *Component
}

// Text returns literal or template content.
func Text(s string) Content {
	return Content{typ: ContentText, text: s}
}

// List returns list content, formatted by kind when resolved.
func List(items ...string) Content {
	cp := make([]string, len(items))
	copy(cp, items)
	return Content{typ: ContentList, items: cp}
}

// Func returns content computed at build time.
func Func(fn ContentFunc) Content {
	if fn == nil {
		return Content{}
	}
	return Content{typ: ContentFn, fn: fn}
}

// TextFunc adapts a function producing text.
func TextFunc(fn func(p Params) string) Content {
	if fn == nil {
		return Content{}
	}
	return Func(func(p Params) (Content, error) {
		return Content{typ: ContentText, text: fn(p)}, nil
	})
}

// ListFunc adapts a function producing list items. A nil slice resolves to
// empty content.
func ListFunc(fn func(p Params) []string) Content {
	if fn == nil {
		return Content{}
	}
	return Func(func(p Params) (Content, error) {
		items := fn(p)
		if items == nil {
			return Content{}, nil
		}
		return Content{typ: ContentList, items: items}, nil
	})
}

// RefFunc adapts a function choosing a component whose content is used. A
// nil component resolves to empty content.
func RefFunc(fn func(p Params) *Component) Content {
	if fn == nil {
		return Content{}
	}
	return Func(func(p Params) (Content, error) {
		return Ref(fn(p)), nil
	})
}

// Ref returns content that resolves to the content of c.
func Ref(c *Component) Content {
	if c == nil {
		return Content{}
	}
	return Content{typ: ContentRef, ref: c}
}

// Type reports the content shape.
func (c Content) Type() ContentType {
	return c.typ
}

// IsZero reports whether c is empty content.
func (c Content) IsZero() bool {
	return c.typ == ContentNone
}

// Raw returns the literal text of text content.
func (c Content) Raw() string {
	return c.text
}

// Items returns a copy of the items of list content.
func (c Content) Items() []string {
	if c.typ != ContentList {
		return nil
	}
	cp := make([]string, len(c.items))
	copy(cp, c.items)
	return cp
}

// Component returns the referenced component of ref content.
func (c Content) Component() *Component {
	return c.ref
}
