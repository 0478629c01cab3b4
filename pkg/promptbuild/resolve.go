package promptbuild

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const maxResolveDepth = 32

// ErrNestingTooDeep is returned when component references or content
// functions nest deeper than the resolver follows, usually a reference cycle.
var ErrNestingTooDeep = errors.New("promptbuild: content nesting too deep")

// ResolveContent resolves content without kind-specific list formatting.
func ResolveContent(content Content, params Params) (string, error) {
	return ResolveComponentContent(content, params, "")
}

// ResolveComponentContent turns content into text. Literal text has its
// placeholders substituted, functions are invoked with params, lists are
// formatted according to kind, and references resolve the referenced
// component's content. A non-empty kind overrides the kind of a referenced
// component for list formatting.
//
// Errors returned by content functions are passed through unchanged.
func ResolveComponentContent(content Content, params Params, kind Kind) (string, error) {
	return resolve(content, params, kind, 0, false)
}

func resolve(content Content, params Params, kind Kind, depth int, computed bool) (string, error) {
	if depth > maxResolveDepth {
		return "", fmt.Errorf("%w (limit %d)", ErrNestingTooDeep, maxResolveDepth)
	}
	switch content.typ {
	case ContentText:
		if computed {
			return content.text, nil
		}
		return Substitute(content.text, params), nil
	case ContentList:
		return formatList(kind, content.items), nil
	case ContentFn:
		out, err := content.fn(params)
		if err != nil {
			return "", err
		}
		return resolve(out, params, kind, depth+1, true)
	case ContentRef:
		k := kind
		if k == "" {
			k = content.ref.Kind()
		}
		return resolve(content.ref.Content, params, k, depth+1, false)
	default:
		return "", nil
	}
}

func formatList(kind Kind, items []string) string {
	filtered := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return ""
	}

	var out strings.Builder
	switch kind {
	case KindSteps:
		for i, item := range filtered {
			if i > 0 {
				out.WriteString("\n")
			}
			out.WriteString("Step ")
			out.WriteString(strconv.Itoa(i + 1))
			out.WriteString(": ")
			out.WriteString(item)
		}
	case KindTasks:
		for i, item := range filtered {
			if i > 0 {
				out.WriteString("\n")
			}
			out.WriteString(strconv.Itoa(i + 1))
			out.WriteString(". ")
			out.WriteString(item)
		}
	case KindFewShots:
		for i, item := range filtered {
			if i > 0 {
				out.WriteString("\n\n")
			}
			out.WriteString("Example ")
			out.WriteString(strconv.Itoa(i + 1))
			out.WriteString(":\n")
			out.WriteString(item)
		}
	case KindGuardrails, KindConstraints:
		for i, item := range filtered {
			if i > 0 {
				out.WriteString("\n")
			}
			out.WriteString("- ")
			out.WriteString(item)
		}
	default:
		return strings.Join(filtered, "\n")
	}
	return out.String()
}
