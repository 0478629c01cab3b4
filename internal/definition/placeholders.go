package definition

import (
	"github.com/kayz/promptkit/pkg/promptbuild"
)

// Templates returns every literal text in def that can reach the output with
// its placeholders substituted, in file order, including condition branches.
// Labels are not templates. A component with a when clause is always replaced
// by one of its branches, so its own body is skipped.
func Templates(def *Definition) []string {
	var out []string
	var walk func(cs []ComponentDef)
	walk = func(cs []ComponentDef) {
		for i := range cs {
			c := &cs[i]
			if c.When != nil {
				walk(c.Then)
				walk(c.Else)
				continue
			}
			if c.Content != nil {
				out = append(out, *c.Content)
			}
			out = append(out, c.Items...)
			for _, f := range c.Fields {
				out = append(out, f.Key)
				if s, ok := f.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	walk(def.Components)
	return out
}

// Placeholders lists the distinct parameter names def refers to, in order
// of first occurrence.
func Placeholders(def *Definition) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, tmpl := range Templates(def) {
		for _, name := range promptbuild.ExtractParameters(tmpl) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// CheckParams reports the placeholders in def that params leaves unresolved.
// With strict set, a non-empty result is returned as a
// *promptbuild.MissingParametersError.
func CheckParams(def *Definition, params promptbuild.Params, strict bool) ([]string, error) {
	var missing []string
	seen := make(map[string]struct{})
	for _, tmpl := range Templates(def) {
		names, _ := promptbuild.ValidateParameters(tmpl, params, false)
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			missing = append(missing, name)
		}
	}
	if strict && len(missing) > 0 {
		return missing, &promptbuild.MissingParametersError{Missing: missing}
	}
	return missing, nil
}
