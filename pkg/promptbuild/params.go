package promptbuild

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Params is the flat parameter mapping handed to templates, content
// functions and condition predicates at build time.
type Params map[string]any

// Lookup returns the value for name when it is present and not nil.
func (p Params) Lookup(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[name]
	if !ok || isNil(v) {
		return nil, false
	}
	return v, true
}

// Truthy reports whether the named parameter is present and truthy. False,
// zero, NaN and the empty string are falsy; any other non-nil value is truthy.
func (p Params) Truthy(name string) bool {
	v, ok := p.Lookup(name)
	if !ok {
		return false
	}
	return truthy(v)
}

// Number returns the named parameter as a float64. Numeric strings are
// parsed; anything else reports false.
func (p Params) Number(name string) (float64, bool) {
	v, ok := p.Lookup(name)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// String returns the textual form of the named parameter.
func (p Params) String(name string) (string, bool) {
	v, ok := p.Lookup(name)
	if !ok {
		return "", false
	}
	return stringify(v), true
}

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Substitute replaces every ${name} placeholder in template with the
// matching parameter. Names are trimmed before lookup. Placeholders whose
// parameter is absent or nil are left exactly as written.
func Substitute(template string, params Params) string {
	if template == "" {
		return ""
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-1])
		v, ok := params.Lookup(name)
		if !ok {
			return match
		}
		return stringify(v)
	})
}

// ExtractParameters returns the distinct placeholder names in template in
// order of first occurrence.
func ExtractParameters(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// MissingParametersError lists the placeholders a template needs but the
// parameter mapping does not provide.
type MissingParametersError struct {
	Missing []string
}

func (e *MissingParametersError) Error() string {
	return "missing required parameters: " + strings.Join(e.Missing, ", ")
}

// ValidateParameters returns the placeholder names in template that params
// does not provide. With strict set, a non-empty result is returned as a
// *MissingParametersError instead.
func ValidateParameters(template string, params Params, strict bool) ([]string, error) {
	var missing []string
	for _, name := range ExtractParameters(template) {
		if _, ok := params.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	if strict && len(missing) > 0 {
		return missing, &MissingParametersError{Missing: missing}
	}
	return missing, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)
	case float32:
		return formatFloat(float64(t), 32)
	case float64:
		return formatFloat(t, 64)
	case error:
		return t.Error()
	}
	return jsonText(v)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return trimExponent(strconv.FormatFloat(f, 'e', -1, bits))
}

// trimExponent drops leading zeros from the exponent, so "1e-07" becomes
// "1e-7" and "1e+21" stays as is.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

// jsonText renders v as compact JSON without HTML escaping.
func jsonText(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func truthy(v any) bool {
	if isNil(v) {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8, int16, int32, int64:
		return float64(reflect.ValueOf(t).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(t).Uint()), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
