package settings

import (
	"fmt"
	"regexp"
	"strings"
)

const maxInterpolationDepth = 10

var interpolationVar = regexp.MustCompile(`^%\(([^)]+)\)s`)

// InterpolationError describes why a value could not be expanded
type InterpolationError struct {
	Section string
	Option  string
	Reason  string
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf("section [%s] option %s: %s", e.Section, e.Option, e.Reason)
}

// scope holds the values references resolve against. A value referring to
// its own key, as in "port = %(port)s", reads that key from defaults.
type scope struct {
	vars     map[string]string
	defaults map[string]string
}

func (s scope) lookup(name, owner string) (string, bool) {
	if name == owner {
		v, ok := s.defaults[name]
		return v, ok
	}
	v, ok := s.vars[name]
	return v, ok
}

// interpolate expands %(name)s references in the value of option. "%%" is a
// literal percent sign. Expanded values are expanded again, up to
// maxInterpolationDepth levels.
func interpolate(section, option, value string, sc scope) (string, error) {
	var out strings.Builder
	if err := interpolateInto(&out, section, option, option, value, sc, 1); err != nil {
		return "", err
	}
	return out.String(), nil
}

// interpolateInto expands rest, the value currently held by owner
func interpolateInto(out *strings.Builder, section, option, owner, rest string, sc scope, depth int) error {
	if depth > maxInterpolationDepth {
		return &InterpolationError{
			Section: section,
			Option:  option,
			Reason:  fmt.Sprintf("value references are nested deeper than %d levels: %q", maxInterpolationDepth, rest),
		}
	}

	for rest != "" {
		p := strings.IndexByte(rest, '%')
		if p < 0 {
			out.WriteString(rest)
			return nil
		}
		out.WriteString(rest[:p])
		rest = rest[p:]

		switch {
		case strings.HasPrefix(rest, "%%"):
			out.WriteByte('%')
			rest = rest[2:]

		case strings.HasPrefix(rest, "%("):
			m := interpolationVar.FindStringSubmatch(rest)
			if m == nil {
				return &InterpolationError{
					Section: section,
					Option:  option,
					Reason:  fmt.Sprintf("bad interpolation variable reference %q", rest),
				}
			}
			name := strings.ToLower(m[1])
			rest = rest[len(m[0]):]

			v, ok := sc.lookup(name, owner)
			if !ok {
				return &InterpolationError{
					Section: section,
					Option:  option,
					Reason:  fmt.Sprintf("no value for %%(%s)s", name),
				}
			}
			if strings.Contains(v, "%") {
				if err := interpolateInto(out, section, option, name, v, sc, depth+1); err != nil {
					return err
				}
			} else {
				out.WriteString(v)
			}

		default:
			return &InterpolationError{
				Section: section,
				Option:  option,
				Reason:  fmt.Sprintf("'%%' must be followed by '%%' or '(', found: %q", rest),
			}
		}
	}

	return nil
}
