package cli

import (
	"strings"

	"github.com/goodwillcoding/configme/pkg/errors"
)

// SplitVariable splits "key:value" or "key=value" on whichever separator
// comes first
func SplitVariable(s string) (string, string, error) {
	pos := strings.IndexAny(s, ":=")
	if pos == -1 {
		return "", "", errors.Newf(errors.ErrScriptArgument, MsgMissingSeparator, s).
			WithDetail("element", s)
	}
	return s[:pos], s[pos+1:], nil
}

// ParseVariables turns a list of key:value / key=value elements into a map.
// Later elements win.
func ParseVariables(elements []string) (map[string]string, error) {
	vars := make(map[string]string, len(elements))
	for _, e := range elements {
		k, v, err := SplitVariable(e)
		if err != nil {
			return nil, err
		}
		vars[k] = v
	}
	return vars, nil
}
