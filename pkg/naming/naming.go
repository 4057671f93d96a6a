// Package naming validates user supplied identifiers that end up as file
// or folder names: role names, role suffixes and relative output paths.
package naming

import (
	"strings"

	"github.com/goodwillcoding/configme/pkg/errors"
)

// Rule is a set of forbidden prefixes and forbidden substrings.
// Subject names the thing being validated in error messages.
type Rule struct {
	Subject         string
	ForbiddenStarts []string
	ForbiddenChars  []string
	AllowEmpty      bool
}

// RoleNameRule applies to role names and suffixes
var RoleNameRule = Rule{
	Subject:         "Role name",
	ForbiddenStarts: []string{" "},
	ForbiddenChars:  []string{"<", ">", ":", `"`, `'`, "/", `\`, "|", "?", "*", "`"},
}

// RoleSuffixRule is RoleNameRule with the empty string allowed
var RoleSuffixRule = Rule{
	Subject:         RoleNameRule.Subject,
	ForbiddenStarts: RoleNameRule.ForbiddenStarts,
	ForbiddenChars:  RoleNameRule.ForbiddenChars,
	AllowEmpty:      true,
}

// PathRule applies to relative template/output paths (settings section names)
var PathRule = Rule{
	Subject:         "Path",
	ForbiddenStarts: []string{" ", "/", "../", "./"},
	ForbiddenChars:  []string{"/../", "/./", "<", ">", ":", `"`, `'`, "|", "?", "*", "`"},
}

// Validate returns value unchanged when it satisfies the rule. Otherwise it
// fails with ErrInvalidName naming the first offending prefix or character;
// prefixes are checked before contained characters.
func (r Rule) Validate(value string) (string, error) {
	if value == "" {
		if r.AllowEmpty {
			return value, nil
		}
		return "", errors.Newf(errors.ErrInvalidName, "%s cannot be empty", r.Subject).
			WithDetail("subject", r.Subject)
	}

	for _, start := range r.ForbiddenStarts {
		if strings.HasPrefix(value, start) {
			return "", errors.Newf(errors.ErrInvalidName, "%s cannot start with '%s': %s", r.Subject, start, value).
				WithDetail("subject", r.Subject).
				WithDetail("char", start).
				WithDetail("value", value)
		}
	}

	for _, char := range r.ForbiddenChars {
		if strings.Contains(value, char) {
			return "", errors.Newf(errors.ErrInvalidName, "%s cannot contain '%s': %s", r.Subject, char, value).
				WithDetail("subject", r.Subject).
				WithDetail("char", char).
				WithDetail("value", value)
		}
	}

	return value, nil
}

// ValidateRoleName validates a role name
func ValidateRoleName(name string) (string, error) {
	return RoleNameRule.Validate(name)
}

// ValidateRoleSuffix validates a role suffix; empty is allowed
func ValidateRoleSuffix(suffix string) (string, error) {
	return RoleSuffixRule.Validate(suffix)
}

// ValidatePath validates a relative template/output path
func ValidatePath(path string) (string, error) {
	return PathRule.Validate(path)
}
