package entities

import (
	"fmt"
	"regexp"
)

// refRule derives a source-control reference from a version string.
type refRule struct {
	pattern *regexp.Regexp
	group   int
}

// refRules are tried in order, the first match wins.
//
//nolint:gochecknoglobals // compiled once, read-only
var refRules = []refRule{
	// v2.0.0+incompatible -> v2.0.0
	{pattern: regexp.MustCompile(`^(.*)\+incompatible$`), group: 1},
	// v0.0.0-20210101000000-abcdef012345 -> abcdef012345
	// v1.2.4-pre.0.20210101000000-abcdef012345 -> abcdef012345
	{pattern: regexp.MustCompile(`^v.*[-.](?:0\.)?[0-9]{14}-([a-f0-9]{12})$`), group: 1},
	// any other v-prefixed version is a tag
	{pattern: regexp.MustCompile(`^v.*$`), group: 0},
}

// ResolveRef maps a module version onto the commit hash or tag it was cut from.
func ResolveRef(version string) (string, error) {
	for _, rule := range refRules {
		if match := rule.pattern.FindStringSubmatch(version); match != nil {
			return match[rule.group], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnresolvableVersion, version)
}
