package entities

import (
	"fmt"
	"regexp"
)

// ModuleFilter decides which dependency paths belong in the changelog.
// An empty include list admits every path; any exclude match rejects it.
type ModuleFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewModuleFilter compiles the include and exclude patterns.
func NewModuleFilter(include, exclude []string) (*ModuleFilter, error) {
	inc, err := compilePatterns(include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exc, err := compilePatterns(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return &ModuleFilter{include: inc, exclude: exc}, nil
}

// Allows reports whether the module path is in scope.
func (f *ModuleFilter) Allows(path string) bool {
	if len(f.include) > 0 && !matchesAny(f.include, path) {
		return false
	}
	return !matchesAny(f.exclude, path)
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
