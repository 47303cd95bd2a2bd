package usd

import (
	"fmt"
	"regexp"
	"strings"
)

// PathFilter matches prim paths against glob patterns. `*` matches any
// run of characters including `/` and `?` matches a single character,
// so "/World/Robot/*" covers the entire subtree. A nil filter matches
// everything.
type PathFilter struct {
	patterns []*regexp.Regexp
}

// NewPathFilter compiles the given glob patterns.
func NewPathFilter(patterns []string) (*PathFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	f := &PathFilter{}
	for _, p := range patterns {
		re, err := regexp.Compile(globToRegexp(p))
		if err != nil {
			return nil, fmt.Errorf("compiling path pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Match reports whether path matches any of the patterns.
func (f *PathFilter) Match(path string) bool {
	if f == nil {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func globToRegexp(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}
