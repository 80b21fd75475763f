package watch

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// IgnorePatterns matches paths against gitignore-style rules:
//   - *.log              matches a file name at any depth
//   - /build/            matches the build directory at the root only
//   - **/testdata/**     matches anything below a testdata directory
//   - !keep.log          re-includes a path ignored by an earlier rule
//
// A path inside an ignored directory is ignored as well, whatever the
// later rules say.
type IgnorePatterns struct {
	mu       sync.RWMutex
	patterns []ignorePattern
}

type ignorePattern struct {
	original string
	segs     []string
	negation bool
	dirOnly  bool
	// anchored patterns match from the base path rather than any name.
	anchored bool
}

// NewIgnorePatterns creates a matcher holding patterns.
func NewIgnorePatterns(patterns ...string) (*IgnorePatterns, error) {
	ip := &IgnorePatterns{}
	for _, p := range patterns {
		if err := ip.AddPattern(p); err != nil {
			return nil, err
		}
	}
	return ip, nil
}

// AddPattern adds one rule. Blank lines and comments are ignored.
func (ip *IgnorePatterns) AddPattern(pattern string) error {
	pattern = strings.TrimRight(pattern, " \t")
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return nil
	}

	p := ignorePattern{original: pattern}
	if strings.HasPrefix(pattern, "!") {
		p.negation = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		p.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if strings.HasPrefix(pattern, "/") {
		p.anchored = true
		pattern = pattern[1:]
	}
	if strings.Contains(pattern, "/") {
		p.anchored = true
	}
	if pattern == "" {
		return fmt.Errorf("invalid ignore pattern %q", p.original)
	}

	p.segs = strings.Split(pattern, "/")
	for _, seg := range p.segs {
		if _, err := path.Match(seg, ""); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", p.original, err)
		}
	}

	ip.mu.Lock()
	ip.patterns = append(ip.patterns, p)
	ip.mu.Unlock()
	return nil
}

// Count returns the number of rules.
func (ip *IgnorePatterns) Count() int {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return len(ip.patterns)
}

// Match reports whether the relative path should be ignored.
func (ip *IgnorePatterns) Match(name string, isDir bool) bool {
	return ip.MatchRelative(name, "", isDir)
}

// MatchRelative reports whether name, taken relative to basePath, should be
// ignored. An empty basePath uses name as given.
func (ip *IgnorePatterns) MatchRelative(name, basePath string, isDir bool) bool {
	rel := name
	if basePath != "" {
		if r, err := filepath.Rel(basePath, name); err == nil {
			rel = r
		}
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	if rel == "" || rel == "." {
		return false
	}

	ip.mu.RLock()
	defer ip.mu.RUnlock()

	segs := strings.Split(rel, "/")
	for i := 1; i < len(segs); i++ {
		if ip.match(segs[:i], true) {
			return true
		}
	}
	return ip.match(segs, isDir)
}

// match applies the rules in order; the last matching rule wins.
func (ip *IgnorePatterns) match(segs []string, isDir bool) bool {
	ignored := false
	for _, p := range ip.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if p.matches(segs) {
			ignored = !p.negation
		}
	}
	return ignored
}

func (p ignorePattern) matches(segs []string) bool {
	if p.anchored {
		return matchSegments(p.segs, segs)
	}
	ok, _ := path.Match(p.segs[0], segs[len(segs)-1])
	return ok
}

// matchSegments matches glob segments against path segments, where "**"
// stands for zero or more segments.
func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pat[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	if ok, _ := path.Match(pat[0], segs[0]); !ok {
		return false
	}
	return matchSegments(pat[1:], segs[1:])
}
