package bundle

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"ctxbundle/pkg/ignore"
)

// SkipPatterns are path fragments that are never bundled: version control
// metadata, dependency caches, build output, OS metadata, lockfiles and
// environment files.
var SkipPatterns = []string{
	"node_modules",
	".git",
	".svelte-kit",
	"build",
	"__pycache__",
	".DS_Store",
	".env",
	"package-lock.json",
	"package.json",
	"yarn.lock",
}

// Filter decides which files and directories enter the bundle.
type Filter struct {
	ignore   *ignore.Matcher
	patterns []string
}

// NewFilter combines the ignore rules with SkipPatterns and the caller's
// extra substring patterns. Blank extra patterns are dropped.
func NewFilter(m *ignore.Matcher, extra []string) *Filter {
	if m == nil {
		m = ignore.NewMatcher(nil)
	}
	extra = lo.Filter(extra, func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})
	return &Filter{
		ignore:   m,
		patterns: append(append([]string{}, SkipPatterns...), extra...),
	}
}

// ShouldInclude reports whether the file at relPath, relative to the project
// root, belongs in the bundle.
func (f *Filter) ShouldInclude(relPath string) bool {
	p := filepath.ToSlash(relPath)
	if f.ignore.IsIgnored(p, false) {
		return false
	}
	if f.matchesSkipPattern(p) {
		return false
	}
	return !isCommonBinaryExtension(p)
}

// ShouldDescend reports whether the walker enters the directory at relDir.
// It applies the same ignore rules and substring patterns as ShouldInclude,
// so no file below a pruned directory could have been included.
func (f *Filter) ShouldDescend(relDir string) bool {
	p := filepath.ToSlash(relDir)
	if f.ignore.IsIgnored(p, true) {
		return false
	}
	return !f.matchesSkipPattern(p)
}

func (f *Filter) matchesSkipPattern(p string) bool {
	return lo.SomeBy(f.patterns, func(pattern string) bool {
		return strings.Contains(p, pattern)
	})
}
