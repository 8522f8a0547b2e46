package template

import (
	"io/fs"
	"path"
	"strings"

	"github.com/k88hudson/hayaku/internal/defs"
)

// ignoreRules models the template root's .gitignore so build artifacts and
// editor droppings checked into a template directory are not generated into
// every project. Supported syntax: blank lines and # comments, ! negation,
// a trailing / restricting the pattern to directories, and a leading / (or
// any embedded /) anchoring the pattern to the template root. Later rules
// win over earlier ones, matching git's evaluation order.
type ignoreRules struct {
	rules []ignoreRule
}

type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// loadIgnoreRules reads the template root's .gitignore; a missing file
// yields an empty rule set.
func loadIgnoreRules(fsys fs.FS) *ignoreRules {
	raw, err := fs.ReadFile(fsys, defs.GitIgnoreFile)
	if err != nil {
		return &ignoreRules{}
	}
	return parseIgnoreRules(string(raw))
}

// parseIgnoreRules parses .gitignore contents into an ordered rule list.
func parseIgnoreRules(raw string) *ignoreRules {
	r := &ignoreRules{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rule := ignoreRule{}
		if strings.HasPrefix(line, "!") {
			rule.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			line = line[1:]
		}
		if line == "" {
			continue
		}
		// A pattern containing a separator is matched against the full
		// root-relative path; a bare name matches at any depth.
		rule.anchored = strings.Contains(line, "/")
		rule.pattern = line
		r.rules = append(r.rules, rule)
	}
	return r
}

// Match reports whether the root-relative path is excluded. The last
// matching rule decides, so a later !pattern re-includes an entry.
func (r *ignoreRules) Match(rel string, isDir bool) bool {
	ignored := false
	for _, rule := range r.rules {
		if rule.dirOnly && !isDir {
			continue
		}
		if rule.matches(rel) {
			ignored = !rule.negate
		}
	}
	return ignored
}

func (rule ignoreRule) matches(rel string) bool {
	target := rel
	if !rule.anchored {
		target = path.Base(rel)
	}
	ok, err := path.Match(rule.pattern, target)
	return err == nil && ok
}
