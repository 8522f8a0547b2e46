// Package template implements the generation engine: variable resolution
// into an immutable render context, [NAME] substitution in file paths,
// content rendering through Go's text/template, and the tree walker that
// copies a template filesystem into a destination directory.
package template

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"
)

// Context is the render context of one generation run: a materialized
// mapping from variable name to string value. Every value is stored under
// its canonical UPPERCASE key and under the raw spelling it was declared
// with, so templates may reference either form. Built once per run and
// immutable afterwards.
type Context struct {
	entries map[string]string
}

// CanonicalKey converts a raw variable name to its canonical form:
// ASCII letters upper-cased, every other rune replaced with underscore.
func CanonicalKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// newContext builds a Context from resolved raw-name/value pairs.
func newContext(values map[string]string) *Context {
	entries := make(map[string]string, len(values)*2)
	for raw, val := range values {
		entries[raw] = val
		entries[CanonicalKey(raw)] = val
	}
	return &Context{entries: entries}
}

// Lookup returns the value for an exact, case-sensitive key.
func (c *Context) Lookup(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// ProjectName returns the built-in PROJECT_NAME value.
func (c *Context) ProjectName() string {
	return c.entries[KeyProjectName]
}

// Values returns a copy of all entries, suitable as a templating
// environment. The copy keeps the Context itself immutable.
func (c *Context) Values() map[string]string {
	return maps.Clone(c.entries)
}

// Len returns the number of entries, counting canonical and raw spellings
// separately.
func (c *Context) Len() int {
	return len(c.entries)
}

// Built-in context keys.
const (
	// KeyProjectName is always present; derived from the destination path.
	KeyProjectName = "PROJECT_NAME"

	// KeyTemplateName exposes the source template's name to templates.
	KeyTemplateName = "TEMPLATE_NAME"
)

// ProjectNameFromPath derives the built-in PROJECT_NAME value from the
// destination path's final segment.
func ProjectNameFromPath(dest string) (string, error) {
	base := filepath.Base(filepath.Clean(dest))
	if base == "." || base == ".." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("%w: %q", ErrNoProjectName, dest)
	}
	return base, nil
}
