package template

import "strings"

// SubstitutePath rewrites a slash-separated relative path by replacing each
// [NAME] token with the context value stored under NAME (case-sensitive,
// exactly as written). Unresolved tokens and stray brackets pass through
// verbatim: a partial template should still generate something inspectable.
// Substituted values are never re-scanned, so a value containing brackets
// cannot trigger further expansion.
func SubstitutePath(rel string, ctx *Context) string {
	if !strings.ContainsRune(rel, '[') {
		return rel
	}

	var b strings.Builder
	b.Grow(len(rel))

	rest := rel
	for {
		start := strings.IndexByte(rest, '[')
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[start:], ']')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end += start

		name := rest[start+1 : end]
		if value, ok := ctx.Lookup(name); ok {
			b.WriteString(rest[:start])
			b.WriteString(value)
		} else {
			b.WriteString(rest[:end+1])
		}
		rest = rest[end+1:]
	}
}
