package template

import (
	"bytes"
	"strings"
	"text/template"
)

// Renderer is the content rendering contract: template bytes in, rendered
// bytes out, with the Context as the variable environment. Binary files
// never pass through a Renderer; the walker copies them verbatim.
type Renderer interface {
	// Render executes the template contents with the given context. The
	// name is used only for error reporting.
	Render(name string, content []byte, ctx *Context) ([]byte, error)
}

// NewRenderer returns the default Renderer backed by Go's text/template in
// strict mode: referencing an undefined variable fails the render unless
// the template goes through the lenient var/default functions.
func NewRenderer() Renderer {
	return &goRenderer{}
}

// goRenderer is the concrete text/template implementation.
type goRenderer struct{}

// rendererFuncs returns the function map available in all templates. The
// var function is the lenient counterpart of direct field access: it
// returns "" for unknown names, so it composes with default.
func rendererFuncs(ctx *Context) template.FuncMap {
	return template.FuncMap{
		"var": func(name string) string {
			v, _ := ctx.Lookup(name)
			return v
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

// Render parses and executes the content with missingkey=error.
func (r *goRenderer) Render(name string, content []byte, ctx *Context) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(rendererFuncs(ctx)).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, &RenderError{Path: name, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx.Values()); err != nil {
		return nil, &RenderError{Path: name, Err: err}
	}

	return buf.Bytes(), nil
}
