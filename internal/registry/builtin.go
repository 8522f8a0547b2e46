package registry

import (
	"embed"
	"io/fs"
)

// Builtin templates ship inside the binary so hayaku is usable before any
// local template exists.
//
//go:embed all:builtin
var builtinFS embed.FS

// builtinTemplatesFS returns the embedded template root.
func builtinTemplatesFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The builtin directory is compiled in; failure here is a build
		// defect, not a runtime condition.
		panic(err)
	}
	return sub
}
