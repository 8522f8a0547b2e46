package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for the generation engine.
var (
	// ErrUnresolvedVariable indicates a required variable had no answer,
	// no global value, no default, and no prompt collaborator to ask.
	ErrUnresolvedVariable = errors.New("template: variable unresolved")

	// ErrInvalidValue indicates a resolved value failed its kind validation.
	ErrInvalidValue = errors.New("template: invalid variable value")

	// ErrRenderFailed indicates the content templating engine rejected a file.
	ErrRenderFailed = errors.New("template: render failed")

	// ErrDestinationConflict indicates the destination exists and is not empty.
	ErrDestinationConflict = errors.New("template: destination exists and is not empty")

	// ErrPathEscapesDest indicates a substituted path resolves outside the
	// destination root.
	ErrPathEscapesDest = errors.New("template: path escapes destination root")

	// ErrNoProjectName indicates the destination path has no usable base name.
	ErrNoProjectName = errors.New("template: unable to determine project name from destination")
)

// ResolutionError reports a variable that could not be resolved or whose
// resolved value is illegal for its kind. It always names the variable so
// the failure is actionable.
type ResolutionError struct {
	Variable string
	Value    string
	Reason   string
	Wrapped  error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("resolve variable %q: %s (got: %q)", e.Variable, e.Reason, e.Value)
	}
	return fmt.Sprintf("resolve variable %q: %s", e.Variable, e.Reason)
}

// Unwrap returns the underlying sentinel error.
func (e *ResolutionError) Unwrap() error {
	return e.Wrapped
}

// RenderError reports a content templating failure for a specific file.
type RenderError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q: %v", e.Path, e.Err)
}

// Unwrap supports errors.Is checks against ErrRenderFailed.
func (e *RenderError) Unwrap() error {
	return ErrRenderFailed
}
