package template

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/k88hudson/hayaku/internal/defs"
)

// Report summarizes one generation run. It is returned even when the run
// fails partway, reflecting the work completed before the failure.
type Report struct {
	FilesWritten int
	DirsCreated  int
	Skipped      int
	Context      *Context
}

// Walker orchestrates one generation: it enumerates the template
// filesystem, substitutes [NAME] tokens into destination paths, renders
// text files through the Renderer, byte-copies everything else, and writes
// the result under the destination directory. A Walker holds no state
// across Generate calls.
type Walker struct {
	// FS is the template root.
	FS fs.FS

	// Renderer handles template-able file contents.
	Renderer Renderer

	// Exclusions are entry names skipped at any depth. Defaults to the
	// reserved list (the template metadata file and .git).
	Exclusions []string

	// Force skips the non-empty destination precondition. Removal of a
	// conflicting destination is the caller's decision, never the walker's.
	Force bool

	// OnFile, when set, is invoked with each destination-relative file
	// path right after it is written.
	OnFile func(rel string)
}

// NewWalker creates a Walker with the reserved exclusion list.
func NewWalker(fsys fs.FS, renderer Renderer) *Walker {
	return &Walker{
		FS:         fsys,
		Renderer:   renderer,
		Exclusions: defs.ReservedExclusions,
	}
}

// Generate performs a single depth-first pass over the template filesystem
// and writes the generated tree under destDir. Reserved exclusions and
// entries matched by the template root's .gitignore are skipped. It fails
// fast: the first error aborts the remaining traversal, already-written
// entries stay in place, and the returned report counts them.
func (w *Walker) Generate(ctx context.Context, destDir string, rctx *Context) (*Report, error) {
	report := &Report{Context: rctx}
	destDir = filepath.Clean(destDir)

	if err := w.checkDestination(destDir); err != nil {
		return report, err
	}

	if _, err := os.Stat(destDir); os.IsNotExist(err) {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return report, fmt.Errorf("create destination %q: %w", destDir, err)
		}
		report.DirsCreated++
	}

	ignore := loadIgnoreRules(w.FS)

	err := fs.WalkDir(w.FS, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk template entry %q: %w", path, err)
		}
		if path == "." {
			return nil
		}

		// Per-entry cancellation check.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if slices.Contains(w.Exclusions, entry.Name()) || ignore.Match(path, entry.IsDir()) {
			report.Skipped++
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			return w.generateDir(destDir, path, rctx, report)
		}
		return w.generateFile(destDir, path, rctx, report)
	})

	return report, err
}

// checkDestination refuses to generate into an existing non-empty
// destination: silent overwrite is never acceptable for a one-shot,
// user-supervised operation.
func (w *Walker) checkDestination(destDir string) error {
	info, err := os.Stat(destDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect destination %q: %w", destDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q is a file", ErrDestinationConflict, destDir)
	}
	if w.Force {
		return nil
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return fmt.Errorf("inspect destination %q: %w", destDir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %q", ErrDestinationConflict, destDir)
	}
	return nil
}

// generateDir creates the substituted directory. Creating an
// already-existing directory is not an error.
func (w *Walker) generateDir(destDir, path string, rctx *Context, report *Report) error {
	destRel := SubstitutePath(path, rctx)
	if err := validateDestPath(destDir, destRel); err != nil {
		return err
	}

	target := filepath.Join(destDir, filepath.FromSlash(destRel))
	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%w: %q exists and is not a directory", ErrDestinationConflict, target)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", target, err)
	}
	report.DirsCreated++
	return nil
}

// generateFile renders or copies a single template file to its substituted
// destination path.
func (w *Walker) generateFile(destDir, path string, rctx *Context, report *Report) error {
	srcRel := path
	isTemplate := strings.HasSuffix(path, defs.TemplateSuffix)
	if isTemplate {
		srcRel = strings.TrimSuffix(path, defs.TemplateSuffix)
	}

	destRel := SubstitutePath(srcRel, rctx)
	if err := validateDestPath(destDir, destRel); err != nil {
		return err
	}

	content, err := fs.ReadFile(w.FS, path)
	if err != nil {
		return fmt.Errorf("read template file %q: %w", path, err)
	}

	// Template-able files go through the renderer; binaries are copied
	// verbatim. A .tmpl suffix always means template-able.
	if isTemplate || utf8.Valid(content) {
		rendered, renderErr := w.Renderer.Render(path, content, rctx)
		if renderErr != nil {
			return renderErr
		}
		content = rendered
	}

	destPath := filepath.Join(destDir, filepath.FromSlash(destRel))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %q: %w", destPath, err)
	}

	perm := fs.FileMode(0o644)
	if strings.HasSuffix(destPath, ".sh") {
		perm = 0o755
	}

	if err := os.WriteFile(destPath, content, perm); err != nil {
		return fmt.Errorf("write file %q: %w", destPath, err)
	}

	report.FilesWritten++
	slog.Debug("generated file", "src", path, "dest", destRel)
	if w.OnFile != nil {
		w.OnFile(destRel)
	}
	return nil
}

// validateDestPath ensures a substituted relative path stays inside the
// destination root. Paths are NFC-normalized first: filepath.Rel produces
// ".." prefixed results for differently-normalized non-ASCII paths.
func validateDestPath(destDir, destRel string) error {
	cleaned := filepath.Clean(filepath.FromSlash(destRel))
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathEscapesDest, destRel)
	}

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolve destination root: %w", err)
	}

	nfcDest := norm.NFC.String(absDest)
	nfcTarget := norm.NFC.String(filepath.Join(absDest, cleaned))

	rel, err := filepath.Rel(nfcDest, nfcTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrPathEscapesDest, destRel)
	}
	return nil
}
