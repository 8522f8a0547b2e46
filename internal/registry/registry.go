// Package registry discovers the templates a user can generate from: local
// templates under the hayaku directory and the builtin set embedded in the
// binary. Local templates override builtin ones of the same name.
package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/k88hudson/hayaku/internal/config"
	"github.com/k88hudson/hayaku/internal/defs"
)

// Origin tells where a template was discovered.
type Origin string

const (
	// OriginLocal marks templates from the user's template directory.
	OriginLocal Origin = "local"

	// OriginBuiltin marks templates embedded in the binary.
	OriginBuiltin Origin = "builtin"
)

// Template is one selectable template source. Immutable once discovered.
type Template struct {
	// Config is the parsed metadata (never nil; defaults applied).
	Config *config.TemplateConfig

	// Path is the on-disk template root; empty for builtin templates.
	Path string

	// Origin tells where the template came from.
	Origin Origin

	fsys fs.FS
}

// FS returns the template's root filesystem.
func (t *Template) FS() fs.FS {
	return t.fsys
}

// Registry holds the discovered templates of one process.
type Registry struct {
	hayakuDir        string
	localTemplateDir string
	settingsPath     string
	local            map[string]*Template
	builtin          map[string]*Template
}

// New discovers templates using the default hayaku directory:
// $HAYAKU_DIRECTORY when set, otherwise ~/.hayaku.
func New() (*Registry, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewFromDir(dir)
}

// DefaultDir resolves the hayaku directory location.
func DefaultDir() (string, error) {
	if dir := os.Getenv(defs.EnvHayakuDirectory); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, defs.HayakuDirName), nil
}

// NewFromDir discovers templates under the given hayaku directory. A
// missing template directory is not an error; only builtin templates are
// available then.
func NewFromDir(hayakuDir string) (*Registry, error) {
	r := &Registry{
		hayakuDir:        hayakuDir,
		localTemplateDir: filepath.Join(hayakuDir, defs.TemplatesDirName),
		settingsPath:     filepath.Join(hayakuDir, defs.SettingsFile),
	}

	local, err := loadLocalTemplates(r.localTemplateDir)
	if err != nil {
		return nil, err
	}
	r.local = local

	builtin, err := loadBuiltinTemplates()
	if err != nil {
		return nil, err
	}
	r.builtin = builtin

	return r, nil
}

// HayakuDir returns the hayaku directory.
func (r *Registry) HayakuDir() string {
	return r.hayakuDir
}

// LocalTemplateDir returns the local template directory.
func (r *Registry) LocalTemplateDir() string {
	return r.localTemplateDir
}

// SettingsPath returns the global settings file path.
func (r *Registry) SettingsPath() string {
	return r.settingsPath
}

// Settings loads the global settings file, returning defaults when it
// does not exist.
func (r *Registry) Settings() (*config.Settings, error) {
	return config.LoadSettings(r.settingsPath)
}

// Get returns the template with the given name; a local template shadows a
// builtin one of the same name.
func (r *Registry) Get(name string) (*Template, bool) {
	if t, ok := r.local[name]; ok {
		return t, true
	}
	t, ok := r.builtin[name]
	return t, ok
}

// HasLocalTemplates reports whether any local template was discovered.
func (r *Registry) HasLocalTemplates() bool {
	return len(r.local) > 0
}

// All returns every selectable template: builtin first, then local, each
// group ordered by display title; a builtin shadowed by a local template of
// the same name is omitted.
func (r *Registry) All() []*Template {
	collator := collate.New(language.Und, collate.IgnoreCase)

	sorted := func(m map[string]*Template, skip func(name string) bool) []*Template {
		out := make([]*Template, 0, len(m))
		for name, t := range m {
			if skip != nil && skip(name) {
				continue
			}
			out = append(out, t)
		}
		sort.Slice(out, func(i, j int) bool {
			return collator.CompareString(out[i].Config.Title(), out[j].Config.Title()) < 0
		})
		return out
	}

	all := sorted(r.builtin, func(name string) bool {
		_, shadowed := r.local[name]
		return shadowed
	})
	return append(all, sorted(r.local, nil)...)
}

// LoadFromDir builds a Template directly from an arbitrary on-disk
// directory, bypassing discovery (the --template-dir flow).
func LoadFromDir(dir string) (*Template, error) {
	cfg, err := config.LoadTemplateConfig(dir)
	if err != nil {
		return nil, err
	}
	return &Template{
		Config: cfg,
		Path:   dir,
		Origin: OriginLocal,
		fsys:   os.DirFS(dir),
	}, nil
}

// loadLocalTemplates discovers every subdirectory of dir as a template.
func loadLocalTemplates(dir string) (map[string]*Template, error) {
	templates := map[string]*Template{}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return templates, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		cfg, err := config.LoadTemplateConfig(path)
		if err != nil {
			return nil, err
		}
		templates[cfg.Name] = &Template{
			Config: cfg,
			Path:   path,
			Origin: OriginLocal,
			fsys:   os.DirFS(path),
		}
	}

	return templates, nil
}

// loadBuiltinTemplates loads the embedded template set.
func loadBuiltinTemplates() (map[string]*Template, error) {
	templates := map[string]*Template{}

	root := builtinTemplatesFS()
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("read builtin templates: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub, err := fs.Sub(root, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("open builtin template %q: %w", entry.Name(), err)
		}

		cfg, err := loadFSTemplateConfig(sub, entry.Name())
		if err != nil {
			return nil, err
		}
		templates[cfg.Name] = &Template{
			Config: cfg,
			Origin: OriginBuiltin,
			fsys:   sub,
		}
	}

	return templates, nil
}

// loadFSTemplateConfig parses a template's metadata out of an fs.FS.
func loadFSTemplateConfig(fsys fs.FS, dirName string) (*config.TemplateConfig, error) {
	raw, err := fs.ReadFile(fsys, defs.TemplateConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return config.DefaultTemplateConfig(dirName), nil
		}
		return nil, fmt.Errorf("read builtin template config %q: %w", dirName, err)
	}
	return config.ParseTemplateConfig(raw, dirName)
}
