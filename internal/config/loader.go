package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/k88hudson/hayaku/internal/defs"
)

// LoadTemplateConfig reads and validates a template's hayaku.yaml. A
// template directory without a metadata file is still usable: the returned
// config is named after the directory and declares no variables.
func LoadTemplateConfig(dir string) (*TemplateConfig, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("read template directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	configPath := filepath.Join(dir, defs.TemplateConfigFile)
	raw, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		slog.Debug("template has no metadata file, using directory name", "dir", dir)
		return DefaultTemplateConfig(filepath.Base(dir)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template config %q: %w", configPath, err)
	}

	return ParseTemplateConfig(raw, filepath.Base(dir))
}

// ParseTemplateConfig parses hayaku.yaml contents. The directory name is
// used when the template section declares no name.
func ParseTemplateConfig(raw []byte, dirName string) (*TemplateConfig, error) {
	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	cfg := &TemplateConfig{
		Name:        file.Template.Name,
		DisplayName: file.Template.DisplayName,
		Description: file.Template.Description,
		Author:      file.Template.Author,
		Variables:   file.Env,
	}
	if cfg.Name == "" {
		cfg.Name = dirName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSettings reads the per-user global settings file. A missing file is
// not an error; empty settings are returned so every template still works
// out of the box.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("settings file not found, using empty global env", "path", path)
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("%w: settings %q: %v", ErrInvalidYAML, path, err)
	}
	if settings.GlobalEnv == nil {
		settings.GlobalEnv = map[string]string{}
	}
	return settings, nil
}

// Write serializes the settings to path, creating parent directories as
// needed. Used by the init bootstrap.
func (s *Settings) Write(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory %q: %w", dir, err)
		}
	}

	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	return nil
}
