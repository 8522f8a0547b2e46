package defs

// Common file and directory names used across the project.
const (
	// HayakuDirName is the per-user hayaku directory under $HOME.
	HayakuDirName = ".hayaku"

	// TemplatesDirName is the local template directory inside the hayaku directory.
	TemplatesDirName = "templates"

	// TemplateConfigFile is the per-template metadata file.
	TemplateConfigFile = "hayaku.yaml"

	// SettingsFile is the per-user global settings file inside the hayaku directory.
	SettingsFile = "settings.yaml"

	// TemplateSuffix marks files that are always rendered; the suffix is
	// stripped from the destination file name.
	TemplateSuffix = ".tmpl"

	// GitIgnoreFile is the ignore file honored while walking a template.
	GitIgnoreFile = ".gitignore"
)

// Environment variables consumed by the CLI.
const (
	// EnvHayakuDirectory overrides the default hayaku directory location.
	EnvHayakuDirectory = "HAYAKU_DIRECTORY"

	// EnvEditor selects the editor opened by the edit command.
	EnvEditor = "EDITOR"
)

// ReservedExclusions are entry names excluded from generation at any depth.
var ReservedExclusions = []string{
	".git",
	TemplateConfigFile,
}
