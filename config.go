package pbidoc

import (
	"path/filepath"
	"strings"
)

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
	FormatSQLite   Format = "sqlite"
)

// Formats lists every supported output format.
var Formats = []Format{FormatHTML, FormatMarkdown, FormatXLSX, FormatSQLite}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

// Config holds the settings of one documentation run.
type Config struct {
	// PackageDirectory contains the template package to document.
	PackageDirectory string `yaml:"package_directory"`

	// WorkDirectory receives the extracted descriptors.
	// Defaults to PackageDirectory when empty.
	WorkDirectory string `yaml:"work_directory"`

	// TemplatePath and TemplateFilename locate an optional HTML template
	// overriding the built-in one.
	TemplatePath     string `yaml:"template_path"`
	TemplateFilename string `yaml:"template_filename"`

	DocumentationDirectory string   `yaml:"documentation_directory"`
	ReportTitle            string   `yaml:"report_title"`
	Format                 Format   `yaml:"format"`
	Encoding               Encoding `yaml:"encoding"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		PackageDirectory:       ".",
		DocumentationDirectory: ".",
		ReportTitle:            "Power BI Report",
		Format:                 FormatHTML,
		Encoding:               EncodingUTF16LE,
	}
}

// Apply overrides the fields of c with the non-empty fields of o.
func (c *Config) Apply(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.PackageDirectory, o.PackageDirectory)
	set(&c.WorkDirectory, o.WorkDirectory)
	set(&c.TemplatePath, o.TemplatePath)
	set(&c.TemplateFilename, o.TemplateFilename)
	set(&c.DocumentationDirectory, o.DocumentationDirectory)
	set(&c.ReportTitle, o.ReportTitle)
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Encoding != "" {
		c.Encoding = o.Encoding
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.PackageDirectory == "" {
		return Errorf(EINVALID, "package directory required")
	}
	if c.DocumentationDirectory == "" {
		return Errorf(EINVALID, "documentation directory required")
	}
	if !c.Format.Valid() {
		return Errorf(EINVALID, "unsupported format %q", c.Format)
	}
	if !c.Encoding.Valid() {
		return Errorf(EINVALID, "unsupported encoding %q", c.Encoding)
	}
	if c.TemplatePath != "" && c.TemplateFilename == "" {
		return Errorf(EINVALID, "template filename required when template path is set")
	}
	return nil
}

// WorkDir returns the directory descriptors are extracted into.
func (c *Config) WorkDir() string {
	if c.WorkDirectory != "" {
		return c.WorkDirectory
	}
	return c.PackageDirectory
}

// TemplateFile returns the path of the custom HTML template, or "" if none is set.
func (c *Config) TemplateFile() string {
	if c.TemplateFilename == "" {
		return ""
	}
	return filepath.Join(c.TemplatePath, c.TemplateFilename)
}

// PackageName strips the package and container extensions from a file name:
// "Sales.pbit.zip" and "Sales.pbit" both become "Sales".
func PackageName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".zip")
	name = strings.TrimSuffix(name, PackageExtension)
	return name
}

// OutputPath returns the unversioned report path for a package.
func (c *Config) OutputPath(packagePath, ext string) string {
	return filepath.Join(c.DocumentationDirectory, PackageName(packagePath)+"_doc"+ext)
}
