// Package zip provides access to Power BI template packages, which are zip
// containers holding the report layout and data model as named entries.
package zip

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pbidoc"
)

// NormalizedExtension is appended to a package path when it is renamed
// into a zip container.
const NormalizedExtension = ".zip"

// contentTypesEntry declares the content type of every archive part.
const contentTypesEntry = "[Content_Types].xml"

// Ensure Archive implements pbidoc.Archive at compile time.
var _ pbidoc.Archive = (*Archive)(nil)

// Archive implements pbidoc.Archive on the local filesystem.
type Archive struct{}

// NewArchive creates a new Archive.
func NewArchive() *Archive {
	return &Archive{}
}

// FindPackages lists the .pbit files in dir in alphabetical order. When
// there are none it falls back to .pbit.zip files left by an earlier
// Normalize, so reruns on the same directory keep working.
func (a *Archive) FindPackages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pbidoc.Errorf(pbidoc.ENOTFOUND, "package directory %s not found", dir)
		}
		return nil, fmt.Errorf("reading package directory: %w", err)
	}

	var packages, normalized []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch name := e.Name(); {
		case hasSuffixFold(name, pbidoc.PackageExtension):
			packages = append(packages, filepath.Join(dir, name))
		case hasSuffixFold(name, pbidoc.PackageExtension+NormalizedExtension):
			normalized = append(normalized, filepath.Join(dir, name))
		}
	}

	if len(packages) == 0 {
		packages = normalized
	}
	if len(packages) == 0 {
		return nil, pbidoc.Errorf(pbidoc.ENOTFOUND, "no %s file found in %s", pbidoc.PackageExtension, dir)
	}
	return packages, nil
}

// Normalize renames a package to <path>.zip. The rename is skipped when the
// renamed file already exists, and paths already ending in .zip are returned
// unchanged.
func (a *Archive) Normalize(pkgPath string) (string, error) {
	if hasSuffixFold(pkgPath, NormalizedExtension) {
		if _, err := os.Stat(pkgPath); err != nil {
			return "", notFound(pkgPath, err)
		}
		return pkgPath, nil
	}

	target := pkgPath + NormalizedExtension
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	if err := os.Rename(pkgPath, target); err != nil {
		return "", notFound(pkgPath, err)
	}
	return target, nil
}

// Extract writes the named entries below targetDir. Every entry is checked
// before anything is written, so a missing entry leaves targetDir untouched.
// Existing files are overwritten, which makes repeated calls idempotent.
func (a *Archive) Extract(archivePath, targetDir string, entries []string) error {
	zr, err := openReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	selected := make([]*zip.File, 0, len(entries))
	for _, name := range entries {
		f, ok := files[name]
		if !ok {
			return &pbidoc.EntryNotFoundError{Archive: archivePath, Entry: name}
		}
		selected = append(selected, f)
	}

	for _, f := range selected {
		if err := extractFile(f, targetDir); err != nil {
			return err
		}
	}
	return nil
}

// openReader opens a zip container. Insecure entry names are not fatal
// here; Extract rejects them individually through entryPath.
func openReader(archivePath string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, notFound(archivePath, err)
	}
	return zr, nil
}

func extractFile(f *zip.File, targetDir string) error {
	dest, err := entryPath(targetDir, f.Name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return out.Close()
}

// entryPath resolves an entry name below targetDir, rejecting names that
// would escape it.
func entryPath(targetDir, name string) (string, error) {
	dest := filepath.Join(targetDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(targetDir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", pbidoc.Errorf(pbidoc.EINVALID, "entry %q escapes target directory", name)
	}
	return dest, nil
}

// Checksum returns the xxHash64 of the archive as 16 hex digits.
func (a *Archive) Checksum(archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", notFound(archivePath, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing package: %w", err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Parts lists the archive entries with the content types declared in
// [Content_Types].xml. Entries without a declaration have an empty type.
func (a *Archive) Parts(archivePath string) ([]pbidoc.Part, error) {
	zr, err := openReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	types := newContentTypes()
	for _, f := range zr.File {
		if f.Name != contentTypesEntry {
			continue
		}
		if err := types.load(f); err != nil {
			return nil, err
		}
	}

	parts := make([]pbidoc.Part, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		parts = append(parts, pbidoc.Part{
			Name:        f.Name,
			ContentType: types.lookup(f.Name),
			Size:        f.UncompressedSize64,
		})
	}
	return parts, nil
}

// contentTypes holds the Default (by extension) and Override (by part name)
// declarations of an Open Packaging Conventions content types part.
type contentTypes struct {
	defaults  map[string]string
	overrides map[string]string
}

func newContentTypes() *contentTypes {
	return &contentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
}

func (c *contentTypes) load(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", contentTypesEntry, err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return pbidoc.Errorf(pbidoc.EINVALID, "parsing %s: %v", contentTypesEntry, err)
	}

	root := doc.SelectElement("Types")
	if root == nil {
		return nil
	}
	for _, el := range root.SelectElements("Default") {
		ext := strings.ToLower(el.SelectAttrValue("Extension", ""))
		c.defaults[ext] = el.SelectAttrValue("ContentType", "")
	}
	for _, el := range root.SelectElements("Override") {
		c.overrides[el.SelectAttrValue("PartName", "")] = el.SelectAttrValue("ContentType", "")
	}
	return nil
}

func (c *contentTypes) lookup(name string) string {
	if ct, ok := c.overrides["/"+name]; ok {
		return ct
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	return c.defaults[ext]
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// notFound maps missing files to ENOTFOUND and wraps anything else.
func notFound(path string, err error) error {
	if os.IsNotExist(err) {
		return pbidoc.Errorf(pbidoc.ENOTFOUND, "package %s not found", path)
	}
	return fmt.Errorf("accessing package %s: %w", path, err)
}
