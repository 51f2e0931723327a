package pbidoc

// Archive entries holding the two descriptors of a template package.
const (
	EntryLayout = "Report/Layout"
	EntryModel  = "DataModelSchema"
)

// RequiredEntries lists the entries extracted from every package.
var RequiredEntries = []string{EntryLayout, EntryModel}

// PackageExtension is the file extension of a Power BI template package.
const PackageExtension = ".pbit"

// Part describes one entry of a package archive.
type Part struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        uint64 `json:"size"`
}

// Archive gives access to template packages on disk.
type Archive interface {
	// FindPackages returns the template packages in dir in alphabetical
	// order. Returns ENOTFOUND if dir contains no package.
	FindPackages(dir string) ([]string, error)

	// Normalize makes the package readable as a zip container and returns
	// the container path. Calling it again on the same package is a no-op.
	Normalize(path string) (string, error)

	// Extract copies the named entries into targetDir, preserving their
	// relative paths. Returns *EntryNotFoundError if an entry is missing.
	Extract(archivePath, targetDir string, entries []string) error

	// Checksum returns a hex digest of the archive content.
	Checksum(path string) (string, error)

	// Parts lists the archive entries with their declared content types.
	Parts(archivePath string) ([]Part, error)
}
