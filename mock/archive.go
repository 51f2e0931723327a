package mock

import "github.com/fwojciec/pbidoc"

var _ pbidoc.Archive = (*Archive)(nil)

// Archive is a mock implementation of pbidoc.Archive.
type Archive struct {
	FindPackagesFn func(dir string) ([]string, error)
	NormalizeFn    func(path string) (string, error)
	ExtractFn      func(archivePath, targetDir string, entries []string) error
	ChecksumFn     func(path string) (string, error)
	PartsFn        func(archivePath string) ([]pbidoc.Part, error)
}

func (a *Archive) FindPackages(dir string) ([]string, error) {
	return a.FindPackagesFn(dir)
}

func (a *Archive) Normalize(path string) (string, error) {
	return a.NormalizeFn(path)
}

func (a *Archive) Extract(archivePath, targetDir string, entries []string) error {
	return a.ExtractFn(archivePath, targetDir, entries)
}

func (a *Archive) Checksum(path string) (string, error) {
	return a.ChecksumFn(path)
}

func (a *Archive) Parts(archivePath string) ([]pbidoc.Part, error) {
	return a.PartsFn(archivePath)
}
