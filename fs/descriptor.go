// Package fs provides file-based implementations of pbidoc services:
// descriptor loading and non-destructive report writing.
package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pbidoc"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Ensure DescriptorLoader implements pbidoc.DescriptorLoader at compile time.
var _ pbidoc.DescriptorLoader = (*DescriptorLoader)(nil)

// DescriptorLoader reads descriptor files written by Power BI.
type DescriptorLoader struct {
	encoding pbidoc.Encoding
}

// NewDescriptorLoader creates a DescriptorLoader for the given encoding.
// An empty encoding selects pbidoc.EncodingUTF16LE.
func NewDescriptorLoader(enc pbidoc.Encoding) *DescriptorLoader {
	if enc == "" {
		enc = pbidoc.EncodingUTF16LE
	}
	return &DescriptorLoader{encoding: enc}
}

// LoadDescriptor reads, decodes and validates the descriptor at path.
// On any failure it returns pbidoc.EmptyDescriptor and the cause.
func (l *DescriptorLoader) LoadDescriptor(path string) (pbidoc.Descriptor, error) {
	data, err := l.read(path)
	if err != nil {
		return pbidoc.EmptyDescriptor, err
	}

	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return pbidoc.EmptyDescriptor, pbidoc.Errorf(pbidoc.EINVALID, "descriptor %s is not valid JSON", path)
	}
	return pbidoc.Descriptor(data), nil
}

func (l *DescriptorLoader) read(path string) ([]byte, error) {
	dec, err := decoder(l.encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pbidoc.Errorf(pbidoc.ENOTFOUND, "descriptor %s not found", path)
		}
		return nil, fmt.Errorf("opening descriptor: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, dec.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decoding descriptor %s as %s: %w", path, l.encoding, err)
	}
	return data, nil
}

// decoder maps an encoding name to its x/text implementation. A byte order
// mark, when present, takes precedence and is stripped.
func decoder(enc pbidoc.Encoding) (encoding.Encoding, error) {
	switch enc {
	case pbidoc.EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case pbidoc.EncodingUTF8:
		return unicode.UTF8BOM, nil
	default:
		return nil, pbidoc.Errorf(pbidoc.EINVALID, "unsupported encoding %q", enc)
	}
}
