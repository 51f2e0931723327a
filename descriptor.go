package pbidoc

// Encoding names the text encoding of a descriptor file.
type Encoding string

// Supported descriptor encodings.
const (
	EncodingUTF16LE Encoding = "utf-16-le"
	EncodingUTF8    Encoding = "utf-8"
)

// Valid reports whether e is a supported encoding.
func (e Encoding) Valid() bool {
	return e == EncodingUTF16LE || e == EncodingUTF8
}

// Descriptor is the UTF-8 JSON text of a package descriptor.
type Descriptor []byte

// EmptyDescriptor is the empty JSON object used when a descriptor cannot be loaded.
var EmptyDescriptor = Descriptor("{}")

// DescriptorLoader reads descriptor files.
type DescriptorLoader interface {
	// LoadDescriptor reads and decodes the descriptor at path.
	// It always returns a usable Descriptor: on any failure it returns
	// EmptyDescriptor along with the error that caused the fallback.
	LoadDescriptor(path string) (Descriptor, error)
}

// LayoutExtractor flattens a Report/Layout descriptor.
type LayoutExtractor interface {
	// ExtractPages returns one record per report section.
	ExtractPages(layout Descriptor) []PageRecord

	// ExtractVisuals returns one record per visual container. Visual
	// configs that fail to parse produce zero-valued records and are
	// reported in the returned error slice.
	ExtractVisuals(layout Descriptor) ([]VisualRecord, []error)
}

// SchemaExtractor flattens a DataModelSchema descriptor.
type SchemaExtractor interface {
	// ExtractColumns returns one record per column of every documented table.
	ExtractColumns(model Descriptor) []ColumnRecord
}
