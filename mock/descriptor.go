package mock

import "github.com/fwojciec/pbidoc"

var _ pbidoc.DescriptorLoader = (*DescriptorLoader)(nil)

// DescriptorLoader is a mock implementation of pbidoc.DescriptorLoader.
type DescriptorLoader struct {
	LoadDescriptorFn func(path string) (pbidoc.Descriptor, error)
}

func (l *DescriptorLoader) LoadDescriptor(path string) (pbidoc.Descriptor, error) {
	return l.LoadDescriptorFn(path)
}

var _ pbidoc.LayoutExtractor = (*LayoutExtractor)(nil)

// LayoutExtractor is a mock implementation of pbidoc.LayoutExtractor.
type LayoutExtractor struct {
	ExtractPagesFn   func(layout pbidoc.Descriptor) []pbidoc.PageRecord
	ExtractVisualsFn func(layout pbidoc.Descriptor) ([]pbidoc.VisualRecord, []error)
}

func (e *LayoutExtractor) ExtractPages(layout pbidoc.Descriptor) []pbidoc.PageRecord {
	return e.ExtractPagesFn(layout)
}

func (e *LayoutExtractor) ExtractVisuals(layout pbidoc.Descriptor) ([]pbidoc.VisualRecord, []error) {
	return e.ExtractVisualsFn(layout)
}

var _ pbidoc.SchemaExtractor = (*SchemaExtractor)(nil)

// SchemaExtractor is a mock implementation of pbidoc.SchemaExtractor.
type SchemaExtractor struct {
	ExtractColumnsFn func(model pbidoc.Descriptor) []pbidoc.ColumnRecord
}

func (e *SchemaExtractor) ExtractColumns(model pbidoc.Descriptor) []pbidoc.ColumnRecord {
	return e.ExtractColumnsFn(model)
}
