package jsonparser

import (
	"fmt"

	"github.com/fwojciec/pbidoc"
)

// UnnamedPage labels visuals whose section has no display name.
const UnnamedPage = "Unnamed page"

// Ensure LayoutExtractor implements pbidoc.LayoutExtractor at compile time.
var _ pbidoc.LayoutExtractor = (*LayoutExtractor)(nil)

// LayoutExtractor flattens Report/Layout descriptors.
type LayoutExtractor struct{}

// NewLayoutExtractor creates a new LayoutExtractor.
func NewLayoutExtractor() *LayoutExtractor {
	return &LayoutExtractor{}
}

// ExtractPages returns one record per section, in document order.
func (e *LayoutExtractor) ExtractPages(layout pbidoc.Descriptor) []pbidoc.PageRecord {
	sections := ParseDescriptor(layout).Get("sections").Items()

	pages := make([]pbidoc.PageRecord, 0, len(sections))
	for _, section := range sections {
		pages = append(pages, pbidoc.PageRecord{
			PageName: section.Get("displayName").String(),
		})
	}
	return pages
}

// ExtractVisuals returns one record per visual container, in document order.
// A container whose config cannot be parsed still yields a record, with
// zero-valued fields, and its parse error is returned alongside.
func (e *LayoutExtractor) ExtractVisuals(layout pbidoc.Descriptor) ([]pbidoc.VisualRecord, []error) {
	var (
		visuals []pbidoc.VisualRecord
		errs    []error
	)

	for _, section := range ParseDescriptor(layout).Get("sections").Items() {
		pageName := section.Get("displayName").StringOr(UnnamedPage)

		for i, container := range section.Get("visualContainers").Items() {
			config, err := ParseVisualConfig(container.Get("config"))
			if err != nil {
				errs = append(errs, fmt.Errorf("page %q visual %d: %w", pageName, i, err))
			}
			visuals = append(visuals, visualRecord(pageName, config))
		}
	}

	if visuals == nil {
		visuals = []pbidoc.VisualRecord{}
	}
	return visuals, errs
}

// visualRecord flattens a parsed visual config. Only the first entry of
// "layouts" is used for the position.
func visualRecord(pageName string, config Node) pbidoc.VisualRecord {
	position := config.Get("layouts").Index(0).Get("position")
	single := config.Get("singleVisual")

	return pbidoc.VisualRecord{
		PageName:     pageName,
		X:            position.Get("x").Int(),
		Y:            position.Get("y").Int(),
		Height:       position.Get("height").Int(),
		Width:        position.Get("width").Int(),
		VisualType:   single.Get("visualType").String(),
		MeasuresUsed: queryRefs(single.Get("projections")),
	}
}

// queryRefs collects the queryRef of every item of every projection role in
// document order. Role names are discarded and duplicates are kept.
func queryRefs(projections Node) pbidoc.Measures {
	var refs pbidoc.Measures
	for _, role := range projections.Entries() {
		for _, item := range role.Value.Items() {
			if ref := item.Get("queryRef").String(); ref != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
