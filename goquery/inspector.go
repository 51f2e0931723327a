// Package goquery reads rendered HTML reports back into summaries.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pbidoc"
)

// Ensure Inspector implements pbidoc.Inspector at compile time.
var _ pbidoc.Inspector = (*Inspector)(nil)

// Inspector parses reports produced by the built-in HTML template.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect parses a rendered report. A document is accepted when it has a
// top-level heading and at least one dataset section.
func (i *Inspector) Inspect(r io.Reader) (*pbidoc.ReportSummary, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pbidoc.Errorf(pbidoc.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	sections := doc.Find("section.dataset")
	if title == "" || sections.Length() == 0 {
		return nil, pbidoc.Errorf(pbidoc.EINVALID, "not a pbidoc report")
	}

	summary := &pbidoc.ReportSummary{
		Title:       title,
		ReportName:  labelValue(doc.Find("#report-name")),
		GeneratedOn: labelValue(doc.Find("#generated-on")),
		Sections:    make([]pbidoc.SectionSummary, 0, sections.Length()),
	}

	sections.Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		var headers []string
		sel.Find("thead th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(th.Text()))
		})
		summary.Sections = append(summary.Sections, pbidoc.SectionSummary{
			ID:      id,
			Title:   strings.TrimSpace(sel.Find("h2").First().Text()),
			Headers: headers,
			Rows:    sel.Find("tbody tr").Length(),
		})
	})

	return summary, nil
}

// labelValue returns the text of a "<strong>Label:</strong> value" paragraph
// without its label.
func labelValue(sel *goquery.Selection) string {
	text := sel.First().Text()
	label := sel.First().Find("strong").Text()
	return strings.TrimSpace(strings.TrimPrefix(text, label))
}
