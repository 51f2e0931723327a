// Package htmltomarkdown renders pbidoc reports as Markdown by converting
// the output of an HTML renderer.
package htmltomarkdown

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pbidoc"
)

// Ensure Renderer implements pbidoc.Renderer at compile time.
var _ pbidoc.Renderer = (*Renderer)(nil)

// Renderer wraps html-to-markdown to turn an HTML report into Markdown.
type Renderer struct {
	html pbidoc.Renderer
	conv *converter.Converter
}

// NewRenderer creates a Renderer converting the output of html.
func NewRenderer(html pbidoc.Renderer) *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Renderer{html: html, conv: conv}
}

// Render writes the report as Markdown.
func (r *Renderer) Render(ctx context.Context, w io.Writer, report *pbidoc.Report) error {
	var buf bytes.Buffer
	if err := r.html.Render(ctx, &buf, report); err != nil {
		return err
	}
	md, err := r.Convert(buf.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}

// Convert transforms HTML content into Markdown.
func (r *Renderer) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pbidoc.Errorf(pbidoc.EINVALID, "empty HTML input")
	}
	return r.conv.ConvertString(html)
}

// Extension returns ".md".
func (r *Renderer) Extension() string {
	return ".md"
}
