package render

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// NewMarkdown returns the converter for final output blocks: CommonMark
// (headings, lists, fenced code, block quotes, rules) plus GFM tables.
// Raw HTML in the source is omitted.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.Table),
	)
}

// Markdown converts src to HTML. If conversion fails the raw text is shown
// verbatim in a <pre> block.
func Markdown(md goldmark.Markdown, src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		slog.Debug("Markdown conversion failed, showing raw text", "error", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>") //nolint:gosec // escaped above
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark omits raw HTML by default
}
