package recipe

import (
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	readability "github.com/go-shiori/go-readability"
)

// Renderer converts a recipe page into Markdown for the "page" note format:
// readability isolates the recipe body (stripping nav, comments, ad blocks),
// then html-to-markdown renders it. The converter is created once and reused
// across requests (goroutine-safe).
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer initialises the Renderer with a pre-configured converter.
func NewRenderer() *Renderer {
	return &Renderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// PageMarkdown renders the page's main content as Markdown. Readability
// failures are not fatal: the raw HTML is converted instead, since a noisy
// note beats no note.
func (r *Renderer) PageMarkdown(rawHTML string, sourceURL string) (string, error) {
	content := rawHTML

	if parsedURL, err := nurl.Parse(sourceURL); err == nil {
		article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
		if err != nil || strings.TrimSpace(article.TextContent) == "" {
			slog.Warn("readability: extraction failed, converting raw HTML",
				"url", sourceURL, "error", err,
			)
		} else {
			content = article.Content
		}
	}

	md, err := r.conv.ConvertString(content, converter.WithDomain(sourceURL))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
