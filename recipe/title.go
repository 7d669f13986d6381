package recipe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fallbackTitle picks a title when JSON-LD provided none: the first h1 with
// text, then the document <title>, then the configured placeholder.
func (e *Extractor) fallbackTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return e.cfg.DefaultTitle
}
