package recipe

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// heuristicIngredients approximates ingredient extraction when the page
// carries no usable JSON-LD. It walks the configured class-substring table in
// order and, for each substring, collects li/span/div elements whose class
// attribute contains it (case-insensitive). The first substring that yields
// any surviving candidate wins; results from different substrings are never
// merged, which avoids duplicate lines from nested matching elements.
//
// The final list is de-duplicated by exact text and sorted lexicographically.
// Sorting discards the page's ingredient order; that trade-off keeps the
// de-duplication deterministic.
func (e *Extractor) heuristicIngredients(doc *goquery.Document) []string {
	for _, class := range e.cfg.ClassNames {
		candidates := e.collectByClass(doc, strings.ToLower(class))
		if len(candidates) > 0 {
			return dedupeSorted(candidates)
		}
	}
	return nil
}

// collectByClass gathers the text of elements matching one class substring,
// keeping only lines that plausibly read as an ingredient.
func (e *Extractor) collectByClass(doc *goquery.Document, class string) []string {
	var lines []string
	doc.Find("li, span, div").Each(func(_ int, s *goquery.Selection) {
		attr, ok := s.Attr("class")
		if !ok || !strings.Contains(strings.ToLower(attr), class) {
			return
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if e.looksLikeIngredient(text) {
			lines = append(lines, text)
		}
	})
	return lines
}

// looksLikeIngredient filters out navigation and label text that happens to
// share an ingredient class: a real ingredient line has more than one word,
// mentions a measurement unit, and is not an instructional heading.
func (e *Extractor) looksLikeIngredient(text string) bool {
	if len(strings.Fields(text)) <= 1 {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range e.cfg.StopPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return false
		}
	}
	for _, unit := range e.cfg.UnitTokens {
		if strings.Contains(lower, strings.ToLower(unit)) {
			return true
		}
	}
	return false
}

// dedupeSorted removes exact duplicates and sorts the survivors.
func dedupeSorted(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	unique := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		unique = append(unique, line)
	}
	sort.Strings(unique)
	return unique
}
