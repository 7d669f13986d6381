package recipe

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/models"
)

// Extraction source values reported in API responses.
const (
	SourceJSONLD    = "json-ld"
	SourceHeuristic = "heuristic"
)

// Extraction is the outcome of a successful ingredient extraction.
type Extraction struct {
	// Title is the recipe title, never empty (placeholder at worst).
	Title string

	// Ingredients is non-empty on success. JSON-LD results keep source
	// order; heuristic results are de-duplicated and sorted.
	Ingredients []string

	// Source is SourceJSONLD or SourceHeuristic.
	Source string
}

// Extractor recovers a recipe title and ingredient list from arbitrary HTML.
// JSON-LD structured data is authoritative and tried first; the class-name
// heuristic is a best-effort substitute when no such metadata exists.
// Safe for concurrent use: all state is read-only config.
type Extractor struct {
	cfg config.ExtractConfig
}

// NewExtractor creates an Extractor from config.
func NewExtractor(cfg config.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract parses rawHTML once and runs the two extraction strategies in
// order. It never panics past its boundary: any parsing fault is converted
// into a *models.ClipError, so the caller always gets (Extraction, nil) or
// (nil, error).
func (e *Extractor) Extract(rawHTML string) (ext *Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			ext = nil
			err = models.NewClipError(models.ErrCodeInternal,
				"unexpected failure while parsing the page",
				fmt.Errorf("panic: %v", r))
		}
	}()

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if docErr != nil {
		return nil, models.NewClipError(models.ErrCodeInternal,
			"could not parse the page HTML", docErr)
	}

	if sr := findStructuredRecipe(doc); sr != nil {
		title := sr.Name
		if title == "" {
			title = e.fallbackTitle(doc)
		}
		return &Extraction{
			Title:       title,
			Ingredients: sr.Ingredients,
			Source:      SourceJSONLD,
		}, nil
	}

	if lines := e.heuristicIngredients(doc); len(lines) > 0 {
		return &Extraction{
			Title:       e.fallbackTitle(doc),
			Ingredients: lines,
			Source:      SourceHeuristic,
		}, nil
	}

	return nil, models.NewClipError(models.ErrCodeNotFound,
		"could not find ingredients on this page", nil)
}
