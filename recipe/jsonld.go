package recipe

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuredRecipe is a Recipe record recovered from JSON-LD metadata.
type structuredRecipe struct {
	Name        string
	Ingredients []string
}

// findStructuredRecipe scans every application/ld+json script block for a
// schema.org Recipe with a non-empty recipeIngredient array. The first such
// record wins and the scan stops; blocks that fail to decode are skipped
// (malformed JSON-LD is routine on third-party pages).
func findStructuredRecipe(doc *goquery.Document) *structuredRecipe {
	var found *structuredRecipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // skip silently, keep scanning
		}

		// A block may hold a single object or a list of objects.
		candidates, ok := data.([]any)
		if !ok {
			candidates = []any{data}
		}

		for _, candidate := range candidates {
			obj, ok := candidate.(map[string]any)
			if !ok {
				continue
			}

			target := obj
			if !isRecipeType(obj["@type"]) {
				// Some sites bundle everything under one @graph node.
				target = recipeFromGraph(obj["@graph"])
				if target == nil {
					continue
				}
			}

			ingredients := stringSlice(target["recipeIngredient"])
			if len(ingredients) == 0 {
				continue
			}

			name, _ := target["name"].(string)
			found = &structuredRecipe{
				Name:        strings.TrimSpace(name),
				Ingredients: ingredients,
			}
			return false // first match wins
		}
		return true
	})

	return found
}

// isRecipeType reports whether a JSON-LD @type value declares a Recipe.
// @type may be a bare string or an array of strings.
func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// recipeFromGraph scans a @graph array for an entry typed Recipe.
func recipeFromGraph(v any) map[string]any {
	graph, ok := v.([]any)
	if !ok {
		return nil
	}
	for _, entry := range graph {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if isRecipeType(obj["@type"]) {
			return obj
		}
	}
	return nil
}

// stringSlice coerces a decoded JSON array into its string elements,
// preserving order. Non-string elements are dropped.
func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
