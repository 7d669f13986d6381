package recipe

import (
	"reflect"
	"testing"

	"github.com/use-agent/ladle/config"
)

func testExtractConfig() config.ExtractConfig {
	return config.ExtractConfig{
		ClassNames:   []string{"wprm-recipe-ingredient", "recipe-ingredient", "ingredient"},
		UnitTokens:   []string{"cup", "tsp", "tbsp", "oz", "gram", "ml"},
		StopPhrases:  []string{"cook time", "prep time", "directions"},
		DefaultTitle: "Recipe",
	}
}

func TestExtract_JSONLDRecipe(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@type": "Recipe", "name": "Banana Bread",
		 "recipeIngredient": ["3 ripe bananas", "2 cups flour", "1 tsp baking soda"]}
		</script>
	</head><body><h1>Ignored</h1></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if ext.Title != "Banana Bread" {
		t.Errorf("title = %q, want %q", ext.Title, "Banana Bread")
	}
	if ext.Source != SourceJSONLD {
		t.Errorf("source = %q, want %q", ext.Source, SourceJSONLD)
	}
	// JSON-LD results must keep the source order, unsorted.
	want := []string{"3 ripe bananas", "2 cups flour", "1 tsp baking soda"}
	if !reflect.DeepEqual(ext.Ingredients, want) {
		t.Errorf("ingredients = %v, want %v", ext.Ingredients, want)
	}
}

func TestExtract_JSONLDGraph(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@context": "https://schema.org", "@graph": [
			{"@type": "WebSite", "name": "Some Blog"},
			{"@type": "Recipe", "name": "Graph Soup",
			 "recipeIngredient": ["1 cup stock", "2 carrots, diced"]},
			{"@type": "BreadcrumbList"}
		]}
		</script>
	</head><body></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Title != "Graph Soup" {
		t.Errorf("title = %q, want %q", ext.Title, "Graph Soup")
	}
	if len(ext.Ingredients) != 2 {
		t.Errorf("got %d ingredients, want 2", len(ext.Ingredients))
	}
}

func TestExtract_JSONLDTypeArray(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@type": ["Recipe", "NewsArticle"], "name": "Typed Twice",
		 "recipeIngredient": ["1 tbsp olive oil"]}
		</script>
	</head><body></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Source != SourceJSONLD {
		t.Errorf("source = %q, want %q", ext.Source, SourceJSONLD)
	}
}

func TestExtract_MalformedBlockSkipped(t *testing.T) {
	// A broken block must not abort the scan; the valid one after it wins.
	html := `<html><head>
		<script type="application/ld+json">{not valid json</script>
		<script type="application/ld+json">
		{"@type": "Recipe", "name": "Second Block",
		 "recipeIngredient": ["4 oz butter"]}
		</script>
	</head><body></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Title != "Second Block" {
		t.Errorf("title = %q, want %q", ext.Title, "Second Block")
	}
}

func TestExtract_FirstMatchWins(t *testing.T) {
	// Once a block with ingredients matched, later blocks are not consulted.
	html := `<html><head>
		<script type="application/ld+json">
		{"@type": "Recipe", "name": "First", "recipeIngredient": ["1 cup rice"]}
		</script>
		<script type="application/ld+json">
		{"@type": "Recipe", "name": "Second", "recipeIngredient": ["2 cups beans"]}
		</script>
	</head><body></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Title != "First" {
		t.Errorf("title = %q, want %q", ext.Title, "First")
	}
}

func TestExtract_EmptyIngredientListSkipped(t *testing.T) {
	// A Recipe with no ingredients is not a match; the next block is tried.
	html := `<html><head>
		<script type="application/ld+json">
		{"@type": "Recipe", "name": "Empty", "recipeIngredient": []}
		</script>
		<script type="application/ld+json">
		[{"@type": "Recipe", "name": "Listed", "recipeIngredient": ["1 gram saffron", "2 cups water"]}]
		</script>
	</head><body></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Title != "Listed" {
		t.Errorf("title = %q, want %q", ext.Title, "Listed")
	}
}

func TestExtract_JSONLDNameMissingFallsBackToH1(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@type": "Recipe", "recipeIngredient": ["1 ml vanilla"]}
		</script>
	</head><body><h1> Headline Title </h1></body></html>`

	ext, err := NewExtractor(testExtractConfig()).Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Title != "Headline Title" {
		t.Errorf("title = %q, want %q", ext.Title, "Headline Title")
	}
}
