package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/fetcher"
	"github.com/use-agent/ladle/models"
)

func testPipeline() *Pipeline {
	f := fetcher.New(config.FetchConfig{
		Timeout:      5 * time.Second,
		MaxTimeout:   10 * time.Second,
		UserAgent:    "ladle-test-agent",
		MaxBodyBytes: 1024 * 1024,
	})
	return NewPipeline(f, NewExtractor(testExtractConfig()))
}

func TestPipeline_EndToEnd(t *testing.T) {
	page := `<html><head>
		<script type="application/ld+json">
		{"@type": "Recipe", "name": "Pipeline Pie", "recipeIngredient": ["1 cup sugar"]}
		</script>
	</head><body></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	outcome, err := testPipeline().Run(context.Background(), srv.URL, 0, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Title != "Pipeline Pie" {
		t.Errorf("title = %q, want %q", outcome.Title, "Pipeline Pie")
	}
	if outcome.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", outcome.StatusCode)
	}
	if outcome.RawHTML != page {
		t.Error("outcome should carry the fetched HTML")
	}
}

func TestPipeline_FetchErrorShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testPipeline().Run(context.Background(), srv.URL, 0, "")
	clipErr, ok := err.(*models.ClipError)
	if !ok {
		t.Fatalf("expected *models.ClipError, got %T: %v", err, err)
	}
	if clipErr.Code != models.ErrCodeFetch {
		t.Errorf("code = %q, want %q", clipErr.Code, models.ErrCodeFetch)
	}
}

func TestPipeline_SelectorScoping(t *testing.T) {
	page := `<html><body>
		<div class="sidebar"><li class="ingredient">9 cups sidebar noise</li></div>
		<div id="card"><li class="ingredient">2 cups flour</li></div>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	outcome, err := testPipeline().Run(context.Background(), srv.URL, 0, "#card")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(outcome.Ingredients) != 1 || outcome.Ingredients[0] != "2 cups flour" {
		t.Errorf("ingredients = %v, want [2 cups flour]", outcome.Ingredients)
	}
}

func TestPipeline_InvalidSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, err := testPipeline().Run(context.Background(), srv.URL, 0, "[[[")
	clipErr, ok := err.(*models.ClipError)
	if !ok {
		t.Fatalf("expected *models.ClipError, got %T: %v", err, err)
	}
	if clipErr.Code != models.ErrCodeInvalidInput {
		t.Errorf("code = %q, want %q", clipErr.Code, models.ErrCodeInvalidInput)
	}
}
