package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/models"
	"github.com/use-agent/ladle/recipe"
	"github.com/use-agent/ladle/shortcut"
)

// Index returns a handler for GET /: the paste-a-URL form.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{})
	}
}

// ClipForm returns a handler for POST /: runs the pipeline on the submitted
// URL and redirects to the result page. Errors re-render the form with a
// human-readable message instead of a JSON body.
func ClipForm(p *recipe.Pipeline, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeURL := strings.TrimSpace(c.PostForm("recipe_url"))
		if recipeURL == "" {
			c.HTML(http.StatusOK, "index.html", gin.H{
				"Error": "Please paste a recipe URL.",
			})
			return
		}

		outcome, err := p.Run(c.Request.Context(), recipeURL, 0, "")
		if err != nil {
			var clipErr *models.ClipError
			message := "Something went wrong while clipping the recipe."
			if errors.As(err, &clipErr) {
				message = clipErr.Message
			}
			c.HTML(http.StatusOK, "index.html", gin.H{
				"Error": message,
				"URL":   recipeURL,
			})
			return
		}

		note := shortcut.Note(outcome.Ingredients, "")
		q := url.Values{}
		q.Set("title", outcome.Title)
		q.Set("note", note)
		q.Set("link", shortcut.Link(cfg.Shortcut, note))
		c.Redirect(http.StatusSeeOther, "/result?"+q.Encode())
	}
}

// Result returns a handler for GET /result: shows the extracted list and the
// tap-to-save shortcut link.
func Result() gin.HandlerFunc {
	return func(c *gin.Context) {
		note := c.Query("note")
		var lines []string
		if note != "" {
			for _, line := range strings.Split(note, "\n") {
				lines = append(lines, strings.TrimPrefix(line, "- "))
			}
		}
		c.HTML(http.StatusOK, "result.html", gin.H{
			"Title":        c.DefaultQuery("title", "Recipe"),
			"Lines":        lines,
			"Note":         note,
			"ShortcutLink": c.DefaultQuery("link", "#"),
		})
	}
}
