package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/ladle/cache"
	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/models"
	"github.com/use-agent/ladle/notify"
	"github.com/use-agent/ladle/recipe"
	"github.com/use-agent/ladle/shortcut"
)

// Clip returns a handler for POST /api/v1/clip.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (opt-in via max_age).
//  3. Pipeline.Run → title + ingredients     (records fetch_ms, extract_ms)
//  4. Renderer.PageMarkdown for note_format "page".
//  5. Assemble note + shortcut link, fill Timing, return 200.
//  6. Cache store + webhook notification.
func Clip(p *recipe.Pipeline, rend *recipe.Renderer, cc *cache.Cache, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.ClipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ClipResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		// ── 2. Cache lookup ─────────────────────────────────────────
		cacheKey := cache.Key(req.URL, req.NoteFormat, req.CSSSelector)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				cached.CacheStatus = "hit"
				cached.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		// ── 3. Run the extraction pipeline ──────────────────────────
		outcome, err := p.Run(c.Request.Context(), req.URL,
			time.Duration(req.Timeout)*time.Second, req.CSSSelector)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}

		// ── 4. Optional page Markdown for the note body ─────────────
		var pageMD string
		if req.NoteFormat == "page" {
			pageMD, err = rend.PageMarkdown(outcome.RawHTML, req.URL)
			if err != nil {
				// The ingredients are already in hand; a Markdown failure
				// downgrades the note rather than failing the clip.
				slog.Warn("page markdown failed, using ingredients-only note",
					"url", req.URL, "error", err,
				)
				pageMD = ""
			}
		}

		// ── 5. Assemble note, link, and response ────────────────────
		note := shortcut.Note(outcome.Ingredients, pageMD)
		resp := &models.ClipResponse{
			Success:     true,
			Title:       outcome.Title,
			Ingredients: outcome.Ingredients,
			Note:        note,
			ShortcutURL: shortcut.Link(cfg.Shortcut, note),
			Source:      outcome.Source,
			StatusCode:  outcome.StatusCode,
			Timing: models.TimingInfo{
				TotalMs:   time.Since(totalStart).Milliseconds(),
				FetchMs:   outcome.FetchMs,
				ExtractMs: outcome.ExtractMs,
			},
		}

		// ── 6. Cache store + webhook ────────────────────────────────
		if cc != nil && req.MaxAge > 0 {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}
		if cfg.Webhook.URL != "" {
			notify.DeliverAsync(cfg.Webhook.URL, cfg.Webhook.Secret, &notify.Event{
				Type:        "clip.completed",
				URL:         req.URL,
				Title:       outcome.Title,
				Ingredients: outcome.Ingredients,
				Source:      outcome.Source,
				Timestamp:   time.Now().Unix(),
			})
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps a ClipError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	clipErr, ok := err.(*models.ClipError)
	if !ok {
		clipErr = models.NewClipError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(clipErr), models.ClipResponse{
		Success: false,
		Error:   clipErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ClipError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeFetch:
		return http.StatusBadGateway // 502
	case models.ErrCodeNotFound:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
