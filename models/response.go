package models

// ClipResponse is the response for POST /api/v1/clip.
type ClipResponse struct {
	// Success indicates whether the clip completed without errors.
	Success bool `json:"success"`

	// Title is the recipe title (JSON-LD name, first h1, <title>, or the
	// configured placeholder, in that order).
	Title string `json:"title,omitempty"`

	// Ingredients are the extracted ingredient lines. JSON-LD results keep
	// the page order; heuristic results are de-duplicated and sorted.
	Ingredients []string `json:"ingredients,omitempty"`

	// Note is the formatted note body handed to the shortcut: one "- "
	// bullet per ingredient line, newline separated, optionally followed
	// by the page rendered as Markdown.
	Note string `json:"note,omitempty"`

	// ShortcutURL is the deep link that pipes Note into the configured
	// Shortcuts automation.
	ShortcutURL string `json:"shortcut_url,omitempty"`

	// Source reports which extractor produced the ingredients:
	// "json-ld" or "heuristic".
	Source string `json:"source,omitempty"`

	// StatusCode is the HTTP status returned by the recipe page.
	StatusCode int `json:"status_code,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching the recipe page.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the time spent parsing and extracting ingredients.
	ExtractMs int64 `json:"extract_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
