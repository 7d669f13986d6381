package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Extract   ExtractConfig
	Shortcut  ShortcutConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the outbound page fetch.
type FetchConfig struct {
	// Timeout is the deadline for the whole GET, connect included.
	Timeout time.Duration // default: 10s

	// MaxTimeout is the maximum timeout a client may request.
	MaxTimeout time.Duration // default: 60s

	// UserAgent is sent with every request. Recipe sites tend to reject
	// anything that does not look like a real browser.
	UserAgent string

	// MaxBodyBytes caps how much of the response body is read.
	MaxBodyBytes int64 // default: 10 MB

	// DefaultProxy is an optional proxy URL for all outbound requests.
	DefaultProxy string
}

// ExtractConfig controls the ingredient extraction heuristics.
type ExtractConfig struct {
	// ClassNames is the ordered list of class-attribute substrings scanned
	// by the heuristic extractor, most site-specific first. The first
	// substring that yields any surviving candidate wins.
	ClassNames []string

	// UnitTokens is the measurement vocabulary a candidate line must
	// contain to count as an ingredient.
	UnitTokens []string

	// StopPhrases marks lines that carry an ingredient class but are
	// actually instructional text.
	StopPhrases []string

	// DefaultTitle is the placeholder used when the page yields no title.
	DefaultTitle string // default: "Recipe"
}

// ShortcutConfig controls the notes deep link.
type ShortcutConfig struct {
	// Name is the pre-existing Shortcuts automation the link invokes.
	Name string // default: "Add to Notes"

	// Scheme is the URL scheme of the automation runner.
	Scheme string // default: "shortcuts"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication for /api/v1 routes.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the clip response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// WebhookConfig controls the clip.completed notification.
type WebhookConfig struct {
	// URL is the endpoint notified after each successful clip.
	// Empty disables webhooks.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// defaultClassNames is ordered from known recipe-plugin markup down to the
// bare word "ingredient". Order matters: the heuristic extractor stops at
// the first substring that matches anything.
var defaultClassNames = []string{
	"wprm-recipe-ingredient",
	"tasty-recipes-ingredients",
	"mv-create-ingredients",
	"ingredients-item",
	"recipe-ingredient",
	"ingredient",
}

var defaultUnitTokens = []string{
	"cup", "tsp", "tbsp", "teaspoon", "tablespoon",
	"oz", "ounce", "lb", "pound", "gram", "kg", "ml", "liter", "litre",
	"clove", "pinch", "dash", "stick", "slice", "can", "bunch",
}

var defaultStopPhrases = []string{
	"cook time", "prep time", "total time", "directions", "instructions",
	"nutrition", "servings",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("LADLE_HOST", "0.0.0.0"),
			Port: envIntOr("LADLE_PORT", 8080),
			Mode: envOr("LADLE_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("LADLE_FETCH_TIMEOUT", 10*time.Second),
			MaxTimeout:   envDurationOr("LADLE_MAX_TIMEOUT", 60*time.Second),
			UserAgent:    envOr("LADLE_USER_AGENT", chromeUA),
			MaxBodyBytes: int64(envIntOr("LADLE_MAX_BODY_BYTES", 10*1024*1024)),
			DefaultProxy: os.Getenv("LADLE_PROXY"),
		},
		Extract: ExtractConfig{
			ClassNames:   envSliceOr("LADLE_CLASS_NAMES", defaultClassNames),
			UnitTokens:   envSliceOr("LADLE_UNIT_TOKENS", defaultUnitTokens),
			StopPhrases:  envSliceOr("LADLE_STOP_PHRASES", defaultStopPhrases),
			DefaultTitle: envOr("LADLE_DEFAULT_TITLE", "Recipe"),
		},
		Shortcut: ShortcutConfig{
			Name:   envOr("LADLE_SHORTCUT_NAME", "Add to Notes"),
			Scheme: envOr("LADLE_SHORTCUT_SCHEME", "shortcuts"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("LADLE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("LADLE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("LADLE_RATE_RPS", 5.0),
			Burst:             envIntOr("LADLE_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("LADLE_CACHE_MAX_ENTRIES", 1000),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("LADLE_WEBHOOK_URL"),
			Secret: os.Getenv("LADLE_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("LADLE_LOG_LEVEL", "info"),
			Format: envOr("LADLE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
