package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/models"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:      5 * time.Second,
		MaxTimeout:   10 * time.Second,
		UserAgent:    "ladle-test-agent",
		MaxBodyBytes: 1024 * 1024,
	}
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "ladle-test-agent" {
			t.Errorf("User-Agent = %q, want %q", ua, "ladle-test-agent")
		}
		w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer srv.Close()

	result, err := New(testFetchConfig()).Fetch(context.Background(), srv.URL, 0)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", result.StatusCode)
	}
	if !strings.Contains(string(result.Body), "hi") {
		t.Errorf("body = %q, missing expected content", result.Body)
	}
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(testFetchConfig()).Fetch(context.Background(), srv.URL, 0)
	clipErr, ok := err.(*models.ClipError)
	if !ok {
		t.Fatalf("expected *models.ClipError, got %T: %v", err, err)
	}
	if clipErr.Code != models.ErrCodeFetch {
		t.Errorf("code = %q, want %q", clipErr.Code, models.ErrCodeFetch)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := New(testFetchConfig()).Fetch(context.Background(), srv.URL, 100*time.Millisecond)
	elapsed := time.Since(start)

	clipErr, ok := err.(*models.ClipError)
	if !ok {
		t.Fatalf("expected *models.ClipError, got %T: %v", err, err)
	}
	if clipErr.Code != models.ErrCodeTimeout {
		t.Errorf("code = %q, want %q", clipErr.Code, models.ErrCodeTimeout)
	}
	if elapsed > time.Second {
		t.Errorf("fetch took %s, should have timed out around 100ms", elapsed)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	// Grab a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	_, err := New(testFetchConfig()).Fetch(context.Background(), deadURL, 0)
	clipErr, ok := err.(*models.ClipError)
	if !ok {
		t.Fatalf("expected *models.ClipError, got %T: %v", err, err)
	}
	if clipErr.Code != models.ErrCodeFetch {
		t.Errorf("code = %q, want %q", clipErr.Code, models.ErrCodeFetch)
	}
}

func TestFetch_BodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 4096))
	}))
	defer srv.Close()

	cfg := testFetchConfig()
	cfg.MaxBodyBytes = 1024
	result, err := New(cfg).Fetch(context.Background(), srv.URL, 0)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.Body) != 1024 {
		t.Errorf("body length = %d, want cap of 1024", len(result.Body))
	}
}
