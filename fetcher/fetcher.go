package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	tls2 "github.com/refraction-networking/utls"

	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/models"
)

// Result is a successful page fetch.
type Result struct {
	// Body is the raw HTML, capped at FetchConfig.MaxBodyBytes.
	Body []byte

	// StatusCode is the final HTTP status (always < 400 here).
	StatusCode int

	// FinalURL is the URL after following redirects.
	FinalURL string
}

// Fetcher performs HTTP requests with a Chrome TLS fingerprint (utls).
// Recipe sites sit behind CDNs that fingerprint TLS; the stock Go client
// gets blocked often enough that this is worth carrying.
type Fetcher struct {
	cfg config.FetchConfig
}

// New creates a Fetcher from config.
func New(cfg config.FetchConfig) *Fetcher {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 * 1024 * 1024
	}
	if cfg.MaxTimeout <= 0 {
		cfg.MaxTimeout = 60 * time.Second
	}
	return &Fetcher{cfg: cfg}
}

// Fetch retrieves the URL with a browser-like User-Agent within the given
// timeout (0 means the configured default; values above MaxTimeout are
// clamped). A 4xx/5xx status, timeout, DNS failure, or refused connection
// all surface as a *models.ClipError; the caller must not try to parse a
// failed fetch.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string, timeout time.Duration) (*Result, error) {
	if timeout <= 0 {
		timeout = f.cfg.Timeout
	}
	if timeout > f.cfg.MaxTimeout {
		timeout = f.cfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLSChrome(ctx, network, addr, f.cfg.DefaultProxy)
		},
	}
	if f.cfg.DefaultProxy != "" {
		proxyURL, err := url.Parse(f.cfg.DefaultProxy)
		if err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewClipError(models.ErrCodeInvalidInput,
			fmt.Sprintf("invalid URL %q", targetURL), err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.NewClipError(models.ErrCodeTimeout,
				fmt.Sprintf("fetch timed out after %s", timeout), err)
		}
		return nil, models.NewClipError(models.ErrCodeFetch,
			"could not reach the recipe page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, models.NewClipError(models.ErrCodeFetch,
			fmt.Sprintf("recipe page returned HTTP %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, models.NewClipError(models.ErrCodeFetch, "read body", err)
	}

	return &Result{
		Body:       body,
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr, proxy string) (net.Conn, error) {
	var rawConn net.Conn
	var err error

	dialer := &net.Dialer{}

	if proxy != "" {
		proxyURL, parseErr := url.Parse(proxy)
		if parseErr == nil && (proxyURL.Scheme == "socks5" || proxyURL.Scheme == "socks5h") {
			socksConn, socksErr := dialer.DialContext(ctx, "tcp", proxyURL.Host)
			if socksErr != nil {
				return nil, fmt.Errorf("socks5 dial: %w", socksErr)
			}
			rawConn = socksConn
		}
	}

	if rawConn == nil {
		rawConn, err = dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName:         host,
		InsecureSkipVerify: false,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
