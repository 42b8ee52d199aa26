// Package datasource fetches a ticker's quote page and turns its news
// table into headline records. It covers three forward stages: the
// Fetcher, the table extractor and the row parser.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/seenimoa/tickersentiment/internal/config"
	"github.com/seenimoa/tickersentiment/internal/infra"
	"github.com/seenimoa/tickersentiment/pkg/models"
)

// --- Sentinel errors ---

// ErrEmptyUserAgent is returned when a Fetcher is built without a user agent.
// The quote site rejects such requests.
var ErrEmptyUserAgent = errors.New("user agent must not be empty")

// ErrNewsTableNotFound is returned when the page has no news container.
// A container with zero rows is not an error.
var ErrNewsTableNotFound = errors.New("news table not found")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// FetchError reports why the page for Ticker could not be retrieved.
type FetchError struct {
	Ticker models.Ticker
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Ticker, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Document is the raw HTML body of one ticker's quote page. It is only
// kept until its rows are extracted.
type Document struct {
	Ticker models.Ticker
	URL    string
	Body   []byte
}

// --- Fetcher ---

// maxBodyBytes bounds how much of a page is read.
const maxBodyBytes = 8 << 20

// Fetcher retrieves quote pages. It is safe for concurrent use.
type Fetcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

// NewFetcher creates a Fetcher from the source settings. A nil client
// gets one built from cfg.Timeout; a nil logger discards output.
func NewFetcher(cfg config.SourceConfig, client *http.Client, logger *zap.Logger) (*Fetcher, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, ErrEmptyUserAgent
	}
	if client == nil {
		client = infra.NewHTTPClient(cfg.Timeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    client,
		logger:    logger,
	}, nil
}

// URL returns the page address for ticker. The ticker is appended to the
// base URL as-is.
func (f *Fetcher) URL(ticker models.Ticker) string {
	return f.baseURL + string(ticker)
}

// Fetch performs one GET for the ticker's page. Every failure is returned
// as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, ticker models.Ticker) (*Document, error) {
	url := f.URL(ticker)
	fail := func(err error) (*Document, error) {
		return nil, &FetchError{Ticker: ticker, URL: url, Err: err}
	}

	body, err := f.doGet(ctx, url)
	if err != nil {
		return fail(err)
	}

	f.logger.Debug("fetched page",
		zap.String("ticker", ticker.String()),
		zap.String("url", url),
		zap.Int("bytes", len(body)),
	)
	return &Document{Ticker: ticker, URL: url, Body: body}, nil
}

// doGet performs a GET request and returns the body decoded to UTF-8.
func (f *Fetcher) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// The site rejects requests without a browser-like User-Agent. Nothing
	// else is sent.
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(excerpt),
		}
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
