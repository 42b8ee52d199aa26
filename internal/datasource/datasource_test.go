package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/seenimoa/tickersentiment/internal/config"
)

func newTestFetcher(t *testing.T, srv *httptest.Server) *Fetcher {
	t.Helper()
	f, err := NewFetcher(config.SourceConfig{
		BaseURL:   srv.URL + "/quote.ashx?t=",
		UserAgent: "test-agent/1.0",
		Timeout:   5 * time.Second,
	}, srv.Client(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewFetcher() error: %v", err)
	}
	return f
}

func TestNewFetcherRequiresUserAgent(t *testing.T) {
	_, err := NewFetcher(config.SourceConfig{BaseURL: "http://x/?t=", UserAgent: " "}, nil, nil)
	if !errors.Is(err, ErrEmptyUserAgent) {
		t.Fatalf("got %v, want ErrEmptyUserAgent", err)
	}
}

func TestFetcherURL(t *testing.T) {
	f, err := NewFetcher(config.SourceConfig{BaseURL: "https://finviz.com/quote.ashx?t=", UserAgent: "ua"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.URL("AMZN"), "https://finviz.com/quote.ashx?t=AMZN"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA, gotTicker, gotMethod string
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotTicker = r.URL.Query().Get("t")
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><table id="news-table"></table></body></html>`))
	}))
	defer srv.Close()

	doc, err := newTestFetcher(t, srv).Fetch(context.Background(), "AMD")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("User-Agent: got %q, want %q", gotUA, "test-agent/1.0")
	}
	if gotTicker != "AMD" {
		t.Errorf("ticker query: got %q, want %q", gotTicker, "AMD")
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method: got %s, want GET", gotMethod)
	}
	for _, h := range []string{"Accept", "Accept-Language", "Referer", "Cookie"} {
		if v := gotHeader.Get(h); v != "" {
			t.Errorf("unexpected %s header %q", h, v)
		}
	}
	if doc.Ticker != "AMD" {
		t.Errorf("doc.Ticker: got %q", doc.Ticker)
	}
	if !strings.Contains(string(doc.Body), "news-table") {
		t.Errorf("unexpected body: %s", doc.Body)
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv).Fetch(context.Background(), "FB")
	if err == nil {
		t.Fatal("expected error for 403")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.Ticker != "FB" {
		t.Errorf("FetchError.Ticker: got %q, want FB", fe.Ticker)
	}

	var he *ErrHTTP
	if !errors.As(err, &he) {
		t.Fatalf("expected *ErrHTTP in chain, got %v", err)
	}
	if he.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode: got %d, want 403", he.StatusCode)
	}
}

func TestFetchRedirectStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv).Fetch(context.Background(), "AMZN")
	var he *ErrHTTP
	if !errors.As(err, &he) || he.StatusCode != http.StatusNoContent {
		t.Fatalf("expected ErrHTTP 204, got %v", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	f := newTestFetcher(t, srv)
	srv.Close()

	_, err := f.Fetch(context.Background(), "AMZN")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(t, srv).Fetch(ctx, "AMZN")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFetchDecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		// 0x92 is a right single quotation mark in windows-1252.
		w.Write([]byte("<p>Amazon\x92s quarter</p>"))
	}))
	defer srv.Close()

	doc, err := newTestFetcher(t, srv).Fetch(context.Background(), "AMZN")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !strings.Contains(string(doc.Body), "Amazon’s quarter") {
		t.Errorf("body not decoded: %q", doc.Body)
	}
}
