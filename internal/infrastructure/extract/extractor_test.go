package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goodnews/internal/domain"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Kind Stranger Saves the Day</title></head>
<body>
<article>
<h1>Kind Stranger Saves the Day</h1>
<p>A kind stranger stepped in to help a family rebuild their home after the storm, bringing hope to the whole street.</p>
<p>Neighbors joined in over the weekend, and the community raised enough to finish the roof before winter.</p>
<p>The family says the support has been a source of joy they will never forget, inspiring others to volunteer.</p>
</article>
</body>
</html>`

func TestFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	e := New(5 * time.Second)
	page, err := e.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if !strings.Contains(page.Title, "Kind Stranger") {
		t.Fatalf("unexpected title: %q", page.Title)
	}
	if !strings.Contains(page.Body, "rebuild their home") {
		t.Fatalf("body missing article text: %q", page.Body)
	}
	if page.URL != server.URL {
		t.Fatalf("unexpected url: %q", page.URL)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>nav</div></body></html>`))
	}))
	defer server.Close()

	e := New(5 * time.Second)
	_, err := e.Fetch(context.Background(), server.URL)

	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
}

func TestFetchHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	e := New(5 * time.Second)
	_, err := e.Fetch(context.Background(), server.URL)

	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	t.Parallel()

	e := New(time.Second)
	_, err := e.Fetch(context.Background(), "not-a-url")

	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	e := New(time.Second)
	_, err := e.Fetch(context.Background(), server.URL)

	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
}
