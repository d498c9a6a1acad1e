package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Good News</title>
    <item><title>One</title><link>https://good.example/1</link></item>
    <item><title>Two</title><link>https://good.example/2</link></item>
    <item><title>No link</title></item>
    <item><title>Three</title><link>https://good.example/3</link></item>
  </channel>
</rss>`

func TestDiscover(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer server.Close()

	strat := NewFeedStrategy("test", server.URL)
	urls, err := strat.Discover(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	want := []string{"https://good.example/1", "https://good.example/2", "https://good.example/3"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestDiscoverRespectsLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedXML))
	}))
	defer server.Close()

	strat := NewFeedStrategy("test", server.URL)
	urls, err := strat.Discover(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
}

func TestDiscoverBadFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer server.Close()

	strat := NewFeedStrategy("test", server.URL)
	if _, err := strat.Discover(context.Background(), "", 10); err == nil {
		t.Fatal("expected error for malformed feed")
	}
}
