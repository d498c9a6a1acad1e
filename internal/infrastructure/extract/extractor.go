package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"goodnews/internal/domain"
	"goodnews/internal/ports"
)

const (
	maxDownloadBytes = 4 << 20
	maxBodyRunes     = 8000
	minBodyRunes     = 40
)

// Extractor downloads a URL and extracts title and readable body text.
// Readability does the heavy lifting; a goquery paragraph scan covers pages
// readability cannot handle.
type Extractor struct {
	client *http.Client
}

var _ ports.ArticleFetcher = (*Extractor)(nil)

// New wires an HTTP client; timeout bounds the whole download.
func New(timeout time.Duration) *Extractor {
	return &Extractor{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads rawURL and returns the extracted page. All failures,
// including an empty extracted body, are reported as *domain.FetchError.
func (e *Extractor) Fetch(ctx context.Context, rawURL string) (domain.Page, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return domain.Page{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("invalid url")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Page{}, &domain.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", "goodnews/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return domain.Page{}, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Page{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return domain.Page{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	title, body := extractReadable(html, pageURL)
	if body == "" {
		title, body = extractFallback(html, title)
	}

	body = truncateRunes(strings.TrimSpace(body), maxBodyRunes)
	if len([]rune(body)) < minBodyRunes {
		return domain.Page{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("no readable content")}
	}

	if title == "" {
		title = pageURL.Host
	}

	return domain.Page{URL: rawURL, Title: title, Body: body}, nil
}

func extractReadable(html []byte, pageURL *url.URL) (title, body string) {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return "", ""
	}
	return strings.TrimSpace(article.Title), strings.TrimSpace(article.TextContent)
}

// extractFallback scans paragraph-ish selectors when readability gives up.
func extractFallback(html []byte, title string) (string, string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return title, ""
	}

	if title == "" {
		for _, selector := range []string{"h1", "title", ".headline", ".article-title"} {
			if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
				title = t
				break
			}
		}
	}

	var paragraphs []string
	for _, selector := range []string{"article p", ".article p", ".content p", ".post-content p", "main p"} {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}

	if len(paragraphs) == 0 {
		// Broadest pass: accept any paragraph on the page.
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	return title, strings.Join(paragraphs, "\n\n")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
