package internal

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	titleTimeout = 5 * time.Second

	// Titles live in the head, no need to download the whole page.
	titleBodyLimit = 256 * 1024
)

// HTTPTitleResolver fetches a URL and pulls the page title out of the
// HTML. It is strictly best-effort: every failure resolves to "".
type HTTPTitleResolver struct {
	client *http.Client
}

func NewTitleResolver() *HTTPTitleResolver {
	return &HTTPTitleResolver{
		client: &http.Client{Timeout: titleTimeout},
	}
}

func (r *HTTPTitleResolver) Resolve(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		return ""
	}

	return parseTitle(io.LimitReader(resp.Body, titleBodyLimit))
}

func parseTitle(r io.Reader) string {
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) != "title" {
				continue
			}
			if z.Next() != html.TextToken {
				return ""
			}
			return strings.TrimSpace(string(z.Text()))
		}
	}
}
