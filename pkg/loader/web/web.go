// Package web fetches portfolio pages and extracts their readable text
// for the scoring oracle.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

// PageLoader fetches a URL and extracts the main readable content.
// Results are cached per URL and concurrent fetches of the same URL are
// collapsed into one request.
type PageLoader struct {
	client *http.Client

	cache   map[string]string
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewPageLoader creates a PageLoader. A nil client uses
// http.DefaultClient.
func NewPageLoader(client *http.Client) *PageLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &PageLoader{
		client: client,
		cache:  make(map[string]string),
	}
}

// GetPageText fetches the URL and returns its readable text. HTML pages
// go through readability to strip navigation and boilerplate; other
// content types are returned as-is.
func (l *PageLoader) GetPageText(ctx context.Context, pageURL string) (string, error) {
	l.cacheMu.RLock()
	if cached, ok := l.cache[pageURL]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(pageURL, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[pageURL]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
		}

		var text string
		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			u, err := url.Parse(pageURL)
			if err != nil {
				return "", fmt.Errorf("failed to parse url: %w", err)
			}
			article, err := readability.FromReader(resp.Body, u)
			if err != nil {
				return "", fmt.Errorf("failed to parse html: %w", err)
			}
			var builder strings.Builder
			if err := article.RenderText(&builder); err != nil {
				return "", fmt.Errorf("failed to render article text: %w", err)
			}
			text = builder.String()
		} else {
			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				return "", err
			}
			text = string(raw)
		}

		l.cacheMu.Lock()
		l.cache[pageURL] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
