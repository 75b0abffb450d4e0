// Package covers looks up book cover images from the Google Books API.
// Lookups are cached in SQLite and rate limited; a missing cover is a
// normal outcome, never an error that should fail a recommendation.
package covers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/halchemy/bookpath/internal/cache"
	"github.com/halchemy/bookpath/internal/config"
	"github.com/halchemy/bookpath/internal/ratelimit"
)

// Package-level variables for the Google Books API client
// These can be overridden in tests for dependency injection
var (
	httpClient    *http.Client
	httpClientNew = func() *http.Client {
		return &http.Client{Timeout: 10 * time.Second}
	}
	baseURL = "https://www.googleapis.com/books/v1"

	// Google Books allows generous anonymous quota; one request per second
	// keeps batch exports polite.
	limiter = ratelimit.New("googlebooks", 1)
)

func getHTTPClient() *http.Client {
	if httpClient == nil {
		httpClient = httpClientNew()
	}
	return httpClient
}

// volumesResponse is the subset of the Google Books volumes response we read.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title      string `json:"title"`
			ImageLinks struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Cover is the cached result of one lookup. NotFound entries are cached
// with a shorter TTL so transient gaps in the API heal themselves.
type Cover struct {
	URL      string `json:"url"`
	NotFound bool   `json:"not_found"`
}

// FetchCoverURL returns the cover thumbnail URL for a book, or an empty
// string when Google Books has none. Results are cached by title/author.
func FetchCoverURL(ctx context.Context, title, author string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title is required")
	}

	cacheKey := strings.ToLower(title + "|" + author)

	cover, cacheHit, err := cache.GetOrFetchWithTTL(cache.GoogleBooksCacheTable, cacheKey,
		func() (Cover, error) {
			return fetchCover(ctx, title, author)
		},
		cache.SelectNegativeCacheTTL(func(c Cover) bool {
			return c.NotFound
		}))
	if err != nil {
		return "", err
	}

	if !cacheHit {
		// Pace only actual API calls, cached answers are free
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	return cover.URL, nil
}

// fetchCover queries the volumes endpoint by title and author and prefers
// the larger thumbnail variant, mirroring what the result cards display.
func fetchCover(ctx context.Context, title, author string) (Cover, error) {
	query := "intitle:" + title
	if author != "" {
		query += "+inauthor:" + author
	}

	reqURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=1", baseURL, url.QueryEscape(query))
	if config.GoogleBooksAPIKey != "" {
		reqURL += "&key=" + config.GoogleBooksAPIKey
	}

	slog.Debug("Fetching cover from Google Books", "title", title, "author", author)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Cover{}, fmt.Errorf("failed to create Google Books request: %w", err)
	}

	resp, err := getHTTPClient().Do(req)
	if err != nil {
		return Cover{}, fmt.Errorf("google Books API request failed for %q: %w", title, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Cover{}, fmt.Errorf("google Books API returned non-200 status code: %d for title: %s", resp.StatusCode, title)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Cover{}, fmt.Errorf("failed to decode Google Books response for %q: %w", title, err)
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		slog.Debug("No cover found in Google Books", "title", title)
		return Cover{NotFound: true}, nil
	}

	links := result.Items[0].VolumeInfo.ImageLinks
	coverURL := links.Thumbnail
	if coverURL == "" {
		coverURL = links.SmallThumbnail
	}
	if coverURL == "" {
		return Cover{NotFound: true}, nil
	}

	slog.Debug("Found cover in Google Books",
		"title", title,
		"matched", result.Items[0].VolumeInfo.Title,
	)
	return Cover{URL: coverURL}, nil
}
