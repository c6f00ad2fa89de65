// Package tmdb is a minimal client for The Movie Database API covering
// the list endpoints the catalog pipeline needs.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	baseURL      = "https://api.themoviedb.org/3"
	imageBaseURL = "https://image.tmdb.org/t/p/w500"
	userAgent    = "movie-mood-recommender/1.0"
)

// Sentinel errors.
var (
	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is rejected.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a TMDB client using the given v3 API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Genres fetches the movie genre list, used to resolve the numeric
// genre IDs that list endpoints return.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	body, err := c.doRequest(ctx, "/genre/movie/list", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching genres: %w", err)
	}

	var resp genreListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing genre list response: %w", err)
	}
	return resp.Genres, nil
}

// PopularMovies fetches the first pages of the popular movie list.
func (c *Client) PopularMovies(ctx context.Context, pages int) ([]Movie, error) {
	return c.listMovies(ctx, "/movie/popular", pages)
}

// TopRatedMovies fetches the first pages of the top rated movie list.
func (c *Client) TopRatedMovies(ctx context.Context, pages int) ([]Movie, error) {
	return c.listMovies(ctx, "/movie/top_rated", pages)
}

// PosterURL returns the full image URL for a poster path, or "" when
// the movie has no poster.
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + posterPath
}

func (c *Client) listMovies(ctx context.Context, path string, pages int) ([]Movie, error) {
	if pages < 1 {
		pages = 1
	}

	var movies []Movie
	for page := 1; page <= pages; page++ {
		params := url.Values{"page": {strconv.Itoa(page)}}

		body, err := c.doRequest(ctx, path, params)
		if err != nil {
			return nil, fmt.Errorf("fetching %s page %d: %w", path, page, err)
		}

		var resp movieListResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing %s page %d: %w", path, page, err)
		}
		movies = append(movies, resp.Results...)

		if resp.TotalPages > 0 && page >= resp.TotalPages {
			break
		}
	}
	return movies, nil
}

// doRequest performs an HTTP GET request with retry on rate limit.
// Retries up to 3 times with exponential backoff (1s, 2s, 4s).
func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	delays := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
	var lastErr error

	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		body, err := c.doSingleRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, ErrRateLimited) {
			lastErr = err
			continue
		}

		return nil, err
	}

	return nil, lastErr
}

// doSingleRequest performs a single HTTP request.
func (c *Client) doSingleRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized:
		return nil, ErrInvalidAPIKey
	default:
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusMessage != "" {
			return nil, fmt.Errorf("API error %d: %s", apiErr.StatusCode, apiErr.StatusMessage)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
