package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		apiKey:     "test-api-key",
		httpClient: server.Client(),
		baseURL:    server.URL,
	}
}

func TestGenres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-api-key" {
			t.Errorf("api_key = %q, want test-api-key", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(genreListResponse{Genres: []Genre{
			{ID: 35, Name: "Comedy"},
			{ID: 27, Name: "Horror"},
		}})
	}))
	defer server.Close()

	genres, err := testClient(server).Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if len(genres) != 2 {
		t.Fatalf("Genres() got %d genres, want 2", len(genres))
	}
	if genres[0].Name != "Comedy" || genres[1].ID != 27 {
		t.Errorf("Genres() got unexpected genres: %v", genres)
	}
}

func TestPopularMoviesPaging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(movieListResponse{
			Page:       page,
			Results:    []Movie{{ID: int64(page), Title: "Movie " + strconv.Itoa(page)}},
			TotalPages: 5,
		})
	}))
	defer server.Close()

	movies, err := testClient(server).PopularMovies(context.Background(), 3)
	if err != nil {
		t.Fatalf("PopularMovies() error = %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("PopularMovies() got %d movies, want 3", len(movies))
	}
	for i, m := range movies {
		if m.ID != int64(i+1) {
			t.Errorf("movies[%d].ID = %d, want %d", i, m.ID, i+1)
		}
	}
}

func TestTopRatedMoviesStopsAtTotalPages(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(movieListResponse{
			Page:       1,
			Results:    []Movie{{ID: 1, Title: "Only Movie"}},
			TotalPages: 1,
		})
	}))
	defer server.Close()

	movies, err := testClient(server).TopRatedMovies(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopRatedMovies() error = %v", err)
	}
	if len(movies) != 1 {
		t.Errorf("got %d movies, want 1", len(movies))
	}
	if count := requestCount.Load(); count != 1 {
		t.Errorf("Expected 1 request, got %d", count)
	}
}

func TestRateLimitRetry(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := requestCount.Add(1)

		// Fail first 2 requests with rate limit, succeed on 3rd
		if count < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(movieListResponse{
			Page:       1,
			Results:    []Movie{{ID: 42, Title: "Recovered"}},
			TotalPages: 1,
		})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	movies, err := testClient(server).PopularMovies(ctx, 1)
	if err != nil {
		t.Fatalf("PopularMovies() error = %v", err)
	}
	if len(movies) != 1 || movies[0].ID != 42 {
		t.Errorf("PopularMovies() got unexpected movies: %v", movies)
	}

	// Should have made 3 requests (2 rate limited + 1 success)
	if count := requestCount.Load(); count != 3 {
		t.Errorf("Expected 3 requests, got %d", count)
	}
}

func TestInvalidAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(apiError{StatusCode: 7, StatusMessage: "Invalid API key"})
	}))
	defer server.Close()

	_, err := testClient(server).Genres(context.Background())
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("Genres() error = %v, want ErrInvalidAPIKey", err)
	}
}

func TestPosterURL(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/abc123.jpg", "https://image.tmdb.org/t/p/w500/abc123.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PosterURL(tt.path); got != tt.want {
			t.Errorf("PosterURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-key")

	if client.apiKey != "test-key" {
		t.Errorf("NewClient() apiKey = %s, want test-key", client.apiKey)
	}
	if client.httpClient == nil {
		t.Error("NewClient() httpClient is nil")
	}
	if client.baseURL != baseURL {
		t.Errorf("NewClient() baseURL = %s, want %s", client.baseURL, baseURL)
	}
}
