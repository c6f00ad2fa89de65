package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/moodreel/go-movie-mood-recommender/internal/db"
	"github.com/moodreel/go-movie-mood-recommender/internal/tmdb"
)

type fakeSource struct {
	genres   []tmdb.Genre
	popular  []tmdb.Movie
	topRated []tmdb.Movie
}

func (f *fakeSource) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	return f.genres, nil
}

func (f *fakeSource) PopularMovies(ctx context.Context, pages int) ([]tmdb.Movie, error) {
	return f.popular, nil
}

func (f *fakeSource) TopRatedMovies(ctx context.Context, pages int) ([]tmdb.Movie, error) {
	return f.topRated, nil
}

type fakeClassifier struct {
	scores map[string]map[string]float64 // keyed by a substring of the input
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for key, scores := range f.scores {
		if strings.Contains(text, key) {
			return scores, nil
		}
	}
	return map[string]float64{}, nil
}

type fakeStore struct {
	stored []db.Movie
}

func (f *fakeStore) UpsertBatch(ctx context.Context, movies []db.Movie) error {
	f.stored = append(f.stored, movies...)
	return nil
}

func testSource() *fakeSource {
	return &fakeSource{
		genres: []tmdb.Genre{
			{ID: 35, Name: "Comedy"},
			{ID: 27, Name: "Horror"},
		},
		popular: []tmdb.Movie{
			{ID: 1, Title: "Laugh Riot", Overview: "A hilarious ensemble comedy about a wedding gone wrong.",
				GenreIDs: []int64{35}, PosterPath: "/laugh.jpg", ReleaseDate: "2019-06-01", Popularity: 80},
			{ID: 2, Title: "The Hollow", Overview: "Something ancient stirs beneath the town of Hollow Creek.",
				GenreIDs: []int64{27}, ReleaseDate: "2021-10-08", Popularity: 60},
		},
		topRated: []tmdb.Movie{
			// Duplicate of popular entry 1, must be deduplicated.
			{ID: 1, Title: "Laugh Riot", Overview: "A hilarious ensemble comedy about a wedding gone wrong.",
				GenreIDs: []int64{35}, ReleaseDate: "2019-06-01", Popularity: 80},
			{ID: 3, Title: "Short One", Overview: "Too short.",
				GenreIDs: []int64{35}, ReleaseDate: "bad-date", Popularity: 10},
		},
	}
}

func TestRun(t *testing.T) {
	source := testSource()
	clf := &fakeClassifier{scores: map[string]map[string]float64{
		"hilarious": {"joy": 0.9},
		"ancient":   {"fear": 0.8},
	}}
	store := &fakeStore{}

	svc := New(source, clf, store, zerolog.Nop())
	result, err := svc.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Fetched != 3 {
		t.Errorf("Fetched = %d, want 3 after deduplication", result.Fetched)
	}
	if result.Classified != 2 {
		t.Errorf("Classified = %d, want 2", result.Classified)
	}
	if result.Stored != 3 {
		t.Errorf("Stored = %d, want 3", result.Stored)
	}
	if result.RunID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("RunID not assigned")
	}
	if len(store.stored) != 3 {
		t.Fatalf("store holds %d rows, want 3", len(store.stored))
	}

	// The overview under minOverviewLength skips the classifier.
	if clf.calls != 2 {
		t.Errorf("classifier called %d times, want 2", clf.calls)
	}

	byID := make(map[int64]db.Movie, len(store.stored))
	for _, m := range store.stored {
		byID[m.TMDBID] = m
	}

	comedy := byID[1]
	if comedy.ReleaseYear != 2019 {
		t.Errorf("ReleaseYear = %d, want 2019", comedy.ReleaseYear)
	}
	if comedy.PosterURL != "https://image.tmdb.org/t/p/w500/laugh.jpg" {
		t.Errorf("PosterURL = %q", comedy.PosterURL)
	}
	if len(comedy.Genres) != 1 || comedy.Genres[0] != "Comedy" {
		t.Errorf("Genres = %v, want [Comedy]", comedy.Genres)
	}
	// 0.6 * 0.9 joy + 0.4 * 0.9 comedy-joy
	if got := comedy.EmotionScores["pure_joy"]; got < 0.89 || got > 0.91 {
		t.Errorf("pure_joy = %v, want 0.9", got)
	}
	if !comedy.EmotionProcessed {
		t.Error("EmotionProcessed not set")
	}

	horror := byID[2]
	if got := horror.EmotionScores["controlled_fear"]; got <= 0 {
		t.Errorf("controlled_fear = %v, want > 0", got)
	}

	// Unparseable release date degrades to year zero.
	if byID[3].ReleaseYear != 0 {
		t.Errorf("ReleaseYear = %d, want 0 for bad date", byID[3].ReleaseYear)
	}
}

func TestRunClassifierFailureDegradesToGenres(t *testing.T) {
	source := testSource()
	clf := &fakeClassifier{err: errors.New("model offline")}
	store := &fakeStore{}

	svc := New(source, clf, store, zerolog.Nop())
	result, err := svc.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Classified != 0 {
		t.Errorf("Classified = %d, want 0", result.Classified)
	}
	if result.Stored != 3 {
		t.Errorf("Stored = %d, want all movies despite classifier failure", result.Stored)
	}

	// Genre signal alone still produces a profile.
	for _, m := range store.stored {
		if m.TMDBID == 2 && m.EmotionScores["controlled_fear"] <= 0 {
			t.Errorf("horror movie lost its genre profile: %v", m.EmotionScores)
		}
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2006-01-02", 2006},
		{"1999", 1999},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := releaseYear(tt.date); got != tt.want {
			t.Errorf("releaseYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
