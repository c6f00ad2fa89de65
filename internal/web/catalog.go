package web

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/moodreel/go-movie-mood-recommender/internal/db"
	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
	"github.com/moodreel/go-movie-mood-recommender/internal/recommend"
)

// ProfiledLister loads the profiled catalog rows, normally backed by
// the movie repository.
type ProfiledLister interface {
	ListProfiled(ctx context.Context) ([]db.Movie, error)
}

// Catalog holds the in-memory movie catalog the recommender scores
// against. Requests read an immutable snapshot, so reloads never block
// readers.
type Catalog struct {
	store    ProfiledLister
	snapshot atomic.Pointer[catalogSnapshot]
}

type catalogSnapshot struct {
	movies   []recommend.Movie
	version  uint64
	loadedAt time.Time
}

// NewCatalog creates an empty catalog backed by store.
func NewCatalog(store ProfiledLister) *Catalog {
	c := &Catalog{store: store}
	c.snapshot.Store(&catalogSnapshot{})
	return c
}

// Reload replaces the snapshot with the current database contents and
// returns the number of movies loaded.
func (c *Catalog) Reload(ctx context.Context) (int, error) {
	rows, err := c.store.ListProfiled(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading catalog: %w", err)
	}

	movies := make([]recommend.Movie, len(rows))
	for i := range rows {
		movies[i] = movieFromRow(&rows[i])
	}

	prev := c.snapshot.Load()
	c.snapshot.Store(&catalogSnapshot{
		movies:   movies,
		version:  prev.version + 1,
		loadedAt: time.Now(),
	})
	return len(movies), nil
}

// Movies returns the current snapshot's movie list. Callers must not
// mutate it.
func (c *Catalog) Movies() []recommend.Movie {
	return c.snapshot.Load().movies
}

// Version returns the snapshot version, incremented on every reload.
// It scopes cache keys so stale responses die with their snapshot.
func (c *Catalog) Version() uint64 {
	return c.snapshot.Load().version
}

// Len returns the number of movies in the current snapshot.
func (c *Catalog) Len() int {
	return len(c.snapshot.Load().movies)
}

// FindByTitle looks a movie up by case-insensitive exact title.
func (c *Catalog) FindByTitle(title string) (*recommend.Movie, bool) {
	movies := c.snapshot.Load().movies
	for i := range movies {
		if strings.EqualFold(movies[i].Title, title) {
			return &movies[i], true
		}
	}
	return nil, false
}

// movieFromRow converts a database row into the recommender's movie
// type, dropping any stored category names that no longer parse.
func movieFromRow(row *db.Movie) recommend.Movie {
	scores := make(map[emotion.Category]float64, len(row.EmotionScores))
	for name, score := range row.EmotionScores {
		if c, ok := emotion.ParseCategory(name); ok {
			scores[c] = score
		}
	}

	var dominant []emotion.Category
	for _, name := range row.DominantEmotions {
		if c, ok := emotion.ParseCategory(name); ok {
			dominant = append(dominant, c)
		}
	}

	return recommend.Movie{
		TMDBID:      row.TMDBID,
		Title:       row.Title,
		Overview:    row.Overview,
		Genres:      row.Genres,
		PosterURL:   row.PosterURL,
		ReleaseYear: row.ReleaseYear,
		Profile: emotion.Profile{
			Scores:    scores,
			Dominant:  dominant,
			Intensity: row.Intensity,
			Catharsis: row.Catharsis,
			Comfort:   row.Comfort,
		},
	}
}
