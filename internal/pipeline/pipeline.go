// Package pipeline builds the emotion-profiled movie catalog: it pulls
// movie metadata, classifies each overview, blends the result with
// genre signals and persists the profiled rows.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moodreel/go-movie-mood-recommender/internal/db"
	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
	"github.com/moodreel/go-movie-mood-recommender/internal/tmdb"
)

// minOverviewLength is the shortest overview worth classifying; movies
// below it are profiled from genres alone.
const minOverviewLength = 20

// MetadataSource supplies movie metadata, normally the TMDB client.
type MetadataSource interface {
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	PopularMovies(ctx context.Context, pages int) ([]tmdb.Movie, error)
	TopRatedMovies(ctx context.Context, pages int) ([]tmdb.Movie, error)
}

// EmotionClassifier scores free text against the model's emotion labels.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// MovieStore persists profiled catalog rows.
type MovieStore interface {
	UpsertBatch(ctx context.Context, movies []db.Movie) error
}

// Service runs catalog builds.
type Service struct {
	source     MetadataSource
	classifier EmotionClassifier
	store      MovieStore
	log        zerolog.Logger
	blend      emotion.BlendConfig
}

// Option configures a Service.
type Option func(*Service)

// WithBlendConfig overrides the classifier/genre blend weights.
func WithBlendConfig(cfg emotion.BlendConfig) Option {
	return func(s *Service) {
		s.blend = cfg
	}
}

// New creates a catalog pipeline service.
func New(source MetadataSource, classifier EmotionClassifier, store MovieStore, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		source:     source,
		classifier: classifier,
		store:      store,
		log:        log,
		blend:      emotion.DefaultBlendConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result summarizes one pipeline run.
type Result struct {
	RunID      uuid.UUID
	Fetched    int // unique movies pulled from the metadata source
	Classified int // movies whose overview was scored by the model
	Stored     int // rows persisted
	StartedAt  time.Time
	FinishedAt time.Time
}

// Run fetches the first pages of the popular and top rated lists,
// profiles every unique movie and persists the catalog. Classifier
// failures degrade that movie to a genre-only profile instead of
// failing the run.
func (s *Service) Run(ctx context.Context, pages int) (*Result, error) {
	result := &Result{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
	log := s.log.With().Stringer("run_id", result.RunID).Logger()

	genres, err := s.source.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching genre list: %w", err)
	}
	genreNames := make(map[int64]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}

	movies, err := s.fetchUnique(ctx, pages)
	if err != nil {
		return nil, err
	}
	result.Fetched = len(movies)
	log.Info().Int("movies", len(movies)).Int("pages", pages).Msg("fetched catalog metadata")

	rows := make([]db.Movie, 0, len(movies))
	for _, m := range movies {
		names := resolveGenres(m.GenreIDs, genreNames)

		var modelScores map[string]float64
		if len(m.Overview) >= minOverviewLength {
			modelScores, err = s.classifier.Classify(ctx, m.Overview)
			if err != nil {
				log.Warn().Err(err).Int64("tmdb_id", m.ID).Str("title", m.Title).
					Msg("classification failed, using genre-only profile")
				modelScores = nil
			} else if len(modelScores) > 0 {
				result.Classified++
			}
		}

		profile := emotion.BuildProfileWithConfig(modelScores, names, s.blend)
		rows = append(rows, movieRow(m, names, profile))
	}

	if err := s.store.UpsertBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("persisting catalog: %w", err)
	}
	result.Stored = len(rows)
	result.FinishedAt = time.Now()

	log.Info().
		Int("fetched", result.Fetched).
		Int("classified", result.Classified).
		Int("stored", result.Stored).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("catalog build complete")
	return result, nil
}

// fetchUnique pulls both movie lists and deduplicates by TMDB ID,
// keeping the first occurrence.
func (s *Service) fetchUnique(ctx context.Context, pages int) ([]tmdb.Movie, error) {
	popular, err := s.source.PopularMovies(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("fetching popular movies: %w", err)
	}
	topRated, err := s.source.TopRatedMovies(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("fetching top rated movies: %w", err)
	}

	seen := make(map[int64]bool, len(popular)+len(topRated))
	var unique []tmdb.Movie
	for _, m := range append(popular, topRated...) {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		unique = append(unique, m)
	}
	return unique, nil
}

func resolveGenres(ids []int64, names map[int64]string) []string {
	var resolved []string
	for _, id := range ids {
		if name, ok := names[id]; ok {
			resolved = append(resolved, name)
		}
	}
	return resolved
}

func movieRow(m tmdb.Movie, genres []string, profile emotion.Profile) db.Movie {
	scores := make(map[string]float64, len(profile.Scores))
	for c, v := range profile.Scores {
		scores[string(c)] = v
	}
	dominant := make([]string, len(profile.Dominant))
	for i, c := range profile.Dominant {
		dominant[i] = string(c)
	}
	if genres == nil {
		genres = []string{}
	}

	return db.Movie{
		TMDBID:           m.ID,
		Title:            m.Title,
		Overview:         m.Overview,
		Genres:           genres,
		PosterURL:        tmdb.PosterURL(m.PosterPath),
		ReleaseYear:      releaseYear(m.ReleaseDate),
		Popularity:       m.Popularity,
		EmotionScores:    scores,
		DominantEmotions: dominant,
		Intensity:        profile.Intensity,
		Catharsis:        profile.Catharsis,
		Comfort:          profile.Comfort,
		EmotionProcessed: true,
	}
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
