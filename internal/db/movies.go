package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieRepository handles movie database operations.
type MovieRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
	tmdb_id, title, overview, genres, poster_url, release_year, popularity,
	emotion_scores, dominant_emotions, intensity, catharsis, comfort,
	emotion_processed, created_at, updated_at
`

// Upsert creates or updates a single movie.
func (r *MovieRepository) Upsert(ctx context.Context, movie *Movie) error {
	query := `
		INSERT INTO movies (
			tmdb_id, title, overview, genres, poster_url, release_year, popularity,
			emotion_scores, dominant_emotions, intensity, catharsis, comfort,
			emotion_processed, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			genres = EXCLUDED.genres,
			poster_url = EXCLUDED.poster_url,
			release_year = EXCLUDED.release_year,
			popularity = EXCLUDED.popularity,
			emotion_scores = EXCLUDED.emotion_scores,
			dominant_emotions = EXCLUDED.dominant_emotions,
			intensity = EXCLUDED.intensity,
			catharsis = EXCLUDED.catharsis,
			comfort = EXCLUDED.comfort,
			emotion_processed = EXCLUDED.emotion_processed,
			updated_at = NOW()
		RETURNING created_at
	`
	scores, err := encodeScores(movie.EmotionScores)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx, query,
		movie.TMDBID,
		movie.Title,
		movie.Overview,
		movie.Genres,
		movie.PosterURL,
		movie.ReleaseYear,
		movie.Popularity,
		scores,
		movie.DominantEmotions,
		movie.Intensity,
		movie.Catharsis,
		movie.Comfort,
		movie.EmotionProcessed,
	).Scan(&movie.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting movie: %w", err)
	}
	return nil
}

// UpsertBatch inserts or updates multiple movies in one round trip.
func (r *MovieRepository) UpsertBatch(ctx context.Context, movies []Movie) error {
	if len(movies) == 0 {
		return nil
	}

	query := `
		INSERT INTO movies (
			tmdb_id, title, overview, genres, poster_url, release_year, popularity,
			emotion_scores, dominant_emotions, intensity, catharsis, comfort,
			emotion_processed, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			genres = EXCLUDED.genres,
			poster_url = EXCLUDED.poster_url,
			release_year = EXCLUDED.release_year,
			popularity = EXCLUDED.popularity,
			emotion_scores = EXCLUDED.emotion_scores,
			dominant_emotions = EXCLUDED.dominant_emotions,
			intensity = EXCLUDED.intensity,
			catharsis = EXCLUDED.catharsis,
			comfort = EXCLUDED.comfort,
			emotion_processed = EXCLUDED.emotion_processed,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, m := range movies {
		scores, err := encodeScores(m.EmotionScores)
		if err != nil {
			return err
		}
		batch.Queue(query,
			m.TMDBID,
			m.Title,
			m.Overview,
			m.Genres,
			m.PosterURL,
			m.ReleaseYear,
			m.Popularity,
			scores,
			m.DominantEmotions,
			m.Intensity,
			m.Catharsis,
			m.Comfort,
			m.EmotionProcessed,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range movies {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch upserting movies: %w", err)
		}
	}
	return nil
}

// Get retrieves a movie by its TMDB ID.
func (r *MovieRepository) Get(ctx context.Context, tmdbID int64) (*Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE tmdb_id = $1`
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, tmdbID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying movie: %w", err)
	}
	return movie, nil
}

// GetByTitle retrieves a movie by case-insensitive exact title match.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE lower(title) = lower($1) LIMIT 1`
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, title))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying movie by title: %w", err)
	}
	return movie, nil
}

// ListProfiled retrieves all movies with computed emotion profiles,
// ordered by popularity descending.
func (r *MovieRepository) ListProfiled(ctx context.Context) ([]Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE emotion_processed
		ORDER BY popularity DESC, tmdb_id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying profiled movies: %w", err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		movies = append(movies, *movie)
	}
	return movies, rows.Err()
}

// Count returns the total number of stored movies.
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*Movie, error) {
	var m Movie
	var scores []byte
	err := row.Scan(
		&m.TMDBID,
		&m.Title,
		&m.Overview,
		&m.Genres,
		&m.PosterURL,
		&m.ReleaseYear,
		&m.Popularity,
		&scores,
		&m.DominantEmotions,
		&m.Intensity,
		&m.Catharsis,
		&m.Comfort,
		&m.EmotionProcessed,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &m.EmotionScores); err != nil {
			return nil, fmt.Errorf("decoding emotion scores: %w", err)
		}
	}
	return &m, nil
}

func encodeScores(scores map[string]float64) ([]byte, error) {
	if scores == nil {
		scores = map[string]float64{}
	}
	encoded, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("encoding emotion scores: %w", err)
	}
	return encoded, nil
}
