// Command profile-pipeline builds the emotion-profiled movie catalog
// from TMDB metadata and the hosted emotion classifier.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/moodreel/go-movie-mood-recommender/internal/classifier"
	"github.com/moodreel/go-movie-mood-recommender/internal/config"
	"github.com/moodreel/go-movie-mood-recommender/internal/db"
	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
	"github.com/moodreel/go-movie-mood-recommender/internal/logging"
	"github.com/moodreel/go-movie-mood-recommender/internal/pipeline"
	"github.com/moodreel/go-movie-mood-recommender/internal/tmdb"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	pages := flag.Int("pages", 5, "pages to fetch from each TMDB movie list")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.TMDBAPIKey == "" {
		return fmt.Errorf("MOODREC_TMDB_API_KEY is required")
	}
	if cfg.ClassifierURL == "" {
		return fmt.Errorf("MOODREC_CLASSIFIER_URL is required")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	svc := pipeline.New(
		tmdb.NewClient(cfg.TMDBAPIKey),
		classifier.NewClient(cfg.ClassifierURL, cfg.ClassifierToken),
		database.Movies(),
		log,
		pipeline.WithBlendConfig(emotion.BlendConfig{
			NLPWeight:   cfg.Scoring.NLPBlend,
			GenreWeight: cfg.Scoring.GenreBlend,
		}),
	)

	result, err := svc.Run(ctx, *pages)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	log.Info().
		Stringer("run_id", result.RunID).
		Int("stored", result.Stored).
		Msg("pipeline finished")
	return nil
}
