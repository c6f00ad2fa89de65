// Command movie-mood-recommender serves the mood-based movie
// recommendation API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/moodreel/go-movie-mood-recommender/internal/cache"
	"github.com/moodreel/go-movie-mood-recommender/internal/config"
	"github.com/moodreel/go-movie-mood-recommender/internal/db"
	"github.com/moodreel/go-movie-mood-recommender/internal/logging"
	"github.com/moodreel/go-movie-mood-recommender/internal/recommend"
	"github.com/moodreel/go-movie-mood-recommender/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	var responseCache *cache.Cache
	if cfg.RedisAddr != "" {
		responseCache, err = cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer responseCache.Close()
		log.Info().Str("addr", cfg.RedisAddr).Msg("response cache enabled")
	}

	catalog := web.NewCatalog(database.Movies())
	count, err := catalog.Reload(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("movies", count).Msg("catalog loaded")
	if count == 0 {
		log.Warn().Msg("catalog is empty, run profile-pipeline to populate it")
	}

	engine := recommend.NewEngine(recommend.WithWeights(recommend.Weights{
		Emotion:   cfg.Scoring.EmotionWeight,
		Intensity: cfg.Scoring.IntensityWeight,
		Comfort:   cfg.Scoring.ComfortWeight,
	}))

	server := web.NewServer(web.ServerConfig{
		Addr:    cfg.Addr,
		Engine:  engine,
		Catalog: catalog,
		Cache:   responseCache,
		Logger:  log,
	})
	return server.Run()
}
