package db

import "time"

// Movie is one catalog row with its computed emotion profile.
type Movie struct {
	TMDBID           int64
	Title            string
	Overview         string
	Genres           []string
	PosterURL        string
	ReleaseYear      int
	Popularity       float64
	EmotionScores    map[string]float64
	DominantEmotions []string
	Intensity        float64
	Catharsis        float64
	Comfort          float64
	EmotionProcessed bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
