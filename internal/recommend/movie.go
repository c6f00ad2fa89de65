// Package recommend ranks a movie catalog against mood and feeling
// presets using precomputed emotion profiles.
package recommend

import "github.com/moodreel/go-movie-mood-recommender/internal/emotion"

// Movie is a catalog entry: display metadata plus its precomputed
// emotion profile. The recommender never mutates a movie; the catalog
// handed to a ranking call must be an immutable snapshot.
type Movie struct {
	TMDBID      int64
	Title       string
	Overview    string
	Genres      []string
	PosterURL   string
	ReleaseYear int
	Profile     emotion.Profile
}

// MatchResult pairs a movie with its match score and a human-readable
// explanation. Results live only for the duration of one call.
type MatchResult struct {
	Movie       *Movie
	MatchScore  float64
	Explanation string
}
