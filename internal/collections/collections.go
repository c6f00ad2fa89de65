// Package collections groups a movie catalog into named mood
// collections by running k-means over the movies' emotion profiles.
package collections

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
	"github.com/moodreel/go-movie-mood-recommender/internal/recommend"
)

// Config holds collection-building parameters.
type Config struct {
	NumCollections int // number of clusters to create (default: 4)
	MinSize        int // smaller clusters fold into the outliers (default: 3)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumCollections: 4,
		MinSize:        3,
	}
}

// Collection is a group of emotionally similar movies.
type Collection struct {
	Name        string
	TopEmotions []emotion.Category             // up to 3 dominant centroid categories
	Centroid    map[emotion.Category]float64   // average emotion scores
	Movies      []recommend.Movie
}

// movieObservation wraps a movie to implement clusters.Observation.
type movieObservation struct {
	movie  *recommend.Movie
	coords clusters.Coordinates
}

func (o movieObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o movieObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Build groups the catalog into mood collections. Movies in clusters
// smaller than cfg.MinSize are returned as outliers. A catalog smaller
// than the cluster count yields no collections, only outliers.
func Build(catalog []recommend.Movie, cfg Config) ([]Collection, []recommend.Movie, error) {
	if len(catalog) == 0 {
		return nil, nil, nil
	}

	if cfg.NumCollections <= 0 {
		cfg.NumCollections = DefaultConfig().NumCollections
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = DefaultConfig().MinSize
	}

	if len(catalog) < cfg.NumCollections {
		outliers := make([]recommend.Movie, len(catalog))
		copy(outliers, catalog)
		return nil, outliers, nil
	}

	var obs clusters.Observations
	for i := range catalog {
		obs = append(obs, movieObservation{
			movie:  &catalog[i],
			coords: emotionCoordinates(&catalog[i]),
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumCollections)
	if err != nil {
		return nil, nil, fmt.Errorf("partitioning catalog: %w", err)
	}

	var built []Collection
	var outliers []recommend.Movie

	for _, cluster := range result {
		var movies []recommend.Movie
		for _, o := range cluster.Observations {
			if mo, ok := o.(movieObservation); ok {
				movies = append(movies, *mo.movie)
			}
		}

		if len(movies) < cfg.MinSize {
			outliers = append(outliers, movies...)
			continue
		}

		// Keep a stable member order for display.
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Title < movies[j].Title
		})

		centroid := make(map[emotion.Category]float64, len(emotion.Categories))
		for i, c := range emotion.Categories {
			centroid[c] = cluster.Center[i]
		}
		top := topCategories(cluster.Center, 3)

		built = append(built, Collection{
			Name:        collectionName(top),
			TopEmotions: top,
			Centroid:    centroid,
			Movies:      movies,
		})
	}

	// Largest collections first; names break ties deterministically.
	sort.SliceStable(built, func(i, j int) bool {
		if len(built[i].Movies) != len(built[j].Movies) {
			return len(built[i].Movies) > len(built[j].Movies)
		}
		return built[i].Name < built[j].Name
	})

	return built, outliers, nil
}

// emotionCoordinates flattens a movie's emotion scores into a vector
// ordered by category declaration.
func emotionCoordinates(m *recommend.Movie) clusters.Coordinates {
	coords := make(clusters.Coordinates, len(emotion.Categories))
	for i, c := range emotion.Categories {
		coords[i] = m.Profile.Scores[c]
	}
	return coords
}

// topCategories returns the n highest-weighted categories of a centroid
// with nonzero weight, ties broken by declaration order.
func topCategories(center clusters.Coordinates, n int) []emotion.Category {
	type weighted struct {
		category emotion.Category
		weight   float64
	}
	ranked := make([]weighted, 0, len(emotion.Categories))
	for i, c := range emotion.Categories {
		if i < len(center) && center[i] > 0 {
			ranked = append(ranked, weighted{category: c, weight: center[i]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].weight > ranked[j].weight
	})

	result := make([]emotion.Category, 0, n)
	for _, r := range ranked {
		result = append(result, r.category)
		if len(result) == n {
			break
		}
	}
	return result
}

// collectionName builds a display name from the dominant centroid
// categories, e.g. "Pure Joy & Cozy Comfort".
func collectionName(top []emotion.Category) string {
	if len(top) == 0 {
		return "Mixed Feelings"
	}
	names := make([]string, 0, 2)
	for _, c := range top {
		names = append(names, titleCase(c.Display()))
		if len(names) == 2 {
			break
		}
	}
	return strings.Join(names, " & ")
}

// titleCase capitalizes each word; emotion names are plain ASCII.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
