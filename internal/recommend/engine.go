package recommend

import (
	"fmt"
	"sort"

	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
)

// Weights are the relative contributions of the three sub-scores to the
// final match score. The defaults are behavioral constants.
type Weights struct {
	Emotion   float64
	Intensity float64
	Comfort   float64
}

// DefaultWeights returns the standard 0.4/0.3/0.3 split.
func DefaultWeights() Weights {
	return Weights{Emotion: 0.4, Intensity: 0.3, Comfort: 0.3}
}

// Engine ranks catalog snapshots. It is stateless per call and safe for
// concurrent use against read-only catalogs.
type Engine struct {
	weights Weights
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the default sub-score weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// scored carries a movie and its sub-scores during ranking. The catalog
// index keeps the final tie-break deterministic.
type scored struct {
	index     int
	movie     *Movie
	match     float64
	emotion   float64
	intensity float64
	comfort   float64
}

// RecommendByMood ranks the catalog for a current mood and a desired
// feeling and returns at most n results, best match first.
func (e *Engine) RecommendByMood(catalog []Movie, currentMood, desiredFeeling string, n int) ([]MatchResult, error) {
	mood, err := MoodPresetFor(currentMood)
	if err != nil {
		return nil, err
	}
	targets, err := FeelingCategories(desiredFeeling)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(catalog, n); err != nil {
		return nil, err
	}

	ranked := make([]scored, len(catalog))
	for i := range catalog {
		movie := &catalog[i]
		s := scored{
			index:     i,
			movie:     movie,
			emotion:   emotionMatch(movie.Profile, targets),
			intensity: proximityMatch(movie.Profile.Intensity, mood.Intensity),
			comfort:   proximityMatch(movie.Profile.Comfort, mood.Comfort),
		}
		s.match = e.weights.Emotion*s.emotion + e.weights.Intensity*s.intensity + e.weights.Comfort*s.comfort
		ranked[i] = s
	}
	sortRanked(ranked)

	if n > len(ranked) {
		n = len(ranked)
	}
	results := make([]MatchResult, n)
	for i, s := range ranked[:n] {
		results[i] = MatchResult{
			Movie:       s.movie,
			MatchScore:  s.match,
			Explanation: e.explain(s, normalizeLabel(currentMood), normalizeLabel(desiredFeeling)),
		}
	}
	return results, nil
}

// EmotionFilter restricts emotion-only recommendations by the derived
// scalars. The zero value of max means "no upper bound".
type EmotionFilter struct {
	MinIntensity float64
	MaxIntensity float64
	MinComfort   float64
}

// DefaultEmotionFilter returns a filter that admits every movie.
func DefaultEmotionFilter() EmotionFilter {
	return EmotionFilter{MinIntensity: 0, MaxIntensity: 10, MinComfort: 0}
}

func (f EmotionFilter) admits(p emotion.Profile) bool {
	maxIntensity := f.MaxIntensity
	if maxIntensity == 0 {
		maxIntensity = 10
	}
	return p.Intensity >= f.MinIntensity &&
		p.Intensity <= maxIntensity &&
		p.Comfort >= f.MinComfort
}

// RecommendByEmotions ranks the catalog by direct emotion targets,
// skipping preset resolution. The emotion sub-score carries full weight
// since no mood context exists. Unknown category names fail with
// ErrInvalidPreset.
func (e *Engine) RecommendByEmotions(catalog []Movie, targetEmotions []string, filter EmotionFilter, n int) ([]MatchResult, error) {
	if len(targetEmotions) == 0 {
		return nil, fmt.Errorf("%w: no target emotions", ErrInvalidArgument)
	}
	targets := make([]emotion.Category, len(targetEmotions))
	for i, name := range targetEmotions {
		category, ok := emotion.ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("%w: emotion %q", ErrInvalidPreset, name)
		}
		targets[i] = category
	}
	if err := validateRequest(catalog, n); err != nil {
		return nil, err
	}

	var ranked []scored
	for i := range catalog {
		movie := &catalog[i]
		if !filter.admits(movie.Profile) {
			continue
		}
		match := emotionMatch(movie.Profile, targets)
		ranked = append(ranked, scored{index: i, movie: movie, match: match, emotion: match})
	}
	sortRanked(ranked)

	if n > len(ranked) {
		n = len(ranked)
	}
	results := make([]MatchResult, n)
	for i, s := range ranked[:n] {
		results[i] = MatchResult{
			Movie:       s.movie,
			MatchScore:  s.match,
			Explanation: fmt.Sprintf("Matches %.0f%% of your desired emotions.", s.match*100),
		}
	}
	return results, nil
}

// emotionMatch is the position-weighted mean of the movie's scores over
// the target categories: the first category weighs 1.0, the k-th
// 1/(k+1). Normalizing by the weight sum keeps the result in [0,1].
func emotionMatch(p emotion.Profile, targets []emotion.Category) float64 {
	if len(targets) == 0 {
		return 0
	}
	var sum, weightSum float64
	for rank, category := range targets {
		w := 1.0 / float64(rank+1)
		sum += w * p.Scores[category]
		weightSum += w
	}
	return sum / weightSum
}

// proximityMatch scores how close a derived scalar sits to the midpoint
// implied by a qualifier: 1 at the midpoint, linearly down, floored at 0
// so the sub-score never goes negative.
func proximityMatch(value float64, q Qualifier) float64 {
	distance := value - q.Midpoint()
	if distance < 0 {
		distance = -distance
	}
	score := 1 - distance/10
	if score < 0 {
		return 0
	}
	return score
}

// sortRanked orders by match score descending, breaking ties by higher
// catharsis and then catalog insertion order. Never unstable or random.
func sortRanked(ranked []scored) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].match != ranked[j].match {
			return ranked[i].match > ranked[j].match
		}
		ci, cj := ranked[i].movie.Profile.Catharsis, ranked[j].movie.Profile.Catharsis
		if ci != cj {
			return ci > cj
		}
		return ranked[i].index < ranked[j].index
	})
}

func validateRequest(catalog []Movie, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidArgument, n)
	}
	if len(catalog) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrInvalidArgument)
	}
	return nil
}
