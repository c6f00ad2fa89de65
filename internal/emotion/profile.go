package emotion

import (
	"math"
	"sort"
)

// Profile is a movie's computed emotion profile: per-category scores on
// a 0-1 scale plus derived scalars on a 0-10 scale. Profiles are built
// once by the offline pipeline and treated as immutable afterwards.
type Profile struct {
	Scores    map[Category]float64 `json:"scores"`
	Dominant  []Category           `json:"dominant_emotions"`
	Intensity float64              `json:"intensity_score"`
	Catharsis float64              `json:"catharsis_score"`
	Comfort   float64              `json:"comfort_score"`
}

// BlendConfig controls how classifier and genre scores are combined.
// The defaults are behavioral constants; change them only when
// deliberately retuning the scoring.
type BlendConfig struct {
	NLPWeight   float64
	GenreWeight float64
}

// DefaultBlendConfig returns the standard 0.6/0.4 NLP/genre blend.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{NLPWeight: 0.6, GenreWeight: 0.4}
}

// catharsisWeights are the fixed contributions of the release-oriented
// categories to the catharsis scalar.
var catharsisWeights = map[Category]float64{
	CatharticSadness: 0.45,
	RighteousAnger:   0.30,
	BittersweetHope:  0.25,
}

// comfortWeights are the fixed contributions of the comfort-oriented
// categories to the comfort scalar.
var comfortWeights = map[Category]float64{
	CozyComfort:    0.40,
	PureJoy:        0.35,
	RomanticWarmth: 0.25,
}

// highArousal lists the categories whose presence pulls the comfort
// scalar down.
var highArousal = []Category{ThrillingTension, ControlledFear, RighteousAnger}

// arousalPenalty scales how strongly high-arousal content reduces comfort.
const arousalPenalty = 0.5

// BuildProfile combines a raw classifier vector and genre metadata into
// an emotion profile using the default blend.
func BuildProfile(nlpVector map[string]float64, genres []string) Profile {
	return BuildProfileWithConfig(nlpVector, genres, DefaultBlendConfig())
}

// BuildProfileWithConfig is BuildProfile with an explicit blend config.
// It is a pure function: a missing genre or absent classifier label
// simply contributes zero.
func BuildProfileWithConfig(nlpVector map[string]float64, genres []string, cfg BlendConfig) Profile {
	nlpScores := MapModelScores(nlpVector)
	genreScores := GenreScores(genres)

	scores := make(map[Category]float64)
	for _, c := range Categories {
		blended := cfg.NLPWeight*nlpScores[c] + cfg.GenreWeight*genreScores[c]
		blended = clamp(blended, 0, 1)
		if blended > 0 {
			scores[c] = blended
		}
	}

	return Profile{
		Scores:    scores,
		Dominant:  dominantEmotions(scores),
		Intensity: intensityScore(scores),
		Catharsis: catharsisScore(scores),
		Comfort:   comfortScore(scores),
	}
}

// dominantEmotions returns the top three nonzero categories by score,
// descending, with ties broken by declaration order.
func dominantEmotions(scores map[Category]float64) []Category {
	ranked := make([]Category, 0, len(scores))
	for c, s := range scores {
		if s > 0 {
			ranked = append(ranked, c)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i]], scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return Order(ranked[i]) < Order(ranked[j])
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

// intensityScore derives the 0-10 intensity scalar. A profile with one
// sharply dominant emotion must score higher than a flat profile with
// the same mean, hence the spread term.
func intensityScore(scores map[Category]float64) float64 {
	var max float64
	values := make([]float64, len(Categories))
	for i, c := range Categories {
		v := scores[c]
		values[i] = v
		if v > max {
			max = v
		}
	}
	return clamp(10*(max*0.7+stddev(values)*0.3), 0, 10)
}

// catharsisScore derives the 0-10 emotional-release scalar from the
// release-oriented categories.
func catharsisScore(scores map[Category]float64) float64 {
	var sum float64
	for c, w := range catharsisWeights {
		sum += w * scores[c]
	}
	return clamp(10*sum, 0, 10)
}

// comfortScore derives the 0-10 comfort scalar: weighted comfort
// categories minus a penalty for high-arousal content.
func comfortScore(scores map[Category]float64) float64 {
	var sum float64
	for c, w := range comfortWeights {
		sum += w * scores[c]
	}

	var arousal float64
	for _, c := range highArousal {
		arousal += scores[c]
	}
	arousal /= float64(len(highArousal))

	return clamp(10*(sum-arousalPenalty*arousal), 0, 10)
}

// stddev computes the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
