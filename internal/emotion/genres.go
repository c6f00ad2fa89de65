package emotion

import "strings"

// genreEmotions maps a genre to the partial emotion scores it suggests.
// Weights are on a 0-1 scale.
var genreEmotions = map[string]map[Category]float64{
	// High-energy genres
	"action": {
		ThrillingTension:   0.8,
		TriumphantInspired: 0.6,
		RighteousAnger:     0.4,
		AweWonder:          0.3,
	},
	"adventure": {
		AweWonder:          0.8,
		ThrillingTension:   0.6,
		TriumphantInspired: 0.5,
		PureJoy:            0.4,
	},
	"thriller": {
		ThrillingTension:        0.9,
		ControlledFear:          0.6,
		MindBlown:               0.5,
		IntellectualStimulation: 0.4,
	},

	// Emotional genres
	"drama": {
		CatharticSadness:        0.7,
		BittersweetHope:         0.6,
		IntellectualStimulation: 0.4,
		TriumphantInspired:      0.3,
	},
	"romance": {
		RomanticWarmth:   0.9,
		BittersweetHope:  0.5,
		CatharticSadness: 0.3,
		PureJoy:          0.4,
	},

	// Feel-good genres
	"comedy": {
		PureJoy:        0.9,
		CozyComfort:    0.5,
		RomanticWarmth: 0.3,
	},
	"family": {
		CozyComfort:     0.8,
		PureJoy:         0.7,
		BittersweetHope: 0.4,
		RomanticWarmth:  0.3,
	},
	"animation": {
		AweWonder:   0.7,
		PureJoy:     0.6,
		CozyComfort: 0.5,
	},

	// Dark genres
	"horror": {
		ControlledFear:   0.9,
		ThrillingTension: 0.7,
		CatharticSadness: 0.2,
	},
	"crime": {
		ThrillingTension:        0.7,
		RighteousAnger:          0.6,
		IntellectualStimulation: 0.5,
		MindBlown:               0.4,
	},
	"mystery": {
		IntellectualStimulation: 0.8,
		ThrillingTension:        0.6,
		MindBlown:               0.7,
	},
	"war": {
		CatharticSadness:   0.7,
		RighteousAnger:     0.6,
		TriumphantInspired: 0.5,
		ThrillingTension:   0.5,
	},

	// Mind-expanding genres
	"science fiction": {
		AweWonder:               0.8,
		IntellectualStimulation: 0.7,
		MindBlown:               0.6,
		ThrillingTension:        0.4,
	},
	"fantasy": {
		AweWonder:          0.8,
		PureJoy:            0.5,
		TriumphantInspired: 0.5,
		RomanticWarmth:     0.3,
	},
	"documentary": {
		IntellectualStimulation: 0.9,
		MindBlown:               0.5,
		AweWonder:               0.4,
	},

	// Other genres
	"music": {
		PureJoy:            0.7,
		TriumphantInspired: 0.6,
		RomanticWarmth:     0.5,
	},
	"history": {
		IntellectualStimulation: 0.7,
		BittersweetHope:         0.5,
		CatharticSadness:        0.4,
	},
	"western": {
		RighteousAnger:     0.6,
		ThrillingTension:   0.5,
		TriumphantInspired: 0.4,
	},
}

// GenreScores accumulates the partial emotion scores suggested by a
// movie's genres. When several genres suggest the same category, the
// maximum weight wins; summing would grow without bound. Unknown genres
// contribute nothing.
func GenreScores(genres []string) map[Category]float64 {
	if len(genres) == 0 {
		return map[Category]float64{}
	}

	scores := make(map[Category]float64)
	for _, genre := range genres {
		weights, ok := genreEmotions[strings.ToLower(strings.TrimSpace(genre))]
		if !ok {
			continue
		}
		for category, weight := range weights {
			if weight > scores[category] {
				scores[category] = weight
			}
		}
	}
	return scores
}

// GenreWeight returns the score a single genre suggests for a category,
// or 0 when the genre or category is not mapped.
func GenreWeight(genre string, category Category) float64 {
	weights, ok := genreEmotions[strings.ToLower(strings.TrimSpace(genre))]
	if !ok {
		return 0
	}
	return weights[category]
}
