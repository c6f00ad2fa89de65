package emotion

import "strings"

// modelCategories maps raw classifier labels onto the taxonomy.
// The primary seven labels come from the distilroberta emotion model;
// the remainder cover the go_emotions label set so a larger classifier
// can be swapped in without code changes. Labels mapping to no category
// (neutral) are dropped.
var modelCategories = map[string]Category{
	"joy":      PureJoy,
	"sadness":  CatharticSadness,
	"anger":    RighteousAnger,
	"fear":     ControlledFear,
	"surprise": MindBlown,
	"disgust":  ControlledFear,

	"love":           RomanticWarmth,
	"excitement":     ThrillingTension,
	"admiration":     TriumphantInspired,
	"amusement":      PureJoy,
	"gratitude":      BittersweetHope,
	"optimism":       BittersweetHope,
	"relief":         CozyComfort,
	"pride":          TriumphantInspired,
	"curiosity":      IntellectualStimulation,
	"confusion":      MindBlown,
	"nervousness":    ThrillingTension,
	"remorse":        CatharticSadness,
	"grief":          CatharticSadness,
	"disappointment": CatharticSadness,
	"embarrassment":  CatharticSadness,
	"realization":    MindBlown,
	"approval":       CozyComfort,
	"caring":         RomanticWarmth,
	"desire":         RomanticWarmth,
	"annoyance":      RighteousAnger,
	"disapproval":    RighteousAnger,
}

// MapModelScores converts raw classifier label scores into category
// scores. When several labels land on the same category the maximum
// score wins. Unmapped labels are ignored.
func MapModelScores(raw map[string]float64) map[Category]float64 {
	scores := make(map[Category]float64)
	for label, score := range raw {
		category, ok := modelCategories[strings.ToLower(label)]
		if !ok {
			continue
		}
		if score > scores[category] {
			scores[category] = score
		}
	}
	return scores
}
