package recommend

import (
	"fmt"
	"strings"

	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
)

// subScore tags which component of the match score dominated.
type subScore int

const (
	subEmotion subScore = iota
	subIntensity
	subComfort
)

// templateKey selects an explanation template. Mood is "" for entries
// that apply to any mood.
type templateKey struct {
	sub     subScore
	mood    string
	feeling string
}

// explanationTemplates is a closed table; lookups try the exact
// (sub-score, mood, feeling) key first, then the any-mood key, then the
// generic fallback citing the movie's dominant emotions. Each template
// takes the formatted emotion list as its only argument.
var explanationTemplates = map[templateKey]string{
	{subComfort, "stressed", "feel-good"}: "A comforting choice to lift your spirits after a rough stretch - expect %s.",
	{subComfort, "anxious", "relaxed"}:    "Something gentle with %s to quiet the nerves.",
	{subIntensity, "bored", "thrilled"}:   "A jolt of %s to shake the boredom off.",

	{subComfort, "", "feel-good"}: "A comforting choice with %s to lift your spirits.",
	{subComfort, "", "relaxed"}:   "An easy, cozy watch with %s to unwind to.",
	{subComfort, "", "laugh"}:     "Light and warm with %s - guaranteed smiles.",

	{subEmotion, "", "feel-good"}: "Loaded with %s - exactly the lift you asked for.",
	{subEmotion, "", "cry"}:       "An emotional journey with %s for a good cathartic release.",
	{subEmotion, "", "think"}:     "A thought-provoking movie with %s to engage your mind.",
	{subEmotion, "", "inspired"}:  "An uplifting film with %s to inspire you.",
	{subEmotion, "", "romantic"}:  "A tender pick with %s for the mood.",
	{subEmotion, "", "empowered"}: "A charge of %s to leave you standing taller.",

	{subIntensity, "", "thrilled"}: "An intense experience with %s to get your heart racing.",
	{subIntensity, "", "scared"}:   "Safe scares with %s to keep you on edge.",
	{subIntensity, "", "amazed"}:   "A spectacle of %s that earns its scale.",
}

const fallbackTemplate = "Featuring %s - a great match for your mood."

// explain builds the human-readable explanation for a scored movie from
// the sub-score that contributed most to its final score.
func (e *Engine) explain(s scored, mood, feeling string) string {
	dominant := dominantSubScore(e.weights, s)
	emotions := emotionsText(s.movie.Profile.Dominant)

	if template, ok := explanationTemplates[templateKey{dominant, mood, feeling}]; ok {
		return fmt.Sprintf(template, emotions)
	}
	if template, ok := explanationTemplates[templateKey{dominant, "", feeling}]; ok {
		return fmt.Sprintf(template, emotions)
	}
	return fmt.Sprintf(fallbackTemplate, emotions)
}

// dominantSubScore returns the sub-score with the largest weighted
// contribution; emotion wins exact ties, then intensity.
func dominantSubScore(w Weights, s scored) subScore {
	contributions := [3]float64{
		w.Emotion * s.emotion,
		w.Intensity * s.intensity,
		w.Comfort * s.comfort,
	}
	best := subEmotion
	for i := subIntensity; i <= subComfort; i++ {
		if contributions[i] > contributions[best] {
			best = i
		}
	}
	return best
}

// emotionsText formats up to two dominant emotions for display.
func emotionsText(dominant []emotion.Category) string {
	if len(dominant) == 0 {
		return "a balanced mix of emotions"
	}
	names := make([]string, 0, 2)
	for _, c := range dominant {
		names = append(names, c.Display())
		if len(names) == 2 {
			break
		}
	}
	return strings.Join(names, ", ")
}
