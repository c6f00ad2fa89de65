package recommend

import (
	"fmt"

	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
)

// DefaultJourneySteps is the standard mood journey length.
const DefaultJourneySteps = 3

// MoodJourney builds an ordered sequence of movies that eases the
// viewer from one mood to another. Each step targets an emotion vector
// interpolated linearly between the categories implied by the start and
// end presets, and picks the best-matching movie not yet used.
//
// When fewer than steps candidates have a nonzero match, the partial
// journey is returned together with ErrInsufficientCatalog.
func (e *Engine) MoodJourney(catalog []Movie, startMood, endMood string, steps int) ([]MatchResult, error) {
	start, err := MoodPresetFor(startMood)
	if err != nil {
		return nil, err
	}
	end, err := MoodPresetFor(endMood)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(catalog, steps); err != nil {
		return nil, err
	}

	from := start.ImpliedEmotion()
	to := end.ImpliedEmotion()

	used := make(map[int]bool, steps)
	journey := make([]MatchResult, 0, steps)

	for step := 0; step < steps; step++ {
		target := interpolatedTarget(from, to, step, steps)

		best := -1
		var bestScore float64
		for i := range catalog {
			if used[i] {
				continue
			}
			score := targetMatch(catalog[i].Profile, target)
			if score <= 0 {
				continue
			}
			if best == -1 || score > bestScore || (score == bestScore && betterTie(&catalog[i], &catalog[best])) {
				best = i
				bestScore = score
			}
		}

		if best == -1 {
			return journey, fmt.Errorf("%w: found %d of %d journey steps from %q to %q",
				ErrInsufficientCatalog, len(journey), steps, startMood, endMood)
		}

		used[best] = true
		journey = append(journey, MatchResult{
			Movie:       &catalog[best],
			MatchScore:  bestScore,
			Explanation: journeyExplanation(step, steps, &catalog[best], startMood, endMood),
		})
	}
	return journey, nil
}

// interpolatedTarget blends the start and end categories for one step.
// The first step sits fully on the start emotion and the last fully on
// the end emotion; a single-step journey jumps straight to the end.
func interpolatedTarget(from, to emotion.Category, step, steps int) map[emotion.Category]float64 {
	alpha := 1.0
	if steps > 1 {
		alpha = float64(step) / float64(steps-1)
	}
	if from == to {
		return map[emotion.Category]float64{to: 1}
	}
	target := make(map[emotion.Category]float64, 2)
	if alpha < 1 {
		target[from] = 1 - alpha
	}
	if alpha > 0 {
		target[to] = alpha
	}
	return target
}

// targetMatch scores a profile against a weighted target vector,
// normalized to [0,1] by the target weight sum.
func targetMatch(p emotion.Profile, target map[emotion.Category]float64) float64 {
	var sum, weightSum float64
	for category, weight := range target {
		sum += weight * p.Scores[category]
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// betterTie prefers the movie with higher catharsis; earlier catalog
// position wins otherwise because iteration already runs in order.
func betterTie(candidate, incumbent *Movie) bool {
	return candidate.Profile.Catharsis > incumbent.Profile.Catharsis
}

func journeyExplanation(step, steps int, movie *Movie, startMood, endMood string) string {
	emotions := emotionsText(movie.Profile.Dominant)
	switch {
	case step == 0:
		return fmt.Sprintf("Step 1 of %d: meets you where you are with %s.", steps, emotions)
	case step == steps-1:
		return fmt.Sprintf("Step %d of %d: lands the shift to %s with %s.", steps, steps, normalizeLabel(endMood), emotions)
	default:
		return fmt.Sprintf("Step %d of %d: bridges %s toward %s with %s.", step+1, steps,
			normalizeLabel(startMood), normalizeLabel(endMood), emotions)
	}
}
