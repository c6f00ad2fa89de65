package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
)

// Qualifier is a coarse low/medium/high target for a derived scalar.
// The zero value means medium.
type Qualifier string

const (
	QualifierLow    Qualifier = "low"
	QualifierMedium Qualifier = "medium"
	QualifierHigh   Qualifier = "high"
)

// Midpoint returns the numeric target on the 0-10 scale implied by the
// qualifier. Unset qualifiers behave as medium.
func (q Qualifier) Midpoint() float64 {
	switch q {
	case QualifierLow:
		return 2.5
	case QualifierHigh:
		return 8
	default:
		return 5
	}
}

// MoodPreset describes how a user feels right now: target intensity and
// comfort qualifiers plus an optional primary emotion category.
type MoodPreset struct {
	Intensity Qualifier
	Comfort   Qualifier
	Primary   emotion.Category // empty when the mood has no primary
}

// ImpliedEmotion returns the emotion category a mood gravitates toward,
// used as a journey endpoint. Presets without an explicit primary fall
// back deterministically on their qualifiers.
func (p MoodPreset) ImpliedEmotion() emotion.Category {
	if p.Primary != "" {
		return p.Primary
	}
	switch {
	case p.Comfort == QualifierHigh || p.Intensity == QualifierLow:
		return emotion.CozyComfort
	case p.Intensity == QualifierHigh:
		return emotion.ThrillingTension
	default:
		return emotion.PureJoy
	}
}

// moodPresets maps each supported mood label to its preset. The table
// is immutable after process start.
var moodPresets = map[string]MoodPreset{
	"stressed":    {Intensity: QualifierLow, Comfort: QualifierHigh},
	"sad":         {Primary: emotion.CatharticSadness, Comfort: QualifierMedium},
	"bored":       {Intensity: QualifierHigh, Primary: emotion.ThrillingTension},
	"anxious":     {Intensity: QualifierLow, Comfort: QualifierHigh},
	"happy":       {Primary: emotion.PureJoy, Comfort: QualifierHigh},
	"lonely":      {Primary: emotion.RomanticWarmth, Comfort: QualifierHigh},
	"tired":       {Intensity: QualifierLow, Comfort: QualifierHigh},
	"curious":     {Primary: emotion.IntellectualStimulation},
	"romantic":    {Primary: emotion.RomanticWarmth},
	"adventurous": {Primary: emotion.AweWonder, Intensity: QualifierHigh},
}

// feelingPresets maps each desired-feeling label to its target emotion
// categories, most important first.
var feelingPresets = map[string][]emotion.Category{
	"feel-good": {emotion.PureJoy, emotion.CozyComfort, emotion.RomanticWarmth},
	"thrilled":  {emotion.ThrillingTension, emotion.ControlledFear, emotion.MindBlown},
	"inspired":  {emotion.TriumphantInspired, emotion.AweWonder, emotion.BittersweetHope},
	"cry":       {emotion.CatharticSadness, emotion.BittersweetHope},
	"laugh":     {emotion.PureJoy, emotion.CozyComfort},
	"think":     {emotion.IntellectualStimulation, emotion.MindBlown},
	"scared":    {emotion.ControlledFear, emotion.ThrillingTension},
	"romantic":  {emotion.RomanticWarmth, emotion.BittersweetHope},
	"empowered": {emotion.TriumphantInspired, emotion.RighteousAnger},
	"relaxed":   {emotion.CozyComfort, emotion.PureJoy},
	"amazed":    {emotion.AweWonder, emotion.MindBlown},
}

// MoodPresetFor resolves a mood label. Unrecognized labels fail with
// ErrInvalidPreset; the caller must supply one of the enumerated moods.
func MoodPresetFor(label string) (MoodPreset, error) {
	preset, ok := moodPresets[normalizeLabel(label)]
	if !ok {
		return MoodPreset{}, fmt.Errorf("%w: mood %q", ErrInvalidPreset, label)
	}
	return preset, nil
}

// FeelingCategories resolves a desired-feeling label to its ordered
// target categories. Unrecognized labels fail with ErrInvalidPreset.
func FeelingCategories(label string) ([]emotion.Category, error) {
	categories, ok := feelingPresets[normalizeLabel(label)]
	if !ok {
		return nil, fmt.Errorf("%w: feeling %q", ErrInvalidPreset, label)
	}
	return categories, nil
}

// Moods returns the supported mood labels, sorted.
func Moods() []string {
	labels := make([]string, 0, len(moodPresets))
	for label := range moodPresets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Feelings returns the supported desired-feeling labels, sorted.
func Feelings() []string {
	labels := make([]string, 0, len(feelingPresets))
	for label := range feelingPresets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
