// Package emotion defines the emotion taxonomy and builds per-movie
// emotion profiles from classifier output and genre metadata.
package emotion

import "strings"

// Category identifies one of the fixed emotion categories that form the
// common vocabulary for profiles, presets, and matching.
type Category string

// The twelve emotion categories.
const (
	CatharticSadness        Category = "cathartic_sadness"
	ThrillingTension        Category = "thrilling_tension"
	MindBlown               Category = "mind_blown"
	PureJoy                 Category = "pure_joy"
	BittersweetHope         Category = "bittersweet_hope"
	RighteousAnger          Category = "righteous_anger"
	CozyComfort             Category = "cozy_comfort"
	ControlledFear          Category = "controlled_fear"
	IntellectualStimulation Category = "intellectual_stimulation"
	RomanticWarmth          Category = "romantic_warmth"
	TriumphantInspired      Category = "triumphant_inspired"
	AweWonder               Category = "awe_wonder"
)

// Categories lists every emotion category in declaration order.
// The order is load-bearing: ties between equally scored categories are
// broken by position in this slice.
var Categories = []Category{
	CatharticSadness,
	ThrillingTension,
	MindBlown,
	PureJoy,
	BittersweetHope,
	RighteousAnger,
	CozyComfort,
	ControlledFear,
	IntellectualStimulation,
	RomanticWarmth,
	TriumphantInspired,
	AweWonder,
}

// categoryOrder maps each category to its declaration position.
var categoryOrder = func() map[Category]int {
	m := make(map[Category]int, len(Categories))
	for i, c := range Categories {
		m[c] = i
	}
	return m
}()

// ParseCategory converts a string into a known Category.
// Matching is case-insensitive; unknown names return ok=false.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categoryOrder[c]
	return c, ok
}

// Order returns the declaration position of c, used as a stable
// tie-breaker when ranking categories by score.
func Order(c Category) int {
	return categoryOrder[c]
}

// Display returns a human-readable form of the category name.
func (c Category) Display() string {
	return strings.ReplaceAll(string(c), "_", " ")
}
