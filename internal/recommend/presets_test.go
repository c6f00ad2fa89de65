package recommend

import (
	"errors"
	"testing"

	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
)

func TestMoodPresetFor(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    MoodPreset
		wantErr error
	}{
		{
			name:  "stressed",
			label: "stressed",
			want:  MoodPreset{Intensity: QualifierLow, Comfort: QualifierHigh},
		},
		{
			name:  "case insensitive with spaces",
			label: "  Bored ",
			want:  MoodPreset{Intensity: QualifierHigh, Primary: emotion.ThrillingTension},
		},
		{
			name:    "unknown mood",
			label:   "furious",
			wantErr: ErrInvalidPreset,
		},
		{
			name:    "empty label",
			label:   "",
			wantErr: ErrInvalidPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoodPresetFor(tt.label)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("MoodPresetFor(%q) error = %v, want %v", tt.label, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MoodPresetFor(%q) unexpected error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("MoodPresetFor(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}

func TestFeelingCategories(t *testing.T) {
	categories, err := FeelingCategories("feel-good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []emotion.Category{emotion.PureJoy, emotion.CozyComfort, emotion.RomanticWarmth}
	if len(categories) != len(want) {
		t.Fatalf("got %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("categories[%d] = %s, want %s", i, categories[i], want[i])
		}
	}

	if _, err := FeelingCategories("bamboozled"); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("unknown feeling error = %v, want ErrInvalidPreset", err)
	}
}

func TestEnumeratedLabels(t *testing.T) {
	moods := Moods()
	if len(moods) != 10 {
		t.Errorf("Moods() has %d labels, want 10", len(moods))
	}
	feelings := Feelings()
	if len(feelings) != 11 {
		t.Errorf("Feelings() has %d labels, want 11", len(feelings))
	}

	// Every enumerated label must resolve.
	for _, m := range moods {
		if _, err := MoodPresetFor(m); err != nil {
			t.Errorf("mood %q does not resolve: %v", m, err)
		}
	}
	for _, f := range feelings {
		if _, err := FeelingCategories(f); err != nil {
			t.Errorf("feeling %q does not resolve: %v", f, err)
		}
	}
}

func TestQualifierMidpoint(t *testing.T) {
	tests := []struct {
		q    Qualifier
		want float64
	}{
		{QualifierLow, 2.5},
		{QualifierMedium, 5},
		{QualifierHigh, 8},
		{Qualifier(""), 5}, // unset behaves as medium
	}
	for _, tt := range tests {
		if got := tt.q.Midpoint(); got != tt.want {
			t.Errorf("Midpoint(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestImpliedEmotion(t *testing.T) {
	tests := []struct {
		name string
		mood string
		want emotion.Category
	}{
		{"primary wins", "sad", emotion.CatharticSadness},
		{"high comfort fallback", "stressed", emotion.CozyComfort},
		{"explicit primary on high intensity", "bored", emotion.ThrillingTension},
		{"happy", "happy", emotion.PureJoy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := MoodPresetFor(tt.mood)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := preset.ImpliedEmotion(); got != tt.want {
				t.Errorf("ImpliedEmotion(%s) = %s, want %s", tt.mood, got, tt.want)
			}
		})
	}
}
