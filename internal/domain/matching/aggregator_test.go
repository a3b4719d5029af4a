package matching

import (
	"errors"
	"testing"
)

func allFeatures(score int, matched bool) []Feature {
	out := make([]Feature, 0, len(reasonPriority))
	for _, d := range reasonPriority {
		out = append(out, Feature{Dimension: d, Score: score, Matched: matched})
	}
	return out
}

func TestAggregate(t *testing.T) {
	w := DefaultWeights()

	if got := Aggregate(w, allFeatures(100, true)); got != 100 {
		t.Fatalf("all 100 = %d", got)
	}
	if got := Aggregate(w, allFeatures(0, false)); got != 0 {
		t.Fatalf("all 0 = %d", got)
	}
	if got := Aggregate(w, allFeatures(150, true)); got != 100 {
		t.Fatalf("out of range inputs should clamp, got %d", got)
	}

	only := []Feature{{Dimension: DimensionSkills, Score: 100}}
	if got := Aggregate(w, only); got != 30 {
		t.Fatalf("skills only = %d, want 30", got)
	}
}

func TestWeights_Validate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}

	neg := DefaultWeights()
	neg.Skills = -0.1
	neg.Rate = 0.6
	if err := neg.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for negative weight, got %v", err)
	}

	short := DefaultWeights()
	short.Profile = 0
	if err := short.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for bad sum, got %v", err)
	}
}

func TestPolicy_Validate(t *testing.T) {
	p := DefaultPolicy()
	p.Saturation = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for zero saturation")
	}

	p = DefaultPolicy()
	p.RateGapSlope = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for zero slope")
	}
}

func TestConfidenceFor(t *testing.T) {
	cases := []struct {
		name     string
		overall  int
		skillsOK bool
		rateOK   bool
		want     Confidence
	}{
		{"high", 80, true, true, ConfidenceHigh},
		{"high score without rate fit", 90, true, false, ConfidenceMedium},
		{"high score without skills fit", 90, false, true, ConfidenceMedium},
		{"medium", 50, true, true, ConfidenceMedium},
		{"low", 49, true, true, ConfidenceLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			features := []Feature{
				{Dimension: DimensionSkills, Matched: tc.skillsOK},
				{Dimension: DimensionRate, Matched: tc.rateOK},
			}
			if got := ConfidenceFor(tc.overall, features); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}
