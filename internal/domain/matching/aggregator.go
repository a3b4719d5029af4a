package matching

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultWeightsVersion = "2024-01"
	DefaultRateGapSlope   = 1.0

	highConfidenceScore   = 75
	mediumConfidenceScore = 50
	weightSumTolerance    = 1e-6
)

var ErrInvalidWeights = errors.New("invalid weights")

// Weights is the versioned scoring policy; the fields must sum to 1.
type Weights struct {
	Version      string  `json:"version"`
	Skills       float64 `json:"skills"`
	Rate         float64 `json:"rate"`
	Location     float64 `json:"location"`
	Preference   float64 `json:"preference"`
	Availability float64 `json:"availability"`
	Competition  float64 `json:"competition"`
	Profile      float64 `json:"profile"`
}

func DefaultWeights() Weights {
	return Weights{
		Version:      DefaultWeightsVersion,
		Skills:       0.30,
		Rate:         0.20,
		Location:     0.15,
		Preference:   0.10,
		Availability: 0.10,
		Competition:  0.05,
		Profile:      0.10,
	}
}

func (w Weights) byDimension() map[Dimension]float64 {
	return map[Dimension]float64{
		DimensionSkills:       w.Skills,
		DimensionRate:         w.Rate,
		DimensionLocation:     w.Location,
		DimensionPreference:   w.Preference,
		DimensionAvailability: w.Availability,
		DimensionCompetition:  w.Competition,
		DimensionProfile:      w.Profile,
	}
}

func (w Weights) Validate() error {
	sum := 0.0
	for d, v := range w.byDimension() {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeights, d, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Policy groups every tunable the engine reads.
type Policy struct {
	Weights      Weights `json:"weights"`
	Saturation   int     `json:"saturation"`
	RateGapSlope float64 `json:"rate_gap_slope"`
}

func DefaultPolicy() Policy {
	return Policy{
		Weights:      DefaultWeights(),
		Saturation:   DefaultSaturation,
		RateGapSlope: DefaultRateGapSlope,
	}
}

func (p Policy) Validate() error {
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if p.Saturation <= 0 {
		return fmt.Errorf("saturation must be positive, got %d", p.Saturation)
	}
	if p.RateGapSlope <= 0 {
		return fmt.Errorf("rate gap slope must be positive, got %v", p.RateGapSlope)
	}
	return nil
}

// Aggregate combines sub-scores into the overall score using w.
func Aggregate(w Weights, features []Feature) int {
	weights := w.byDimension()
	total := 0.0
	for _, f := range features {
		total += weights[f.Dimension] * float64(clampInt(f.Score, 0, 100))
	}
	return roundScore(total)
}

// ConfidenceFor derives the tier. High additionally requires the skills and
// rate features to be matched.
func ConfidenceFor(overall int, features []Feature) Confidence {
	var skillsOK, rateOK bool
	for _, f := range features {
		switch f.Dimension {
		case DimensionSkills:
			skillsOK = f.Matched
		case DimensionRate:
			rateOK = f.Matched
		}
	}
	switch {
	case overall >= highConfidenceScore && skillsOK && rateOK:
		return ConfidenceHigh
	case overall >= mediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
