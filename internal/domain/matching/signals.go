package matching

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultSaturation is the applicant count at which competition reaches zero.
	DefaultSaturation       = 25
	competitionMatchedScore = 50
	profileMatchedScore     = 75
	minProfileSkills        = 3
)

func AvailabilityScore(c Candidate, _ Job) Feature {
	f := Feature{Dimension: DimensionAvailability}
	switch c.Availability {
	case AvailabilityAvailable:
		f.Score = 100
		f.Reason = Reason{Key: ReasonAvailabilityAvailable}
	case AvailabilityBusy:
		f.Score = 40
		f.Reason = Reason{Key: ReasonAvailabilityBusy}
	default:
		f.Reason = Reason{Key: ReasonAvailabilityUnavailable}
	}
	f.Matched = f.Score >= 40
	return f
}

// CompetitionScore falls linearly from 100 at zero applicants to 0 at
// saturation applicants.
func CompetitionScore(_ Candidate, j Job, saturation int) Feature {
	if saturation <= 0 {
		saturation = DefaultSaturation
	}
	n := maxInt(j.ApplicationsCount, 0)
	f := Feature{
		Dimension: DimensionCompetition,
		Score:     roundScore(100 * math.Max(0, 1-float64(n)/float64(saturation))),
	}
	f.Matched = f.Score >= competitionMatchedScore

	params := map[string]string{"count": strconv.Itoa(n)}
	if f.Matched {
		f.Reason = Reason{Key: ReasonCompetitionLow, Params: params}
	} else {
		f.Reason = Reason{Key: ReasonCompetitionHigh, Params: params}
	}
	return f
}

func ProfileScore(c Candidate, _ Job) Feature {
	var missing []string
	score := 0

	if strings.TrimSpace(c.Bio) != "" {
		score += 25
	} else {
		missing = append(missing, "bio")
	}
	if c.Rate.IsSet() {
		score += 25
	} else {
		missing = append(missing, "hourly rate")
	}
	if len(c.Skills) >= minProfileSkills {
		score += 25
	} else {
		missing = append(missing, "at least 3 skills")
	}
	if strings.TrimSpace(c.Location) != "" {
		score += 25
	} else {
		missing = append(missing, "location")
	}

	f := Feature{Dimension: DimensionProfile, Score: score, Matched: score >= profileMatchedScore}
	if len(missing) == 0 {
		f.Reason = Reason{Key: ReasonProfileComplete}
	} else if f.Matched {
		f.Reason = Reason{Key: ReasonProfileMostlyComplete, Params: map[string]string{"missing": strings.Join(missing, ", ")}}
	} else {
		f.Reason = Reason{Key: ReasonProfileIncomplete, Params: map[string]string{"missing": strings.Join(missing, ", ")}}
	}
	return f
}

func roundScore(v float64) int {
	return clampInt(int(math.Round(v)), 0, 100)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
