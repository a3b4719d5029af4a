package matching

import "strings"

// PreferenceScore averages three indicators: job type, contract duration and
// remote compliance. An empty preference list on the candidate side imposes no
// constraint.
func PreferenceScore(c Candidate, j Job) Feature {
	typeScore := jobTypeIndicator(c.JobTypes, j.Type)
	durationScore := durationIndicator(c.ContractDurations, j.Duration)
	remoteScore := 100
	if c.RemoteOnly && !j.Remote {
		remoteScore = 0
	}

	f := Feature{
		Dimension: DimensionPreference,
		Score:     roundScore(float64(typeScore+durationScore+remoteScore) / 3),
		Matched:   typeScore > 0 && durationScore > 0 && remoteScore > 0,
	}

	if f.Matched {
		f.Reason = Reason{Key: ReasonPreferenceMatched}
		return f
	}

	var misses []string
	if typeScore == 0 {
		misses = append(misses, "job type "+displayValue(string(j.Type)))
	}
	if durationScore == 0 {
		misses = append(misses, "duration "+displayValue(string(j.Duration)))
	}
	if remoteScore == 0 {
		misses = append(misses, "on-site work")
	}
	f.Reason = Reason{Key: ReasonPreferenceMismatch, Params: map[string]string{"details": strings.Join(misses, ", ")}}
	return f
}

func jobTypeIndicator(preferred []JobType, t JobType) int {
	if len(preferred) == 0 {
		return 100
	}
	for _, p := range preferred {
		if p == t {
			return 100
		}
	}
	return 0
}

func durationIndicator(preferred []DurationBucket, d DurationBucket) int {
	if len(preferred) == 0 {
		return 100
	}
	if d == "" {
		return 50
	}
	best := 0
	for _, p := range preferred {
		if p == d {
			return 100
		}
		if p.Adjacent(d) {
			best = 50
		}
	}
	return best
}

func displayValue(v string) string {
	if v == "" {
		return "unspecified"
	}
	return strings.ReplaceAll(v, "_", " ")
}
