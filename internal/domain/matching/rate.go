package matching

import (
	"math"
	"strconv"
	"strings"
)

const rateMatchThreshold = 60

// RateScore compares the candidate's desired hourly range with the job's.
// Overlapping ranges score by the overlap relative to the narrower range;
// disjoint ranges decay linearly with the gap as a share of the candidate's
// midpoint rate, scaled by slope.
func RateScore(c Candidate, j Job, slope float64) Feature {
	f := Feature{Dimension: DimensionRate}

	if !c.Rate.IsSet() || !j.Rate.IsSet() {
		f.Score = 50
		f.Reason = Reason{Key: ReasonRateUnspecified}
		return f
	}

	cc := strings.ToUpper(strings.TrimSpace(c.Rate.Currency))
	jc := strings.ToUpper(strings.TrimSpace(j.Rate.Currency))
	if cc != "" && jc != "" && cc != jc {
		f.Reason = Reason{Key: ReasonRateCurrencyMismatch, Params: map[string]string{"candidate_currency": cc, "job_currency": jc}}
		return f
	}

	lo := math.Max(c.Rate.Min, j.Rate.Min)
	hi := math.Min(c.Rate.Max, j.Rate.Max)

	params := map[string]string{
		"job_range":       formatRange(j.Rate),
		"candidate_range": formatRange(c.Rate),
	}

	overlaps := hi >= lo
	if overlaps {
		overlap := hi - lo
		narrowest := math.Min(c.Rate.Max-c.Rate.Min, j.Rate.Max-j.Rate.Min)
		if narrowest <= 0 {
			f.Score = 100
		} else {
			f.Score = roundScore(100 * overlap / narrowest)
		}
	} else {
		gap := lo - hi
		mid := c.Rate.Midpoint()
		if mid > 0 {
			if slope <= 0 {
				slope = 1
			}
			f.Score = roundScore(100 - slope*100*gap/mid)
		}
		params["gap"] = formatAmount(gap)
	}

	f.Matched = f.Score >= rateMatchThreshold
	switch {
	case f.Matched && overlaps:
		f.Reason = Reason{Key: ReasonRateMatched, Params: params}
	case f.Matched && j.Rate.Max < c.Rate.Min:
		f.Reason = Reason{Key: ReasonRateNearBelow, Params: params}
	case f.Matched:
		f.Reason = Reason{Key: ReasonRateNearAbove, Params: params}
	case j.Rate.Max < c.Rate.Min:
		f.Reason = Reason{Key: ReasonRateBelow, Params: params}
	case j.Rate.Min > c.Rate.Max:
		f.Reason = Reason{Key: ReasonRateAbove, Params: params}
	default:
		f.Reason = Reason{Key: ReasonRatePartial, Params: params}
	}
	return f
}

func formatRange(r RateRange) string {
	out := formatAmount(r.Min) + "-" + formatAmount(r.Max)
	if cur := strings.ToUpper(strings.TrimSpace(r.Currency)); cur != "" {
		out += " " + cur
	}
	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
