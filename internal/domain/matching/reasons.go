package matching

import (
	"sort"
	"strings"
)

const MaxReasonsPerList = 5

const (
	ReasonSkillsMatched          = "skills.matched"
	ReasonSkillsMissing          = "skills.missing"
	ReasonSkillsPreferredMissing = "skills.preferred_missing"
	ReasonSkillsUnspecified      = "skills.unspecified"

	ReasonRateMatched          = "rate.matched"
	ReasonRateNearBelow        = "rate.near_below"
	ReasonRateNearAbove        = "rate.near_above"
	ReasonRatePartial          = "rate.partial"
	ReasonRateBelow            = "rate.below"
	ReasonRateAbove            = "rate.above"
	ReasonRateUnspecified      = "rate.unspecified"
	ReasonRateCurrencyMismatch = "rate.currency_mismatch"

	ReasonLocationRemote         = "location.remote"
	ReasonLocationSame           = "location.same"
	ReasonLocationRegion         = "location.region"
	ReasonLocationOnsiteRequired = "location.onsite_required"
	ReasonLocationMismatch       = "location.mismatch"

	ReasonAvailabilityAvailable   = "availability.available"
	ReasonAvailabilityBusy        = "availability.busy"
	ReasonAvailabilityUnavailable = "availability.unavailable"

	ReasonPreferenceMatched  = "preference.matched"
	ReasonPreferenceMismatch = "preference.mismatch"

	ReasonCompetitionLow  = "competition.low"
	ReasonCompetitionHigh = "competition.high"

	ReasonProfileComplete       = "profile.complete"
	ReasonProfileMostlyComplete = "profile.mostly_complete"
	ReasonProfileIncomplete     = "profile.incomplete"
)

// Catalog maps reason keys to templates with {param} placeholders.
type Catalog map[string]string

func DefaultCatalog() Catalog {
	return Catalog{
		ReasonSkillsMatched:          "Matches your skills: {skills}",
		ReasonSkillsMissing:          "Missing required skills: {skills}",
		ReasonSkillsPreferredMissing: "Missing preferred skills: {skills}",
		ReasonSkillsUnspecified:      "Job lists no skills",

		ReasonRateMatched:          "Rate {job_range} fits your range {candidate_range}",
		ReasonRateNearBelow:        "Rate {job_range} is {gap} below your range {candidate_range}, within tolerance",
		ReasonRateNearAbove:        "Rate {job_range} is {gap} above your range {candidate_range}, within tolerance",
		ReasonRatePartial:          "Rate {job_range} only partly overlaps your range {candidate_range}",
		ReasonRateBelow:            "Rate {job_range} is {gap} below your range {candidate_range}",
		ReasonRateAbove:            "Rate {job_range} is {gap} above your range {candidate_range}",
		ReasonRateUnspecified:      "Hourly rate not specified",
		ReasonRateCurrencyMismatch: "Paid in {job_currency}, you quote in {candidate_currency}",

		ReasonLocationRemote:         "Remote position",
		ReasonLocationSame:           "Located in {location}",
		ReasonLocationRegion:         "In your region ({region})",
		ReasonLocationOnsiteRequired: "On-site in {location}, you prefer remote only",
		ReasonLocationMismatch:       "On-site in {location}",

		ReasonAvailabilityAvailable:   "You are available now",
		ReasonAvailabilityBusy:        "You are marked busy; capacity may be limited",
		ReasonAvailabilityUnavailable: "You are marked unavailable",

		ReasonPreferenceMatched:  "Matches your job preferences",
		ReasonPreferenceMismatch: "Outside your preferences: {details}",

		ReasonCompetitionLow:  "Low competition: {count} applicants",
		ReasonCompetitionHigh: "Highly competitive: {count} applicants already",

		ReasonProfileComplete:       "Your profile is complete",
		ReasonProfileMostlyComplete: "Profile nearly complete, add {missing}",
		ReasonProfileIncomplete:     "Incomplete profile, add {missing}",
	}
}

// Render fills the template for r. Unknown keys render as the key itself.
func (c Catalog) Render(r Reason) string {
	tpl, ok := c[r.Key]
	if !ok {
		return r.Key
	}
	if len(r.Params) == 0 {
		return tpl
	}

	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", r.Params[k])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// reasonPriority is the order features are walked in; earlier dimensions
// survive truncation.
var reasonPriority = []Dimension{
	DimensionSkills,
	DimensionRate,
	DimensionLocation,
	DimensionAvailability,
	DimensionPreference,
	DimensionCompetition,
	DimensionProfile,
}

// GenerateReasons splits features into matched and not-matched reason lists.
// Each dimension lands in exactly one list and each list holds at most
// MaxReasonsPerList entries.
func GenerateReasons(features []Feature) (matched, notMatched []Reason) {
	byDim := make(map[Dimension]Feature, len(features))
	for _, f := range features {
		byDim[f.Dimension] = f
	}

	matched = make([]Reason, 0, MaxReasonsPerList)
	notMatched = make([]Reason, 0, MaxReasonsPerList)
	for _, d := range reasonPriority {
		f, ok := byDim[d]
		if !ok || f.Reason.Key == "" {
			continue
		}
		if f.Matched {
			if len(matched) < MaxReasonsPerList {
				matched = append(matched, f.Reason)
			}
			continue
		}
		if len(notMatched) < MaxReasonsPerList {
			notMatched = append(notMatched, f.Reason)
		}
	}
	return matched, notMatched
}

func (c Catalog) RenderAll(reasons []Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, c.Render(r))
	}
	return out
}
