package matching

import "strings"

const (
	locationSameRegionScore = 40
	locationMatchThreshold  = 40
)

func LocationScore(c Candidate, j Job) Feature {
	f := Feature{Dimension: DimensionLocation}

	if j.Remote {
		f.Score = 100
		f.Matched = true
		f.Reason = Reason{Key: ReasonLocationRemote}
		return f
	}

	jobLoc := strings.TrimSpace(j.Location)
	params := map[string]string{"location": jobLoc}

	if c.RemoteOnly {
		f.Reason = Reason{Key: ReasonLocationOnsiteRequired, Params: params}
		return f
	}

	candLoc := strings.TrimSpace(c.Location)
	switch {
	case jobLoc != "" && candLoc != "" && normalizeName(jobLoc) == normalizeName(candLoc):
		f.Score = 100
		f.Reason = Reason{Key: ReasonLocationSame, Params: params}
	case sameRegion(candLoc, jobLoc):
		f.Score = locationSameRegionScore
		f.Reason = Reason{Key: ReasonLocationRegion, Params: map[string]string{"location": jobLoc, "region": region(jobLoc)}}
	default:
		f.Reason = Reason{Key: ReasonLocationMismatch, Params: params}
	}
	f.Matched = f.Score >= locationMatchThreshold
	return f
}

// region returns the trailing segment of a "City, Region" string, or "" when
// the value has no region part.
func region(loc string) string {
	i := strings.LastIndex(loc, ",")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(loc[i+1:])
}

func sameRegion(a, b string) bool {
	ra, rb := normalizeName(region(a)), normalizeName(region(b))
	return ra != "" && ra == rb
}
