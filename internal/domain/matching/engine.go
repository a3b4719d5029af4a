package matching

// Engine scores one (candidate, job) pair. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	policy  Policy
	catalog Catalog
}

func NewEngine(policy Policy, catalog Catalog) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{policy: policy, catalog: catalog}, nil
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Features runs every extractor in reason priority order.
func (e *Engine) Features(c Candidate, j Job) []Feature {
	return []Feature{
		SkillsScore(c, j),
		RateScore(c, j, e.policy.RateGapSlope),
		LocationScore(c, j),
		AvailabilityScore(c, j),
		PreferenceScore(c, j),
		CompetitionScore(c, j, e.policy.Saturation),
		ProfileScore(c, j),
	}
}

func (e *Engine) Score(c Candidate, j Job) MatchScore {
	features := e.Features(c, j)
	overall := Aggregate(e.policy.Weights, features)
	matched, notMatched := GenerateReasons(features)

	return MatchScore{
		CandidateID:       c.ID,
		JobID:             j.ID,
		OverallScore:      overall,
		SubScores:         subScores(features),
		Confidence:        ConfidenceFor(overall, features),
		ReasonsMatched:    e.catalog.RenderAll(matched),
		ReasonsNotMatched: e.catalog.RenderAll(notMatched),
		PostedAt:          j.PostedAt,
		ApplicationsCount: j.ApplicationsCount,
		WeightsVersion:    e.policy.Weights.Version,
	}
}

func subScores(features []Feature) SubScores {
	var s SubScores
	for _, f := range features {
		switch f.Dimension {
		case DimensionSkills:
			s.Skills = f.Score
		case DimensionRate:
			s.Rate = f.Score
		case DimensionLocation:
			s.Location = f.Score
		case DimensionPreference:
			s.Preference = f.Score
		case DimensionAvailability:
			s.Availability = f.Score
		case DimensionCompetition:
			s.Competition = f.Score
		case DimensionProfile:
			s.Profile = f.Score
		}
	}
	return s
}
