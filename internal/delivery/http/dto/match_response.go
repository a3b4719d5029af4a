package dto

import (
	"time"

	"gigmatch/internal/domain/matching"

	"github.com/google/uuid"
)

type SubScoresResponse struct {
	Skills       int `json:"skills"`
	Rate         int `json:"rate"`
	Location     int `json:"location"`
	Preference   int `json:"preference"`
	Availability int `json:"availability"`
	Competition  int `json:"competition"`
	Profile      int `json:"profile"`
}

type MatchScoreResponse struct {
	JobID             uuid.UUID         `json:"job_id"`
	OverallScore      int               `json:"overall_score"`
	SubScores         SubScoresResponse `json:"sub_scores"`
	Confidence        string            `json:"confidence"`
	ReasonsMatched    []string          `json:"reasons_matched"`
	ReasonsNotMatched []string          `json:"reasons_not_matched"`
	PostedAt          time.Time         `json:"posted_at"`
	ApplicationsCount int               `json:"applications_count"`
	WeightsVersion    string            `json:"weights_version"`
}

func NewMatchScoreResponse(s matching.MatchScore) MatchScoreResponse {
	matched := s.ReasonsMatched
	if matched == nil {
		matched = []string{}
	}
	notMatched := s.ReasonsNotMatched
	if notMatched == nil {
		notMatched = []string{}
	}
	return MatchScoreResponse{
		JobID:        s.JobID,
		OverallScore: s.OverallScore,
		SubScores: SubScoresResponse{
			Skills:       s.SubScores.Skills,
			Rate:         s.SubScores.Rate,
			Location:     s.SubScores.Location,
			Preference:   s.SubScores.Preference,
			Availability: s.SubScores.Availability,
			Competition:  s.SubScores.Competition,
			Profile:      s.SubScores.Profile,
		},
		Confidence:        string(s.Confidence),
		ReasonsMatched:    matched,
		ReasonsNotMatched: notMatched,
		PostedAt:          s.PostedAt,
		ApplicationsCount: s.ApplicationsCount,
		WeightsVersion:    s.WeightsVersion,
	}
}

func NewMatchScoreListResponse(scores []matching.MatchScore) []MatchScoreResponse {
	out := make([]MatchScoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, NewMatchScoreResponse(s))
	}
	return out
}
