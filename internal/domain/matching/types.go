package matching

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeContract JobType = "contract"
	JobTypeFullTime JobType = "full_time"
	JobTypePartTime JobType = "part_time"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeContract, JobTypeFullTime, JobTypePartTime:
		return true
	}
	return false
}

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable:
		return true
	}
	return false
}

// DurationBucket is a discretized contract length. Buckets are ordered; two
// buckets next to each other in durationOrder are adjacent.
type DurationBucket string

const (
	DurationUnderOneMonth DurationBucket = "lt_1_month"
	DurationOneToThree    DurationBucket = "1_3_months"
	DurationThreeToSix    DurationBucket = "3_6_months"
	DurationSixToTwelve   DurationBucket = "6_12_months"
	DurationOverTwelve    DurationBucket = "gt_12_months"
)

const durationBucketNotFound = -1

var durationOrder = []DurationBucket{
	DurationUnderOneMonth,
	DurationOneToThree,
	DurationThreeToSix,
	DurationSixToTwelve,
	DurationOverTwelve,
}

func (d DurationBucket) index() int {
	for i, b := range durationOrder {
		if b == d {
			return i
		}
	}
	return durationBucketNotFound
}

func (d DurationBucket) Valid() bool {
	return d.index() != durationBucketNotFound
}

// Adjacent reports whether d and other are neighbouring buckets.
func (d DurationBucket) Adjacent(other DurationBucket) bool {
	a, b := d.index(), other.index()
	if a == durationBucketNotFound || b == durationBucketNotFound {
		return false
	}
	diff := a - b
	return diff == 1 || diff == -1
}

type Skill struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Weight float64   `json:"weight,omitempty"`
}

type RateRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

// IsSet reports whether the range carries a usable upper bound.
func (r RateRange) IsSet() bool {
	return r.Max > 0
}

func (r RateRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

type Candidate struct {
	ID                uuid.UUID        `json:"id"`
	Skills            []Skill          `json:"skills"`
	Rate              RateRange        `json:"rate"`
	Location          string           `json:"location"`
	RemoteOnly        bool             `json:"remote_only"`
	JobTypes          []JobType        `json:"job_types"`
	ContractDurations []DurationBucket `json:"contract_durations"`
	Availability      Availability     `json:"availability"`
	Bio               string           `json:"bio"`
	PortfolioLinks    []string         `json:"portfolio_links"`
}

type Job struct {
	ID                uuid.UUID      `json:"id"`
	Title             string         `json:"title"`
	Company           string         `json:"company"`
	RequiredSkills    []Skill        `json:"required_skills"`
	PreferredSkills   []Skill        `json:"preferred_skills"`
	Rate              RateRange      `json:"rate"`
	Location          string         `json:"location"`
	Remote            bool           `json:"remote"`
	Type              JobType        `json:"type"`
	Duration          DurationBucket `json:"duration"`
	PostedAt          time.Time      `json:"posted_at"`
	ApplicationsCount int            `json:"applications_count"`
	Active            bool           `json:"active"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// OpenAt reports whether the posting is active and not expired at now.
func (j Job) OpenAt(now time.Time) bool {
	if !j.Active {
		return false
	}
	if j.ExpiresAt != nil && !j.ExpiresAt.After(now) {
		return false
	}
	return true
}

var ErrMalformedJob = errors.New("malformed job")

// Validate rejects records the extractors cannot score meaningfully.
func (j Job) Validate() error {
	if j.ID == uuid.Nil {
		return fmt.Errorf("%w: missing id", ErrMalformedJob)
	}
	if j.ApplicationsCount < 0 {
		return fmt.Errorf("%w: negative applications count %d", ErrMalformedJob, j.ApplicationsCount)
	}
	if j.Rate.Min < 0 || j.Rate.Max < 0 {
		return fmt.Errorf("%w: negative rate", ErrMalformedJob)
	}
	if j.Rate.IsSet() && j.Rate.Min > j.Rate.Max {
		return fmt.Errorf("%w: rate min %.2f above max %.2f", ErrMalformedJob, j.Rate.Min, j.Rate.Max)
	}
	if j.Type != "" && !j.Type.Valid() {
		return fmt.Errorf("%w: unknown job type %q", ErrMalformedJob, j.Type)
	}
	if j.Duration != "" && !j.Duration.Valid() {
		return fmt.Errorf("%w: unknown contract duration %q", ErrMalformedJob, j.Duration)
	}
	return nil
}

type Dimension string

const (
	DimensionSkills       Dimension = "skills"
	DimensionRate         Dimension = "rate"
	DimensionLocation     Dimension = "location"
	DimensionPreference   Dimension = "preference"
	DimensionAvailability Dimension = "availability"
	DimensionCompetition  Dimension = "competition"
	DimensionProfile      Dimension = "profile"
)

// Reason is a template key plus its parameters; see Catalog for rendering.
type Reason struct {
	Key    string            `json:"key"`
	Params map[string]string `json:"params,omitempty"`
}

type Feature struct {
	Dimension Dimension
	Score     int
	Matched   bool
	Reason    Reason
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type SubScores struct {
	Skills       int `json:"skills"`
	Rate         int `json:"rate"`
	Location     int `json:"location"`
	Preference   int `json:"preference"`
	Availability int `json:"availability"`
	Competition  int `json:"competition"`
	Profile      int `json:"profile"`
}

type MatchScore struct {
	CandidateID       uuid.UUID  `json:"candidate_id"`
	JobID             uuid.UUID  `json:"job_id"`
	OverallScore      int        `json:"overall_score"`
	SubScores         SubScores  `json:"sub_scores"`
	Confidence        Confidence `json:"confidence"`
	ReasonsMatched    []string   `json:"reasons_matched"`
	ReasonsNotMatched []string   `json:"reasons_not_matched"`
	PostedAt          time.Time  `json:"posted_at"`
	ApplicationsCount int        `json:"applications_count"`
	WeightsVersion    string     `json:"weights_version"`
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
