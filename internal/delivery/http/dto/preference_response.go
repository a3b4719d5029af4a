package dto

import (
	"time"

	"gigmatch/internal/repository"

	"github.com/google/uuid"
)

type RateRangeResponse struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type PreferencesResponse struct {
	CandidateID       uuid.UUID         `json:"candidate_id"`
	JobTypes          []string          `json:"job_types"`
	ContractDurations []string          `json:"contract_durations"`
	Rate              RateRangeResponse `json:"rate"`
	RemoteOnly        bool              `json:"remote_only"`
	Availability      string            `json:"availability"`
	UpdatedAt         *time.Time        `json:"updated_at"`
}

func NewPreferencesResponse(p repository.Preferences) PreferencesResponse {
	jobTypes := make([]string, 0, len(p.JobTypes))
	for _, t := range p.JobTypes {
		jobTypes = append(jobTypes, string(t))
	}
	durations := make([]string, 0, len(p.ContractDurations))
	for _, d := range p.ContractDurations {
		durations = append(durations, string(d))
	}

	out := PreferencesResponse{
		CandidateID:       p.CandidateID,
		JobTypes:          jobTypes,
		ContractDurations: durations,
		Rate: RateRangeResponse{
			Min:      p.Rate.Min,
			Max:      p.Rate.Max,
			Currency: p.Rate.Currency,
		},
		RemoteOnly:   p.RemoteOnly,
		Availability: string(p.Availability),
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
