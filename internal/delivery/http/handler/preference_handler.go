package handler

import (
	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/domain/matching"
	"gigmatch/internal/pkg/response"
	"gigmatch/internal/repository"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PreferenceHandler struct {
	uc usecase.PreferenceUsecase
}

// updatePreferencesRequest leaves omitted fields untouched; an explicit empty
// list clears the stored one.
type updatePreferencesRequest struct {
	JobTypes          *[]string `json:"job_types"`
	ContractDurations *[]string `json:"contract_durations"`
	RateMin           *float64  `json:"rate_min"`
	RateMax           *float64  `json:"rate_max"`
	Currency          *string   `json:"currency"`
	RemoteOnly        *bool     `json:"remote_only"`
	Availability      *string   `json:"availability"`
}

func (r updatePreferencesRequest) empty() bool {
	return r.JobTypes == nil && r.ContractDurations == nil && r.RateMin == nil && r.RateMax == nil &&
		r.Currency == nil && r.RemoteOnly == nil && r.Availability == nil
}

func (r updatePreferencesRequest) toUpdate() repository.PreferencesUpdate {
	upd := repository.PreferencesUpdate{
		RateMin:    r.RateMin,
		RateMax:    r.RateMax,
		Currency:   r.Currency,
		RemoteOnly: r.RemoteOnly,
	}
	if r.JobTypes != nil {
		types := make([]matching.JobType, 0, len(*r.JobTypes))
		for _, t := range *r.JobTypes {
			types = append(types, matching.JobType(t))
		}
		upd.JobTypes = &types
	}
	if r.ContractDurations != nil {
		durations := make([]matching.DurationBucket, 0, len(*r.ContractDurations))
		for _, d := range *r.ContractDurations {
			durations = append(durations, matching.DurationBucket(d))
		}
		upd.ContractDurations = &durations
	}
	if r.Availability != nil {
		a := matching.Availability(*r.Availability)
		upd.Availability = &a
	}
	return upd
}

func NewPreferenceHandler(uc usecase.PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

func (h *PreferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.UpdatePreferences)
}

func (h *PreferenceHandler) GetPreferences(c fiber.Ctx) error {
	candidateID, err := candidateIDFromCtx(c)
	if err != nil {
		return err
	}

	prefs, err := h.uc.GetPreferences(c.Context(), candidateID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPreferencesResponse(prefs))
}

func (h *PreferenceHandler) UpdatePreferences(c fiber.Ctx) error {
	candidateID, err := candidateIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updatePreferencesRequest
	if err := c.Bind().Body(&req); err != nil {
		return badField("body", "invalid JSON payload", err)
	}
	if req.empty() {
		return badField("body", "at least one field is required", nil)
	}

	prefs, err := h.uc.UpdatePreferences(c.Context(), candidateID, req.toUpdate())
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPreferencesResponse(prefs))
}
