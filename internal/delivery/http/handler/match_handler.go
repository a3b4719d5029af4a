package handler

import (
	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/pkg/response"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Get("", h.ListMatches)
	grp.Get("/jobs/:job_id", h.GetMatch)
}

// ListMatches handles GET /me/matches?limit=&min_score=.
func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	candidateID, err := candidateIDFromCtx(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultMatchLimit)
	if err != nil {
		return err
	}
	minScore, err := parseQueryIntStrict(c, "min_score", 0)
	if err != nil {
		return err
	}

	scores, err := h.uc.GetMatchesForUser(c.Context(), candidateID, limit, minScore)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchScoreListResponse(scores))
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	candidateID, err := candidateIDFromCtx(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return badField("job_id", "must be a UUID", err)
	}

	score, err := h.uc.GetMatchForJob(c.Context(), candidateID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchScoreResponse(score))
}
