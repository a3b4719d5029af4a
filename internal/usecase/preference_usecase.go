package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gigmatch/internal/database"
	"gigmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PreferenceUsecase interface {
	GetPreferences(ctx context.Context, candidateID uuid.UUID) (repository.Preferences, error)
	UpdatePreferences(ctx context.Context, candidateID uuid.UUID, upd repository.PreferencesUpdate) (repository.Preferences, error)
}

type PreferenceService struct {
	repo   repository.PreferenceRepository
	cache  ScoreCache
	logger *zap.Logger
}

func NewPreferenceUsecase(repo repository.PreferenceRepository, cache ScoreCache, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, cache: cache, logger: logger}
}

func (u *PreferenceService) GetPreferences(ctx context.Context, candidateID uuid.UUID) (repository.Preferences, error) {
	if candidateID == uuid.Nil {
		return repository.Preferences{}, ErrUnauthorized
	}

	p, err := u.repo.Find(ctx, candidateID)
	if err != nil {
		return repository.Preferences{}, u.storeError("find preferences", err)
	}
	return p, nil
}

// UpdatePreferences validates upd against the stored snapshot and persists
// it as one write. Omitted fields keep their current values.
func (u *PreferenceService) UpdatePreferences(ctx context.Context, candidateID uuid.UUID, upd repository.PreferencesUpdate) (repository.Preferences, error) {
	if candidateID == uuid.Nil {
		return repository.Preferences{}, ErrUnauthorized
	}

	upd = normalizeUpdate(upd)
	if err := validateUpdate(upd); err != nil {
		return repository.Preferences{}, err
	}

	if upd.RateMin != nil || upd.RateMax != nil {
		current, err := u.repo.Find(ctx, candidateID)
		if err != nil {
			return repository.Preferences{}, u.storeError("find preferences", err)
		}
		if err := validateMergedRate(current, upd); err != nil {
			return repository.Preferences{}, err
		}
	}

	saved, err := u.repo.Save(ctx, candidateID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesConstraint) {
			return repository.Preferences{}, newValidationError("rate_min", "preferences rejected by storage constraints")
		}
		return repository.Preferences{}, u.storeError("save preferences", err)
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, MatchCachePattern(candidateID)); err != nil {
			u.logger.Warn("score cache invalidation failed",
				zap.String("candidate_id", candidateID.String()),
				zap.Error(err),
			)
		}
	}
	return saved, nil
}

func (u *PreferenceService) storeError(op string, err error) error {
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return ErrCandidateNotFound
	}
	if errors.Is(err, database.ErrUnavailable) {
		u.logger.Error("preference store unavailable", zap.String("op", op), zap.Error(err))
		return newInfrastructureError(op, err)
	}
	u.logger.Error("preference store failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func normalizeUpdate(upd repository.PreferencesUpdate) repository.PreferencesUpdate {
	if upd.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*upd.Currency))
		upd.Currency = &c
	}
	if upd.JobTypes != nil {
		types := dedupe(*upd.JobTypes)
		upd.JobTypes = &types
	}
	if upd.ContractDurations != nil {
		durations := dedupe(*upd.ContractDurations)
		upd.ContractDurations = &durations
	}
	return upd
}

func validateUpdate(upd repository.PreferencesUpdate) error {
	if upd.JobTypes != nil {
		for _, t := range *upd.JobTypes {
			if !t.Valid() {
				return newValidationError("job_types", "unknown job type "+string(t))
			}
		}
	}
	if upd.ContractDurations != nil {
		for _, d := range *upd.ContractDurations {
			if !d.Valid() {
				return newValidationError("contract_durations", "unknown contract duration "+string(d))
			}
		}
	}
	if upd.Availability != nil && !upd.Availability.Valid() {
		return newValidationError("availability", "unknown availability "+string(*upd.Availability))
	}
	if upd.RateMin != nil && (*upd.RateMin < 0 || math.IsNaN(*upd.RateMin) || math.IsInf(*upd.RateMin, 0)) {
		return newValidationError("rate_min", "must be a non-negative number")
	}
	if upd.RateMax != nil && (*upd.RateMax < 0 || math.IsNaN(*upd.RateMax) || math.IsInf(*upd.RateMax, 0)) {
		return newValidationError("rate_max", "must be a non-negative number")
	}
	if upd.RateMin != nil && upd.RateMax != nil && *upd.RateMin > *upd.RateMax {
		return newValidationError("rate_min", "must not exceed rate_max")
	}
	if upd.Currency != nil && *upd.Currency != "" && len(*upd.Currency) != 3 {
		return newValidationError("currency", "must be a 3-letter ISO code")
	}
	return nil
}

// validateMergedRate checks the rate range that will exist after the update,
// so a lone rate_min above the stored rate_max is rejected too.
func validateMergedRate(current repository.Preferences, upd repository.PreferencesUpdate) error {
	lo, hi := current.Rate.Min, current.Rate.Max
	hiSet := current.Rate.IsSet()
	if upd.RateMin != nil {
		lo = *upd.RateMin
	}
	if upd.RateMax != nil {
		hi = *upd.RateMax
		hiSet = true
	}
	if hiSet && lo > hi {
		if upd.RateMin != nil {
			return newValidationError("rate_min", "must not exceed rate_max")
		}
		return newValidationError("rate_max", "must not be below rate_min")
	}
	return nil
}

func dedupe[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
