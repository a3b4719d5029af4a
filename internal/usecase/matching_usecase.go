package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"gigmatch/internal/database"
	"gigmatch/internal/domain/matching"
	"gigmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMatchLimit     = 20
	MaxMatchLimit         = 50
	DefaultLookbackDays   = 30
	DefaultMaxJobsPerCall = 2000
)

type MatchingConfig struct {
	LookbackDays   int
	MaxJobsPerCall int
	CacheTTL       time.Duration
}

type MatchingUsecase interface {
	GetMatchesForUser(ctx context.Context, candidateID uuid.UUID, limit, minScore int) ([]matching.MatchScore, error)
	GetMatchForJob(ctx context.Context, candidateID, jobID uuid.UUID) (matching.MatchScore, error)
}

type Matching struct {
	engine      *matching.Engine
	candidates  repository.CandidateRepository
	preferences repository.PreferenceRepository
	jobs        repository.JobRepository
	cache       ScoreCache
	cfg         MatchingConfig
	logger      *zap.Logger
	now         func() time.Time
}

func NewMatchingUsecase(
	engine *matching.Engine,
	candidates repository.CandidateRepository,
	preferences repository.PreferenceRepository,
	jobs repository.JobRepository,
	cache ScoreCache,
	cfg MatchingConfig,
	logger *zap.Logger,
) *Matching {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultLookbackDays
	}
	if cfg.MaxJobsPerCall <= 0 {
		cfg.MaxJobsPerCall = DefaultMaxJobsPerCall
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		engine:      engine,
		candidates:  candidates,
		preferences: preferences,
		jobs:        jobs,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// GetMatchesForUser scores every open job for the candidate and returns the
// best limit matches at or above minScore. No matches is an empty slice.
func (u *Matching) GetMatchesForUser(ctx context.Context, candidateID uuid.UUID, limit, minScore int) ([]matching.MatchScore, error) {
	if candidateID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}
	if minScore < 0 {
		minScore = 0
	}
	if minScore > 100 {
		minScore = 100
	}

	now := u.now()
	since := now.AddDate(0, 0, -u.cfg.LookbackDays)

	var (
		profile repository.CandidateProfile
		prefs   repository.Preferences
		jobs    []matching.Job
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.candidates.FindProfile(gctx, candidateID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		p, err := u.preferences.Find(gctx, candidateID)
		if err != nil {
			return err
		}
		prefs = p
		return nil
	})
	g.Go(func() error {
		js, err := u.jobs.ListActive(gctx, since, u.cfg.MaxJobsPerCall)
		if err != nil {
			return err
		}
		jobs = js
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, u.loadError("load match inputs", err)
	}

	candidate := buildCandidate(profile, prefs)

	eligible := make([]matching.Job, 0, len(jobs))
	for _, j := range jobs {
		if !j.OpenAt(now) {
			continue
		}
		if err := j.Validate(); err != nil {
			u.logger.Warn("skipping malformed job",
				zap.String("job_id", j.ID.String()),
				zap.Error(err),
			)
			continue
		}
		eligible = append(eligible, j)
	}

	scores := u.scoreAll(ctx, candidate, eligible)

	out := make([]matching.MatchScore, 0, len(scores))
	for _, s := range scores {
		if s.OverallScore < minScore {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return rankBefore(out[a], out[b])
	})

	if len(out) > limit {
		out = out[:limit]
	}

	u.logger.Debug("matches computed",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("jobs_loaded", len(jobs)),
		zap.Int("jobs_scored", len(eligible)),
		zap.Int("returned", len(out)),
	)
	return out, nil
}

// GetMatchForJob scores a single job. A missing, closed or malformed posting
// reports ErrJobNotFound.
func (u *Matching) GetMatchForJob(ctx context.Context, candidateID, jobID uuid.UUID) (matching.MatchScore, error) {
	if candidateID == uuid.Nil {
		return matching.MatchScore{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return matching.MatchScore{}, ErrJobNotFound
	}

	var (
		profile repository.CandidateProfile
		prefs   repository.Preferences
		job     matching.Job
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.candidates.FindProfile(gctx, candidateID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		p, err := u.preferences.Find(gctx, candidateID)
		if err != nil {
			return err
		}
		prefs = p
		return nil
	})
	g.Go(func() error {
		j, err := u.jobs.FindByID(gctx, jobID)
		if err != nil {
			return err
		}
		job = j
		return nil
	})
	if err := g.Wait(); err != nil {
		return matching.MatchScore{}, u.loadError("load job match inputs", err)
	}

	if !job.OpenAt(u.now()) {
		return matching.MatchScore{}, ErrJobNotFound
	}
	if err := job.Validate(); err != nil {
		u.logger.Warn("requested job is malformed",
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
		return matching.MatchScore{}, ErrJobNotFound
	}

	scores := u.scoreAll(ctx, buildCandidate(profile, prefs), []matching.Job{job})
	return scores[0], nil
}

// scoreAll returns one score per job, in job order, reading and filling the
// score cache when one is configured.
func (u *Matching) scoreAll(ctx context.Context, c matching.Candidate, jobs []matching.Job) []matching.MatchScore {
	out := make([]matching.MatchScore, len(jobs))
	if len(jobs) == 0 {
		return out
	}

	if u.cache == nil || u.cfg.CacheTTL <= 0 {
		for i, j := range jobs {
			out[i] = u.engine.Score(c, j)
		}
		return out
	}

	policy := u.engine.Policy()
	keys := make([]string, len(jobs))
	for i, j := range jobs {
		keys[i] = MatchCacheKey(c, j, policy)
	}

	cached, err := u.cache.GetMany(ctx, keys)
	if err != nil {
		u.logger.Warn("score cache read failed, scoring without cache", zap.Error(err))
		cached = nil
	}

	fresh := make(map[string]any)
	for i, j := range jobs {
		if i < len(cached) && len(cached[i]) > 0 {
			var ms matching.MatchScore
			if err := json.Unmarshal(cached[i], &ms); err == nil {
				out[i] = ms
				continue
			}
		}
		out[i] = u.engine.Score(c, j)
		fresh[keys[i]] = out[i]
	}

	if len(fresh) > 0 {
		if err := u.cache.SetManyJSON(ctx, fresh, u.cfg.CacheTTL); err != nil {
			u.logger.Warn("score cache write failed", zap.Int("entries", len(fresh)), zap.Error(err))
		}
	}
	return out
}

func (u *Matching) loadError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrCandidateNotFound):
		return ErrCandidateNotFound
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	}
	if errors.Is(err, database.ErrUnavailable) {
		u.logger.Error("match inputs unavailable", zap.String("op", op), zap.Error(err))
		return newInfrastructureError(op, err)
	}
	u.logger.Error("match inputs failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

// rankBefore orders by overall score desc, then newest posting, then fewest
// applicants, then job id, so equal scores always come back in the same order.
func rankBefore(a, b matching.MatchScore) bool {
	if a.OverallScore != b.OverallScore {
		return a.OverallScore > b.OverallScore
	}
	if !a.PostedAt.Equal(b.PostedAt) {
		return a.PostedAt.After(b.PostedAt)
	}
	if a.ApplicationsCount != b.ApplicationsCount {
		return a.ApplicationsCount < b.ApplicationsCount
	}
	return bytes.Compare(a.JobID[:], b.JobID[:]) < 0
}

// buildCandidate merges profile and preferences. Unset availability means the
// candidate never stored preferences and takes the table default.
func buildCandidate(p repository.CandidateProfile, prefs repository.Preferences) matching.Candidate {
	availability := prefs.Availability
	if availability == "" {
		availability = matching.AvailabilityAvailable
	}
	return matching.Candidate{
		ID:                p.ID,
		Skills:            p.Skills,
		Rate:              prefs.Rate,
		Location:          p.Location,
		RemoteOnly:        prefs.RemoteOnly,
		JobTypes:          prefs.JobTypes,
		ContractDurations: prefs.ContractDurations,
		Availability:      availability,
		Bio:               p.Bio,
		PortfolioLinks:    p.PortfolioLinks,
	}
}
