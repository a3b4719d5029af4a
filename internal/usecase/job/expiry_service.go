package job

import (
	"context"
	"time"

	"gigmatch/internal/repository"

	"go.uber.org/zap"
)

const expirySweepLockKey = "jobs:expiry:lock"

type sweepLock interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// ExpiryService flips postings whose expires_at has passed to inactive.
type ExpiryService struct {
	repo    repository.JobRepository
	lock    sweepLock
	logger  *zap.Logger
	lockTTL time.Duration
	now     func() time.Time
}

func NewExpiryService(repo repository.JobRepository, lock sweepLock, logger *zap.Logger, lockTTL time.Duration) *ExpiryService {
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpiryService{
		repo:    repo,
		lock:    lock,
		logger:  logger,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

// SweepExpired returns the number of postings deactivated. When another
// replica holds the sweep lock it does nothing and returns 0.
func (s *ExpiryService) SweepExpired(ctx context.Context) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, nil
	}

	if s.lock != nil {
		ok, err := s.lock.SetIfNotExists(ctx, expirySweepLockKey, "1", s.lockTTL)
		if err == nil && !ok {
			s.logger.Debug("expiry sweep skipped, lock held elsewhere")
			return 0, nil
		}
	}

	n, err := s.repo.DeactivateExpired(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired jobs deactivated", zap.Int64("count", n))
	}
	return n, nil
}
