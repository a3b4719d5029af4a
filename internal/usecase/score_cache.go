package usecase

import (
	"context"
	"time"
)

type ScoreCache interface {
	GetMany(ctx context.Context, keys []string) ([][]byte, error)
	SetManyJSON(ctx context.Context, values map[string]any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
