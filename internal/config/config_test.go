package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gigmatch/internal/domain/matching"

	"github.com/spf13/viper"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "gigmatch")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_NAME", "gigmatch")
	t.Setenv("DB_USER", "gigmatch")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.Policy.Weights != matching.DefaultWeights() {
		t.Fatalf("unexpected weights %+v", cfg.Matching.Policy.Weights)
	}
	if cfg.Matching.Policy.Saturation != matching.DefaultSaturation {
		t.Fatalf("unexpected saturation %d", cfg.Matching.Policy.Saturation)
	}
	if cfg.Matching.LookbackDays != 30 || cfg.Matching.MaxJobsPerCall != 2000 {
		t.Fatalf("unexpected matching limits %+v", cfg.Matching)
	}
	if cfg.Matching.CacheTTL != 0 {
		t.Fatalf("cache should be off by default, got %v", cfg.Matching.CacheTTL)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected token lifetime %v", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Database.PoolMaxConns != 10 {
		t.Fatalf("unexpected pool size %d", cfg.Database.PoolMaxConns)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load(viper.New())
	if !errors.Is(err, errMissingRequiredConfig) {
		t.Fatalf("expected missing config error, got %v", err)
	}
	for _, key := range []string{"APP_NAME", "HTTP_PORT", "DB_NAME", "DB_USER", "JWT_ACCESS_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error %q does not name %s", err, key)
		}
	}
}

func TestLoad_WeightOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCH_WEIGHTS_VERSION", "2024-07")
	t.Setenv("MATCH_WEIGHT_SKILLS", "0.40")
	t.Setenv("MATCH_WEIGHT_PROFILE", "0.00")
	t.Setenv("MATCH_CACHE_TTL", "45s")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.Policy.Weights.Version != "2024-07" || cfg.Matching.Policy.Weights.Skills != 0.40 {
		t.Fatalf("overrides not applied: %+v", cfg.Matching.Policy.Weights)
	}
	if cfg.Matching.CacheTTL != 45*time.Second {
		t.Fatalf("unexpected cache ttl %v", cfg.Matching.CacheTTL)
	}
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCH_WEIGHT_SKILLS", "0.9")

	_, err := Load(viper.New())
	if !errors.Is(err, errInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}
