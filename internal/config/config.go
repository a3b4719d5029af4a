package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gigmatch/internal/domain/matching"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
	ExpirySweep   string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

type MatchingConfig struct {
	Policy         matching.Policy
	LookbackDays   int
	MaxJobsPerCall int
	CacheTTL       time.Duration
}

var (
	errMissingRequiredConfig = errors.New("missing required configuration")
	errInvalidConfig         = errors.New("invalid configuration")
)

func setDefaults(v *viper.Viper) {
	w := matching.DefaultWeights()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("JOB_EXPIRY_SWEEP", "@every 10m")

	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 0)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 10*time.Minute)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 15*time.Minute)

	v.SetDefault("MATCH_WEIGHTS_VERSION", w.Version)
	v.SetDefault("MATCH_WEIGHT_SKILLS", w.Skills)
	v.SetDefault("MATCH_WEIGHT_RATE", w.Rate)
	v.SetDefault("MATCH_WEIGHT_LOCATION", w.Location)
	v.SetDefault("MATCH_WEIGHT_PREFERENCE", w.Preference)
	v.SetDefault("MATCH_WEIGHT_AVAILABILITY", w.Availability)
	v.SetDefault("MATCH_WEIGHT_COMPETITION", w.Competition)
	v.SetDefault("MATCH_WEIGHT_PROFILE", w.Profile)
	v.SetDefault("MATCH_SATURATION", matching.DefaultSaturation)
	v.SetDefault("MATCH_RATE_GAP_SLOPE", matching.DefaultRateGapSlope)
	v.SetDefault("MATCH_LOOKBACK_DAYS", 30)
	v.SetDefault("MATCH_MAX_JOBS", 2000)
	v.SetDefault("MATCH_CACHE_TTL", time.Duration(0))
}

// Load reads configuration from the environment and, when one was loaded
// into v, a config file. Keys are the environment variable names. A nil v
// uses the global viper instance.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	v.AutomaticEnv()
	setDefaults(v)

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   opt("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
		ExpirySweep:   opt("JOB_EXPIRY_SWEEP"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
	}

	cfg.Matching = MatchingConfig{
		Policy: matching.Policy{
			Weights: matching.Weights{
				Version:      opt("MATCH_WEIGHTS_VERSION"),
				Skills:       v.GetFloat64("MATCH_WEIGHT_SKILLS"),
				Rate:         v.GetFloat64("MATCH_WEIGHT_RATE"),
				Location:     v.GetFloat64("MATCH_WEIGHT_LOCATION"),
				Preference:   v.GetFloat64("MATCH_WEIGHT_PREFERENCE"),
				Availability: v.GetFloat64("MATCH_WEIGHT_AVAILABILITY"),
				Competition:  v.GetFloat64("MATCH_WEIGHT_COMPETITION"),
				Profile:      v.GetFloat64("MATCH_WEIGHT_PROFILE"),
			},
			Saturation:   v.GetInt("MATCH_SATURATION"),
			RateGapSlope: v.GetFloat64("MATCH_RATE_GAP_SLOPE"),
		},
		LookbackDays:   v.GetInt("MATCH_LOOKBACK_DAYS"),
		MaxJobsPerCall: v.GetInt("MATCH_MAX_JOBS"),
		CacheTTL:       v.GetDuration("MATCH_CACHE_TTL"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredConfig, strings.Join(missing, ", "))
	}

	if err := cfg.Matching.Policy.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	if cfg.Matching.LookbackDays <= 0 {
		return Config{}, fmt.Errorf("%w: MATCH_LOOKBACK_DAYS must be positive", errInvalidConfig)
	}
	if cfg.Matching.MaxJobsPerCall <= 0 {
		return Config{}, fmt.Errorf("%w: MATCH_MAX_JOBS must be positive", errInvalidConfig)
	}
	if cfg.JWT.AccessExpiresIn <= 0 {
		return Config{}, fmt.Errorf("%w: JWT_ACCESS_EXPIRES_IN must be positive", errInvalidConfig)
	}

	return cfg, nil
}
