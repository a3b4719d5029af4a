package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gigmatch/internal/database"
	"gigmatch/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPreferencesConstraint is returned when the database rejects a
// preferences row through a CHECK constraint.
var ErrPreferencesConstraint = errors.New("preferences violate a table constraint")

const (
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

type Preferences struct {
	CandidateID       uuid.UUID
	JobTypes          []matching.JobType
	ContractDurations []matching.DurationBucket
	Rate              matching.RateRange
	RemoteOnly        bool
	Availability      matching.Availability
	UpdatedAt         time.Time
}

// PreferencesUpdate is a partial update; nil fields keep their stored value.
type PreferencesUpdate struct {
	JobTypes          *[]matching.JobType
	ContractDurations *[]matching.DurationBucket
	RateMin           *float64
	RateMax           *float64
	Currency          *string
	RemoteOnly        *bool
	Availability      *matching.Availability
}

type PreferenceRepository interface {
	Find(ctx context.Context, candidateID uuid.UUID) (Preferences, error)
	Save(ctx context.Context, candidateID uuid.UUID, upd PreferencesUpdate) (Preferences, error)
}

type PostgresPreferenceRepository struct {
	db database.DB
}

func NewPostgresPreferenceRepository(db database.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

// Find returns the stored preferences. A candidate without a preferences row
// gets the column defaults (available, no constraints); a missing candidate
// yields ErrCandidateNotFound.
func (r *PostgresPreferenceRepository) Find(ctx context.Context, candidateID uuid.UUID) (Preferences, error) {
	row := r.db.QueryRow(ctx,
		`SELECT c.id,
		        COALESCE(p.job_types, '{}'), COALESCE(p.contract_durations, '{}'),
		        COALESCE(p.rate_min, 0)::float8, COALESCE(p.rate_max, 0)::float8, COALESCE(p.currency, ''),
		        COALESCE(p.remote_only, FALSE), COALESCE(p.availability, 'available'),
		        COALESCE(p.updated_at, c.updated_at)
		 FROM candidates c
		 LEFT JOIN candidate_preferences p ON p.candidate_id = c.id
		 WHERE c.id = $1`,
		candidateID,
	)

	p, err := scanPreferences(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Preferences{}, ErrCandidateNotFound
		}
		return Preferences{}, err
	}
	return p, nil
}

// Save applies upd as a single upsert and returns the resulting row.
func (r *PostgresPreferenceRepository) Save(ctx context.Context, candidateID uuid.UUID, upd PreferencesUpdate) (Preferences, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidate_preferences
		    (candidate_id, job_types, contract_durations, rate_min, rate_max, currency, remote_only, availability, updated_at)
		 VALUES ($1, COALESCE($2::text[], '{}'), COALESCE($3::text[], '{}'), $4, $5, $6, COALESCE($7, FALSE), COALESCE($8, 'available'), now())
		 ON CONFLICT (candidate_id) DO UPDATE SET
		    job_types          = COALESCE($2::text[], candidate_preferences.job_types),
		    contract_durations = COALESCE($3::text[], candidate_preferences.contract_durations),
		    rate_min           = COALESCE($4, candidate_preferences.rate_min),
		    rate_max           = COALESCE($5, candidate_preferences.rate_max),
		    currency           = COALESCE($6, candidate_preferences.currency),
		    remote_only        = COALESCE($7, candidate_preferences.remote_only),
		    availability       = COALESCE($8, candidate_preferences.availability),
		    updated_at         = now()
		 RETURNING candidate_id, job_types, contract_durations,
		    COALESCE(rate_min, 0)::float8, COALESCE(rate_max, 0)::float8, COALESCE(currency, ''),
		    remote_only, availability, updated_at`,
		candidateID,
		jobTypesArg(upd.JobTypes),
		durationsArg(upd.ContractDurations),
		upd.RateMin,
		upd.RateMax,
		upd.Currency,
		upd.RemoteOnly,
		availabilityArg(upd.Availability),
	)

	p, err := scanPreferences(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgCheckViolation:
				return Preferences{}, ErrPreferencesConstraint
			case pgForeignKeyViolation:
				return Preferences{}, ErrCandidateNotFound
			}
		}
		return Preferences{}, err
	}
	return p, nil
}

func scanPreferences(row database.Row) (Preferences, error) {
	var (
		p            Preferences
		jobTypes     []string
		durations    []string
		availability string
	)
	if err := row.Scan(
		&p.CandidateID, &jobTypes, &durations,
		&p.Rate.Min, &p.Rate.Max, &p.Rate.Currency,
		&p.RemoteOnly, &availability, &p.UpdatedAt,
	); err != nil {
		return Preferences{}, err
	}

	p.JobTypes = make([]matching.JobType, 0, len(jobTypes))
	for _, t := range jobTypes {
		p.JobTypes = append(p.JobTypes, matching.JobType(t))
	}
	p.ContractDurations = make([]matching.DurationBucket, 0, len(durations))
	for _, d := range durations {
		p.ContractDurations = append(p.ContractDurations, matching.DurationBucket(d))
	}
	p.Availability = matching.Availability(availability)
	return p, nil
}

// jobTypesArg returns nil (SQL NULL) for an omitted field and a non-nil slice,
// possibly empty, otherwise.
func jobTypesArg(v *[]matching.JobType) any {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(*v))
	for _, t := range *v {
		out = append(out, string(t))
	}
	return out
}

func durationsArg(v *[]matching.DurationBucket) any {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(*v))
	for _, d := range *v {
		out = append(out, string(d))
	}
	return out
}

func availabilityArg(v *matching.Availability) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
