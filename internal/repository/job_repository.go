package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gigmatch/internal/database"
	"gigmatch/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	ListActive(ctx context.Context, since time.Time, max int) ([]matching.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (matching.Job, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, COALESCE(j.title, ''), COALESCE(j.company_name, ''), COALESCE(j.location, ''), j.is_remote,
		COALESCE(j.job_type, ''), COALESCE(j.contract_duration, ''),
		COALESCE(j.rate_min, 0)::float8, COALESCE(j.rate_max, 0)::float8, COALESCE(j.currency, ''), COALESCE(j.rate_text, ''),
		j.posted_at, j.applications_count, j.is_active, j.expires_at, j.updated_at`

type jobRow struct {
	job      matching.Job
	jobType  string
	duration string
	rateText string
}

func scanJob(row database.Row) (matching.Job, error) {
	var r jobRow
	var expiresAt *time.Time
	err := row.Scan(
		&r.job.ID, &r.job.Title, &r.job.Company, &r.job.Location, &r.job.Remote,
		&r.jobType, &r.duration,
		&r.job.Rate.Min, &r.job.Rate.Max, &r.job.Rate.Currency, &r.rateText,
		&r.job.PostedAt, &r.job.ApplicationsCount, &r.job.Active, &expiresAt, &r.job.UpdatedAt,
	)
	if err != nil {
		return matching.Job{}, err
	}
	r.job.ExpiresAt = expiresAt
	return r.normalize(), nil
}

// normalize maps free-text columns onto the engine's enums. Values that do
// not parse are kept verbatim so Job.Validate rejects them.
func (r jobRow) normalize() matching.Job {
	j := r.job

	if raw := strings.TrimSpace(r.jobType); raw != "" {
		if t, ok := matching.ParseJobType(raw); ok {
			j.Type = t
		} else {
			j.Type = matching.JobType(raw)
		}
	}
	if raw := strings.TrimSpace(r.duration); raw != "" {
		if d, ok := matching.ParseDurationBucket(raw); ok {
			j.Duration = d
		} else {
			j.Duration = matching.DurationBucket(raw)
		}
	}
	if !j.Rate.IsSet() && r.rateText != "" {
		if rate, ok := matching.ParseHourlyRate(r.rateText); ok {
			if rate.Currency == "" {
				rate.Currency = j.Rate.Currency
			}
			j.Rate = rate
		}
	}
	j.Rate.Currency = strings.ToUpper(strings.TrimSpace(j.Rate.Currency))
	return j
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, since time.Time, max int) ([]matching.Job, error) {
	if max <= 0 {
		max = 2000
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.is_active = TRUE
		   AND (j.expires_at IS NULL OR j.expires_at > now())
		   AND j.posted_at >= $1
		 ORDER BY j.posted_at DESC, j.id ASC
		 LIMIT $2`,
		since, max,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSkills(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (matching.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)

	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return matching.Job{}, ErrJobNotFound
		}
		return matching.Job{}, err
	}

	jobs := []matching.Job{j}
	if err := r.attachSkills(ctx, jobs); err != nil {
		return matching.Job{}, err
	}
	return jobs[0], nil
}

func (r *PostgresJobRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE jobs
		 SET is_active = FALSE, updated_at = $1
		 WHERE is_active = TRUE AND expires_at IS NOT NULL AND expires_at <= $1`,
		now,
	)
}

func (r *PostgresJobRepository) attachSkills(ctx context.Context, jobs []matching.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(jobs))
	pos := make(map[uuid.UUID]int, len(jobs))
	for i, j := range jobs {
		ids = append(ids, j.ID.String())
		pos[j.ID] = i
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, s.id, s.name, js.is_required
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1::uuid[])
		 ORDER BY js.job_id, s.name ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var s matching.Skill
		var required bool
		if err := rows.Scan(&jobID, &s.ID, &s.Name, &required); err != nil {
			return err
		}
		i, ok := pos[jobID]
		if !ok {
			continue
		}
		if required {
			jobs[i].RequiredSkills = append(jobs[i].RequiredSkills, s)
		} else {
			jobs[i].PreferredSkills = append(jobs[i].PreferredSkills, s)
		}
	}
	return rows.Err()
}
