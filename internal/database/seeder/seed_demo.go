package seeder

import (
	"context"
	"fmt"

	"gigmatch/internal/database"

	"github.com/google/uuid"
)

// DemoCandidateID is the fixed id of the seeded candidate, handy for minting a
// local token with `server token`.
var DemoCandidateID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

type DemoCandidateSeeder struct{}

func (DemoCandidateSeeder) Name() string { return "demo_candidate" }

func (DemoCandidateSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "bio", "location", "portfolio_links"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO candidates (id, email, bio, location, portfolio_links)
		 VALUES ($1, 'demo@gigmatch.local', 'Frontend contractor', 'Remote', ARRAY['https://github.com/demo'])
		 ON CONFLICT (id) DO NOTHING`,
		DemoCandidateID,
	); err != nil {
		return err
	}

	for i, name := range []string{"React", "TypeScript", "GraphQL"} {
		if _, err := tx.Exec(ctx,
			`INSERT INTO candidate_skills (candidate_id, skill_id, position)
			 SELECT $1, s.id, $2 FROM skills s WHERE lower(s.name) = lower($3)
			 ON CONFLICT (candidate_id, skill_id) DO NOTHING`,
			DemoCandidateID, i, name,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO candidate_preferences (candidate_id, job_types, contract_durations, rate_min, rate_max, currency, remote_only, availability)
		 VALUES ($1, ARRAY['contract'], ARRAY['3_6_months'], 80, 120, 'USD', TRUE, 'available')
		 ON CONFLICT (candidate_id) DO NOTHING`,
		DemoCandidateID,
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type demoJob struct {
	Title     string
	Company   string
	Location  string
	Remote    bool
	JobType   string
	Duration  string
	RateText  string
	Apps      int
	Required  []string
	Preferred []string
}

var demoJobs = []demoJob{
	{Title: "Senior React Engineer", Company: "Acme", Location: "Remote", Remote: true, JobType: "Contract", Duration: "3-6 months", RateText: "$90-$130/hr", Apps: 2, Required: []string{"React", "TypeScript", "AWS"}},
	{Title: "Django Developer", Company: "Globex", Location: "Berlin, Germany", JobType: "contract", Duration: "3_6_months", RateText: "$40-$60/hr", Apps: 2, Required: []string{"Python", "Django"}},
	{Title: "Platform Engineer", Company: "Initech", Location: "Austin, TX", JobType: "Full-time", Duration: "long term", RateText: "$70-$95 per hour", Apps: 31, Required: []string{"Go", "Kubernetes"}, Preferred: []string{"AWS"}},
	{Title: "Frontend Contractor", Company: "Hooli", Location: "Remote", Remote: true, JobType: "freelance", Duration: "6 weeks", RateText: "$85/hr", Apps: 9, Required: []string{"React"}, Preferred: []string{"GraphQL", "TypeScript"}},
}

type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "job_type", "contract_duration", "rate_text", "applications_count"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, j := range demoJobs {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("gigmatch:demo:"+j.Title))
		if _, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, title, company_name, location, is_remote, job_type, contract_duration, rate_text, currency, applications_count, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'USD', $9, now() + interval '30 days')
			 ON CONFLICT (id) DO NOTHING`,
			id, j.Title, j.Company, j.Location, j.Remote, j.JobType, j.Duration, j.RateText, j.Apps,
		); err != nil {
			return err
		}
		if err := seedJobSkills(ctx, tx, id, j.Required, true); err != nil {
			return err
		}
		if err := seedJobSkills(ctx, tx, id, j.Preferred, false); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func seedJobSkills(ctx context.Context, tx database.Tx, jobID uuid.UUID, names []string, required bool) error {
	for _, name := range names {
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id, is_required)
			 SELECT $1, s.id, $2 FROM skills s WHERE lower(s.name) = lower($3)
			 ON CONFLICT (job_id, skill_id) DO NOTHING`,
			jobID, required, name,
		); err != nil {
			return err
		}
	}
	return nil
}
