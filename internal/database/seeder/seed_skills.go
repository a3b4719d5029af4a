package seeder

import (
	"context"
	"fmt"

	"gigmatch/internal/database"
)

var demoSkills = []string{
	"Go", "JavaScript", "TypeScript", "React", "Node.js", "Python", "Django",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS", "GCP", "GraphQL",
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range demoSkills {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT ((lower(name))) DO NOTHING`,
			name,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
