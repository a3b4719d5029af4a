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
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateProfile struct {
	ID             uuid.UUID
	Bio            string
	Location       string
	PortfolioLinks []string
	Skills         []matching.Skill
	UpdatedAt      time.Time
}

type CandidateRepository interface {
	FindProfile(ctx context.Context, id uuid.UUID) (CandidateProfile, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) FindProfile(ctx context.Context, id uuid.UUID) (CandidateProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT c.id, COALESCE(c.bio, ''), COALESCE(c.location, ''), COALESCE(c.portfolio_links, '{}'), c.updated_at
		 FROM candidates c
		 WHERE c.id = $1`,
		id,
	)

	var p CandidateProfile
	if err := row.Scan(&p.ID, &p.Bio, &p.Location, &p.PortfolioLinks, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return CandidateProfile{}, ErrCandidateNotFound
		}
		return CandidateProfile{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, COALESCE(cs.weight, 1)::float8
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = $1
		 ORDER BY cs.position ASC, s.name ASC`,
		id,
	)
	if err != nil {
		return CandidateProfile{}, err
	}
	defer rows.Close()

	p.Skills = make([]matching.Skill, 0)
	for rows.Next() {
		var s matching.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Weight); err != nil {
			return CandidateProfile{}, err
		}
		p.Skills = append(p.Skills, s)
	}
	if err := rows.Err(); err != nil {
		return CandidateProfile{}, err
	}
	return p, nil
}
