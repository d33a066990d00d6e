package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
)

const candidateColumns = `id, name, email, phone, location, current_title, current_company,
	years_of_experience, linkedin, fit_level, summary, skills, education, experience, resume_file`

// List returns every candidate ordered by name. Store satisfies candidate.Source.
func (s *Store) List(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var out []candidate.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (candidate.Candidate, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return candidate.Candidate{}, fmt.Errorf("%w: %s", candidate.ErrNotFound, id)
	}
	return c, err
}

// UpsertCandidates inserts or replaces candidates in one transaction.
func (s *Store) UpsertCandidates(ctx context.Context, candidates []candidate.Candidate) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, c := range candidates {
		batch.Queue(`
			INSERT INTO candidates (`+candidateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				email = EXCLUDED.email,
				phone = EXCLUDED.phone,
				location = EXCLUDED.location,
				current_title = EXCLUDED.current_title,
				current_company = EXCLUDED.current_company,
				years_of_experience = EXCLUDED.years_of_experience,
				linkedin = EXCLUDED.linkedin,
				fit_level = EXCLUDED.fit_level,
				summary = EXCLUDED.summary,
				skills = EXCLUDED.skills,
				education = EXCLUDED.education,
				experience = EXCLUDED.experience,
				resume_file = EXCLUDED.resume_file,
				updated_at = now()`,
			c.ID, c.Name, c.Email, c.Phone, c.Location, c.CurrentRole, c.CurrentCompany,
			c.YearsOfExperience, c.LinkedIn, c.FitLevel, c.Summary, nonNil(c.Skills),
			nonNil(c.Education), nonNil(c.Experience), c.ResumeFile,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert candidates: %w", err)
	}
	return tx.Commit(ctx)
}

// Count returns the number of stored candidates.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM candidates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}

func scanCandidate(row pgx.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Location, &c.CurrentRole, &c.CurrentCompany,
		&c.YearsOfExperience, &c.LinkedIn, &c.FitLevel, &c.Summary, &c.Skills,
		&c.Education, &c.Experience, &c.ResumeFile,
	)
	if err != nil {
		return candidate.Candidate{}, fmt.Errorf("scan candidate: %w", err)
	}
	return c, nil
}

// nonNil keeps NOT NULL array and JSONB columns from receiving SQL NULL.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
