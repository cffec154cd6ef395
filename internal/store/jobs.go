package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"iranconnect-web/internal/domain"
)

// Jobs is the SQLite job repository. Rows come back in insertion order.
type Jobs struct {
	db *sql.DB
}

var _ domain.JobStore = (*Jobs)(nil)

func NewJobs(db *DB) *Jobs { return &Jobs{db: db.Pool} }

const jobColumns = `id, title, company, location, employment_type, skills, salary, tags, description, requirements, logo_ref, apply_url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (domain.Job, error) {
	var (
		j                          domain.Job
		id                         string
		skills, tags, requirements string
	)
	if err := row.Scan(
		&id,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.EmploymentType,
		&skills,
		&j.Salary,
		&tags,
		&j.Description,
		&requirements,
		&j.LogoRef,
		&j.ApplyURL,
	); err != nil {
		return domain.Job{}, err
	}
	j.ID = domain.JobID(id)

	for _, c := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"skills", skills, &j.Skills},
		{"tags", tags, &j.Tags},
		{"requirements", requirements, &j.Requirements},
	} {
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return domain.Job{}, fmt.Errorf("job %s: decode %s: %w", id, c.name, err)
		}
	}

	if err := j.Validate(); err != nil {
		return domain.Job{}, err
	}
	return j, nil
}

func (s *Jobs) FetchJobs(ctx context.Context, f domain.Filter) ([]domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY position ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var all []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return domain.Apply(all, f), nil
}

func (s *Jobs) FetchJobByID(ctx context.Context, id domain.JobID) (domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ? LIMIT 1;`, string(id))
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Job{}, err
	}
	return j, nil
}

// UpsertJob inserts j at the end of the order, or replaces the stored
// record with the same id in place.
func (s *Jobs) UpsertJob(ctx context.Context, j domain.Job) error {
	j = j.Normalized()
	if err := j.Validate(); err != nil {
		return err
	}

	skills, err := json.Marshal(nonNil(j.Skills))
	if err != nil {
		return err
	}
	tags, err := json.Marshal(j.Tags)
	if err != nil {
		return err
	}
	if j.Tags == nil {
		tags = []byte("[]")
	}
	reqs, err := json.Marshal(nonNil(j.Requirements))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO jobs (`+jobColumns+`, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
  (SELECT COALESCE(MAX(position), 0) + 1 FROM jobs))
ON CONFLICT(id) DO UPDATE SET
  title = excluded.title,
  company = excluded.company,
  location = excluded.location,
  employment_type = excluded.employment_type,
  skills = excluded.skills,
  salary = excluded.salary,
  tags = excluded.tags,
  description = excluded.description,
  requirements = excluded.requirements,
  logo_ref = excluded.logo_ref,
  apply_url = excluded.apply_url;
`,
		string(j.ID), j.Title, j.Company, j.Location, j.EmploymentType,
		string(skills), j.Salary, string(tags), j.Description, string(reqs),
		j.LogoRef, j.ApplyURL,
	)
	if err != nil {
		return fmt.Errorf("upsert job %s: %w", j.ID, err)
	}
	return nil
}

func (s *Jobs) DeleteJob(ctx context.Context, id domain.JobID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, string(id))
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Jobs) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
