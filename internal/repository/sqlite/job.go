package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (title, description, requirements, deadline) VALUES (?, ?, ?, ?)`, j.Title, j.Description, j.Requirements, deadlineArg(j))
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, description, requirements, deadline FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	return r.queryJobs(ctx, `SELECT id, title, description, requirements, deadline FROM jobs ORDER BY id`)
}

// ListActiveJobs excludes jobs whose deadline has already passed. The filter
// runs against the clock at query time, never against a stored flag.
func (r *SQLiteRepo) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	return r.queryJobs(ctx, `SELECT id, title, description, requirements, deadline FROM jobs WHERE deadline IS NULL OR deadline > ? ORDER BY id`, now())
}

func (r *SQLiteRepo) SearchJobs(ctx context.Context, term string) ([]models.Job, error) {
	// LIKE is case-insensitive for ASCII in sqlite; escape user wildcards
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return r.queryJobs(ctx, `SELECT id, title, description, requirements, deadline FROM jobs WHERE title LIKE ? ESCAPE '\' ORDER BY id`, "%"+escaped+"%")
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, description = ?, requirements = ?, deadline = ? WHERE id = ?`, j.Title, j.Description, j.Requirements, deadlineArg(j), j.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

func scanJob(scan func(dest ...any) error) (*models.Job, error) {
	var j models.Job
	var deadline sql.NullInt64
	if err := scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &deadline); err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := fromUnix(deadline.Int64)
		j.Deadline = &t
	}

	return &j, nil
}

func deadlineArg(j *models.Job) any {
	if j.Deadline == nil {
		return nil
	}
	return j.Deadline.UTC().Unix()
}
