package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.AppliedJob) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	var age any
	if a.Age != nil {
		age = *a.Age
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO applied_jobs (job_id, first_name, father_name, applicant_email, gender, age, cv_path) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.JobID, a.FirstName, a.FatherName, a.ApplicantEmail, a.Gender, age, a.CVPath)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64) (*models.AppliedJob, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, job_id, first_name, father_name, applicant_email, gender, age, cv_path FROM applied_jobs WHERE id = ?`, id)
	a, err := scanApplication(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.AppliedJob, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, job_id, first_name, father_name, applicant_email, gender, age, cv_path FROM applied_jobs WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.AppliedJob{}
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}

	return apps, rows.Err()
}

func (r *SQLiteRepo) DeleteApplication(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM applied_jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanApplication(scan func(dest ...any) error) (*models.AppliedJob, error) {
	var a models.AppliedJob
	var gender sql.NullString
	var age sql.NullInt64
	var cv sql.NullString
	if err := scan(&a.ID, &a.JobID, &a.FirstName, &a.FatherName, &a.ApplicantEmail, &gender, &age, &cv); err != nil {
		return nil, err
	}
	if gender.Valid {
		a.Gender = gender.String
	}
	if age.Valid {
		v := age.Int64
		a.Age = &v
	}
	if cv.Valid {
		a.CVPath = cv.String
	}

	return &a, nil
}
