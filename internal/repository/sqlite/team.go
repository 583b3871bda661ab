package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateTeamMember(ctx context.Context, m *models.TeamMember) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("team member is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO team_members (name, job_title, photo_url) VALUES (?, ?, ?)`, m.Name, m.JobTitle, m.PhotoURL)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, job_title, photo_url FROM team_members WHERE id = ?`, id)
	var m models.TeamMember
	var photo sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &m.JobTitle, &photo); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}
	if photo.Valid {
		m.PhotoURL = photo.String
	}

	return &m, nil
}

func (r *SQLiteRepo) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name, job_title, photo_url FROM team_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		var photo sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.JobTitle, &photo); err != nil {
			return nil, err
		}
		if photo.Valid {
			m.PhotoURL = photo.String
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (r *SQLiteRepo) UpdateTeamMember(ctx context.Context, m *models.TeamMember) error {
	if m == nil {
		return fmt.Errorf("team member is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE team_members SET name = ?, job_title = ?, photo_url = ? WHERE id = ?`, m.Name, m.JobTitle, m.PhotoURL, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteTeamMember(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}
