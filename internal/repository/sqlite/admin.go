package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("admin is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO admins (username, password_hash) VALUES (?, ?)`, a.Username, a.PasswordHash)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, password_hash FROM admins WHERE username = ?`, username)
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return &a, nil
}

func (r *SQLiteRepo) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM admins`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
