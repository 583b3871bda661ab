package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateSession(ctx context.Context, s *models.Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO sessions (id, realms, flash_message, flash_level, created, expires) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Realms, s.FlashMsg, s.FlashLevel, s.Created.UTC().Unix(), s.Expires.UTC().Unix())
	return err
}

func (r *SQLiteRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, realms, flash_message, flash_level, created, expires FROM sessions WHERE id = ?`, id)
	var s models.Session
	var created, expires int64
	if err := row.Scan(&s.ID, &s.Realms, &s.FlashMsg, &s.FlashLevel, &created, &expires); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}
	s.Created = fromUnix(created)
	s.Expires = fromUnix(expires)

	return &s, nil
}

func (r *SQLiteRepo) UpdateSession(ctx context.Context, s *models.Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE sessions SET realms = ?, flash_message = ?, flash_level = ?, expires = ? WHERE id = ?`,
		s.Realms, s.FlashMsg, s.FlashLevel, s.Expires.UTC().Unix(), s.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM sessions WHERE expires <= ?`, now())
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
