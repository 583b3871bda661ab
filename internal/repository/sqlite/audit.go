package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateAction(ctx context.Context, a *models.ActionHistory) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("action is nil")
	}

	ts := a.Timestamp.UTC().Unix()
	if a.Timestamp.IsZero() {
		ts = now()
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO action_history (entity_type, entity_id, action, timestamp, details) VALUES (?, ?, ?, ?, ?)`,
		a.EntityType, a.EntityID, a.Action, ts, a.Details)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListActions(ctx context.Context) ([]models.ActionHistory, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, entity_type, entity_id, action, timestamp, details FROM action_history ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actions := []models.ActionHistory{}
	for rows.Next() {
		a, err := scanAction(rows.Scan)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *a)
	}

	return actions, rows.Err()
}

func (r *SQLiteRepo) GetAction(ctx context.Context, id int64) (*models.ActionHistory, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, entity_type, entity_id, action, timestamp, details FROM action_history WHERE id = ?`, id)
	a, err := scanAction(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) DeleteAction(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM action_history WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanAction(scan func(dest ...any) error) (*models.ActionHistory, error) {
	var a models.ActionHistory
	var ts int64
	var details sql.NullString
	if err := scan(&a.ID, &a.EntityType, &a.EntityID, &a.Action, &ts, &details); err != nil {
		return nil, err
	}
	a.Timestamp = fromUnix(ts)
	if details.Valid {
		a.Details = details.String
	}

	return &a, nil
}
