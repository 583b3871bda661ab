package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("event is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO events (title, description, date, location) VALUES (?, ?, ?, ?)`, e.Title, e.Description, e.Date.UTC().Unix(), e.Location)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, description, date, location FROM events WHERE id = ?`, id)
	var e models.Event
	var date int64
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Location); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}
	e.Date = fromUnix(date)

	return &e, nil
}

func (r *SQLiteRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, title, description, date, location FROM events ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		var date int64
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Location); err != nil {
			return nil, err
		}
		e.Date = fromUnix(date)
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *SQLiteRepo) UpdateEvent(ctx context.Context, e *models.Event) error {
	if e == nil {
		return fmt.Errorf("event is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE events SET title = ?, description = ?, date = ?, location = ? WHERE id = ?`, e.Title, e.Description, e.Date.UTC().Unix(), e.Location, e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}
