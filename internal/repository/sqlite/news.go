package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateNewsArticle(ctx context.Context, n *models.NewsArticle) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("news article is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO news_articles (title, content, author) VALUES (?, ?, ?)`, n.Title, n.Content, n.Author)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetNewsArticle(ctx context.Context, id int64) (*models.NewsArticle, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, content, author FROM news_articles WHERE id = ?`, id)
	var n models.NewsArticle
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Author); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return &n, nil
}

func (r *SQLiteRepo) ListNewsArticles(ctx context.Context) ([]models.NewsArticle, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, title, content, author FROM news_articles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.NewsArticle{}
	for rows.Next() {
		var n models.NewsArticle
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Author); err != nil {
			return nil, err
		}
		articles = append(articles, n)
	}

	return articles, rows.Err()
}

func (r *SQLiteRepo) UpdateNewsArticle(ctx context.Context, n *models.NewsArticle) error {
	if n == nil {
		return fmt.Errorf("news article is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE news_articles SET title = ?, content = ?, author = ? WHERE id = ?`, n.Title, n.Content, n.Author, n.ID)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteNewsArticle(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM news_articles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
