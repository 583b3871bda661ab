package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateBlogPost(ctx context.Context, p *models.BlogPost) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("blog post is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO blog_posts (title, content, author) VALUES (?, ?, ?)`, p.Title, p.Content, p.Author)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetBlogPost(ctx context.Context, id int64) (*models.BlogPost, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, content, author FROM blog_posts WHERE id = ?`, id)
	var p models.BlogPost
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return &p, nil
}

func (r *SQLiteRepo) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, title, content, author FROM blog_posts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (r *SQLiteRepo) UpdateBlogPost(ctx context.Context, p *models.BlogPost) error {
	if p == nil {
		return fmt.Errorf("blog post is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE blog_posts SET title = ?, content = ?, author = ? WHERE id = ?`, p.Title, p.Content, p.Author, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteBlogPost(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}
