package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

func (r *SQLiteRepo) CreateProduct(ctx context.Context, p *models.Product) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("product is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO products (name, price, image, description) VALUES (?, ?, ?, ?)`, p.Name, p.Price, p.Image, p.Description)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, price, image, description FROM products WHERE id = ?`, id)
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}

		return nil, err
	}

	return &p, nil
}

func (r *SQLiteRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name, price, image, description FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Description); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *SQLiteRepo) UpdateProduct(ctx context.Context, p *models.Product) error {
	if p == nil {
		return fmt.Errorf("product is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE products SET name = ?, price = ?, image = ?, description = ? WHERE id = ?`, p.Name, p.Price, p.Image, p.Description, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}
