package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

const productsSchema = `
CREATE TABLE IF NOT EXISTS products (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	category   TEXT NOT NULL,
	quantity   INTEGER NOT NULL CHECK (quantity >= 0),
	unit_price DOUBLE PRECISION NOT NULL CHECK (unit_price >= 0)
)`

type PostgresProductRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresProductRepository(db *sql.DB, timeout time.Duration) *PostgresProductRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PostgresProductRepository{db: db, timeout: timeout}
}

func (r *PostgresProductRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, productsSchema); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// GetAll returns products in insertion order; the serial id stays internal.
func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT name, category, quantity, unit_price FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Name, &p.Category, &p.Quantity, &p.UnitPrice); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	query := `SELECT name, category, quantity, unit_price FROM products WHERE name = $1`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.Name, &p.Category, &p.Quantity, &p.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, category, quantity, unit_price) VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.Quantity, p.UnitPrice)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, name string, quantity int, unitPrice float64) (models.Product, error) {
	query := `
		UPDATE products
		SET quantity = $1, unit_price = $2
		WHERE name = $3
		RETURNING name, category, quantity, unit_price
	`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, quantity, unitPrice, name).
		Scan(&p.Name, &p.Category, &p.Quantity, &p.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM products WHERE name = $1`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
