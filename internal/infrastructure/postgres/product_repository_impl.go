package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// category_id is nullable (set null on category delete); it crosses the
// boundary as an empty string.
const productColumns = `id, COALESCE(category_id::text, ''), name, slug, description, price_cents, quantity, shipping, photo_url, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.PriceCents, &p.Quantity, &p.Shipping, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (category_id, name, slug, description, price_cents, quantity, shipping, photo_url)
		VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.Quantity, p.Shipping, p.PhotoURL)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id))
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE slug = $1
	`, slug))
}

// List applies the filter as dynamically numbered predicates, newest first.
func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := make([]any, 0, 4)

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		q += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.MinPriceCents > 0 {
		args = append(args, f.MinPriceCents)
		q += fmt.Sprintf(" AND price_cents >= $%d", len(args))
	}
	if f.MaxPriceCents > 0 {
		args = append(args, f.MaxPriceCents)
		q += fmt.Sprintf(" AND price_cents <= $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	perPage := f.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	args = append(args, perPage)
	q += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (page-1)*perPage)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
			&p.PriceCents, &p.Quantity, &p.Shipping, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET category_id = NULLIF($1, '')::uuid, name = $2, slug = $3, description = $4,
		    price_cents = $5, quantity = $6, shipping = $7, photo_url = $8, updated_at = $9
		WHERE id = $10
	`, p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.Quantity,
		p.Shipping, p.PhotoURL, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateSlug
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
