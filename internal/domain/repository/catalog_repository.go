package repository

import (
	"context"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
)

// CategoryRepository defines database operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, slug string) error
}

// ProductFilter narrows and pages a product listing. Zero values mean
// "no constraint"; Page is 1-based.
type ProductFilter struct {
	CategoryID    string
	MinPriceCents int64
	MaxPriceCents int64
	Page          int
	PerPage       int
}

// ProductRepository defines database operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, slug string) error
}
