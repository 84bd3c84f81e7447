package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
)

var (
	ErrCategoryNameRequired = NewFault("category name is required")
	ErrCategoryExists       = NewFault("category already exists")
	ErrCategoryNotFound     = NewFault("category not found")
	ErrProductNameRequired  = NewFault("product name is required")
	ErrProductInvalid       = NewFault("product price and quantity must not be negative")
	ErrProductExists        = NewFault("product already exists")
	ErrProductNotFound      = NewFault("product not found")
)

const categoriesCacheKey = "catalog:categories"

// CatalogService manages categories and products. The category list is cached
// in Redis; products are mirrored into Elasticsearch for search and their
// photos stored in GCS. Redis, ES, and GCS are all optional collaborators.
type CatalogService struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Redis      *redis.Client
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESIndex    string
	GCS        *storage.Client
	GCSBucket  string
}

func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository,
	rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string,
	gcs *storage.Client, gcsBucket string) *CatalogService {
	return &CatalogService{
		Categories: categories,
		Products:   products,
		Redis:      rdb,
		Logger:     logger,
		ES:         es,
		ESIndex:    esIndex,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	c := &entity.Category{Name: name, Slug: slug.Make(name)}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	s.invalidateCategories(ctx)
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, slugID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	c, err := s.Categories.GetBySlug(ctx, slugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	c.Name = name
	c.Slug = slug.Make(name)
	if err := s.Categories.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	s.invalidateCategories(ctx)
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slugID string) error {
	if err := s.Categories.Delete(ctx, slugID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

func (s *CatalogService) GetCategory(ctx context.Context, slugID string) (*entity.Category, error) {
	c, err := s.Categories.GetBySlug(ctx, slugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListCategories serves from the Redis cache when possible; cache problems
// fall back to the store silently.
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	if s.Redis != nil {
		var cached []entity.Category
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, categoriesCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	out, err := s.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, categoriesCacheKey, out, 10*time.Minute); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("category cache write failed")
		}
	}
	return out, nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, categoriesCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("category cache invalidation failed")
	}
}

type ProductInput struct {
	CategoryID  string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Shipping    bool
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrProductNameRequired
	}
	if in.PriceCents < 0 || in.Quantity < 0 {
		return nil, ErrProductInvalid
	}
	p := &entity.Product{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	_ = s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, slugID string, in ProductInput) (*entity.Product, error) {
	p, err := s.Products.GetBySlug(ctx, slugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if in.PriceCents < 0 || in.Quantity < 0 {
		return nil, ErrProductInvalid
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
		p.Slug = slug.Make(name)
	}
	if in.CategoryID != "" {
		p.CategoryID = in.CategoryID
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	p.PriceCents = in.PriceCents
	p.Quantity = in.Quantity
	p.Shipping = in.Shipping
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	_ = s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, slugID string) error {
	p, err := s.Products.GetBySlug(ctx, slugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.Products.Delete(ctx, slugID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.deleteProductIndex(ctx, p.ID)
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, slugID string) (*entity.Product, error) {
	p, err := s.Products.GetBySlug(ctx, slugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	return s.Products.List(ctx, f)
}

// UploadPhoto stores the product photo in GCS and records its public URL.
func (s *CatalogService) UploadPhoto(ctx context.Context, slugID string, r io.Reader, filename, contentType string) (*entity.Product, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	p, err := s.Products.GetBySlug(ctx, slugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", p.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	p.PhotoURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          p.ID,
		"category_id": p.CategoryID,
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price_cents": p.PriceCents,
		"photo_url":   p.PhotoURL,
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *CatalogService) deleteProductIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchProducts performs a multi_match query over name and description.
// Returns an empty result when ES is not configured.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
