package products

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

// Repository is the storefront view of the catalog: active products only.
type Repository interface {
	ListActive(ctx context.Context, f Filter) (ListResult, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	ListByScoville(ctx context.Context, min, max, limit int) ([]Product, error)
	ListNearestHeat(ctx context.Context, heatLevel, limit int, exclude []string) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

type Filter struct {
	Category string // category slug
	Q        string
	MinHeat  int
	MaxHeat  int
	Page     int
	PageSize int
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) ListActive(ctx context.Context, f Filter) (ListResult, error) {
	page, size := pageBounds(f.Page, f.PageSize, 24)

	base := r.db.WithContext(ctx).Model(&Product{}).Where("products.status = ?", StatusActive)
	if c := strings.TrimSpace(f.Category); c != "" {
		base = base.
			Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Joins("JOIN categories c ON c.id = pc.category_id").
			Where("c.slug = ?", c)
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", like, like)
	}
	if f.MinHeat > 0 {
		base = base.Where("products.heat_level >= ?", f.MinHeat)
	}
	if f.MaxHeat > 0 {
		base = base.Where("products.heat_level <= ?", f.MaxHeat)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}
	var items []Product
	err := base.
		Preload("Categories").
		Order("products.heat_level ASC, products.name ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error
	return ListResult{Items: items, Total: total}, err
}

func (r *GormRepo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("slug = ? AND status = ?", slug, StatusActive).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("name asc")
		}).
		First(&p).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// ListByScoville returns in-stock active products whose scoville rating lies
// in [min, max].
func (r *GormRepo) ListByScoville(ctx context.Context, min, max, limit int) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Where("status = ? AND stock_quantity > 0 AND scoville BETWEEN ? AND ?", StatusActive, min, max).
		Order("scoville ASC, name ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ListNearestHeat orders in-stock active products by distance to heatLevel.
func (r *GormRepo) ListNearestHeat(ctx context.Context, heatLevel, limit int, exclude []string) ([]Product, error) {
	q := r.db.WithContext(ctx).
		Where("status = ? AND stock_quantity > 0", StatusActive)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var items []Product
	err := q.
		Order(fmt.Sprintf("ABS(heat_level - %d) ASC, scoville ASC", heatLevel)).
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *GormRepo) Categories(ctx context.Context) ([]Category, error) {
	var items []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}
