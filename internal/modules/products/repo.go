package products

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/slug"
)

// Repo is the admin-side product store: every status is visible.
type Repo struct {
	db       *gorm.DB
	currency string
}

func NewRepo(db *gorm.DB, defaultCurrency string) *Repo {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &Repo{db: db, currency: strings.ToUpper(defaultCurrency)}
}

type AdminListParams struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Product
	Total int64
}

func (r *Repo) List(ctx context.Context, in AdminListParams) (ListResult, error) {
	page, size := pageBounds(in.Page, in.PageSize, 30)

	base := r.db.WithContext(ctx).Model(&Product{})
	if s := strings.TrimSpace(in.Status); s != "" {
		base = base.Where("status = ?", s)
	}
	if q := strings.TrimSpace(in.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("(LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}
	var items []Product
	if err := base.
		Preload("Categories").
		Order("updated_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (Product, error) {
	if err := in.normalize(r.currency); err != nil {
		return Product{}, err
	}
	now := time.Now()
	p := Product{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&p, in)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := loadCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		p.Categories = cats
		// categories already exist; only the join rows are written
		return tx.Omit("Categories.*").Create(&p).Error
	})
	if err != nil {
		if dberr.IsDuplicateKey(err) {
			return Product{}, ErrDuplicate
		}
		return Product{}, err
	}
	return p, nil
}

// Update keeps the stored slug unless a new one is sent, so renaming a
// product does not move its public URL.
func (r *Repo) Update(ctx context.Context, id string, in Input) (Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if dberr.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if strings.TrimSpace(in.Slug) == "" {
			in.Slug = p.Slug
		}
		if err := in.normalize(r.currency); err != nil {
			return err
		}
		apply(&p, in)
		p.UpdatedAt = time.Now()
		if err := tx.Omit("Categories").Save(&p).Error; err != nil {
			return err
		}
		cats, err := loadCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		if len(cats) == 0 {
			return tx.Model(&p).Association("Categories").Clear()
		}
		return tx.Model(&p).Association("Categories").Replace(cats)
	})
	if err != nil {
		if dberr.IsDuplicateKey(err) {
			return Product{}, ErrDuplicate
		}
		return Product{}, err
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := Product{ID: id}
		if err := tx.Model(&p).Association("Categories").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddImage appends url to the product gallery.
func (r *Repo) AddImage(ctx context.Context, id, url string) (Product, error) {
	return r.mutateImages(ctx, id, func(imgs []string) []string {
		if slices.Contains(imgs, url) {
			return imgs
		}
		return append(imgs, url)
	})
}

func (r *Repo) RemoveImage(ctx context.Context, id, url string) (Product, error) {
	return r.mutateImages(ctx, id, func(imgs []string) []string {
		return slices.DeleteFunc(imgs, func(s string) bool { return s == url })
	})
}

func (r *Repo) mutateImages(ctx context.Context, id string, fn func([]string) []string) (Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	imgs := fn(slices.Clone([]string(p.Images)))
	if err := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"images":     datatypes.NewJSONSlice(imgs),
			"updated_at": time.Now(),
		}).Error; err != nil {
		return Product{}, err
	}
	p.Images = imgs
	return p, nil
}

// LowStock returns active products at or below threshold units.
func (r *Repo) LowStock(ctx context.Context, threshold, limit int) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Where("status = ? AND stock_quantity <= ?", StatusActive, threshold).
		Order("stock_quantity ASC, name ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Product{}).Count(&n).Error
	return n, err
}

// --- categories ---

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	var items []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CreateCategory(ctx context.Context, name, s, desc string) (Category, error) {
	name = strings.TrimSpace(name)
	if s = strings.TrimSpace(s); s == "" {
		s = slug.FromName(name, "category")
	}
	now := time.Now()
	c := Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        s,
		Description: strings.TrimSpace(desc),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return Category{}, ErrCategoryInUse
		}
		return Category{}, err
	}
	return c, nil
}

func (r *Repo) UpdateCategory(ctx context.Context, id, name, s, desc string) (Category, error) {
	name = strings.TrimSpace(name)
	if s = strings.TrimSpace(s); s == "" {
		s = slug.FromName(name, "category")
	}
	res := r.db.WithContext(ctx).Model(&Category{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"slug":        s,
			"description": strings.TrimSpace(desc),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		if dberr.IsDuplicateKey(res.Error) {
			return Category{}, ErrCategoryInUse
		}
		return Category{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Category{}, ErrCategoryNotFound
	}
	var c Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, err
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

func loadCategories(tx *gorm.DB, ids []string) ([]Category, error) {
	if len(ids) == 0 {
		return []Category{}, nil
	}
	var cats []Category
	if err := tx.Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return nil, err
	}
	if len(cats) != len(uniq(ids)) {
		return nil, ErrCategoryNotFound
	}
	return cats, nil
}

func apply(p *Product, in Input) {
	p.SKU = in.SKU
	p.Name = in.Name
	p.Slug = in.Slug
	p.Description = strings.TrimSpace(in.Description)
	p.PriceCents = in.PriceCents
	p.CompareAtCents = in.CompareAtCents
	p.Currency = in.Currency
	p.StockQuantity = in.StockQuantity
	p.HeatLevel = in.HeatLevel
	p.Scoville = in.Scoville
	p.Status = in.Status
	p.Images = datatypes.NewJSONSlice(in.Images)
	p.MetaTitle = strings.TrimSpace(in.MetaTitle)
	p.MetaDescription = strings.TrimSpace(in.MetaDescription)
}

func uniq(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func pageBounds(page, size, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = def
	}
	return page, size
}
