package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying database connection for direct queries.
func (r *Repo) DB() *gorm.DB { return r.db }

type ListByUserParams struct {
	UserID   string
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListResult struct {
	Items []Order
	Total int64
}

// ListByUser returns the user's orders, newest first, including guest orders
// placed with the same e-mail before the account existed.
func (r *Repo) ListByUser(ctx context.Context, in ListByUserParams) (ListResult, error) {
	page, size := pageBounds(in.Page, in.PageSize, 20)

	var userEmail string
	if err := r.db.WithContext(ctx).Table("users").Select("email").Where("id = ?", in.UserID).Scan(&userEmail).Error; err != nil {
		return ListResult{}, err
	}

	q := r.db.WithContext(ctx).Model(&Order{}).
		Where("user_id = ? OR (user_id IS NULL AND email = ?)", in.UserID, userEmail)
	if status := strings.TrimSpace(in.Status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}
	var items []Order
	if err := q.Scopes(newestPage(page, size)).Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&o, "id = ?", id).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

// GetForUser hides orders that belong to somebody else behind ErrNotFound.
func (r *Repo) GetForUser(ctx context.Context, id, userID string) (Order, error) {
	o, err := r.GetWithItems(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// newestPage loads items for one page of orders, newest first.
func newestPage(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload("Items").
			Order("created_at DESC, id DESC").
			Limit(size).
			Offset((page - 1) * size)
	}
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
