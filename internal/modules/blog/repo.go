package blog

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/slug"
)

type Repo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db, now: time.Now} }

type ListParams struct {
	Q        string
	Kind     string
	Status   string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Post
	Total int64
}

// ListPublished is the storefront listing, newest first.
func (r *Repo) ListPublished(ctx context.Context, in ListParams) (ListResult, error) {
	in.Status = StatusPublished
	return r.list(ctx, in, "published_at DESC, created_at DESC")
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	return r.list(ctx, in, "updated_at DESC")
}

func (r *Repo) list(ctx context.Context, in ListParams, order string) (ListResult, error) {
	page, size := pageBounds(in.Page, in.PageSize, 12)

	base := r.db.WithContext(ctx).Model(&Post{})
	if k := strings.TrimSpace(in.Kind); k != "" {
		base = base.Where("kind = ?", k)
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		base = base.Where("status = ?", s)
	}
	if q := strings.TrimSpace(in.Q); q != "" {
		base = base.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}
	var items []Post
	if err := base.Order(order).Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) GetPublishedBySlug(ctx context.Context, s string) (Post, error) {
	return r.first(ctx, "slug = ? AND status = ?", s, StatusPublished)
}

func (r *Repo) Get(ctx context.Context, id string) (Post, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repo) first(ctx context.Context, query string, args ...any) (Post, error) {
	var p Post
	if err := r.db.WithContext(ctx).Where(query, args...).First(&p).Error; err != nil {
		if dberr.IsNotFound(err) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

func (r *Repo) Create(ctx context.Context, authorID string, in Input) (Post, error) {
	if err := in.normalize(); err != nil {
		return Post{}, err
	}
	now := r.now()
	p := Post{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if authorID != "" {
		p.AuthorID = &authorID
	}
	r.apply(&p, in, now)

	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return Post{}, ErrDuplicateSlug
		}
		return Post{}, err
	}
	return p, nil
}

// Update keeps the stored slug unless a new one is sent.
func (r *Repo) Update(ctx context.Context, id string, in Input) (Post, error) {
	var p Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if dberr.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if strings.TrimSpace(in.Slug) == "" {
			in.Slug = p.Slug
		}
		if err := in.normalize(); err != nil {
			return err
		}
		now := r.now()
		r.apply(&p, in, now)
		p.UpdatedAt = now
		return tx.Save(&p).Error
	})
	if err != nil {
		if dberr.IsDuplicateKey(err) {
			return Post{}, ErrDuplicateSlug
		}
		return Post{}, err
	}
	return p, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Post{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// apply copies in onto p. published_at is stamped the first time a post is
// published and kept from then on, even if it goes back to draft.
func (r *Repo) apply(p *Post, in Input, now time.Time) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Kind = in.Kind
	p.Excerpt = in.Excerpt
	p.Body = in.Body
	p.CoverImageURL = in.CoverImageURL
	p.Status = in.Status
	p.MetaTitle = in.MetaTitle
	p.MetaDescription = in.MetaDescription
	if p.Status == StatusPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
}

func (in *Input) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.FromName(in.Title, "post")
	}
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.CoverImageURL = strings.TrimSpace(in.CoverImageURL)
	in.MetaTitle = strings.TrimSpace(in.MetaTitle)
	in.MetaDescription = strings.TrimSpace(in.MetaDescription)
	if in.Kind == "" {
		in.Kind = KindArticle
	}
	if in.Status == "" {
		in.Status = StatusDraft
	}

	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "Title is required."
	}
	if !slug.Valid(in.Slug) {
		fields["slug"] = "Slug may only contain a-z, 0-9 and dashes."
	}
	if !slices.Contains(Kinds, in.Kind) {
		fields["kind"] = "Kind must be article or recipe."
	}
	if !slices.Contains(Statuses, in.Status) {
		fields["status"] = "Status must be draft or published."
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
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
