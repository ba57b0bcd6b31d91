package seo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context) ([]Metadata, error) {
	var out []Metadata
	err := r.db.WithContext(ctx).Order("page_path ASC").Find(&out).Error
	return out, err
}

func (r *Repo) GetByPath(ctx context.Context, path string) (Metadata, error) {
	p, err := NormalizePath(path)
	if err != nil {
		return Metadata{}, err
	}
	return r.first(ctx, "page_path = ?", p)
}

func (r *Repo) Get(ctx context.Context, id string) (Metadata, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repo) first(ctx context.Context, query string, args ...any) (Metadata, error) {
	var m Metadata
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		if dberr.IsNotFound(err) {
			return Metadata{}, ErrNotFound
		}
		return Metadata{}, err
	}
	return m, nil
}

// Upsert writes the metadata for a page path, replacing what was there.
func (r *Repo) Upsert(ctx context.Context, in Input) (Metadata, error) {
	p, err := NormalizePath(in.PagePath)
	if err != nil {
		return Metadata{}, err
	}
	now := time.Now()
	m := Metadata{
		ID:          uuid.NewString(),
		PagePath:    p,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Keywords:    strings.TrimSpace(in.Keywords),
		OGImageURL:  strings.TrimSpace(in.OGImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_path"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "keywords", "og_image_url", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return Metadata{}, err
	}
	return r.GetByPath(ctx, p)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Metadata{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NormalizePath drops query and fragment and any trailing slash except on
// the root path.
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p, nil
}
