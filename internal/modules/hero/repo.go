package hero

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListActive returns the banners shown on the storefront, in display order.
func (r *Repo) ListActive(ctx context.Context) ([]Image, error) {
	var out []Image
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *Repo) List(ctx context.Context) ([]Image, error) {
	var out []Image
	err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&out).Error
	return out, err
}

func (r *Repo) Get(ctx context.Context, id string) (Image, error) {
	var img Image
	if err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return Image{}, ErrNotFound
		}
		return Image{}, err
	}
	return img, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (Image, error) {
	if err := in.normalize(); err != nil {
		return Image{}, err
	}
	now := time.Now()
	img := Image{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	apply(&img, in)
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return Image{}, err
	}
	return img, nil
}

func (r *Repo) Update(ctx context.Context, id string, in Input) (Image, error) {
	if err := in.normalize(); err != nil {
		return Image{}, err
	}
	img, err := r.Get(ctx, id)
	if err != nil {
		return Image{}, err
	}
	if img.ImageURL != in.ImageURL {
		img.StorageKey = ""
	}
	apply(&img, in)
	img.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&img).Error; err != nil {
		return Image{}, err
	}
	return img, nil
}

// SetImage points a banner at a freshly uploaded object and returns the
// storage key it replaced, if any.
func (r *Repo) SetImage(ctx context.Context, id, url, key string) (Image, string, error) {
	img, err := r.Get(ctx, id)
	if err != nil {
		return Image{}, "", err
	}
	old := img.StorageKey
	img.ImageURL = url
	img.StorageKey = key
	img.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&img).Error; err != nil {
		return Image{}, "", err
	}
	return img, old, nil
}

// Delete removes the row and returns it so the caller can drop the stored
// object.
func (r *Repo) Delete(ctx context.Context, id string) (Image, error) {
	img, err := r.Get(ctx, id)
	if err != nil {
		return Image{}, err
	}
	if err := r.db.WithContext(ctx).Delete(&Image{}, "id = ?", id).Error; err != nil {
		return Image{}, err
	}
	return img, nil
}

func apply(img *Image, in Input) {
	img.Title = in.Title
	img.Subtitle = in.Subtitle
	img.ImageURL = in.ImageURL
	img.LinkURL = in.LinkURL
	img.Position = in.Position
	img.Active = in.Active
}

func (in *Input) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.LinkURL = strings.TrimSpace(in.LinkURL)
	if in.Title == "" || in.ImageURL == "" {
		return ErrInvalid
	}
	return nil
}
