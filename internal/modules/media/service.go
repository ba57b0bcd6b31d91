package media

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
)

// Service keeps the media library rows and the stored objects in step.
type Service struct {
	db    *gorm.DB
	store storage.Storage
	log   *slog.Logger
}

func NewService(db *gorm.DB, store storage.Storage, l *slog.Logger) *Service {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{db: db, store: store, log: l}
}

type ListParams struct {
	Q        string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Item
	Total int64
}

func (s *Service) List(ctx context.Context, in ListParams) (ListResult, error) {
	page, size := in.Page, in.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 40
	}

	base := s.db.WithContext(ctx).Model(&Item{})
	if q := strings.TrimSpace(in.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("(LOWER(filename) LIKE ? OR LOWER(alt_text) LIKE ?)", like, like)
	}
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}
	var items []Item
	if err := base.Order("created_at DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	AltText     string
	UploadedBy  string
}

// Upload stores the object and records it. If the row cannot be written the
// object is removed again.
func (s *Service) Upload(ctx context.Context, r io.Reader, in UploadInput) (Item, error) {
	ct, err := storage.CheckImage(in.Filename, in.ContentType, in.Size)
	if err != nil {
		return Item{}, err
	}
	res, err := s.store.Put(ctx, r, storage.PutInput{Filename: in.Filename, ContentType: ct, Size: in.Size})
	if err != nil {
		return Item{}, err
	}

	now := time.Now()
	it := Item{
		ID:          uuid.NewString(),
		Filename:    filepath.Base(in.Filename),
		URL:         res.URL,
		StorageKey:  res.Key,
		ContentType: ct,
		SizeBytes:   in.Size,
		AltText:     strings.TrimSpace(in.AltText),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.UploadedBy != "" {
		it.UploadedBy = &in.UploadedBy
	}
	if err := s.db.WithContext(ctx).Create(&it).Error; err != nil {
		if derr := s.store.Delete(context.WithoutCancel(ctx), res.Key); derr != nil {
			s.log.WarnContext(ctx, "orphaned upload", "key", res.Key, "err", derr)
		}
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	var it Item
	if err := s.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (s *Service) UpdateAlt(ctx context.Context, id, alt string) (Item, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	it.AltText = strings.TrimSpace(alt)
	it.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(&it).Error; err != nil {
		return Item{}, err
	}
	return it, nil
}

// Delete removes the row first; a failure to remove the stored object is
// logged and not returned.
func (s *Service) Delete(ctx context.Context, id string) error {
	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&Item{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.store.Delete(ctx, it.StorageKey); err != nil {
		s.log.WarnContext(ctx, "stored object not removed", "key", it.StorageKey, "err", err)
	}
	return nil
}
