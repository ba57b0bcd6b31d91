package media

import "time"

type Item struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	URL         string    `gorm:"size:500;not null" json:"url"`
	StorageKey  string    `gorm:"size:500;not null" json:"-"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	AltText     string    `gorm:"size:255" json:"alt_text"`
	UploadedBy  *string   `gorm:"type:char(36)" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"not null;index:ix_media_items_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Item) TableName() string { return "media_items" }
