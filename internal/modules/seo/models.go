package seo

import "time"

type Metadata struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	PagePath    string    `gorm:"size:255;not null;uniqueIndex:ux_seo_metadata_page_path" json:"page_path"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	Keywords    string    `gorm:"size:500" json:"keywords"`
	OGImageURL  string    `gorm:"size:500" json:"og_image_url"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Metadata) TableName() string { return "seo_metadata" }

type Input struct {
	PagePath    string
	Title       string
	Description string
	Keywords    string
	OGImageURL  string
}
