package hero

import "time"

type Image struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Subtitle   string    `gorm:"size:500" json:"subtitle"`
	ImageURL   string    `gorm:"size:500;not null" json:"image_url"`
	StorageKey string    `gorm:"size:500" json:"-"`
	LinkURL    string    `gorm:"size:500" json:"link_url"`
	Position   int       `gorm:"not null;default:0;index:ix_hero_images_position" json:"position"`
	Active     bool      `gorm:"not null" json:"active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Image) TableName() string { return "hero_images" }

type Input struct {
	Title    string
	Subtitle string
	ImageURL string
	LinkURL  string
	Position int
	Active   bool
}
