package blog

import "time"

const (
	KindArticle = "article"
	KindRecipe  = "recipe"

	StatusDraft     = "draft"
	StatusPublished = "published"
)

var (
	Kinds    = []string{KindArticle, KindRecipe}
	Statuses = []string{StatusDraft, StatusPublished}
)

type Post struct {
	ID              string     `gorm:"type:char(36);primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Slug            string     `gorm:"size:255;not null;uniqueIndex:ux_blog_posts_slug" json:"slug"`
	Kind            string     `gorm:"size:16;not null;default:article;index:ix_blog_posts_kind" json:"kind"`
	Excerpt         string     `gorm:"size:500" json:"excerpt"`
	Body            string     `gorm:"type:text" json:"body"`
	CoverImageURL   string     `gorm:"size:500" json:"cover_image_url"`
	Status          string     `gorm:"size:16;not null;default:draft;index:ix_blog_posts_status" json:"status"`
	PublishedAt     *time.Time `gorm:"index:ix_blog_posts_published_at" json:"published_at"`
	AuthorID        *string    `gorm:"type:char(36)" json:"author_id"`
	MetaTitle       string     `gorm:"size:255" json:"meta_title"`
	MetaDescription string     `gorm:"size:500" json:"meta_description"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "blog_posts" }

type Input struct {
	Title           string
	Slug            string
	Kind            string
	Excerpt         string
	Body            string
	CoverImageURL   string
	Status          string
	MetaTitle       string
	MetaDescription string
}
