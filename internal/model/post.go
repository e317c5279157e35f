package model

import (
	"encoding/json"
	"time"
)

// Canonical status enum. Earlier category pages mixed "public" and
// "published"; every filter in this codebase uses PostStatusPublished.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post categories. A Post is the generic published-content record; the
// category plus the Metadata bag distinguishes news from testimonials,
// surveys, activities and achievement certifications.
const (
	CategoryNews        = "news"
	CategoryTestimonial = "testimonial"
	CategorySurvey      = "survey"
	CategoryActivity    = "activity"
	CategoryAchievement = "실제 학습 성과 인증"
)

// swagger:model Post
type Post struct {
	UUIDBase

	Category     string          `gorm:"size:100;index;not null" json:"category"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Summary      string          `gorm:"type:text" json:"summary"`
	ThumbnailURL string          `gorm:"size:512" json:"thumbnailUrl"`
	ImageURLs    json.RawMessage `gorm:"type:json" json:"imageUrls"` // JSON array of urls
	YoutubeURL   string          `gorm:"size:512" json:"youtubeUrl"`
	Tags         json.RawMessage `gorm:"type:json" json:"tags"`
	Status       string          `gorm:"size:20;index;default:'draft'" json:"status"`
	PublishAt    *time.Time      `gorm:"index" json:"publishAt,omitempty"`
	Body         string          `gorm:"type:longtext" json:"body"` // markdown
	RelatedLinks json.RawMessage `gorm:"type:json" json:"relatedLinks"`
	Metadata     json.RawMessage `gorm:"type:json" json:"metadata"` // category-specific bag

	Views int `gorm:"default:0" json:"views"`
	Likes int `gorm:"default:0" json:"likes"`

	AuthorID uint `gorm:"index" json:"authorId"`
}

func (Post) TableName() string {
	return "posts"
}

// swagger:model Comment
type Comment struct {
	UUIDBase

	PostID string `gorm:"size:36;index;not null" json:"postId"`
	Author string `gorm:"size:100;not null" json:"author"`
	Body   string `gorm:"type:text;not null" json:"body"`
}

func (Comment) TableName() string {
	return "comments"
}

// PostReaction dedupes likes per client key (cookie id or ip hash).
type PostReaction struct {
	BaseModel

	PostID    string `gorm:"size:36;index;uniqueIndex:uniq_post_client"`
	ClientKey string `gorm:"size:100;uniqueIndex:uniq_post_client"`
}

func (PostReaction) TableName() string {
	return "post_reactions"
}
