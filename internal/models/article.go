package models

import (
	"time"
)

// Article represents a news article in the system
type Article struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	CategoryID  int64      `json:"category_id" db:"category_id"`
	Content     *string    `json:"content,omitempty" db:"content"`
	Image       string     `json:"image,omitempty" db:"image"`
	AuthorID    *string    `json:"author_id,omitempty" db:"author_id"`
	Views       int64      `json:"views" db:"views"`
	ReadingTime int        `json:"reading_time" db:"reading_time"`
	IsPublished bool       `json:"is_published" db:"is_published"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
}

// ContentText returns the article body or an empty string when unset
func (a *Article) ContentText() string {
	if a.Content == nil {
		return ""
	}
	return *a.Content
}

// ArticleInput carries the editor-supplied fields for creating or updating an article
type ArticleInput struct {
	Title       string     `json:"title" form:"title"`
	Slug        string     `json:"slug" form:"slug"`
	CategoryID  int64      `json:"category_id" form:"category_id"`
	Content     *string    `json:"content" form:"content"`
	AuthorID    *string    `json:"author_id" form:"author_id"`
	IsPublished *bool      `json:"is_published" form:"is_published"`
	PublishedAt *time.Time `json:"published_at" form:"published_at" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ImageUpload is an image file attached to an article save
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ImageStatus describes what happened to an article image during a save
type ImageStatus string

const (
	ImageStatusSkipped    ImageStatus = "skipped"
	ImageStatusNormalized ImageStatus = "normalized"
	ImageStatusFailed     ImageStatus = "failed"
)

// ImageResult is the outcome of the image normalization step of a save
type ImageResult struct {
	Status  ImageStatus `json:"status"`
	Reason  string      `json:"reason,omitempty"`
	Width   int         `json:"width,omitempty"`
	Height  int         `json:"height,omitempty"`
	Resized bool        `json:"resized"`
}

// SaveResult is returned by every article save. The article is persisted
// regardless of the image outcome.
type SaveResult struct {
	Article *Article    `json:"article"`
	Image   ImageResult `json:"image"`
}

// ArticleDetail is the reader view of a single published article
type ArticleDetail struct {
	Article       *Article   `json:"article"`
	Comments      []*Comment `json:"comments"`
	CommentsCount int        `json:"comments_count"`
	Next          *Article   `json:"next,omitempty"`
	Previous      *Article   `json:"previous,omitempty"`
	MostRead      []*Article `json:"most_read"`
}

// HomeFeed groups the article slices shown on the front page
type HomeFeed struct {
	Lead     *Article   `json:"lead,omitempty"`
	Latest   []*Article `json:"latest"`
	Featured []*Article `json:"featured"`
	More     []*Article `json:"more"`
	MostRead []*Article `json:"most_read"`
}

// ArticleFilter narrows article listings
type ArticleFilter struct {
	CategoryID    int64
	PublishedOnly bool
	OrderBy       string
	Offset        int
	Limit         int
}

// Article listing orders
const (
	OrderNewest        = "created_at DESC"
	OrderLatestPublish = "published_at DESC NULLS LAST"
	OrderMostViewed    = "views DESC"
)

// ArticlePage is a paginated list of articles
type ArticlePage struct {
	Items    []*Article `json:"items"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Total    int        `json:"total"`
}
