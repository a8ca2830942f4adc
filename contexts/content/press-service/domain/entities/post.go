package entities

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a content item managed by the press module. Endorsement press
// releases arrive as drafts; editors publish them elsewhere.
type Post struct {
	PostID      string
	Title       string
	Slug        string
	ContentHTML string
	Excerpt     string
	ContentType string
	Status      PostStatus
	Categories  []string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
