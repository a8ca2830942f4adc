package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"caucus/contexts/content/press-service/domain/entities"
)

type postModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Slug        string    `gorm:"column:slug;uniqueIndex:idx_posts_slug"`
	ContentHTML string    `gorm:"column:content_html"`
	Excerpt     string    `gorm:"column:excerpt"`
	ContentType string    `gorm:"column:content_type"`
	Status      string    `gorm:"column:status"`
	Categories  []byte    `gorm:"column:categories"`
	Tags        []byte    `gorm:"column:tags"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (postModel) TableName() string {
	return "posts"
}

func postModelFromEntity(post entities.Post) (postModel, error) {
	categories, err := marshalStrings(post.Categories)
	if err != nil {
		return postModel{}, err
	}
	tags, err := marshalStrings(post.Tags)
	if err != nil {
		return postModel{}, err
	}
	row := postModel{
		ID:          strings.TrimSpace(post.PostID),
		Title:       strings.TrimSpace(post.Title),
		Slug:        strings.TrimSpace(post.Slug),
		ContentHTML: post.ContentHTML,
		Excerpt:     post.Excerpt,
		ContentType: strings.TrimSpace(post.ContentType),
		Status:      string(post.Status),
		Categories:  categories,
		Tags:        tags,
		CreatedAt:   post.CreatedAt.UTC(),
		UpdatedAt:   post.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row, nil
}

func (m postModel) toEntity() (entities.Post, error) {
	categories, err := unmarshalStrings(m.Categories)
	if err != nil {
		return entities.Post{}, err
	}
	tags, err := unmarshalStrings(m.Tags)
	if err != nil {
		return entities.Post{}, err
	}
	return entities.Post{
		PostID:      m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		ContentHTML: m.ContentHTML,
		Excerpt:     m.Excerpt,
		ContentType: m.ContentType,
		Status:      entities.PostStatus(m.Status),
		Categories:  categories,
		Tags:        tags,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalStrings(payload []byte) ([]string, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, err
	}
	return values, nil
}
