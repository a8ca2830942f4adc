package ports

import (
	"context"
	"time"

	"caucus/contexts/content/press-service/domain/entities"
)

type PostRepository interface {
	// InsertPost persists a new post. It returns ErrSlugTaken when the slug is
	// already in use; the create command retries with a suffixed slug.
	InsertPost(ctx context.Context, post entities.Post) error
	GetPost(ctx context.Context, postID string) (entities.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (entities.Post, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
