package queries

import (
	"context"
	"strings"

	"caucus/contexts/content/press-service/domain/entities"
	"caucus/contexts/content/press-service/ports"
)

type PostQueries struct {
	Posts ports.PostRepository
}

func (q PostQueries) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	return q.Posts.GetPost(ctx, strings.TrimSpace(postID))
}
