package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"caucus/contexts/content/press-service/application/queries"
	"caucus/contexts/content/press-service/domain/entities"
	httptransport "caucus/contexts/content/press-service/transport/http"
)

type Handler struct {
	Queries queries.PostQueries
	Logger  *slog.Logger
}

// GetPostHandler godoc
// @Summary Get a content post
// @Tags press-service
// @Produce json
// @Param post_id path string true "Post id"
// @Success 200 {object} httptransport.PostResponse
// @Router /posts/{post_id} [get]
func (h Handler) GetPostHandler(ctx context.Context, postID string) (httptransport.PostResponse, error) {
	post, err := h.Queries.GetPost(ctx, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return mapPost(post), nil
}

func mapPost(post entities.Post) httptransport.PostResponse {
	return httptransport.PostResponse{
		PostID:      post.PostID,
		Title:       post.Title,
		Slug:        post.Slug,
		ContentHTML: post.ContentHTML,
		Excerpt:     post.Excerpt,
		ContentType: post.ContentType,
		Status:      string(post.Status),
		Categories:  post.Categories,
		Tags:        post.Tags,
		CreatedAt:   post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   post.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
