package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	application "caucus/contexts/content/press-service/application"
	"caucus/contexts/content/press-service/domain/entities"
	domainerrors "caucus/contexts/content/press-service/domain/errors"
	"caucus/contexts/content/press-service/ports"
)

// slugAttempts bounds collision retries; beyond it the id fragment is used.
const slugAttempts = 5

type CreateDraftCommand struct {
	Title       string
	Slug        string
	ContentHTML string
	Excerpt     string
	ContentType string
	Categories  []string
	Tags        []string
}

type PostUseCase struct {
	Posts  ports.PostRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateDraft stores the draft under the requested slug, suffixing -2, -3, …
// on collision. Uniqueness is enforced by storage; the loop only reacts to
// ErrSlugTaken so concurrent creators cannot both win the same slug.
func (uc PostUseCase) CreateDraft(ctx context.Context, cmd CreateDraftCommand) (entities.Post, error) {
	logger := application.ResolveLogger(uc.Logger)
	title := strings.TrimSpace(cmd.Title)
	if title == "" || strings.TrimSpace(cmd.ContentHTML) == "" {
		return entities.Post{}, domainerrors.ErrInvalidPost
	}

	postID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}
	now := uc.Clock.Now().UTC()
	contentType := strings.TrimSpace(cmd.ContentType)
	if contentType == "" {
		contentType = "press_release"
	}
	base := strings.TrimSpace(cmd.Slug)
	if base == "" {
		base = postID
	}

	post := entities.Post{
		PostID:      postID,
		Title:       title,
		ContentHTML: cmd.ContentHTML,
		Excerpt:     strings.TrimSpace(cmd.Excerpt),
		ContentType: contentType,
		Status:      entities.PostStatusDraft,
		Categories:  cmd.Categories,
		Tags:        cmd.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for attempt := 1; attempt <= slugAttempts; attempt++ {
		post.Slug = base
		if attempt > 1 {
			post.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		err := uc.Posts.InsertPost(ctx, post)
		if errors.Is(err, domainerrors.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return entities.Post{}, err
		}
		logger.Info("press draft created",
			"event", "post_draft_created",
			"module", "content/press-service",
			"layer", "application",
			"post_id", post.PostID,
			"slug", post.Slug,
		)
		return post, nil
	}

	// Exhausted suffixes; fall back to the globally unique id as the slug.
	post.Slug = fmt.Sprintf("%s-%s", base, postID)
	if err := uc.Posts.InsertPost(ctx, post); err != nil {
		return entities.Post{}, err
	}
	logger.Info("press draft created",
		"event", "post_draft_created",
		"module", "content/press-service",
		"layer", "application",
		"post_id", post.PostID,
		"slug", post.Slug,
	)
	return post, nil
}
