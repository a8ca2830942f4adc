package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"caucus/contexts/content/press-service/domain/entities"
	domainerrors "caucus/contexts/content/press-service/domain/errors"
	"caucus/contexts/content/press-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) InsertPost(ctx context.Context, post entities.Post) error {
	row, err := postModelFromEntity(post)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return r.logError("press_repo_insert_post_failed", err,
			"post_id", row.ID,
			"slug", row.Slug,
		)
	}
	return nil
}

func (r *Repository) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(postID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, r.logError("press_repo_get_post_failed", err,
			"post_id", strings.TrimSpace(postID),
		)
	}
	return row.toEntity()
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (entities.Post, bool, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, false, nil
		}
		return entities.Post{}, false, r.logError("press_repo_get_post_by_slug_failed", err,
			"slug", strings.TrimSpace(slug),
		)
	}
	post, convErr := row.toEntity()
	if convErr != nil {
		return entities.Post{}, false, convErr
	}
	return post, true, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "content/press-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("press repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PostRepository = (*Repository)(nil)
