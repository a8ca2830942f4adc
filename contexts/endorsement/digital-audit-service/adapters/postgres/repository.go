package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/digital-audit-service/domain/errors"
	"caucus/contexts/endorsement/digital-audit-service/ports"

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

// InsertAudit relies on a partial unique index over vetting_id where the
// status is pending or running; a 23505 from it means a concurrent trigger
// already holds the slot.
func (r *Repository) InsertAudit(ctx context.Context, audit entities.DigitalAudit) error {
	row := auditModelFromEntity(audit)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateAudit
		}
		return r.logError("audit_repo_insert_failed", err,
			"audit_id", row.ID,
			"vetting_id", row.VettingID,
		)
	}
	return nil
}

func (r *Repository) GetAudit(ctx context.Context, auditID string) (entities.DigitalAudit, error) {
	var row digitalAuditModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(auditID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DigitalAudit{}, domainerrors.ErrAuditNotFound
		}
		return entities.DigitalAudit{}, r.logError("audit_repo_get_failed", err,
			"audit_id", strings.TrimSpace(auditID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetLatestAudit(ctx context.Context, vettingID string) (entities.DigitalAudit, bool, error) {
	var row digitalAuditModel
	err := r.db.WithContext(ctx).
		Where("vetting_id = ?", strings.TrimSpace(vettingID)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DigitalAudit{}, false, nil
		}
		return entities.DigitalAudit{}, false, r.logError("audit_repo_get_latest_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetActiveAudit(ctx context.Context, vettingID string) (entities.DigitalAudit, bool, error) {
	var row digitalAuditModel
	err := r.db.WithContext(ctx).
		Where("vetting_id = ?", strings.TrimSpace(vettingID)).
		Where("status IN ?", []string{
			string(entities.AuditStatusPending),
			string(entities.AuditStatusRunning),
		}).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DigitalAudit{}, false, nil
		}
		return entities.DigitalAudit{}, false, r.logError("audit_repo_get_active_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) UpdateAuditStatus(
	ctx context.Context,
	auditID string,
	status entities.AuditStatus,
	errorMessage string,
	completedAt *time.Time,
) error {
	values := map[string]any{
		"status":        string(status),
		"error_message": errorMessage,
	}
	if completedAt != nil {
		stamp := completedAt.UTC()
		values["completed_at"] = &stamp
	}
	update := r.db.WithContext(ctx).Model(&digitalAuditModel{}).
		Where("id = ?", strings.TrimSpace(auditID)).
		Updates(values)
	if update.Error != nil {
		return r.logError("audit_repo_update_status_failed", update.Error,
			"audit_id", strings.TrimSpace(auditID),
			"status", string(status),
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrAuditNotFound
	}
	return nil
}

func (r *Repository) ListStaleRunning(ctx context.Context, olderThan time.Time) ([]entities.DigitalAudit, error) {
	var rows []digitalAuditModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.AuditStatusRunning)).
		Where("created_at < ?", olderThan.UTC()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("audit_repo_list_stale_failed", err)
	}
	items := make([]entities.DigitalAudit, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SavePlatform(ctx context.Context, platform entities.AuditPlatform) error {
	row, err := platformModelFromEntity(platform)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("audit_repo_save_platform_failed", err,
			"audit_id", row.AuditID,
			"entity_type", row.EntityType,
		)
	}
	return nil
}

func (r *Repository) ListPlatforms(ctx context.Context, auditID string) ([]entities.AuditPlatform, error) {
	var rows []auditPlatformModel
	if err := r.db.WithContext(ctx).
		Where("audit_id = ?", strings.TrimSpace(auditID)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("audit_repo_list_platforms_failed", err,
			"audit_id", strings.TrimSpace(auditID),
		)
	}
	items := make([]entities.AuditPlatform, 0, len(rows))
	for _, row := range rows {
		platform, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, platform)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "endorsement/digital-audit-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("audit repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AuditRepository = (*Repository)(nil)
