package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"caucus/contexts/identity/membership-service/domain/entities"
	domainerrors "caucus/contexts/identity/membership-service/domain/errors"
	"caucus/contexts/identity/membership-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) SaveMember(ctx context.Context, member entities.Member) error {
	row := memberModelFromEntity(member)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       row.Name,
			"email":      row.Email,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("membership_repo_save_member_failed", create.Error,
			"member_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) GetMember(ctx context.Context, memberID string) (entities.Member, error) {
	memberID = strings.TrimSpace(memberID)
	var row memberModel
	err := r.db.WithContext(ctx).
		Where("id = ?", memberID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Member{}, domainerrors.ErrMemberNotFound
		}
		return entities.Member{}, r.logError("membership_repo_get_member_failed", err,
			"member_id", memberID,
		)
	}

	var roleRows []memberRoleModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("role ASC").
		Find(&roleRows).Error; err != nil {
		return entities.Member{}, r.logError("membership_repo_list_roles_failed", err,
			"member_id", memberID,
		)
	}
	roles := make([]entities.Role, 0, len(roleRows))
	for _, roleRow := range roleRows {
		roles = append(roles, entities.Role(roleRow.Role))
	}
	return entities.Member{
		MemberID:  row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Roles:     roles,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

// GrantRole is idempotent through the composite primary key: re-granting a
// held role is a conflict that does nothing.
func (r *Repository) GrantRole(ctx context.Context, memberID string, role entities.Role, updatedAt time.Time) error {
	row := memberRoleModel{
		MemberID:  strings.TrimSpace(memberID),
		Role:      string(role),
		CreatedAt: updatedAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("membership_repo_grant_role_failed", create.Error,
			"member_id", row.MemberID,
			"role", row.Role,
		)
	}
	return r.touchMember(ctx, row.MemberID, updatedAt)
}

func (r *Repository) RevokeRole(ctx context.Context, memberID string, role entities.Role, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Where("member_id = ?", strings.TrimSpace(memberID)).
		Where("role = ?", string(role)).
		Delete(&memberRoleModel{})
	if result.Error != nil {
		return r.logError("membership_repo_revoke_role_failed", result.Error,
			"member_id", strings.TrimSpace(memberID),
			"role", string(role),
		)
	}
	return r.touchMember(ctx, strings.TrimSpace(memberID), updatedAt)
}

func (r *Repository) touchMember(ctx context.Context, memberID string, updatedAt time.Time) error {
	update := r.db.WithContext(ctx).Model(&memberModel{}).
		Where("id = ?", memberID).
		Update("updated_at", updatedAt.UTC())
	if update.Error != nil {
		return r.logError("membership_repo_touch_member_failed", update.Error,
			"member_id", memberID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity/membership-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("membership repository operation failed", fields...)
	return err
}

var _ ports.MemberRepository = (*Repository)(nil)
