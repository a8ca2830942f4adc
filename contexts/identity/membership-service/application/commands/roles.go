package commands

import (
	"context"
	"log/slog"
	"strings"

	application "caucus/contexts/identity/membership-service/application"
	"caucus/contexts/identity/membership-service/domain/entities"
	domainerrors "caucus/contexts/identity/membership-service/domain/errors"
	"caucus/contexts/identity/membership-service/ports"
)

type RoleChangeCommand struct {
	ActorID  string
	MemberID string
	Role     entities.Role
}

// RoleUseCase grants and revokes member roles. Both operations are
// national-admin gated and idempotent.
type RoleUseCase struct {
	Members ports.MemberRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc RoleUseCase) GrantRole(ctx context.Context, cmd RoleChangeCommand) (entities.Member, error) {
	return uc.changeRole(ctx, cmd, true)
}

func (uc RoleUseCase) RevokeRole(ctx context.Context, cmd RoleChangeCommand) (entities.Member, error) {
	return uc.changeRole(ctx, cmd, false)
}

func (uc RoleUseCase) changeRole(ctx context.Context, cmd RoleChangeCommand, grant bool) (entities.Member, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.IsValidRole(cmd.Role) {
		return entities.Member{}, domainerrors.ErrInvalidRole
	}
	actorID := strings.TrimSpace(cmd.ActorID)
	if actorID == "" {
		return entities.Member{}, domainerrors.ErrForbidden
	}
	actor, err := uc.Members.GetMember(ctx, actorID)
	if err != nil {
		return entities.Member{}, err
	}
	if !actor.HasRole(entities.RoleNationalAdmin) {
		return entities.Member{}, domainerrors.ErrForbidden
	}

	memberID := strings.TrimSpace(cmd.MemberID)
	if _, err := uc.Members.GetMember(ctx, memberID); err != nil {
		return entities.Member{}, err
	}
	now := uc.Clock.Now().UTC()
	if grant {
		err = uc.Members.GrantRole(ctx, memberID, cmd.Role, now)
	} else {
		err = uc.Members.RevokeRole(ctx, memberID, cmd.Role, now)
	}
	if err != nil {
		return entities.Member{}, err
	}

	event := "role_granted"
	if !grant {
		event = "role_revoked"
	}
	logger.Info("member role changed",
		"event", event,
		"module", "identity/membership-service",
		"layer", "application",
		"member_id", memberID,
		"role", string(cmd.Role),
		"actor_id", actorID,
	)
	return uc.Members.GetMember(ctx, memberID)
}
