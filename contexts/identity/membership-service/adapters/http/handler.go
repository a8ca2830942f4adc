package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"caucus/contexts/identity/membership-service/application/commands"
	"caucus/contexts/identity/membership-service/application/queries"
	"caucus/contexts/identity/membership-service/domain/entities"
	httptransport "caucus/contexts/identity/membership-service/transport/http"
)

type Handler struct {
	Roles  commands.RoleUseCase
	Actors queries.ActorQueries
	Logger *slog.Logger
}

func (h Handler) GetRolesHandler(ctx context.Context, memberID string) (httptransport.MemberResponse, error) {
	member, err := h.Actors.GetMember(ctx, memberID)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) GrantRoleHandler(
	ctx context.Context,
	actorID string,
	memberID string,
	req httptransport.RoleChangeRequest,
) (httptransport.MemberResponse, error) {
	member, err := h.Roles.GrantRole(ctx, commands.RoleChangeCommand{
		ActorID:  actorID,
		MemberID: memberID,
		Role:     entities.Role(req.Role),
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) RevokeRoleHandler(
	ctx context.Context,
	actorID string,
	memberID string,
	req httptransport.RoleChangeRequest,
) (httptransport.MemberResponse, error) {
	member, err := h.Roles.RevokeRole(ctx, commands.RoleChangeCommand{
		ActorID:  actorID,
		MemberID: memberID,
		Role:     entities.Role(req.Role),
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func mapMember(member entities.Member) httptransport.MemberResponse {
	roles := make([]string, 0, len(member.Roles))
	for _, role := range member.Roles {
		roles = append(roles, string(role))
	}
	return httptransport.MemberResponse{
		MemberID:  member.MemberID,
		Name:      member.Name,
		Email:     member.Email,
		Roles:     roles,
		UpdatedAt: member.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
