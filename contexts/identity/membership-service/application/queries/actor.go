package queries

import (
	"context"
	"strings"

	"caucus/contexts/identity/membership-service/domain/entities"
	"caucus/contexts/identity/membership-service/ports"
)

// ActorQueries resolves members into permission projections for the other
// modules' directory ports.
type ActorQueries struct {
	Members ports.MemberRepository
}

func (q ActorQueries) ResolveActor(ctx context.Context, memberID string) (ports.ActorContext, error) {
	member, err := q.Members.GetMember(ctx, strings.TrimSpace(memberID))
	if err != nil {
		return ports.ActorContext{}, err
	}
	return ports.ActorContext{
		MemberID:          member.MemberID,
		IsCommitteeMember: member.HasRole(entities.RoleCommitteeMember) || member.HasRole(entities.RoleCommitteeChair),
		IsChair:           member.HasRole(entities.RoleCommitteeChair),
		IsBoardMember:     member.HasRole(entities.RoleBoardMember),
		IsNationalAdmin:   member.HasRole(entities.RoleNationalAdmin),
	}, nil
}

func (q ActorQueries) GetMember(ctx context.Context, memberID string) (entities.Member, error) {
	return q.Members.GetMember(ctx, strings.TrimSpace(memberID))
}
