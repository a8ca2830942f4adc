package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	membershipservice "caucus/contexts/identity/membership-service"
	"caucus/contexts/identity/membership-service/domain/entities"
	membererrors "caucus/contexts/identity/membership-service/domain/errors"
	httptransport "caucus/contexts/identity/membership-service/transport/http"
)

func membershipTestModule() membershipservice.Module {
	now := time.Now().UTC()
	return membershipservice.NewInMemoryModule([]entities.Member{
		{
			MemberID:  "admin-1",
			Name:      "Sam Ortega",
			Roles:     []entities.Role{entities.RoleNationalAdmin},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			MemberID:  "member-1",
			Name:      "Robin Vale",
			Roles:     []entities.Role{entities.RoleCommitteeMember},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			MemberID:  "member-2",
			Name:      "Alex Kim",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil)
}

func TestMembershipGrantAndRevokeRole(t *testing.T) {
	module := membershipTestModule()
	ctx := context.Background()

	member, err := module.Handler.GrantRoleHandler(ctx, "admin-1", "member-1", httptransport.RoleChangeRequest{
		Role: "board_member",
	})
	if err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if len(member.Roles) != 2 {
		t.Fatalf("expected two roles, got %v", member.Roles)
	}

	// Granting again is a no-op, not an error.
	member, err = module.Handler.GrantRoleHandler(ctx, "admin-1", "member-1", httptransport.RoleChangeRequest{
		Role: "board_member",
	})
	if err != nil {
		t.Fatalf("repeat grant failed: %v", err)
	}
	if len(member.Roles) != 2 {
		t.Fatalf("expected grant to stay idempotent, got %v", member.Roles)
	}

	member, err = module.Handler.RevokeRoleHandler(ctx, "admin-1", "member-1", httptransport.RoleChangeRequest{
		Role: "board_member",
	})
	if err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	for _, role := range member.Roles {
		if role == "board_member" {
			t.Fatalf("expected board_member to be revoked, got %v", member.Roles)
		}
	}

	// Revoking an absent role is also a no-op.
	if _, err := module.Handler.RevokeRoleHandler(ctx, "admin-1", "member-1", httptransport.RoleChangeRequest{
		Role: "board_member",
	}); err != nil {
		t.Fatalf("repeat revoke failed: %v", err)
	}
}

func TestMembershipRoleChangeGating(t *testing.T) {
	module := membershipTestModule()
	ctx := context.Background()

	_, err := module.Handler.GrantRoleHandler(ctx, "member-1", "member-1", httptransport.RoleChangeRequest{
		Role: "national_admin",
	})
	if !errors.Is(err, membererrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin actor, got %v", err)
	}
	_, err = module.Handler.GrantRoleHandler(ctx, "admin-1", "member-1", httptransport.RoleChangeRequest{
		Role: "emperor",
	})
	if !errors.Is(err, membererrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
	_, err = module.Handler.GrantRoleHandler(ctx, "admin-1", "ghost", httptransport.RoleChangeRequest{
		Role: "board_member",
	})
	if !errors.Is(err, membererrors.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
}

func TestMembershipResolveActor(t *testing.T) {
	module := membershipTestModule()
	ctx := context.Background()

	if _, err := module.Handler.GrantRoleHandler(ctx, "admin-1", "member-2", httptransport.RoleChangeRequest{
		Role: "committee_chair",
	}); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	actor, err := module.Actors.ResolveActor(ctx, "member-2")
	if err != nil {
		t.Fatalf("resolve actor failed: %v", err)
	}
	if !actor.IsChair {
		t.Fatalf("expected chair flag, got %+v", actor)
	}
	// The chair counts as a committee member for pipeline gates.
	if !actor.IsCommitteeMember {
		t.Fatalf("expected chair to imply committee membership, got %+v", actor)
	}
	if actor.IsBoardMember || actor.IsNationalAdmin {
		t.Fatalf("unexpected extra flags: %+v", actor)
	}

	_, err = module.Actors.ResolveActor(ctx, "ghost")
	if !errors.Is(err, membererrors.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
}
