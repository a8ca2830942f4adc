package entities

import "time"

type Role string

const (
	RoleCommitteeMember Role = "committee_member"
	RoleCommitteeChair  Role = "committee_chair"
	RoleBoardMember     Role = "board_member"
	RoleNationalAdmin   Role = "national_admin"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleCommitteeMember, RoleCommitteeChair, RoleBoardMember, RoleNationalAdmin:
		return true
	}
	return false
}

// Member is an organization member. Roles drive every permission gate in the
// endorsement pipeline.
type Member struct {
	MemberID  string
	Name      string
	Email     string
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Member) HasRole(role Role) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}
