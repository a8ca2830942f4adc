package postgresadapter

import (
	"strings"
	"time"

	"caucus/contexts/identity/membership-service/domain/entities"
)

type memberModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memberModel) TableName() string {
	return "members"
}

func memberModelFromEntity(member entities.Member) memberModel {
	row := memberModel{
		ID:        strings.TrimSpace(member.MemberID),
		Name:      strings.TrimSpace(member.Name),
		Email:     strings.TrimSpace(member.Email),
		CreatedAt: member.CreatedAt.UTC(),
		UpdatedAt: member.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

type memberRoleModel struct {
	MemberID  string    `gorm:"column:member_id;primaryKey"`
	Role      string    `gorm:"column:role;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (memberRoleModel) TableName() string {
	return "member_roles"
}
