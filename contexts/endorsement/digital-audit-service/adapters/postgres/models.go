package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
)

type digitalAuditModel struct {
	ID string `gorm:"column:id;primaryKey"`
	// The partial unique index keeps at most one pending/running audit per
	// vetting; InsertAudit maps its 23505 to ErrDuplicateAudit.
	VettingID    string     `gorm:"column:vetting_id;index:idx_digital_audits_active,unique,where:status = 'audit_pending' OR status = 'running'"`
	Status       string     `gorm:"column:status"`
	TriggeredBy  string     `gorm:"column:triggered_by"`
	ErrorMessage string     `gorm:"column:error_message"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
}

func (digitalAuditModel) TableName() string {
	return "digital_audits"
}

func auditModelFromEntity(audit entities.DigitalAudit) digitalAuditModel {
	row := digitalAuditModel{
		ID:           strings.TrimSpace(audit.AuditID),
		VettingID:    strings.TrimSpace(audit.VettingID),
		Status:       string(audit.Status),
		TriggeredBy:  strings.TrimSpace(audit.TriggeredBy),
		ErrorMessage: audit.ErrorMessage,
		CreatedAt:    audit.CreatedAt.UTC(),
	}
	if audit.CompletedAt != nil {
		completedAt := audit.CompletedAt.UTC()
		row.CompletedAt = &completedAt
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m digitalAuditModel) toEntity() entities.DigitalAudit {
	audit := entities.DigitalAudit{
		AuditID:      m.ID,
		VettingID:    m.VettingID,
		Status:       entities.AuditStatus(m.Status),
		TriggeredBy:  m.TriggeredBy,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.CompletedAt != nil {
		completedAt := m.CompletedAt.UTC()
		audit.CompletedAt = &completedAt
	}
	return audit
}

type auditPlatformModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	AuditID    string    `gorm:"column:audit_id"`
	EntityType string    `gorm:"column:entity_type"`
	EntityName string    `gorm:"column:entity_name"`
	TotalScore float64   `gorm:"column:total_score"`
	Findings   []byte    `gorm:"column:findings"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (auditPlatformModel) TableName() string {
	return "digital_audit_platforms"
}

func platformModelFromEntity(platform entities.AuditPlatform) (auditPlatformModel, error) {
	findings := platform.Findings
	if findings == nil {
		findings = map[string]string{}
	}
	payload, err := json.Marshal(findings)
	if err != nil {
		return auditPlatformModel{}, err
	}
	row := auditPlatformModel{
		ID:         strings.TrimSpace(platform.PlatformID),
		AuditID:    strings.TrimSpace(platform.AuditID),
		EntityType: strings.TrimSpace(platform.EntityType),
		EntityName: strings.TrimSpace(platform.EntityName),
		TotalScore: platform.TotalScore,
		Findings:   payload,
		CreatedAt:  platform.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row, nil
}

func (m auditPlatformModel) toEntity() (entities.AuditPlatform, error) {
	findings := map[string]string{}
	if len(m.Findings) > 0 {
		if err := json.Unmarshal(m.Findings, &findings); err != nil {
			return entities.AuditPlatform{}, err
		}
	}
	return entities.AuditPlatform{
		PlatformID: m.ID,
		AuditID:    m.AuditID,
		EntityType: m.EntityType,
		EntityName: m.EntityName,
		TotalScore: m.TotalScore,
		Findings:   findings,
		CreatedAt:  m.CreatedAt.UTC(),
	}, nil
}
