package queries

import (
	"context"
	"sort"
	"strings"

	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/digital-audit-service/domain/errors"
	"caucus/contexts/endorsement/digital-audit-service/ports"
)

// AuditView is the latest audit for a vetting together with its researched
// platforms. Audit is nil when no audit has ever been triggered.
type AuditView struct {
	Audit     *entities.DigitalAudit
	Platforms []entities.AuditPlatform
}

type AuditQueries struct {
	Audits   ports.AuditRepository
	Vettings ports.VettingDirectory
}

// GetLatestAudit returns the most recent audit run for the vetting. Platforms
// are ordered by entity type, then score descending so the riskiest finding
// per type reads first.
func (q AuditQueries) GetLatestAudit(ctx context.Context, vettingID string) (AuditView, error) {
	vettingID = strings.TrimSpace(vettingID)
	if _, found, err := q.Vettings.GetVetting(ctx, vettingID); err != nil {
		return AuditView{}, err
	} else if !found {
		return AuditView{}, domainerrors.ErrVettingNotFound
	}

	audit, found, err := q.Audits.GetLatestAudit(ctx, vettingID)
	if err != nil {
		return AuditView{}, err
	}
	if !found {
		return AuditView{}, nil
	}

	platforms, err := q.Audits.ListPlatforms(ctx, audit.AuditID)
	if err != nil {
		return AuditView{}, err
	}
	sort.SliceStable(platforms, func(i, j int) bool {
		if platforms[i].EntityType != platforms[j].EntityType {
			return platforms[i].EntityType < platforms[j].EntityType
		}
		return platforms[i].TotalScore > platforms[j].TotalScore
	})
	return AuditView{Audit: &audit, Platforms: platforms}, nil
}
